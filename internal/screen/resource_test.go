package screen

import (
	"errors"
	"testing"
)

func TestResource_Lifecycle(t *testing.T) {
	var r Resource[int]

	phase, _, _ := r.Snapshot()
	if phase != Idle {
		t.Fatalf("expected Idle, got %v", phase)
	}

	commit := r.Begin()
	phase, _, _ = r.Snapshot()
	if phase != Loading {
		t.Fatalf("expected Loading, got %v", phase)
	}

	if !commit(42, nil) {
		t.Fatal("expected commit to land")
	}
	phase, v, err := r.Snapshot()
	if phase != Loaded || v != 42 || err != nil {
		t.Fatalf("unexpected state: %v %v %v", phase, v, err)
	}
}

func TestResource_Failure(t *testing.T) {
	var r Resource[int]
	commit := r.Begin()
	boom := errors.New("boom")
	commit(0, boom)

	phase, _, err := r.Snapshot()
	if phase != Failed {
		t.Fatalf("expected Failed, got %v", phase)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestResource_StaleCommitDiscarded(t *testing.T) {
	var r Resource[string]

	first := r.Begin()
	second := r.Begin()

	if first("stale", nil) {
		t.Fatal("superseded commit must not land")
	}
	phase, _, _ := r.Snapshot()
	if phase != Loading {
		t.Fatalf("expected still Loading, got %v", phase)
	}

	if !second("fresh", nil) {
		t.Fatal("expected latest commit to land")
	}
	_, v, _ := r.Snapshot()
	if v != "fresh" {
		t.Fatalf("expected fresh, got %q", v)
	}

	// Even a late error from the stale fetch changes nothing.
	if first("", errors.New("late failure")) {
		t.Fatal("stale error must not land")
	}
	phase, v, err := r.Snapshot()
	if phase != Loaded || v != "fresh" || err != nil {
		t.Fatalf("unexpected state: %v %q %v", phase, v, err)
	}
}

func TestResource_LoadingShowsNoStaleData(t *testing.T) {
	var r Resource[string]
	commit := r.Begin()
	commit("old", nil)

	r.Begin()
	phase, v, _ := r.Snapshot()
	if phase != Loading || v != "" {
		t.Fatalf("expected empty Loading state, got %v %q", phase, v)
	}
}

func TestResource_ResetInvalidatesInFlight(t *testing.T) {
	var r Resource[int]
	commit := r.Begin()
	r.Reset()

	if commit(7, nil) {
		t.Fatal("commit after reset must not land")
	}
	phase, _, _ := r.Snapshot()
	if phase != Idle {
		t.Fatalf("expected Idle, got %v", phase)
	}
}
