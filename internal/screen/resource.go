// Package screen models each page of the site as a controller that owns its
// remote data and follows one fetch lifecycle: Idle -> Loading -> Loaded or
// Failed. Tests assert on these transitions, not on markup.
package screen

import "sync"

type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Resource is one piece of screen-owned remote data. Begin starts a fetch
// and hands back a commit func bound to that fetch's generation; when the
// identifying parameter changes and Begin runs again, the older commit
// becomes a silent no-op. Results of superseded fetches are discarded, never
// cancelled.
type Resource[T any] struct {
	mu    sync.Mutex
	gen   uint64
	phase Phase
	val   T
	err   error
}

// Begin enters Loading and drops any previously loaded value, so a loading
// screen never shows stale data.
func (r *Resource[T]) Begin() func(v T, err error) bool {
	r.mu.Lock()
	r.gen++
	mine := r.gen
	r.phase = Loading
	var zero T
	r.val = zero
	r.err = nil
	r.mu.Unlock()

	return func(v T, err error) bool {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.gen != mine {
			return false
		}
		if err != nil {
			r.phase = Failed
			r.err = err
			var zero T
			r.val = zero
			return true
		}
		r.phase = Loaded
		r.val = v
		return true
	}
}

func (r *Resource[T]) Snapshot() (Phase, T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase, r.val, r.err
}

// Reset returns to Idle and invalidates any in-flight fetch.
func (r *Resource[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	r.phase = Idle
	var zero T
	r.val = zero
	r.err = nil
}
