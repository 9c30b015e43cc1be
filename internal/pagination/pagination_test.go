package pagination

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		expected   int
	}{
		{name: "page zero clamps to first", page: 0, totalPages: 7, expected: 1},
		{name: "negative page clamps to first", page: -3, totalPages: 7, expected: 1},
		{name: "past the end clamps to last", page: 8, totalPages: 7, expected: 7},
		{name: "in range unchanged", page: 4, totalPages: 7, expected: 4},
		{name: "zero total treated as one page", page: 3, totalPages: 0, expected: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Clamp(tt.page, tt.totalPages))
		})
	}
}

func TestServerSide_ClampsBeforeFetching(t *testing.T) {
	var requested []int
	pager := &ServerSide[int]{
		Fetch: func(_ context.Context, page int) (Paged[int], error) {
			requested = append(requested, page)
			return Paged[int]{
				Items: []int{page},
				Info:  Info{CurrentPage: page, TotalPages: 3, TotalItems: 30, PageSize: 10},
			}, nil
		},
	}

	// First call knows no total yet; only the lower bound applies.
	_, err := pager.Page(context.Background(), 0)
	require.NoError(t, err)

	// Now total_pages=3 is known; out-of-range requests clamp both ways.
	_, err = pager.Page(context.Background(), 4)
	require.NoError(t, err)
	_, err = pager.Page(context.Background(), -1)
	require.NoError(t, err)

	require.Equal(t, []int{1, 3, 1}, requested)
}

func TestServerSide_NormalizesMetadata(t *testing.T) {
	pager := &ServerSide[string]{
		Fetch: func(_ context.Context, page int) (Paged[string], error) {
			return Paged[string]{Info: Info{CurrentPage: page, TotalPages: 0, TotalItems: -2}}, nil
		},
	}
	res, err := pager.Page(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalPages)
	require.Equal(t, 1, res.CurrentPage)
	require.Equal(t, 0, res.TotalItems)
}

func TestClientSide_Page(t *testing.T) {
	items := make([]int, 13)
	for i := range items {
		items[i] = i + 1
	}
	list := ClientSide[int]{Items: items, PageSize: 5}

	require.Equal(t, 3, list.TotalPages())

	first := list.Page(1)
	require.Equal(t, []int{1, 2, 3, 4, 5}, first.Items)
	require.Equal(t, 13, first.TotalItems)

	last := list.Page(3)
	require.Equal(t, []int{11, 12, 13}, last.Items)

	// Out-of-range pages clamp rather than go empty.
	require.Equal(t, first.Items, list.Page(0).Items)
	require.Equal(t, last.Items, list.Page(9).Items)
}

func TestClientSide_Empty(t *testing.T) {
	list := ClientSide[int]{Items: nil, PageSize: 5}
	page := list.Page(1)
	require.Empty(t, page.Items)
	require.Equal(t, 1, page.TotalPages)
	require.Equal(t, 0, page.TotalItems)
}
