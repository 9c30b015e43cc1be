package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name             string
		current, total   int
		pages            []int
		leadingEllipsis  bool
		trailingEllipsis bool
	}{
		{
			name: "single page", current: 1, total: 1,
			pages: []int{1},
		},
		{
			name: "fewer pages than window", current: 2, total: 3,
			pages: []int{1, 2, 3},
		},
		{
			name: "window at the start", current: 1, total: 20,
			pages: []int{1, 2, 3, 4, 5}, trailingEllipsis: true,
		},
		{
			name: "window centered in the middle", current: 10, total: 20,
			pages: []int{8, 9, 10, 11, 12}, leadingEllipsis: true, trailingEllipsis: true,
		},
		{
			name: "window clamped at the end", current: 20, total: 20,
			pages: []int{16, 17, 18, 19, 20}, leadingEllipsis: true,
		},
		{
			name: "near the start stays anchored", current: 2, total: 20,
			pages: []int{1, 2, 3, 4, 5}, trailingEllipsis: true,
		},
		{
			name: "near the end stays anchored", current: 19, total: 20,
			pages: []int{16, 17, 18, 19, 20}, leadingEllipsis: true,
		},
		{
			name: "out-of-range current clamps", current: 99, total: 7,
			pages: []int{3, 4, 5, 6, 7}, leadingEllipsis: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Window(tt.current, tt.total)
			require.Equal(t, tt.pages, c.Pages)
			require.Equal(t, tt.leadingEllipsis, c.LeadingEllipsis, "leading ellipsis")
			require.Equal(t, tt.trailingEllipsis, c.TrailingEllipsis, "trailing ellipsis")
			require.Equal(t, tt.total > 1, c.ShowFirst)
			require.Equal(t, tt.total > 1, c.ShowLast)
			require.LessOrEqual(t, len(c.Pages), windowSize)
		})
	}
}
