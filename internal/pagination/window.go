package pagination

// windowSize is how many page numbers are visible at once, centered on the
// current page and clamped at both ends.
const windowSize = 5

// Control describes the page-button row: first/last jump buttons, the
// visible window of page numbers, and an ellipsis on either side where the
// window does not touch that edge.
type Control struct {
	Current          int   `json:"current"`
	Total            int   `json:"total"`
	Pages            []int `json:"pages"`
	ShowFirst        bool  `json:"show_first"`
	ShowLast         bool  `json:"show_last"`
	LeadingEllipsis  bool  `json:"leading_ellipsis"`
	TrailingEllipsis bool  `json:"trailing_ellipsis"`
}

func Window(current, total int) Control {
	if total < 1 {
		total = 1
	}
	current = Clamp(current, total)

	start := current - windowSize/2
	end := start + windowSize - 1
	if start < 1 {
		start = 1
		end = start + windowSize - 1
	}
	if end > total {
		end = total
		start = end - windowSize + 1
		if start < 1 {
			start = 1
		}
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}

	return Control{
		Current:          current,
		Total:            total,
		Pages:            pages,
		ShowFirst:        total > 1,
		ShowLast:         total > 1,
		LeadingEllipsis:  start > 1,
		TrailingEllipsis: end < total,
	}
}
