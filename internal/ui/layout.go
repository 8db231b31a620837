package ui

// Card grid geometry.
const (
	// CardWidth is the outer width of one card in grid layout, border included.
	CardWidth = 40

	// CardGap is the horizontal space between grid columns.
	CardGap = 1

	// ListMaxWidth caps card width in list layout.
	ListMaxWidth = 80

	// LayoutCompactWidth is the width below which the grid collapses to one column.
	LayoutCompactWidth = 2*CardWidth + CardGap
)

// Chrome heights around the card viewport.
const (
	headerHeight = 2
	footerHeight = 1
)
