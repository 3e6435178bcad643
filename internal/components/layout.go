package components

// Layout splits the terminal into three rows of list and detail panes
// above the status line
type Layout struct {
	width  int
	height int
}

// Rect is the size of one pane
type Rect struct {
	Width  int
	Height int
}

func NewLayout(width, height int) *Layout {
	return &Layout{
		width:  width,
		height: height,
	}
}

func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// TooSmall reports whether the terminal is below the minimum size
func (l *Layout) TooSmall() bool {
	return l.width < MinWidth || l.height < MinHeight
}

// RowHeights returns the heights of the services, tasks and containers rows.
// The services row gets two fifths of the space, the others split the rest.
func (l *Layout) RowHeights() [3]int {
	available := l.height - StatusLineHeight
	if available < 3 {
		return [3]int{1, 1, 1}
	}
	services := available * 2 / 5
	tasks := (available - services) / 2
	containers := available - services - tasks
	return [3]int{services, tasks, containers}
}

// ListWidth returns the width of the list panes
func (l *Layout) ListWidth() int {
	return l.width * ListWidthPercent / 100
}

// DetailWidth returns the width of the detail panes
func (l *Layout) DetailWidth() int {
	return l.width - l.ListWidth()
}

// Row returns the list and detail rects of row i
func (l *Layout) Row(i int) (list Rect, detail Rect) {
	h := l.RowHeights()[i]
	return Rect{Width: l.ListWidth(), Height: h}, Rect{Width: l.DetailWidth(), Height: h}
}

// Body returns the rect above the status line
func (l *Layout) Body() Rect {
	return Rect{Width: l.width, Height: max(l.height-StatusLineHeight, 1)}
}
