package export

// Cursor is the running vertical position on the current PDF page.
// Reserve is the single lookahead primitive: any block whose height is known
// is reserved before it is drawn, and a page break happens there.
type Cursor struct {
	Y      float64
	Top    float64
	Bottom float64

	newPage func()
	breaks  int
}

// NewCursor starts at y on the first page. newPage is called on every break.
func NewCursor(y, top, bottom float64, newPage func()) *Cursor {
	return &Cursor{Y: y, Top: top, Bottom: bottom, newPage: newPage}
}

// Reserve starts a new page when a block of height h would cross the bottom
// margin. It reports whether a break happened.
func (c *Cursor) Reserve(h float64) bool {
	if c.Y+h <= c.Bottom {
		return false
	}
	if c.newPage != nil {
		c.newPage()
	}
	c.Y = c.Top
	c.breaks++
	return true
}

// Advance moves the cursor down by h without checking the margin
func (c *Cursor) Advance(h float64) {
	c.Y += h
}

// Capacity is the usable height of a fresh page
func (c *Cursor) Capacity() float64 {
	return c.Bottom - c.Top
}

// Breaks returns the number of page breaks so far
func (c *Cursor) Breaks() int {
	return c.breaks
}
