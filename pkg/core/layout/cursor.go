package layout

// placedSet records which controls already sit in the tree.
type placedSet []bool

func (p placedSet) has(i int) bool { return p[i] }
func (p placedSet) mark(i int)     { p[i] = true }

// cursor walks a sequence of control indices, skipping placed controls.
// Back undoes the most recent Next so the caller's outer loop can see the
// control again.
type cursor struct {
	seq    []int
	pos    int
	last   int
	placed placedSet
}

func newCursor(seq []int, placed placedSet) *cursor {
	return &cursor{seq: seq, last: -1, placed: placed}
}

// Next returns the next unplaced control and advances past it.
func (c *cursor) Next() (int, bool) {
	for c.pos < len(c.seq) {
		p := c.pos
		c.pos++
		if i := c.seq[p]; !c.placed.has(i) {
			c.last = p
			return i, true
		}
	}
	return -1, false
}

// Peek returns the next unplaced control without advancing.
func (c *cursor) Peek() (int, bool) {
	for p := c.pos; p < len(c.seq); p++ {
		if i := c.seq[p]; !c.placed.has(i) {
			return i, true
		}
	}
	return -1, false
}

// Back rewinds to the control returned by the last Next. Calling it twice
// without an intervening Next is a no-op.
func (c *cursor) Back() {
	if c.last >= 0 {
		c.pos = c.last
		c.last = -1
	}
}

// Rest returns the unplaced controls after the current position.
func (c *cursor) Rest() []int {
	var out []int
	for p := c.pos; p < len(c.seq); p++ {
		if i := c.seq[p]; !c.placed.has(i) {
			out = append(out, i)
		}
	}
	return out
}
