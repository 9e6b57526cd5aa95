package dialog

// Fudge is the tolerance, in device units, for "close enough" horizontal
// alignment.
const Fudge = 3

// SameTop reports whether a and b sit on the same row.
//
// Equal tops always match. With loose set, tops one or two units apart in
// either direction also match. Without it, a static label may sit one or two
// units below b and still match; the reverse does not hold.
func SameTop(a, b *Control, loose bool) bool {
	at, bt := a.Logical.Top, b.Logical.Top
	if at == bt {
		return true
	}
	if loose {
		d := at - bt
		return d == 1 || d == 2 || d == -1 || d == -2
	}
	if a.IsStatic() {
		return at-1 == bt || at-2 == bt
	}
	return false
}

// SameRight reports whether a and b share both left and right edges.
func SameRight(a, b *Control) bool {
	return a.Logical.Left == b.Logical.Left &&
		a.Logical.Right() == b.Logical.Right()
}

// SameLeft reports whether a and b share a left edge within Fudge pixels.
func SameLeft(a, b *Control) bool {
	return IsInRange(a.Device.Left, b.Device.Left)
}

// WithinVertical reports whether a's vertical span lies inside b's.
func WithinVertical(a, b *Control) bool {
	return a.Logical.Top >= b.Logical.Top && a.Logical.Bottom() <= b.Logical.Bottom()
}

// Contains reports whether a's full rectangle lies inside b's.
func Contains(b, a *Control) bool {
	return b.Logical.Contains(a.Logical)
}

// IsInRange reports whether two device-unit values differ by at most Fudge.
func IsInRange(v1, v2 int) bool {
	d := v1 - v2
	if d < 0 {
		d = -d
	}
	return d <= Fudge
}
