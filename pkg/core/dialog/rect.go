package dialog

// Rect is a rectangle stored as left, top, width and height.
type Rect struct {
	Left   int `json:"left" toml:"left" yaml:"left" bson:"left"`
	Top    int `json:"top" toml:"top" yaml:"top" bson:"top"`
	Width  int `json:"width" toml:"width" yaml:"width" bson:"width"`
	Height int `json:"height" toml:"height" yaml:"height" bson:"height"`
}

func (r Rect) Right() int  { return r.Left + r.Width }
func (r Rect) Bottom() int { return r.Top + r.Height }

// Contains reports whether o lies fully inside r, edges included.
func (r Rect) Contains(o Rect) bool {
	return o.Left >= r.Left && o.Top >= r.Top &&
		o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// ToDevice converts a rect in dialog units to pixels for the reference font:
// horizontal values scale by 7/4, vertical values by 15/4.
func ToDevice(r Rect) Rect {
	return Rect{
		Left:   horz(r.Left),
		Top:    vert(r.Top),
		Width:  horz(r.Width),
		Height: vert(r.Height),
	}
}

func horz(v int) int { return int(int64(v) * 7 / 4) }
func vert(v int) int { return int(int64(v) * 15 / 4) }
