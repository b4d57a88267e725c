package pendulum

import "image/color"

// Marker is one sample of the chain's terminal point.
type Marker struct {
	X, Y    float64
	Radius  float64
	Color   color.RGBA
	Opacity float64
}

// Draw fills the marker disc with its color scaled by Opacity.
func (m Marker) Draw(dst Surface) {
	c := color.NRGBA{R: m.Color.R, G: m.Color.G, B: m.Color.B, A: uint8(m.Opacity*float64(m.Color.A) + 0.5)}
	dst.Push()
	dst.SetColor(c)
	dst.DrawCircle(m.X, m.Y, m.Radius)
	dst.Fill()
	dst.Pop()
}

// Trail is a fixed-capacity ring of markers, newest first.
type Trail struct {
	data []Marker
	pos  int // slot the next Push writes
	size int
}

func NewTrail(capacity int) *Trail {
	if capacity < 0 {
		capacity = 0
	}
	return &Trail{data: make([]Marker, capacity)}
}

func (t *Trail) Len() int { return t.size }
func (t *Trail) Cap() int { return len(t.data) }

// Push stores m as the newest marker, evicting the oldest once full.
func (t *Trail) Push(m Marker) {
	if len(t.data) == 0 {
		return
	}
	t.data[t.pos] = m
	t.pos = (t.pos + 1) % len(t.data)
	if t.size < len(t.data) {
		t.size++
	}
}

// At returns the i-th marker counting from the newest. It reports false
// when i is outside [0, Len()).
func (t *Trail) At(i int) (Marker, bool) {
	if i < 0 || i >= t.size {
		return Marker{}, false
	}
	return t.at(i), true
}

// at is At without the range check; 0 <= i < size must hold.
func (t *Trail) at(i int) Marker {
	return t.data[t.slot(i)]
}

func (t *Trail) slot(i int) int {
	n := len(t.data)
	return ((t.pos-1-i)%n + n) % n
}

// Markers copies the contents out, newest first.
func (t *Trail) Markers() []Marker {
	out := make([]Marker, t.size)
	for i := range out {
		out[i] = t.at(i)
	}
	return out
}

// Resize changes the capacity, dropping the oldest markers that no longer fit.
func (t *Trail) Resize(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	if capacity == len(t.data) {
		return
	}
	keep := t.size
	if keep > capacity {
		keep = capacity
	}
	data := make([]Marker, capacity)
	// oldest kept marker goes to slot 0 so pos lands right after the newest
	for i := 0; i < keep; i++ {
		data[keep-1-i] = t.at(i)
	}
	t.data = data
	t.size = keep
	t.pos = 0
	if capacity > 0 {
		t.pos = keep % capacity
	}
}

// Refresh recomputes every marker's opacity from its position in the queue.
func (t *Trail) Refresh() {
	for i := 0; i < t.size; i++ {
		t.data[t.slot(i)].Opacity = Opacity(i, len(t.data))
	}
}

func (t *Trail) Clear() {
	t.pos = 0
	t.size = 0
}

// Opacity maps a marker's index from the newest to its visual weight:
// 1 for the newest, falling linearly to 1/capacity for the oldest slot.
func Opacity(index, capacity int) float64 {
	if capacity <= 0 || index >= capacity {
		return 0
	}
	return 1 - float64(index)/float64(capacity)
}
