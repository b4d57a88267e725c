package pendulum

import (
	"fmt"
	"image/color"
	"math"
)

// DefaultTickScale converts one speed unit into radians per tick.
const DefaultTickScale = 0.01

const none = -1

// SegmentID identifies a segment for as long as it is part of the chain.
// Ids are never reused.
type SegmentID int

type node struct {
	id   SegmentID
	seg  Segment
	next int
}

// Chain is a singly linked list of segments kept in an arena. Each segment's
// base is the end of the segment before it; the head's base starts at the
// anchor. The zero value is not usable, use NewChain.
type Chain struct {
	anchorX, anchorY float64
	tickScale        float64

	nodes []node
	free  []int
	index map[SegmentID]int

	head, tail int
	nextID     SegmentID
	count      int
	ticks      uint64

	trail      *Trail
	trailColor color.RGBA
}

func NewChain(anchorX, anchorY float64, maxTrails int) *Chain {
	return &Chain{
		anchorX:    anchorX,
		anchorY:    anchorY,
		tickScale:  DefaultTickScale,
		index:      make(map[SegmentID]int),
		head:       none,
		tail:       none,
		nextID:     1,
		trail:      NewTrail(maxTrails),
		trailColor: DefaultBallColor,
	}
}

func (c *Chain) Len() int      { return c.count }
func (c *Chain) Ticks() uint64 { return c.ticks }

func (c *Chain) Anchor() (x, y float64) { return c.anchorX, c.anchorY }

func (c *Chain) TickScale() float64 { return c.tickScale }

func (c *Chain) SetTickScale(v float64) error {
	if !finite(v) {
		return fmt.Errorf("tick scale %v: %w", v, ErrInvalidGeometry)
	}
	c.tickScale = v
	return nil
}

// Head returns the first segment's id, or false for an empty chain.
func (c *Chain) Head() (SegmentID, bool) {
	if c.head == none {
		return 0, false
	}
	return c.nodes[c.head].id, true
}

func (c *Chain) Tail() (SegmentID, bool) {
	if c.tail == none {
		return 0, false
	}
	return c.nodes[c.tail].id, true
}

// Segment returns a copy of the segment with the given id.
func (c *Chain) Segment(id SegmentID) (Segment, bool) {
	i, ok := c.index[id]
	if !ok {
		return Segment{}, false
	}
	return c.nodes[i].seg, true
}

// IDs lists segment ids from head to tail.
func (c *Chain) IDs() []SegmentID {
	ids := make([]SegmentID, 0, c.count)
	for i := c.head; i != none; i = c.nodes[i].next {
		ids = append(ids, c.nodes[i].id)
	}
	return ids
}

// Segments copies out the segments from head to tail.
func (c *Chain) Segments() []Segment {
	segs := make([]Segment, 0, c.count)
	for i := c.head; i != none; i = c.nodes[i].next {
		segs = append(segs, c.nodes[i].seg)
	}
	return segs
}

// Next returns the id following id, if any.
func (c *Chain) Next(id SegmentID) (SegmentID, bool) {
	i, ok := c.index[id]
	if !ok || c.nodes[i].next == none {
		return 0, false
	}
	return c.nodes[c.nodes[i].next].id, true
}

// Append adds a segment at the end of the chain, based at the current tail's
// end or at the anchor when the chain is empty. Negative length becomes 0.
func (c *Chain) Append(length, velocity, angle float64) (SegmentID, error) {
	if !finite(length, velocity, angle) {
		return 0, fmt.Errorf("append segment: %w", ErrInvalidGeometry)
	}
	bx, by := c.anchorX, c.anchorY
	if c.tail != none {
		bx, by = c.nodes[c.tail].seg.End()
	}
	seg := NewSegment(bx, by, math.Max(length, 0), velocity, angle)

	i := c.alloc(seg)
	if c.head == none {
		c.head = i
	} else {
		c.setNext(c.tail, i)
	}
	c.tail = i
	c.count++
	return c.nodes[i].id, nil
}

// Remove unlinks the segment with the given id. Removing the head re-roots
// the chain at the removed head's base, not at the anchor.
func (c *Chain) Remove(id SegmentID) error {
	target, ok := c.index[id]
	if !ok {
		return fmt.Errorf("remove segment %d: %w", id, ErrSegmentNotFound)
	}

	if target == c.head {
		bx, by := c.nodes[target].seg.BaseX, c.nodes[target].seg.BaseY
		c.head = c.nodes[target].next
		if c.head != none {
			c.setBase(c.head, bx, by)
		} else {
			c.tail = none
		}
	} else {
		prev := c.head
		for prev != none && c.nodes[prev].next != target {
			prev = c.nodes[prev].next
		}
		if prev == none {
			// indexed but unreachable; the arena is inconsistent
			return fmt.Errorf("remove segment %d: %w", id, ErrSegmentNotFound)
		}
		c.setNext(prev, c.nodes[target].next)
		if target == c.tail {
			c.tail = prev
		}
	}

	c.release(target)
	c.count--
	return nil
}

// SetAnchor moves the chain's root point and the head's base with it.
func (c *Chain) SetAnchor(x, y float64) error {
	if !finite(x, y) {
		return fmt.Errorf("anchor (%v, %v): %w", x, y, ErrInvalidGeometry)
	}
	c.anchorX, c.anchorY = x, y
	if c.head != none {
		c.setBase(c.head, x, y)
	}
	return nil
}

// SetBase moves a segment's base. Only meaningful for the head; any other
// segment's base is overwritten by its predecessor on the next cascade.
func (c *Chain) SetBase(id SegmentID, x, y float64) error {
	i, err := c.lookup(id)
	if err != nil {
		return err
	}
	if !finite(x, y) {
		return fmt.Errorf("base of segment %d: %w", id, ErrInvalidGeometry)
	}
	c.setBase(i, x, y)
	return nil
}

// SetLength clamps negative values to 0.
func (c *Chain) SetLength(id SegmentID, v float64) error {
	i, err := c.lookup(id)
	if err != nil {
		return err
	}
	if !finite(v) {
		return fmt.Errorf("length of segment %d: %w", id, ErrInvalidGeometry)
	}
	c.nodes[i].seg.Length = math.Max(v, 0)
	c.propagate(i)
	return nil
}

func (c *Chain) SetAngle(id SegmentID, rad float64) error {
	i, err := c.lookup(id)
	if err != nil {
		return err
	}
	if !finite(rad) {
		return fmt.Errorf("angle of segment %d: %w", id, ErrInvalidGeometry)
	}
	c.nodes[i].seg.Angle = rad
	c.propagate(i)
	return nil
}

func (c *Chain) SetAngleDegrees(id SegmentID, deg float64) error {
	return c.SetAngle(id, deg*math.Pi/180)
}

func (c *Chain) SetVelocity(id SegmentID, v float64) error {
	i, err := c.lookup(id)
	if err != nil {
		return err
	}
	if !finite(v) {
		return fmt.Errorf("velocity of segment %d: %w", id, ErrInvalidGeometry)
	}
	c.nodes[i].seg.Velocity = v
	return nil
}

func (c *Chain) SetLineColor(id SegmentID, col color.RGBA) error {
	i, err := c.lookup(id)
	if err != nil {
		return err
	}
	c.nodes[i].seg.LineColor = col
	return nil
}

func (c *Chain) SetBallColor(id SegmentID, col color.RGBA) error {
	i, err := c.lookup(id)
	if err != nil {
		return err
	}
	c.nodes[i].seg.BallColor = col
	return nil
}

// SetBallRadius clamps negative values to 0.
func (c *Chain) SetBallRadius(id SegmentID, r float64) error {
	i, err := c.lookup(id)
	if err != nil {
		return err
	}
	if !finite(r) {
		return fmt.Errorf("ball radius of segment %d: %w", id, ErrInvalidGeometry)
	}
	c.nodes[i].seg.BallRadius = math.Max(r, 0)
	return nil
}

// MaxTrails reports the trail capacity.
func (c *Chain) MaxTrails() int { return c.trail.Cap() }

// SetMaxTrails truncates the trail right away. Negative values clamp to 0.
func (c *Chain) SetMaxTrails(n int) {
	c.trail.Resize(n)
	c.trail.Refresh()
}

func (c *Chain) TrailColor() color.RGBA { return c.trailColor }

// SetTrailColor colors markers sampled from now on.
func (c *Chain) SetTrailColor(col color.RGBA) { c.trailColor = col }

// Trail copies out the trail markers, newest first.
func (c *Chain) Trail() []Marker { return c.trail.Markers() }

func (c *Chain) ClearTrail() { c.trail.Clear() }

// Update advances the chain by one tick and samples the tail's end into the
// trail. An empty chain does nothing.
func (c *Chain) Update() {
	if c.head == none {
		return
	}
	for i := c.head; i != none; i = c.nodes[i].next {
		seg := &c.nodes[i].seg
		seg.advance(c.tickScale)
		if n := c.nodes[i].next; n != none {
			c.nodes[n].seg.BaseX, c.nodes[n].seg.BaseY = seg.End()
		}
	}
	c.ticks++

	tail := c.nodes[c.tail].seg
	x, y := tail.End()
	c.trail.Push(Marker{X: x, Y: y, Radius: tail.BallRadius, Color: c.trailColor})
	c.trail.Refresh()
}

// Draw paints the trail first and the live chain over it, head to tail.
func (c *Chain) Draw(dst Surface) {
	for i := c.trail.Len() - 1; i >= 0; i-- {
		c.trail.at(i).Draw(dst)
	}
	for i := c.head; i != none; i = c.nodes[i].next {
		c.nodes[i].seg.Draw(dst)
	}
}

// Bounds returns the box covering the anchor, every segment point and every
// trail marker.
func (c *Chain) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY, maxX, maxY = c.anchorX, c.anchorY, c.anchorX, c.anchorY
	grow := func(x, y, r float64) {
		minX, minY = math.Min(minX, x-r), math.Min(minY, y-r)
		maxX, maxY = math.Max(maxX, x+r), math.Max(maxY, y+r)
	}
	for i := c.head; i != none; i = c.nodes[i].next {
		s := c.nodes[i].seg
		ex, ey := s.End()
		grow(s.BaseX, s.BaseY, 0)
		grow(ex, ey, s.BallRadius)
	}
	for i := 0; i < c.trail.Len(); i++ {
		m := c.trail.at(i)
		grow(m.X, m.Y, m.Radius)
	}
	return
}

func (c *Chain) lookup(id SegmentID) (int, error) {
	i, ok := c.index[id]
	if !ok {
		return none, fmt.Errorf("segment %d: %w", id, ErrSegmentNotFound)
	}
	return i, nil
}

func (c *Chain) alloc(seg Segment) int {
	n := node{id: c.nextID, seg: seg, next: none}
	c.nextID++

	var i int
	if k := len(c.free); k > 0 {
		i = c.free[k-1]
		c.free = c.free[:k-1]
		c.nodes[i] = n
	} else {
		i = len(c.nodes)
		c.nodes = append(c.nodes, n)
	}
	c.index[n.id] = i
	return i
}

func (c *Chain) release(i int) {
	delete(c.index, c.nodes[i].id)
	c.nodes[i] = node{next: none}
	c.free = append(c.free, i)
}

func (c *Chain) setBase(i int, x, y float64) {
	c.nodes[i].seg.BaseX, c.nodes[i].seg.BaseY = x, y
	c.propagate(i)
}

func (c *Chain) setNext(i, next int) {
	c.nodes[i].next = next
	c.propagate(i)
}

// propagate pins every segment after i to the end of its predecessor.
func (c *Chain) propagate(i int) {
	for n := c.nodes[i].next; n != none; i, n = n, c.nodes[n].next {
		c.nodes[n].seg.BaseX, c.nodes[n].seg.BaseY = c.nodes[i].seg.End()
	}
}
