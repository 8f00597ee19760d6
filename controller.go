package tonecurve

import (
	"context"
	"fmt"
	"log/slog"

	"honnef.co/go/curve"
)

var _ = fmt.Print

// DefaultHitRadius is the default grab distance around a point handle, in
// canvas units.
const DefaultHitRadius = 8.0

type StateKind int

const (
	Idle StateKind = iota
	Dragging
)

func (k StateKind) String() string {
	switch k {
	case Idle:
		return "Idle"
	case Dragging:
		return "Dragging"
	}
	return fmt.Sprintf("StateKind(%d)", int(k))
}

// State is the controller state. Index is only meaningful when Kind is
// Dragging.
type State struct {
	Kind  StateKind
	Index int
}

func (s State) String() string {
	if s.Kind == Dragging {
		return fmt.Sprintf("Dragging(%d)", s.Index)
	}
	return s.Kind.String()
}

// dragSession is the live state of a pointer drag: the channel and point
// being moved and a private copy of that channel's curve that pointer moves
// mutate before being written through to the ChannelSet.
type dragSession struct {
	channel    Channel
	index      int
	shadow     *Curve
	generation uint64
}

// Controller turns pointer events on the curve canvas into ChannelSet
// mutations. All methods must be called from the goroutine that owns the
// ChannelSet.
type Controller struct {
	set        *ChannelSet
	viewport   Viewport
	hit_radius float64
	logger     *slog.Logger
	session    *dragSession
}

// NewController returns an Idle controller editing set through a canvas of
// the given size.
func NewController(set *ChannelSet, v Viewport, opts ...Option) *Controller {
	o := resolve_options(opts)
	return &Controller{set: set, viewport: v, hit_radius: o.hit_radius, logger: o.logger}
}

func state_of(s *dragSession) State {
	if s == nil {
		return State{Kind: Idle}
	}
	return State{Kind: Dragging, Index: s.index}
}

func (c *Controller) State() State { return state_of(c.live()) }

// live returns the drag session, first ending it if the ChannelSet was
// changed by anything other than this drag since it started.
func (c *Controller) live() *dragSession {
	if c.session != nil && c.session.generation != c.set.generation {
		c.transition(nil, "external-change")
	}
	return c.session
}

func (c *Controller) Viewport() Viewport { return c.viewport }

// SetViewport changes the canvas size, for example when the editor is
// resized. Any drag in progress continues in the new coordinates.
func (c *Controller) SetViewport(v Viewport) { c.viewport = v }

func (c *Controller) transition(to *dragSession, event string) {
	from := state_of(c.session)
	c.session = to
	if c.logger.Enabled(context.Background(), slog.LevelDebug) {
		c.logger.Debug("tone curve controller transition", "event", event, "from", from, "to", state_of(to), "channel", c.set.Active())
	}
}

// HitTest returns the index of the point of the active channel whose handle
// is nearest to the canvas position pt, if any lies within the hit radius.
func (c *Controller) HitTest(pt curve.Point) (int, bool) {
	best, best_dist := -1, c.hit_radius*c.hit_radius
	for i, p := range c.set.curves[c.set.active].points {
		if d := c.viewport.ToCanvas(p).DistanceSquared(pt); d <= best_dist {
			best, best_dist = i, d
		}
	}
	return best, best >= 0
}

// PointerDown starts a drag. Pressing on a handle grabs that point, pressing
// elsewhere inserts a new point under the pointer and grabs it. Presses
// while already dragging are ignored. Reports whether a drag started.
func (c *Controller) PointerDown(pt curve.Point) bool {
	if c.live() != nil {
		return false
	}
	ch := c.set.Active()
	idx, ok := c.HitTest(pt)
	if !ok {
		cp := c.viewport.FromCanvas(pt)
		if idx, ok = c.set.Insert(cp.X, cp.Y); !ok {
			return false
		}
	}
	c.transition(&dragSession{channel: ch, index: idx, shadow: c.set.curves[ch].Clone(), generation: c.set.generation}, "pointer-down")
	return true
}

// PointerMove moves the dragged point to the canvas position pt, clamped to
// the curve constraints, and commits the change immediately. Returns the
// stored point and whether a drag was in progress. A drag is over once the
// ChannelSet has been reset, reloaded, edited directly or switched to
// another channel.
func (c *Controller) PointerMove(pt curve.Point) (Point, bool) {
	s := c.live()
	if s == nil {
		return Point{}, false
	}
	cp := c.viewport.FromCanvas(pt)
	p, ok := s.shadow.Move(s.index, cp.X, cp.Y)
	if ok {
		c.set.commit(s.channel, s.shadow)
	}
	return p, ok
}

func (c *Controller) end(event string) {
	if c.session != nil {
		c.transition(nil, event)
	}
}

// PointerUp ends the drag. Every move was already committed, so nothing
// else is applied.
func (c *Controller) PointerUp() { c.end("pointer-up") }

// PointerCancel ends the drag, for example when the platform cancels the
// gesture.
func (c *Controller) PointerCancel() { c.end("pointer-cancel") }

// LostCapture ends the drag when pointer capture is lost, for example on
// window blur.
func (c *Controller) LostCapture() { c.end("lost-capture") }

// DoubleClick resets the active channel to the identity curve, ending any
// drag.
func (c *Controller) DoubleClick() {
	c.end("double-click")
	c.set.ResetChannel()
}

// SetActiveChannel switches the edited channel. A drag in progress is
// abandoned without writing anything further.
func (c *Controller) SetActiveChannel(ch Channel) {
	if !ch.Valid() || ch == c.set.Active() {
		return
	}
	c.end("channel-switch")
	c.set.SetActive(ch)
}

// Delete removes the interior point whose handle is under the canvas
// position pt. Only allowed while Idle. Reports whether a point was removed.
func (c *Controller) Delete(pt curve.Point) bool {
	if c.live() != nil {
		return false
	}
	idx, ok := c.HitTest(pt)
	return ok && c.set.Remove(idx)
}

// Path returns the canvas path of the active channel's curve.
func (c *Controller) Path() curve.BezPath {
	return CurvePath(c.set.curves[c.set.active].points, c.viewport)
}

// Handles returns the canvas positions of the active channel's points.
func (c *Controller) Handles() []curve.Point {
	pts := c.set.curves[c.set.active].points
	ans := make([]curve.Point, len(pts))
	for i, p := range pts {
		ans[i] = c.viewport.ToCanvas(p)
	}
	return ans
}
