package tonecurve

import (
	"fmt"
	"log/slog"
	"slices"
)

var _ = fmt.Print

type options struct {
	logger     *slog.Logger
	hit_radius float64
}

var defaultOptions = options{hit_radius: DefaultHitRadius}

// Option sets an optional parameter for NewChannelSet and NewController.
type Option func(*options)

// WithLogger returns an Option that sets the logger used to report repaired
// curves and state transitions. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithHitRadius returns an Option that sets the distance, in canvas units,
// within which a pointer press grabs an existing point. Only used by
// NewController.
func WithHitRadius(r float64) Option {
	return func(o *options) {
		if r > 0 {
			o.hit_radius = r
		}
	}
}

func resolve_options(opts []Option) options {
	o := defaultOptions
	for _, f := range opts {
		f(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Listener is called after every committed mutation with the channel that
// changed and a snapshot of all channels taken after the change.
type Listener func(Channel, Snapshot)

type subscription struct {
	id int
	fn Listener
}

// ChannelSet holds the curves of all four channels and the currently active
// channel. It must only be used from one goroutine; listeners receive
// snapshots that can be handed to any other goroutine.
type ChannelSet struct {
	curves      [NumChannels]*Curve
	active      Channel
	subscribers []subscription
	next_id     int
	logger      *slog.Logger
	// generation changes on every mutation or selection change that does
	// not come from a drag commit, invalidating any live drag session
	generation uint64
}

// NewChannelSet builds a channel set from cfg, which may be nil. Malformed
// channels in cfg are reset to the identity curve and logged.
func NewChannelSet(cfg Config, opts ...Option) *ChannelSet {
	o := resolve_options(opts)
	ans := &ChannelSet{logger: o.logger}
	ans.curves = ans.repaired(cfg)
	return ans
}

func (s *ChannelSet) repaired(cfg Config) [NumChannels]*Curve {
	curves, err := cfg.Curves()
	if err != nil {
		s.logger.Warn("repaired malformed tone curve configuration", "error", err)
	}
	return curves
}

// Load replaces every channel with the curves in cfg, repairing malformed
// channels, and notifies listeners once per channel.
func (s *ChannelSet) Load(cfg Config) {
	s.curves = s.repaired(cfg)
	s.generation++
	for _, ch := range Channels {
		s.notify(ch)
	}
}

func (s *ChannelSet) Active() Channel { return s.active }

// SetActive selects the channel that edits apply to. Selection is not a
// mutation of the curves and does not notify listeners.
func (s *ChannelSet) SetActive(ch Channel) {
	if ch.Valid() && ch != s.active {
		s.active = ch
		s.generation++
	}
}

// Points returns a copy of the control points of ch.
func (s *ChannelSet) Points(ch Channel) []Point { return s.curves[ch].Points() }

// ActivePoints returns a copy of the control points of the active channel.
func (s *ChannelSet) ActivePoints() []Point { return s.curves[s.active].Points() }

// Snapshot returns an immutable copy of all channels.
func (s *ChannelSet) Snapshot() Snapshot { return NewSnapshot(s.curves) }

// Subscribe registers fn to be called after every committed mutation.
// The returned function removes the subscription.
func (s *ChannelSet) Subscribe(fn Listener) (unsubscribe func()) {
	id := s.next_id
	s.next_id++
	s.subscribers = append(s.subscribers, subscription{id: id, fn: fn})
	return func() {
		s.subscribers = slices.DeleteFunc(s.subscribers, func(x subscription) bool { return x.id == id })
	}
}

func (s *ChannelSet) notify(ch Channel) {
	if len(s.subscribers) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, sub := range slices.Clone(s.subscribers) {
		sub.fn(ch, snap)
	}
}

// Insert adds a point to the active channel. See Curve.Insert.
func (s *ChannelSet) Insert(x, y float64) (int, bool) {
	idx, ok := s.curves[s.active].Insert(x, y)
	if ok {
		s.generation++
		s.notify(s.active)
	}
	return idx, ok
}

// Move moves a point of the active channel. See Curve.Move.
func (s *ChannelSet) Move(index int, x, y float64) (Point, bool) {
	p, ok := s.curves[s.active].Move(index, x, y)
	if ok {
		s.generation++
		s.notify(s.active)
	}
	return p, ok
}

// Remove deletes an interior point of the active channel.
func (s *ChannelSet) Remove(index int) bool {
	ok := s.curves[s.active].Remove(index)
	if ok {
		s.generation++
		s.notify(s.active)
	}
	return ok
}

// ResetChannel replaces the active channel with the identity curve.
func (s *ChannelSet) ResetChannel() {
	s.curves[s.active].Reset()
	s.generation++
	s.notify(s.active)
}

// ResetAll replaces every channel with the identity curve.
func (s *ChannelSet) ResetAll() {
	s.generation++
	for _, ch := range Channels {
		s.curves[ch].Reset()
		s.notify(ch)
	}
}

// commit replaces the points of ch with those of c, which must already
// satisfy the curve invariants. It leaves the generation alone so the drag
// that produced c stays live.
func (s *ChannelSet) commit(ch Channel, c *Curve) {
	dest := s.curves[ch]
	dest.points = append(dest.points[:0], c.points...)
	s.notify(ch)
}
