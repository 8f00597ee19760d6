package tonecurve

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/kovidgoyal/tonecurve/spline"
)

var _ = fmt.Print

// Config is the external shape of a channel set: channel name to control
// points. It is what gets loaded from settings stores and what is handed to
// image pipelines.
type Config map[string][]Point

// Curves builds one curve per channel from the config. Channels that are
// missing get the identity curve. Channels whose points are malformed are
// repaired to the identity curve and reported in the returned error, which
// is informational: the curves are always usable.
func (cfg Config) Curves() (ans [NumChannels]*Curve, err error) {
	var errs []error
	var seen [NumChannels]string
	for _, name := range slices.Sorted(maps.Keys(cfg)) {
		pts := cfg[name]
		ch, perr := ParseChannel(name)
		if perr != nil {
			errs = append(errs, perr)
			continue
		}
		// the first name in sorted order wins
		if prev := seen[ch]; prev != "" {
			errs = append(errs, fmt.Errorf("%s curve given twice, as %q and %q, ignoring %q", ch, prev, name, name))
			continue
		}
		seen[ch] = name
		c, cerr := NewCurveFromPoints(pts)
		if cerr != nil {
			errs = append(errs, fmt.Errorf("%s curve reset to identity: %w", ch, cerr))
			continue
		}
		ans[ch] = c
	}
	for i, c := range ans {
		if c == nil {
			ans[i] = NewCurve()
		}
	}
	return ans, errors.Join(errs...)
}

// Snapshot is an immutable copy of the points of every channel. It is safe
// to pass between goroutines. The zero value holds identity curves.
type Snapshot struct {
	curves [NumChannels][]Point
}

// IdentitySnapshot returns a snapshot where every channel is the identity.
func IdentitySnapshot() Snapshot { return Snapshot{} }

// NewSnapshot copies the points of the given curves.
func NewSnapshot(curves [NumChannels]*Curve) (ans Snapshot) {
	for i, c := range curves {
		if c != nil {
			ans.curves[i] = c.Points()
		}
	}
	return
}

// SnapshotFromConfig builds a snapshot from cfg, repairing malformed
// channels the same way ChannelSet does.
func SnapshotFromConfig(cfg Config) (Snapshot, error) {
	curves, err := cfg.Curves()
	return NewSnapshot(curves), err
}

func (s Snapshot) points(ch Channel) []Point {
	if pts := s.curves[ch]; pts != nil {
		return pts
	}
	return identity_points()
}

// Points returns a copy of the control points of ch.
func (s Snapshot) Points(ch Channel) []Point { return slices.Clone(s.points(ch)) }

// Spline solves the spline of ch.
func (s Snapshot) Spline(ch Channel) *spline.Spline { return spline.New(s.points(ch)) }

// IsIdentity reports whether ch maps every value to itself.
func (s Snapshot) IsIdentity(ch Channel) bool {
	for _, p := range s.points(ch) {
		if p.X != p.Y {
			return false
		}
	}
	return true
}

// Config exports the snapshot in the external shape.
func (s Snapshot) Config() Config {
	ans := make(Config, NumChannels)
	for _, ch := range Channels {
		ans[ch.String()] = s.Points(ch)
	}
	return ans
}

// Equal reports whether both snapshots hold the same points.
func (s Snapshot) Equal(o Snapshot) bool {
	for _, ch := range Channels {
		if !slices.Equal(s.points(ch), o.points(ch)) {
			return false
		}
	}
	return true
}

// Attenuate scales every curve's deviation from the identity by strength,
// clamped to [0, 1]. Zero gives the identity, one gives s unchanged.
func (s Snapshot) Attenuate(strength float64) (ans Snapshot) {
	strength = clamp(strength, 0, 1)
	for _, ch := range Channels {
		src := s.points(ch)
		pts := make([]Point, len(src))
		for i, p := range src {
			pts[i] = Point{X: p.X, Y: p.X + strength*(p.Y-p.X)}
		}
		ans.curves[ch] = pts
	}
	return
}

func (s Snapshot) String() string {
	return fmt.Sprintf("Snapshot{luma: %v red: %v green: %v blue: %v}", s.points(Luma), s.points(Red), s.points(Green), s.points(Blue))
}
