/*
Package tonecurve implements an interactive tone curve editor: per channel
control points fitted with a monotone cubic spline, the paths to draw them,
and the pointer driven state machine used to edit them.

A ChannelSet holds one Curve per Channel. A Controller translates pointer
events on a Viewport into edits of the active curve and publishes every
committed edit to subscribers as an immutable Snapshot. The pipeline
sub-package applies snapshots to images using the same splines that are
drawn, so the picture and the curve always agree.
*/
package tonecurve

import "fmt"

type ToneCurveVersion struct {
	Major, Minor, Patch uint
}

func (v ToneCurveVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

var Version = ToneCurveVersion{0, 3, 0}
