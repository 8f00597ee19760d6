package tonecurve

import (
	"fmt"
	"strings"
)

var _ = fmt.Print

// Channel identifies one of the four tone curves.
type Channel int

const (
	Luma Channel = iota
	Red
	Green
	Blue
)

// NumChannels is the number of tone curves in a ChannelSet.
const NumChannels = 4

// Channels lists every channel in display order.
var Channels = [NumChannels]Channel{Luma, Red, Green, Blue}

var channelNames = [NumChannels]string{
	Luma:  "luma",
	Red:   "red",
	Green: "green",
	Blue:  "blue",
}

var channelAliases = map[string]Channel{
	"luma":      Luma,
	"luminance": Luma,
	"rgb":       Luma,
	"red":       Red,
	"r":         Red,
	"green":     Green,
	"g":         Green,
	"blue":      Blue,
	"b":         Blue,
}

func (c Channel) Valid() bool { return c >= 0 && c < NumChannels }

func (c Channel) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return channelNames[c]
}

// ParseChannel converts a channel name, as used in curve configurations, to
// a Channel. Matching is case insensitive.
func ParseChannel(name string) (Channel, error) {
	if c, ok := channelAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c, nil
	}
	return Luma, fmt.Errorf("unknown curve channel: %q", name)
}

func (c Channel) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid channel: %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Channel) UnmarshalText(text []byte) (err error) {
	*c, err = ParseChannel(string(text))
	return
}
