package tonecurve

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestSnapshotFromConfig(t *testing.T) {
	snap, err := SnapshotFromConfig(Config{"red": pts(0, 0, 100, 180, 255, 255), "g": pts(5, 0, 255, 255)})
	require.ErrorIs(t, err, ErrUnpinnedEndpoint)
	assert.Equal(t, pts(0, 0, 100, 180, 255, 255), snap.Points(Red))
	assert.True(t, snap.IsIdentity(Green))
	assert.True(t, snap.IsIdentity(Luma))
	assert.InDelta(t, 180, snap.Spline(Red).Transform(100), 1e-12)

	snap, err = SnapshotFromConfig(nil)
	require.NoError(t, err)
	assert.True(t, snap.Equal(IdentitySnapshot()))
}

func TestSnapshotFromConfigDuplicateAlias(t *testing.T) {
	snap, err := SnapshotFromConfig(Config{"r": pts(0, 0, 100, 50, 255, 255), "red": pts(0, 0, 100, 180, 255, 255)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `red curve given twice, as "r" and "red"`)
	assert.Equal(t, pts(0, 0, 100, 50, 255, 255), snap.Points(Red))
	assert.True(t, snap.IsIdentity(Luma))
}

func TestSnapshotAttenuate(t *testing.T) {
	snap, err := SnapshotFromConfig(Config{"luma": pts(0, 20, 100, 200, 255, 155)})
	require.NoError(t, err)
	assert.Equal(t, pts(0, 10, 100, 150, 255, 205), snap.Attenuate(0.5).Points(Luma))
	for _, ch := range Channels {
		assert.True(t, snap.Attenuate(0).IsIdentity(ch), ch.String())
	}
	assert.True(t, snap.Attenuate(1).Equal(snap))
	assert.True(t, snap.Attenuate(7).Equal(snap))
	assert.True(t, snap.Attenuate(0.3).IsIdentity(Red))
}

func TestChannelNames(t *testing.T) {
	for _, ch := range Channels {
		parsed, err := ParseChannel(ch.String())
		require.NoError(t, err)
		assert.Equal(t, ch, parsed)
	}
	ch, err := ParseChannel(" Luminance ")
	require.NoError(t, err)
	assert.Equal(t, Luma, ch)
	_, err = ParseChannel("alpha")
	assert.Error(t, err)
	assert.Equal(t, "Channel(7)", Channel(7).String())
	var c Channel
	require.NoError(t, c.UnmarshalText([]byte("blue")))
	assert.Equal(t, Blue, c)
	b, err := Green.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "green", string(b))
}
