package player

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestPlayer() *Player {
	return New("default", zerolog.Nop())
}

func TestVolumeClampsToRange(t *testing.T) {
	p := newTestPlayer()
	assert.Equal(t, 100, p.Volume(0))
	assert.Equal(t, 100, p.Volume(80), "volume must clamp at 100")
	assert.Equal(t, 0, p.Volume(-1000), "volume must clamp at 0")
}

func TestSpeedClampsToRange(t *testing.T) {
	p := newTestPlayer()
	assert.Equal(t, 400, p.Speed(1000))
	assert.Equal(t, 25, p.Speed(-1000))
}

func TestPauseResumeNoOpWhenStopped(t *testing.T) {
	p := newTestPlayer()
	p.Pause()
	p.Resume()
	p.Toggle()
	assert.Equal(t, Stopped, p.Snapshot().Kind)
}

func TestDisableUnknownDevice(t *testing.T) {
	p := newTestPlayer()
	err := p.Disable("nonexistent")
	assert.Error(t, err)
}

func TestEnableDisableDesignatedMigratesOrStops(t *testing.T) {
	p := newTestPlayer()
	assert.NoError(t, p.Enable("default"))

	err := p.Disable("default")
	assert.NoError(t, err)
	assert.Equal(t, Stopped, p.Snapshot().Kind)
}
