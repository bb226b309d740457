package alien_test

import (
	"testing"

	alien "github.com/zhangmo8/alien-signals"
	"github.com/stretchr/testify/assert"
)

// should pause tracking
func TestShouldPauseTracking(t *testing.T) {
	rs := alien.CreateReactiveSystem(func(from alien.SignalAware, err error) {
		t.FailNow()
	})

	src := alien.Signal(rs, 0)
	c := alien.Computed(rs, func(oldValue int) int {
		rs.PauseTracking()
		value := src.Value()
		rs.ResumeTracking()
		return value
	})
	assert.Equal(t, 0, c.Value())

	src.SetValue(1)
	assert.Equal(t, 0, c.Value(), "untracked read must not re-dirty the computed")
}

// should pause tracking inside an effect
func TestShouldPauseTrackingInsideEffect(t *testing.T) {
	rs := alien.CreateReactiveSystem(func(from alien.SignalAware, err error) {
		t.FailNow()
	})

	tracked := alien.Signal(rs, 0)
	untracked := alien.Signal(rs, 0)

	runs := 0
	alien.Effect(rs, func() error {
		tracked.Value()
		rs.PauseTracking()
		untracked.Value()
		rs.ResumeTracking()
		runs++
		return nil
	})
	assert.Equal(t, 1, runs)

	untracked.SetValue(1)
	assert.Equal(t, 1, runs)

	tracked.SetValue(1)
	assert.Equal(t, 2, runs)
}
