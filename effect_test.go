package alien_test

import (
	"errors"
	"testing"

	alien "github.com/zhangmo8/alien-signals"
	"github.com/stretchr/testify/assert"
)

// should clear subscriptions when untracked by all subscribers
func TestEffectClearSubsWhenUntracked(t *testing.T) {
	bRunTimes := 0

	rs := alien.CreateReactiveSystem(func(from alien.SignalAware, err error) {
		assert.FailNow(t, err.Error())
	})
	a := alien.Signal(rs, 1)
	b := alien.Computed(rs, func(oldValue int) int {
		bRunTimes++
		return a.Value() * 2
	})
	stopEffect := alien.Effect(rs, func() error {
		b.Value()
		return nil
	})

	assert.Equal(t, 1, bRunTimes)
	a.SetValue(2)
	assert.Equal(t, 2, bRunTimes)
	stopEffect()
	a.SetValue(3)
	assert.Equal(t, 2, bRunTimes)
}

// should not run untracked inner effect
func TestShouldNotRunUntrackedInnerEffect(t *testing.T) {
	rs := alien.CreateReactiveSystem(func(from alien.SignalAware, err error) {
		assert.FailNow(t, err.Error())
	})
	a := alien.Signal(rs, 3)
	b := alien.Computed(rs, func(oldValue bool) bool {
		return a.Value() > 0
	})

	alien.Effect(rs, func() error {
		if b.Value() {
			alien.Effect(rs, func() error {
				if a.Value() == 0 {
					assert.Fail(t, "inner effect ran after being untracked")
				}
				return nil
			})
		}
		return nil
	})

	decrement := func() {
		a.SetValue(a.Value() - 1)
	}
	decrement()
	decrement()
	decrement()
}

// should run outer effect first
func TestShouldRunOuterEffectFirst(t *testing.T) {
	rs := alien.CreateReactiveSystem(func(from alien.SignalAware, err error) {
		assert.FailNow(t, err.Error())
	})
	a := alien.Signal(rs, 1)
	b := alien.Signal(rs, 1)

	alien.Effect(rs, func() error {
		if a.Value() != 0 {
			alien.Effect(rs, func() error {
				b.Value()
				if a.Value() == 0 {
					assert.Fail(t, "inner effect ran after the outer dropped it")
				}
				return nil
			})
		}
		return nil
	})

	rs.StartBatch()
	a.SetValue(0)
	b.SetValue(0)
	rs.EndBatch()
}

// should not trigger inner effect when resolve maybe dirty
func TestShouldNotTriggerInnerEffectWhenResolveMaybeDirty(t *testing.T) {
	rs := alien.CreateReactiveSystem(func(from alien.SignalAware, err error) {
		assert.FailNow(t, err.Error())
	})
	a := alien.Signal(rs, 0)
	b := alien.Computed(rs, func(oldValue bool) bool {
		return a.Value()%2 == 0
	})

	innerTriggerTimes := 0

	alien.Effect(rs, func() error {
		alien.Effect(rs, func() error {
			b.Value()
			innerTriggerTimes++
			if innerTriggerTimes >= 2 {
				assert.Fail(t, "inner effect re-ran for an unchanged computed")
			}
			return nil
		})
		return nil
	})

	a.SetValue(2)
}

// effect errors route to the system's error callback
func TestEffectErrorRoutesToOnError(t *testing.T) {
	boom := errors.New("boom")

	var gotFrom alien.SignalAware
	var gotErr error
	rs := alien.CreateReactiveSystem(func(from alien.SignalAware, err error) {
		gotFrom = from
		gotErr = err
	})

	a := alien.Signal(rs, 1)
	alien.Effect(rs, func() error {
		if a.Value() == 2 {
			return boom
		}
		return nil
	})
	assert.Nil(t, gotErr)

	a.SetValue(2)
	assert.Equal(t, boom, gotErr)
	assert.NotNil(t, gotFrom)
}

// a stopped effect stays stopped even if its runner is still queued
func TestStopDuringBatch(t *testing.T) {
	rs := alien.CreateReactiveSystem(func(from alien.SignalAware, err error) {
		assert.FailNow(t, err.Error())
	})
	a := alien.Signal(rs, 1)

	runs := 0
	stop := alien.Effect(rs, func() error {
		a.Value()
		runs++
		return nil
	})
	assert.Equal(t, 1, runs)

	rs.StartBatch()
	a.SetValue(2) // queues the effect
	stop()
	rs.EndBatch()

	assert.Equal(t, 1, runs)
}
