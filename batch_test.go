package alien_test

import (
	"testing"

	alien "github.com/zhangmo8/alien-signals"
	"github.com/stretchr/testify/assert"
)

// two mutations of the same source inside one batch notify once
func TestBatchCoalescesSameSource(t *testing.T) {
	rs := alien.CreateReactiveSystem(func(from alien.SignalAware, err error) {
		assert.FailNow(t, err.Error())
	})
	x := alien.Signal(rs, 1)

	var seen []int
	alien.Effect(rs, func() error {
		seen = append(seen, x.Value())
		return nil
	})
	assert.Equal(t, []int{1}, seen)

	rs.StartBatch()
	x.SetValue(2)
	x.SetValue(3)
	rs.EndBatch()

	assert.Equal(t, []int{1, 3}, seen)
}

// nested batches defer until the outermost one ends
func TestNestedBatches(t *testing.T) {
	rs := alien.CreateReactiveSystem(func(from alien.SignalAware, err error) {
		assert.FailNow(t, err.Error())
	})
	x := alien.Signal(rs, 1)
	y := alien.Signal(rs, 1)

	runs := 0
	alien.Effect(rs, func() error {
		x.Value()
		y.Value()
		runs++
		return nil
	})
	assert.Equal(t, 1, runs)

	rs.StartBatch()
	x.SetValue(2)
	rs.StartBatch()
	y.SetValue(2)
	rs.EndBatch()
	assert.Equal(t, 1, runs, "inner EndBatch must not drain")
	rs.EndBatch()
	assert.Equal(t, 2, runs)
}

// Batch is sugar over StartBatch/EndBatch
func TestBatchHelper(t *testing.T) {
	rs := alien.CreateReactiveSystem(func(from alien.SignalAware, err error) {
		assert.FailNow(t, err.Error())
	})
	x := alien.Signal(rs, 1)
	y := alien.Signal(rs, 10)

	var sums []int
	sum := alien.Computed(rs, func(oldValue int) int {
		return x.Value() + y.Value()
	})
	alien.Effect(rs, func() error {
		sums = append(sums, sum.Value())
		return nil
	})

	rs.Batch(func() {
		x.SetValue(2)
		y.SetValue(20)
	})

	assert.Equal(t, []int{11, 22}, sums)
}

// effects queued by an effect run in the same drain
func TestEffectWriteDuringDrain(t *testing.T) {
	rs := alien.CreateReactiveSystem(func(from alien.SignalAware, err error) {
		assert.FailNow(t, err.Error())
	})
	a := alien.Signal(rs, 1)
	b := alien.Signal(rs, 0)

	var order []string
	alien.Effect(rs, func() error {
		order = append(order, "first")
		b.SetValue(a.Value() * 10)
		return nil
	})
	alien.Effect(rs, func() error {
		b.Value()
		order = append(order, "second")
		return nil
	})

	order = nil
	a.SetValue(2)
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 20, b.Value())
}
