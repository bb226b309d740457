package alien

import (
	"fmt"

	"github.com/petermattis/goid"
)

type OnErrorFunc func(from SignalAware, err error)

// SignalAware is implemented by everything the engine can hand back to user
// code: signals, computeds and effect runners.
type SignalAware interface {
	isSignalAware()
}

// PropagationMode selects how dirtiness spreads from a mutated dependency.
// Fast is an optimistic single pass that may over-dirty effect-rooted
// branches; Strict classifies those branches as side-effects-only at a
// slightly higher traversal cost. Both produce the same recompute and
// notify outcomes.
type PropagationMode uint8

const (
	PropagateFast PropagationMode = iota
	PropagateStrict
)

type pausedContext struct {
	depsSub    subscriber
	effectsSub subscriber
}

// ReactiveSystem owns one reactive graph: the active tracking contexts, the
// session-version counter, the link pool, the batch depth and the pending
// effect queue. All state is instance-scoped so independent graphs can
// coexist; a single system must stay confined to one goroutine.
type ReactiveSystem struct {
	activeDepsSub    subscriber
	activeEffectsSub subscriber
	depsDepth        int
	effectsDepth     int

	lastVersion int
	batchDepth  int
	mode        PropagationMode

	queuedEffects     *EffectRunner
	queuedEffectsTail *EffectRunner

	pool       linkPool
	pauseStack []pausedContext

	onError OnErrorFunc
	gid     int64
}

func CreateReactiveSystem(onError OnErrorFunc) *ReactiveSystem {
	return &ReactiveSystem{
		onError: onError,
		gid:     goid.Get(),
	}
}

// SetPropagationMode switches the propagation algorithm for all subsequent
// mutations on this system.
func (rs *ReactiveSystem) SetPropagationMode(mode PropagationMode) {
	rs.mode = mode
}

func (rs *ReactiveSystem) StartBatch() {
	rs.checkConfinement()
	rs.batchDepth++
}

func (rs *ReactiveSystem) EndBatch() {
	rs.batchDepth--
	if rs.batchDepth == 0 {
		rs.processEffectNotifications()
	}
}

func (rs *ReactiveSystem) Batch(cb func()) {
	rs.StartBatch()
	defer rs.EndBatch()
	cb()
}

// PauseTracking makes reads untracked until the matching ResumeTracking.
func (rs *ReactiveSystem) PauseTracking() {
	rs.pauseStack = append(rs.pauseStack, pausedContext{rs.activeDepsSub, rs.activeEffectsSub})
	rs.activeDepsSub = nil
	rs.activeEffectsSub = nil
}

func (rs *ReactiveSystem) ResumeTracking() {
	lastIdx := len(rs.pauseStack) - 1
	paused := rs.pauseStack[lastIdx]
	rs.pauseStack = rs.pauseStack[:lastIdx]
	rs.activeDepsSub = paused.depsSub
	rs.activeEffectsSub = paused.effectsSub
}

func (rs *ReactiveSystem) propagate(dep dependency) {
	if rs.mode == PropagateStrict {
		rs.propagateStrict(dep)
	} else {
		rs.propagateFast(dep)
	}
}

func (rs *ReactiveSystem) enqueueEffect(e *EffectRunner) {
	if rs.queuedEffectsTail != nil {
		rs.queuedEffectsTail.nextNotify = e
	} else {
		rs.queuedEffects = e
	}
	rs.queuedEffectsTail = e
}

// processEffectNotifications drains the pending queue in enqueue order.
// Effects notified here may propagate further and enqueue more effects;
// the loop runs until the queue is empty.
func (rs *ReactiveSystem) processEffectNotifications() {
	for rs.queuedEffects != nil {
		effect := rs.queuedEffects
		rs.queuedEffects = effect.nextNotify
		if rs.queuedEffects == nil {
			rs.queuedEffectsTail = nil
		}
		effect.nextNotify = nil
		effect.notify()
	}
}

// checkConfinement fail-fasts on cross-goroutine use. The graph has no
// locking; every mutation must come from the goroutine that created the
// system.
func (rs *ReactiveSystem) checkConfinement() {
	if gid := goid.Get(); gid != rs.gid {
		panic(fmt.Sprintf("alien: reactive system owned by goroutine %d used from goroutine %d", rs.gid, gid))
	}
}

// linkPool recycles edge records. Read-set churn across re-evaluations
// releases and re-mints links constantly; the free list keeps that
// allocation-free at steady state.
type linkPool struct {
	free []*link
}

func (p *linkPool) get(dep dependency, sub subscriber) *link {
	if n := len(p.free); n > 0 {
		l := p.free[n-1]
		p.free = p.free[:n-1]
		l.dep = dep
		l.sub = sub
		return l
	}
	return &link{dep: dep, sub: sub}
}

// put clears every field before pooling; a released link must never alias
// live graph state.
func (p *linkPool) put(l *link) {
	l.dep = nil
	l.sub = nil
	l.prevSub = nil
	l.nextSub = nil
	l.nextDep = nil
	p.free = append(p.free, l)
}
