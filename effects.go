package alien

type ErrFn func() error

// EffectRunner is the subscriber behind Effect and EffectScope. It is also a
// dependency: an effect created inside another effect (or a scope) links
// itself into the parent's dependency list, which is what lets a parent
// re-run or a cascade release dispose of it.
type EffectRunner struct {
	baseDependency
	baseSubscriber

	rs         *ReactiveSystem
	fn         ErrFn
	nextNotify *EffectRunner
}

func (e *EffectRunner) isSignalAware() {}

// Effect runs fn immediately, re-runs it whenever a dependency it read
// changes, and returns a stop function that releases all of its edges.
func Effect(rs *ReactiveSystem, fn ErrFn) ErrFn {
	rs.checkConfinement()
	e := &EffectRunner{rs: rs, fn: fn}
	if !rs.linkDepsSub(e) {
		rs.linkEffectsSub(e)
	}
	e.run()
	return func() error {
		e.stop()
		return nil
	}
}

// EffectScope collects the effects created inside scopedFn without tracking
// its own reads through a body re-run; stopping the scope disposes them.
func EffectScope(rs *ReactiveSystem, scopedFn ErrFn) (stopScope ErrFn) {
	rs.checkConfinement()
	e := &EffectRunner{rs: rs}
	if !rs.linkDepsSub(e) {
		rs.linkEffectsSub(e)
	}
	prevSub := rs.startTrackEffects(e)
	if err := scopedFn(); err != nil && rs.onError != nil {
		rs.onError(e, err)
	}
	rs.endTrackEffects(e, prevSub)
	return func() error {
		e.stop()
		return nil
	}
}

func (e *EffectRunner) run() {
	prevSub := e.rs.startTrackEffects(e)
	err := e.fn()
	e.rs.endTrackEffects(e, prevSub)
	if err != nil && e.rs.onError != nil {
		e.rs.onError(e, err)
	}
}

// notify is the drain-time dispatch on the dirty level the propagation
// phase left behind. SideEffectsOnly means only inner effects can need
// work; MaybeDirty is settled through lazy resolution before deciding.
func (e *EffectRunner) notify() {
	level := e._dirty
	if level == dlReleased {
		return
	}
	if e.fn == nil {
		// Scope: nothing of its own to re-run.
		e._dirty = dlNone
		runInnerEffects(e.deps())
		return
	}
	if level == dlSideEffectsOnly {
		e._dirty = dlNone
		runInnerEffects(e.deps())
		return
	}
	if level == dlMaybeDirty {
		e.rs.resolveMaybeDirty(e)
		level = e._dirty
	}
	if level == dlDirty {
		e.run()
	} else {
		runInnerEffects(e.deps())
	}
}

// stop releases every dependency edge by closing an empty tracking session,
// cascading through inner effects, and marks the runner Released so a stale
// queue entry or parent notification becomes a no-op.
func (e *EffectRunner) stop() {
	prevSub := e.rs.startTrackEffects(e)
	e.rs.endTrackEffects(e, prevSub)
	e._dirty = dlReleased
}
