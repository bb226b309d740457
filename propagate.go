package alien

// propagateFrame is a saved resume point: continue at link with the given
// dirty level once the current subscriber list is exhausted. The explicit
// stack keeps propagation depth bounded by the heap, never the call stack.
type propagateFrame struct {
	link  *link
	level dirtyLevel
}

// propagateFast pushes dirtiness from a mutated dependency in a single
// optimistic pass. Direct subscribers of the root are unconditionally Dirty;
// every descended subscriber list is marked MaybeDirty, whether the branch
// hangs under a computed or an effect. Effects are queued on their first
// visit only (their level is still None at that point).
func (rs *ReactiveSystem) propagateFast(dep dependency) {
	var stack []propagateFrame
	level := dlDirty
	l := dep.subs()

	for {
		for l != nil {
			sub := l.sub
			if isTracking(sub) {
				l = l.nextSub
				continue
			}
			old := sub.dirty()
			if old < level {
				sub.setDirty(level)
			}
			if old == dlNone {
				if effect, ok := sub.(*EffectRunner); ok {
					rs.enqueueEffect(effect)
				}
				if subDep, ok := sub.(dependencyAndSubscriber); ok {
					if childSubs := subDep.subs(); childSubs != nil {
						if l.nextSub != nil {
							stack = append(stack, propagateFrame{l.nextSub, level})
						}
						l = childSubs
						level = dlMaybeDirty
						continue
					}
				}
			}
			l = l.nextSub
		}

		if len(stack) == 0 {
			return
		}
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		l = frame.link
		level = frame.level
	}
}

// propagateStrict visits the same subscribers as propagateFast but
// classifies branches precisely: a list descended under an effect only needs
// its side effects re-checked (SideEffectsOnly), while a list under a
// computed may need value recomputation (MaybeDirty). Unwinding a frame
// restores the exact level of the interrupted list, so root-level siblings
// still receive Dirty.
func (rs *ReactiveSystem) propagateStrict(dep dependency) {
	var stack []propagateFrame
	level := dlDirty
	l := dep.subs()

	for {
		for l != nil {
			sub := l.sub
			if isTracking(sub) {
				l = l.nextSub
				continue
			}
			old := sub.dirty()
			if old < level {
				sub.setDirty(level)
			}
			if old == dlNone {
				if effect, ok := sub.(*EffectRunner); ok {
					rs.enqueueEffect(effect)
				}
				if subDep, ok := sub.(dependencyAndSubscriber); ok {
					if childSubs := subDep.subs(); childSubs != nil {
						if l.nextSub != nil {
							stack = append(stack, propagateFrame{l.nextSub, level})
						}
						l = childSubs
						if _, isEffect := sub.(*EffectRunner); isEffect {
							level = dlSideEffectsOnly
						} else {
							level = dlMaybeDirty
						}
						continue
					}
				}
			}
			l = l.nextSub
		}

		if len(stack) == 0 {
			return
		}
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		l = frame.link
		level = frame.level
	}
}

// runInnerEffects notifies every still-pending effect in a dependency list.
// Used when a subscriber decided it does not need to re-run itself but owns
// inner effects that might.
func runInnerEffects(l *link) {
	for ; l != nil; l = l.nextDep {
		if inner, ok := l.dep.(*EffectRunner); ok {
			if inner._dirty != dlNone {
				inner.notify()
			}
		}
	}
}
