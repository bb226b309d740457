package alien

// startTrackDeps begins a tracked evaluation under the pull-style context
// (computed recomputes). The previous context is returned so nested
// evaluations restore it explicitly.
func (rs *ReactiveSystem) startTrackDeps(sub subscriber) (prevSub subscriber) {
	prevSub = rs.activeDepsSub
	rs.activeDepsSub = sub
	rs.depsDepth++
	rs.beginTracking(sub)
	return prevSub
}

func (rs *ReactiveSystem) endTrackDeps(sub subscriber, prevSub subscriber) {
	rs.depsDepth--
	rs.activeDepsSub = prevSub
	rs.finishTracking(sub)
}

// startTrackEffects is the push-style twin used by effect runs and scopes.
func (rs *ReactiveSystem) startTrackEffects(sub subscriber) (prevSub subscriber) {
	prevSub = rs.activeEffectsSub
	rs.activeEffectsSub = sub
	rs.effectsDepth++
	rs.beginTracking(sub)
	return prevSub
}

func (rs *ReactiveSystem) endTrackEffects(sub subscriber, prevSub subscriber) {
	rs.effectsDepth--
	rs.activeEffectsSub = prevSub
	rs.finishTracking(sub)
}

func (rs *ReactiveSystem) beginTracking(sub subscriber) {
	sub.setDepsTail(nil)
	rs.lastVersion++
	sub.setTrackVersion(rs.lastVersion)
}

// finishTracking reconciles the dependency list against what this run read:
// everything past depsTail belongs to the previous run only and is released.
// The subscriber leaves fully resolved.
func (rs *ReactiveSystem) finishTracking(sub subscriber) {
	depsTail := sub.depsTail()
	if depsTail != nil {
		if depsTail.nextDep != nil {
			rs.clearTrack(depsTail.nextDep)
			depsTail.nextDep = nil
		}
	} else if deps := sub.deps(); deps != nil {
		rs.clearTrack(deps)
		sub.setDeps(nil)
	}
	sub.setTrackVersion(0)
	sub.setDirty(dlNone)
}

// clearTrack releases a chain of dependency edges back to the pool. When an
// unlinked dependency is left with no subscribers and is itself a subscriber
// (a computed or an inner effect), it is marked Released and its own edges
// join the walk, so cleanup cascades through unobserved chains.
func (rs *ReactiveSystem) clearTrack(l *link) {
	for l != nil {
		dep := l.dep
		nextDep := l.nextDep
		nextSub := l.nextSub
		prevSub := l.prevSub

		if nextSub != nil {
			nextSub.prevSub = prevSub
		} else {
			dep.setSubsTail(prevSub)
		}

		if prevSub != nil {
			prevSub.nextSub = nextSub
		} else {
			dep.setSubs(nextSub)
		}

		rs.pool.put(l)

		if dep.subs() == nil {
			if depSub, ok := dep.(dependencyAndSubscriber); ok {
				depSub.setDirty(dlReleased)
				if depDeps := depSub.deps(); depDeps != nil {
					depSub.depsTail().nextDep = nextDep
					depSub.setDeps(nil)
					depSub.setDepsTail(nil)
					l = depDeps
					continue
				}
			}
		}
		l = nextDep
	}
}
