package alien

// linkDepsSub records the active pull-style (computed) tracking context as a
// subscriber of dep. Returns false when no such context is active so callers
// can fall through to linkEffectsSub.
func (rs *ReactiveSystem) linkDepsSub(dep dependency) bool {
	if rs.depsDepth == 0 {
		return false
	}
	sub := rs.activeDepsSub
	if sub == nil {
		// Paused tracking.
		return false
	}
	rs.linkTo(dep, sub)
	return true
}

// linkEffectsSub is the push-style twin for effect tracking contexts.
func (rs *ReactiveSystem) linkEffectsSub(dep dependency) bool {
	if rs.effectsDepth == 0 {
		return false
	}
	sub := rs.activeEffectsSub
	if sub == nil {
		return false
	}
	rs.linkTo(dep, sub)
	return true
}

func (rs *ReactiveSystem) linkTo(dep dependency, sub subscriber) {
	version := sub.trackVersion()
	if dep.subVersion() == version {
		// Already linked this session; repeat reads cost one comparison.
		return
	}
	dep.setSubVersion(version)

	depsTail := sub.depsTail()
	var old *link
	if depsTail != nil {
		old = depsTail.nextDep
	} else {
		old = sub.deps()
	}
	if old != nil && old.dep == dep {
		// Stable read order: the edge from the previous run is still in
		// place, just advance the tail over it.
		sub.setDepsTail(old)
		return
	}
	rs.linkNewDep(dep, sub, old, depsTail)
}

// linkNewDep splices a pooled link in front of nextDep in the subscriber's
// dependency list and appends it to the dependency's subscriber list.
func (rs *ReactiveSystem) linkNewDep(dep dependency, sub subscriber, nextDep, depsTail *link) {
	newLink := rs.pool.get(dep, sub)
	newLink.nextDep = nextDep

	if depsTail == nil {
		sub.setDeps(newLink)
	} else {
		depsTail.nextDep = newLink
	}

	if dep.subs() == nil {
		dep.setSubs(newLink)
	} else {
		oldTail := dep.subsTail()
		newLink.prevSub = oldTail
		oldTail.nextSub = newLink
	}

	sub.setDepsTail(newLink)
	dep.setSubsTail(newLink)
}
