package alien

// resolveFrame saves where to resume in a parent subscriber's dependency
// list after a MaybeDirty computed dependency has been resolved.
type resolveFrame struct {
	sub  subscriber
	link *link
}

// resolveMaybeDirty decides whether a MaybeDirty subscriber truly needs
// recomputation by settling its dependencies first, depth-first and without
// native recursion. A Dirty computed dependency is updated on the spot; if
// that update's propagation pushes the current subscriber to Dirty, the scan
// stops early. A dependency list exhausted without going Dirty resolves the
// subscriber clean. Unwinding invokes update on every computed frame that
// ended up Dirty, so each node recomputes at most once per resolution pass.
func (rs *ReactiveSystem) resolveMaybeDirty(sub subscriber) {
	var stack []resolveFrame
	l := sub.deps()

	for {
	scan:
		for l != nil {
			if dep, ok := l.dep.(updatable); ok {
				switch dep.dirty() {
				case dlMaybeDirty:
					stack = append(stack, resolveFrame{sub, l})
					sub = dep
					l = dep.deps()
					continue scan
				case dlDirty:
					dep.update()
					if sub.dirty() == dlDirty {
						break scan
					}
				}
			}
			l = l.nextDep
		}

		level := sub.dirty()
		if level == dlMaybeDirty {
			sub.setDirty(dlNone)
		}

		if len(stack) == 0 {
			return
		}
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if level == dlDirty {
			// Only computeds are ever descended into.
			sub.(updatable).update()
		}
		sub = frame.sub
		l = frame.link.nextDep
	}
}
