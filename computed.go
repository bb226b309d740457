package alien

// ReadonlySignal is a lazily recomputed node: a dependency to whatever reads
// it and a subscriber of whatever it reads. It starts Dirty so the first
// read computes.
type ReadonlySignal[T comparable] struct {
	baseDependency
	baseSubscriber

	rs     *ReactiveSystem
	value  T
	getter func(oldValue T) T
}

func (s *ReadonlySignal[T]) isSignalAware() {}

func (s *ReadonlySignal[T]) Value() T {
	switch s._dirty {
	case dlMaybeDirty:
		s.rs.resolveMaybeDirty(s)
		if s._dirty == dlDirty {
			s.update()
		}
	case dlDirty, dlReleased:
		s.update()
	}
	if !s.rs.linkDepsSub(s) {
		s.rs.linkEffectsSub(s)
	}
	return s.value
}

// update re-evaluates the expression inside a fresh tracking session and
// propagates only when the value actually changed.
func (s *ReadonlySignal[T]) update() {
	prevSub := s.rs.startTrackDeps(s)
	oldValue := s.value
	newValue := s.getter(oldValue)
	s.rs.endTrackDeps(s, prevSub)

	if oldValue != newValue {
		s.value = newValue
		if s._subs != nil {
			s.rs.propagate(s)
		}
	}
}

func Computed[T comparable](rs *ReactiveSystem, getter func(oldValue T) T) *ReadonlySignal[T] {
	return &ReadonlySignal[T]{
		rs:     rs,
		getter: getter,
		baseSubscriber: baseSubscriber{
			_dirty: dlDirty,
		},
	}
}
