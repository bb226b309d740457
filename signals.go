package alien

type WriteableSignal[T comparable] struct {
	baseDependency
	rs    *ReactiveSystem
	value T
}

func (s *WriteableSignal[T]) isSignalAware() {}

func (s *WriteableSignal[T]) Value() T {
	if !s.rs.linkDepsSub(s) {
		s.rs.linkEffectsSub(s)
	}
	return s.value
}

func (s *WriteableSignal[T]) SetValue(v T) {
	if s.value == v {
		return
	}
	s.rs.checkConfinement()
	s.value = v
	if s._subs != nil {
		s.rs.propagate(s)
		if s.rs.batchDepth == 0 {
			s.rs.processEffectNotifications()
		}
	}
}

func Signal[T comparable](rs *ReactiveSystem, initialValue T) *WriteableSignal[T] {
	return &WriteableSignal[T]{
		rs:    rs,
		value: initialValue,
	}
}
