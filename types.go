package alien

// dirtyLevel orders how urgently a subscriber needs re-validation. Levels
// only ever move upward during propagation; only a successful resolution or
// a finished tracking session moves a subscriber back to dlNone.
type dirtyLevel uint8

const (
	dlNone dirtyLevel = iota
	dlSideEffectsOnly
	dlMaybeDirty
	dlDirty
	dlReleased
)

// link is a pooled edge joining one dependency to one subscriber. It sits in
// two lists at once: the dependency's subscriber list (prevSub/nextSub) and
// the subscriber's dependency list (nextDep).
type link struct {
	dep     dependency
	sub     subscriber
	prevSub *link
	nextSub *link
	nextDep *link
}

type dependency interface {
	subs() *link
	setSubs(*link)
	subsTail() *link
	setSubsTail(*link)
	subVersion() int
	setSubVersion(int)
}

type subscriber interface {
	deps() *link
	setDeps(*link)
	depsTail() *link
	setDepsTail(*link)
	dirty() dirtyLevel
	setDirty(dirtyLevel)
	trackVersion() int
	setTrackVersion(int)
}

// Computed nodes are both: they are read like a dependency and track reads
// like a subscriber.
type dependencyAndSubscriber interface {
	dependency
	subscriber
}

// updatable marks a dependency that can recompute itself (a computed node).
type updatable interface {
	dependencyAndSubscriber
	update()
}

type baseDependency struct {
	_subs       *link
	_subsTail   *link
	_subVersion int
}

func (d *baseDependency) subs() *link         { return d._subs }
func (d *baseDependency) setSubs(l *link)     { d._subs = l }
func (d *baseDependency) subsTail() *link     { return d._subsTail }
func (d *baseDependency) setSubsTail(l *link) { d._subsTail = l }
func (d *baseDependency) subVersion() int     { return d._subVersion }
func (d *baseDependency) setSubVersion(v int) { d._subVersion = v }

type baseSubscriber struct {
	_deps         *link
	_depsTail     *link
	_dirty        dirtyLevel
	_trackVersion int
}

func (s *baseSubscriber) deps() *link           { return s._deps }
func (s *baseSubscriber) setDeps(l *link)       { s._deps = l }
func (s *baseSubscriber) depsTail() *link       { return s._depsTail }
func (s *baseSubscriber) setDepsTail(l *link)   { s._depsTail = l }
func (s *baseSubscriber) dirty() dirtyLevel     { return s._dirty }
func (s *baseSubscriber) setDirty(d dirtyLevel) { s._dirty = d }
func (s *baseSubscriber) trackVersion() int     { return s._trackVersion }
func (s *baseSubscriber) setTrackVersion(v int) { s._trackVersion = v }

// isTracking reports whether sub is in the middle of a tracked evaluation.
// Mid-track subscribers are invisible to propagation.
func isTracking(sub subscriber) bool {
	return sub.trackVersion() != 0
}
