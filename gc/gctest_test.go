package gc_test

import "github.com/duskforge/triad/gc"

// fixture is the shared test object type embedding gc.Object, used across
// every test file in this package. It records how many times GCMark and
// GCDestroy ran and carries an optional outgoing reference so tests can
// build small reference graphs.
type fixture struct {
	gc.Object
	name string
	size uintptr

	ref *fixture

	markCount    int
	destroyCount int
}

func newFixture(c *gc.Collector, name string, size uintptr) *fixture {
	return gc.Spawn(c, &fixture{name: name, size: size})
}

func (f *fixture) GCMark(c *gc.Collector) {
	f.markCount++
	if f.ref != nil {
		gc.MarkRef(c, &f.ref)
	}
}

func (f *fixture) GCDestroy() { f.destroyCount++ }

func (f *fixture) GCSize() uintptr {
	if f.size == 0 {
		return 1
	}
	return f.size
}

func (f *fixture) GCReferences() []*gc.Object {
	if f.ref == nil {
		return nil
	}
	return []*gc.Object{&f.ref.Object}
}

// setRef assigns f.ref and drives the write barrier the way a managed
// object's setter method would, per the barrier contract: call
// unconditionally, on every mutation.
func setRef(c *gc.Collector, f *fixture, target *fixture) {
	f.ref = target
	var pointed *gc.Object
	if target != nil {
		pointed = &target.Object
	}
	c.WriteBarrier(&f.Object, pointed)
}
