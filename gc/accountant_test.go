package gc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duskforge/triad/gc"
)

func TestAccountant_ReportAllocAndDealloc(t *testing.T) {
	c := gc.NewCollector(gc.Options{})

	c.ReportAlloc(100)
	assert.Equal(t, uintptr(100), c.Snapshot().AllocBytes)

	c.ReportDealloc(40)
	assert.Equal(t, uintptr(60), c.Snapshot().AllocBytes)
}

func TestAccountant_ReportReallocGrowAndShrink(t *testing.T) {
	c := gc.NewCollector(gc.Options{})
	c.ReportAlloc(10)

	c.ReportRealloc(10, 50)
	assert.Equal(t, uintptr(50), c.Snapshot().AllocBytes)

	c.ReportRealloc(50, 5)
	assert.Equal(t, uintptr(5), c.Snapshot().AllocBytes)
}

func TestAccountant_CheckGCDispatchesStepPastThreshold(t *testing.T) {
	c := gc.NewCollector(gc.Options{Pause: 1, StepMul: 1})
	a := newFixture(c, "a", 1)
	c.AddSoftRoot(&a.Object)

	snap := c.Snapshot()
	assert.Equal(t, gc.StatePause, snap.State)

	c.StartCollection() // threshold := AllocBytes, so the next CheckGC fires
	c.ReportAlloc(1)
	c.CheckGC()

	assert.NotEqual(t, gc.StatePause, c.Snapshot().State)
}

// Invariant I3: AllocBytes tracks the sum of reported sizes of live objects.
func TestAccountant_I3HoldsAcrossACompleteCycle(t *testing.T) {
	c := gc.NewCollector(gc.Options{})
	a := newFixture(c, "a", 10)
	b := newFixture(c, "b", 20)
	newFixture(c, "c", 30) // never referenced, collected
	setRef(c, a, b)
	c.AddSoftRoot(&a.Object)

	c.FullGC()

	for _, v := range gc.Walk(c) {
		assert.NotEqual(t, "I3", v.Invariant, v.Message)
	}
	assert.Equal(t, uintptr(30), c.Snapshot().AllocBytes)
}
