package gc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskforge/triad/gc"
)

// Scenario 1 from the design notes: allocate A, B, C; A references B;
// soft-root A. FullGC. Survivors: {A, B}; C is destroyed and its size
// leaves AllocBytes.
func TestFullGC_SimpleCollection(t *testing.T) {
	c := gc.NewCollector(gc.Options{})

	a := newFixture(c, "a", 10)
	b := newFixture(c, "b", 20)
	cc := newFixture(c, "c", 30)
	setRef(c, a, b)
	c.AddSoftRoot(&a.Object)

	before := c.Snapshot().AllocBytes
	require.Equal(t, uintptr(60), before)

	c.FullGC()

	assert.False(t, a.IsReleased())
	assert.False(t, b.IsReleased())
	assert.True(t, cc.IsReleased())
	assert.Equal(t, 1, cc.destroyCount)
	assert.Equal(t, uintptr(30), c.Snapshot().AllocBytes)
	assert.Equal(t, gc.StatePause, c.State())
}

// Scenario 3: allocating mid-Propagate paints the new object OtherWhite so
// it survives the cycle already underway, then is swept the cycle after.
func TestMidCycleAllocation_SurvivesOneCycleThenIsCollected(t *testing.T) {
	c := gc.NewCollector(gc.Options{Pause: 1, StepMul: 1})

	root := newFixture(c, "root", 100)
	c.AddSoftRoot(&root.Object)
	c.StartCollection()
	c.Step() // Pause -> Propagate (marks roots)
	require.Equal(t, gc.StatePropagate, c.State())

	d := newFixture(c, "d", 5)
	assert.False(t, d.IsReleased())

	c.FullGC()
	assert.False(t, d.IsReleased(), "object allocated mid-cycle must survive that cycle")

	c.FullGC()
	assert.True(t, d.IsReleased(), "object with no roots must be collected the cycle after")
}

// Scenario 4: a Fixed object with no roots pointing to it survives
// repeated FullGC calls.
func TestFixedObject_SurvivesRepeatedFullGC(t *testing.T) {
	c := gc.NewCollector(gc.Options{})
	f := newFixture(c, "fixed", 16)
	f.SetFixed()

	for i := 0; i < 100; i++ {
		c.FullGC()
	}
	assert.False(t, f.IsReleased())
}

// Scenario 6: FinalGC collects everything, Fixed objects included.
func TestFinalGC_DestroysFixedObjectsToo(t *testing.T) {
	c := gc.NewCollector(gc.Options{})
	f := newFixture(c, "fixed", 16)
	f.SetFixed()
	plain := newFixture(c, "plain", 8)

	c.FinalGC()

	assert.True(t, f.IsReleased())
	assert.True(t, plain.IsReleased())
	assert.True(t, c.FinalGCActive())
}

func TestSpawn_AfterFinalGC_Panics(t *testing.T) {
	c := gc.NewCollector(gc.Options{})
	c.FinalGC()
	assert.Panics(t, func() { newFixture(c, "too-late", 1) })
}

func TestAddMarkerFunc_RunsInRegistrationOrder(t *testing.T) {
	c := gc.NewCollector(gc.Options{})
	a := newFixture(c, "a", 1)
	b := newFixture(c, "b", 1)

	var order []string
	c.AddMarkerFunc(func(c *gc.Collector) {
		order = append(order, "a")
		gc.MarkRef(c, &a)
	})
	c.AddMarkerFunc(func(c *gc.Collector) {
		order = append(order, "b")
		gc.MarkRef(c, &b)
	})

	c.FullGC()

	// One cycle marks roots twice (on leaving Pause, then the atomic re-mark
	// before Sweep), and each pass runs the markers in registration order.
	assert.Equal(t, []string{"a", "b", "a", "b"}, order)
	assert.False(t, a.IsReleased())
	assert.False(t, b.IsReleased())
}

func TestSoftRoot_DelSoftRootHead_ClearsEntireSet(t *testing.T) {
	c := gc.NewCollector(gc.Options{})
	a := newFixture(c, "a", 1)
	b := newFixture(c, "b", 1)
	c.AddSoftRoot(&a.Object)
	c.AddSoftRoot(&b.Object)

	c.DelSoftRootHead()

	assert.False(t, a.IsRooted())
	assert.False(t, b.IsRooted())

	c.FullGC()
	assert.True(t, a.IsReleased())
	assert.True(t, b.IsReleased())
}
