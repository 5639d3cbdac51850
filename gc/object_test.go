package gc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskforge/triad/gc"
)

func TestSpawn_InsertsIntoRootListAndReportsSize(t *testing.T) {
	c := gc.NewCollector(gc.Options{})

	f := newFixture(c, "a", 8)

	require.NotNil(t, f)
	assert.Equal(t, uintptr(8), c.Snapshot().AllocBytes)
}

func TestSpawn_PanicsDuringFinalGC(t *testing.T) {
	c := gc.NewCollector(gc.Options{})
	c.FinalGC()

	assert.PanicsWithValue(t, gc.ErrFinalGCAlloc, func() {
		newFixture(c, "late", 1)
	})
}

func TestObject_ColorAndFlagAccessors(t *testing.T) {
	c := gc.NewCollector(gc.Options{})
	f := newFixture(c, "a", 1)

	assert.False(t, f.IsFixed())
	f.SetFixed()
	assert.True(t, f.IsFixed())

	assert.False(t, f.IsRooted())
	c.AddSoftRoot(&f.Object)
	assert.True(t, f.IsRooted())
	c.DelSoftRoot(&f.Object)
	assert.False(t, f.IsRooted())

	assert.False(t, f.IsEuthanize())
	f.MarkEuthanize()
	assert.True(t, f.IsEuthanize())
}

func TestObject_FreshlySpawnedObjectIsNeitherGrayNorBlack(t *testing.T) {
	c := gc.NewCollector(gc.Options{})
	f := newFixture(c, "a", 1)

	assert.False(t, f.IsGray())
	assert.NotEqual(t, gc.Flags(0), f.Color())
}

func TestReleaseDirect_UnlinksFromRootListAndIgnoresDoubleRelease(t *testing.T) {
	c := gc.NewCollector(gc.Options{})
	f := newFixture(c, "a", 4)
	f.SetFixed() // YesReallyDelete not required to observe the unlink

	before := c.Snapshot().AllocBytes
	require.NoError(t, c.ReleaseDirect(&f.Object))
	assert.True(t, f.IsReleased())

	// Idempotent: a second call must not panic or re-walk into trouble, and
	// reports ErrAlreadyReleased instead of silently repeating the free.
	assert.ErrorIs(t, c.ReleaseDirect(&f.Object), gc.ErrAlreadyReleased)
	assert.True(t, f.IsReleased())

	// ReleaseDirect does not itself adjust the accountant (that is the
	// caller's job via ReportDealloc); confirm AllocBytes is unchanged.
	assert.Equal(t, before, c.Snapshot().AllocBytes)

	violations := gc.Walk(c)
	for _, v := range violations {
		assert.NotEqual(t, "I4", v.Invariant, v.Message)
	}
}
