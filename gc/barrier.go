package gc

// WriteBarrier must be called whenever a managed pointer field inside a
// managed object (pointing) is overwritten to reference pointed. It repairs
// the tri-color invariant: a black object pointing at a currently-white one
// would let the collector sweep the referent out from under a live
// reference. The remediation used is chosen by the collector's current
// phase, not by the caller — callers invoke this unconditionally on every
// write and let it short-circuit itself.
func (c *Collector) WriteBarrier(pointing, pointed *Object) {
	if pointed == nil || pointed.flags&Released != 0 {
		return
	}
	if pointing == nil || pointing.flags&Cleanup != 0 || pointing.flags&(Black|Fixed) == 0 {
		return
	}
	if pointed.flags&c.currentWhite == 0 {
		return
	}

	if c.state == StateSweep {
		// The gray queue is no longer drained once Sweep starts; greying
		// pointed here would leak it, since nothing will ever pop it.
		// Repaint pointing instead so a future cycle re-scans it.
		pointing.flags = (pointing.flags &^ MarkBits) | c.otherWhite()
		return
	}
	c.pushGray(pointed)
}

// WriteBarrierRoot is the rootless write barrier form, used when the
// location being written is not itself a managed object: a package-level
// variable, a slice element, a stack slot reached only via a marker
// callback. It always greys pointed if white, as if a black root had just
// started pointing at it — there is no "pointing" object to repaint.
func (c *Collector) WriteBarrierRoot(pointed *Object) {
	if pointed == nil || pointed.flags&Released != 0 {
		return
	}
	if pointed.flags&c.currentWhite == 0 {
		return
	}
	c.pushGray(pointed)
}

// ReadBarrier implements the weak-reference semantics applied to every read
// of a managed pointer: a euthanize-flagged referent reads back as absent.
// ReadBarrier reports only whether ref should be treated as null; callers
// that can clear their own storage (see ObjPtr.Get) do so themselves.
func ReadBarrier(ref *Object) bool {
	return ref != nil && ref.flags&Euthanize != 0
}

// ObjPtr is a trivially copyable smart pointer wrapping a raw managed
// reference, routing every dereference through the read barrier. It adds no
// hidden state beyond the one field it wraps, so it remains safe to embed
// in objects that are otherwise bitwise-movable; it has no constructor or
// destructor to run.
type ObjPtr[T markableComparable] struct {
	ref T
}

// Assign stores v directly, bypassing any barrier: assignment itself is not
// a dereference, so nothing needs to be nulled or greyed here. Callers
// storing a reference *inside a managed object* still owe the collector a
// WriteBarrier call separately, since Assign has no access to the owning
// object's Object.
func (p *ObjPtr[T]) Assign(v T) { p.ref = v }

// Get dereferences p through the read barrier: a euthanize-flagged referent
// reads back as the zero value, and the slot itself is cleared so the next
// Get is just as cheap and every subsequent read is deterministically null
// (L3: read-barrier determinism).
func (p *ObjPtr[T]) Get() T {
	var zero T
	if p.ref == zero {
		return zero
	}
	if ReadBarrier(p.ref.gcBase()) {
		p.ref = zero
		return zero
	}
	return p.ref
}

// ForceGet returns the raw referent without applying the read barrier, for
// debug inspection and serialization where a euthanize-pending reference
// still needs to be visible.
func (p *ObjPtr[T]) ForceGet() T { return p.ref }

// Raw returns the underlying reference uninterpreted, for equality checks
// against another ObjPtr or a bare reference — per spec, comparison is
// always against the raw pointer, not barrier-filtered, so equality
// survives euthanize.
func (p *ObjPtr[T]) Raw() T { return p.ref }

// IsNil reports whether p currently wraps the zero value.
func (p *ObjPtr[T]) IsNil() bool {
	var zero T
	return p.ref == zero
}

// Equal compares two ObjPtr values by raw reference.
func (p *ObjPtr[T]) Equal(other *ObjPtr[T]) bool { return p.ref == other.ref }

// Mark enumerates p as an outgoing reference during GCMark: if the target
// is still live it is greyed (or ignored if euthanize/released/black), same
// as MarkRef. Object types with ObjPtr fields call this directly from their
// GCMark method instead of unwrapping the pointer by hand.
func (p *ObjPtr[T]) Mark(c *Collector) {
	var zero T
	if p.ref == zero {
		return
	}
	base := p.ref.gcBase()
	if base.flags&Euthanize != 0 {
		p.ref = zero
		return
	}
	c.mark(base)
}

// MarkRef marks the single managed reference held in slot, nulling it out
// first if the referent has been flagged euthanize — mirroring the
// original design's Mark(slot) helper for object fields that hold a raw
// reference rather than an ObjPtr.
func MarkRef[T markableComparable](c *Collector, slot *T) {
	var zero T
	if *slot == zero {
		return
	}
	base := (*slot).gcBase()
	if base.flags&Euthanize != 0 {
		*slot = zero
		return
	}
	c.mark(base)
}

// MarkSlice marks every managed reference held in s, in place, applying the
// same euthanize-nulling behavior as MarkRef to each element.
func MarkSlice[T markableComparable](c *Collector, s []T) {
	var zero T
	for i := range s {
		if s[i] == zero {
			continue
		}
		base := s[i].gcBase()
		if base.flags&Euthanize != 0 {
			s[i] = zero
			continue
		}
		c.mark(base)
	}
}
