package gc

// Flags is the per-object bitset carrying color and the orthogonal
// attributes the collector cares about. Grounded on EObjectFlags in
// dobjgc.h; renamed to drop the OF_ prefix since the flags live on a typed
// field rather than bare package constants.
type Flags uint32

const (
	// White0 and White1 are the two alternating "potentially dead" colors.
	White0 Flags = 1 << iota
	White1
	// Black marks an object that has been scanned this cycle.
	Black
	// Fixed objects are never collected, e.g. class metadata.
	Fixed
	// Rooted marks a soft-rooted (application-pinned) object.
	Rooted
	// Euthanize marks an object the application has requested die; the
	// read barrier nulls references to it.
	Euthanize
	// Cleanup marks an object whose finalizer the collector is currently
	// running, suppressing write-barrier recursion during that call.
	Cleanup
	// YesReallyDelete suppresses the direct-free warning for an object the
	// application is deliberately freeing outside the collector.
	YesReallyDelete
	// Sentinel marks the registry list head; invisible to all phases.
	Sentinel
	// Transient objects are not archived by the serializer.
	Transient
	// Released marks an object already removed from the registry; the
	// collector ignores it everywhere.
	Released
)

const (
	// WhiteBits is the mask of both white values.
	WhiteBits = White0 | White1
	// MarkBits is the mask of every color bit (white or black).
	MarkBits = WhiteBits | Black
)

// Markable is the capability set every managed object variant must
// implement: enumerate outgoing references, run a destructor, and report a
// byte size to the accountant. The unexported gcBase method is supplied by
// embedding Object, so only types that actually embed Object can satisfy
// this interface — it is the virtual dispatch table the collector uses in
// place of the original's class hierarchy.
type Markable interface {
	// GCMark enumerates this object's outgoing managed references by
	// calling Mark (directly, via MarkRef/MarkSlice, or via an embedded
	// ObjPtr's Mark method) on each of them.
	GCMark(c *Collector)
	// GCDestroy runs destructor-like cleanup. Called once, from Destroy,
	// before the object is handed back to the allocator.
	GCDestroy()
	// GCSize reports the object's byte size for accountant bookkeeping.
	GCSize() uintptr

	gcBase() *Object
}

// markableComparable additionally requires the concrete type to be
// comparable, which every genuine managed-object pointer type is. This lets
// ObjPtr and the Mark helpers compare a slot against its zero value instead
// of relying on nil-able type-parameter tricks.
type markableComparable interface {
	Markable
	comparable
}

// Object is the base contract every managed object embeds. It carries the
// color/attribute bitset and the two intrusive links the collector needs:
// next (the Root list) and grayNext (the gray queue). It must be embedded
// as a value, never a pointer, so the owning struct and its Object share an
// address and gcBase can hand back a stable pointer.
type Object struct {
	flags Flags
	size  uintptr
	self  Markable

	next     *Object // Root list link; only meaningful while registered
	grayNext *Object // gray queue link; nil when not queued

	softPrev, softNext *Object // soft-root set link
}

// gcBase implements the unexported half of Markable; every type embedding
// Object gets this promoted automatically.
func (o *Object) gcBase() *Object { return o }

// Flags returns the object's current attribute bitset.
func (o *Object) Flags() Flags { return o.flags }

// Color reports which of White0, White1, or Black the object currently
// carries. An object with none of those bits set is gray (queued, not yet
// scanned) — color reports the MarkBits masked value directly, so a gray
// object reports 0.
func (o *Object) Color() Flags { return o.flags & MarkBits }

// IsGray reports whether the object is currently queued for scanning.
func (o *Object) IsGray() bool { return o.flags&MarkBits == 0 }

// IsFixed reports whether the object is exempt from collection.
func (o *Object) IsFixed() bool { return o.flags&Fixed != 0 }

// IsRooted reports whether the object is currently soft-rooted.
func (o *Object) IsRooted() bool { return o.flags&Rooted != 0 }

// IsEuthanize reports whether the object has been marked to die.
func (o *Object) IsEuthanize() bool { return o.flags&Euthanize != 0 }

// IsReleased reports whether the object has already been removed from the
// registry and should be treated as invisible by all collector phases.
func (o *Object) IsReleased() bool { return o.flags&Released != 0 }

// SetFixed marks o as never-collected. Intended for objects born alongside
// process-lifetime data (class metadata, singletons).
func (o *Object) SetFixed() { o.flags |= Fixed }

// SetTransient marks o as excluded from serialization by the host's save
// system; the collector does not interpret this flag itself.
func (o *Object) SetTransient() { o.flags |= Transient }

// IsTransient reports the Transient flag.
func (o *Object) IsTransient() bool { return o.flags&Transient != 0 }

// MarkEuthanize requests that o be treated as dead from now on. The read
// barrier will null out references to it immediately; the collector
// reclaims it on the next sweep that visits it.
func (o *Object) MarkEuthanize() { o.flags |= Euthanize }
