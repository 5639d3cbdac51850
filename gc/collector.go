package gc

import "github.com/duskforge/triad/gclog"

// State names one of the five phases the collector's state machine cycles
// through: Pause, Propagate, Sweep, Destroy, Done, back to Pause.
type State int

const (
	StatePause State = iota
	StatePropagate
	StateSweep
	StateDestroy
	StateDone
)

// String renders the phase name, used by gcctl's text report.
func (s State) String() string {
	switch s {
	case StatePause:
		return "Pause"
	case StatePropagate:
		return "Propagate"
	case StateSweep:
		return "Sweep"
	case StateDestroy:
		return "Destroy"
	case StateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// MarkerFunc is an external root marker: a callback, handed the collector
// that invokes it, that knows how to reach the managed pointers it owns
// (globals, stacks, handler tables) and calls MarkRef/MarkSlice on each.
type MarkerFunc func(c *Collector)

// Collector bundles every piece of process-wide state the original design
// kept as package-level singletons (Root, Gray, SoftRoots, ToFinalize, the
// accountant counters, the state enum) into one explicit value, per the
// design note in spec.md §9. One process typically uses Default; tests
// construct a fresh Collector per case.
type Collector struct {
	opts Options

	state        State
	currentWhite Flags

	root     Object   // Root list sentinel; always Sentinel|Fixed
	sweepPos **Object // names the link field of the previous live node

	gray *Object // gray queue head

	softRoot Object // soft-root set sentinel (doubly linked via softPrev/softNext)

	markers []MarkerFunc

	toFinalize []*Object

	allocBytes     uintptr
	runningAlloc   uintptr
	runningDealloc uintptr
	threshold      uintptr

	cycle int // completed Pause->Pause cycles, tags gclog output
}

// NewCollector constructs a Collector with the given tunables. Unset
// (zero-value) Pause/StepMul fall back to DefaultPause/DefaultStepMul.
func NewCollector(opts Options) *Collector {
	opts = opts.withDefaults()
	c := &Collector{opts: opts, currentWhite: White0}
	c.root.flags = Sentinel | Fixed
	c.root.next = &c.root
	c.softRoot.flags = Sentinel | Fixed
	c.softRoot.softNext = &c.softRoot
	c.softRoot.softPrev = &c.softRoot
	c.sweepPos = &c.root.next
	return c
}

// Default is the package-level collector used by callers happy with the
// classic global-singleton behavior the original design exposed. Embedders
// that want a private instance (tests especially) should use NewCollector.
var Default = NewCollector(Options{})

// otherWhite returns the complement of the current "potentially dead" white
// value — the "known alive, just allocated mid-cycle" color.
func (c *Collector) otherWhite() Flags {
	return c.currentWhite ^ WhiteBits
}

// State reports the collector's current phase.
func (c *Collector) State() State { return c.state }

// FinalGCActive reports whether the collector is running its shutdown pass.
func (c *Collector) FinalGCActive() bool { return c.opts.FinalGC }

// AddMarkerFunc registers an external root marker. Registration is
// append-only; callbacks run in registration order on every root-marking
// pass. There is no de-registration, matching the original's design.
func (c *Collector) AddMarkerFunc(fn MarkerFunc) {
	c.markers = append(c.markers, fn)
}

// Spawn registers a freshly allocated managed object with the collector:
// it is inserted into the Root list, painted CurrentWhite while the collector
// is idle at Pause or OtherWhite while a cycle is in progress (so it survives
// that cycle), and its size is reported to the accountant.
// Spawn panics with ErrFinalGCAlloc if called during FinalGC, per the
// design decision that shutdown collection forbids new managed allocations.
func Spawn[T markableComparable](c *Collector, obj T) T {
	if c.opts.FinalGC {
		panic(ErrFinalGCAlloc)
	}
	base := obj.gcBase()
	base.self = obj

	// Objects born while the collector is idle take CurrentWhite: the next
	// cycle's root marking will discover and verify them normally, same as
	// anything else in the Root list. Objects born while a cycle is
	// already underway (Propagate through Done) take OtherWhite instead,
	// since root marking has already run or Sweep may already be walking
	// the list — CurrentWhite would make them indistinguishable from
	// genuine garbage before they ever had a chance to be reached.
	if c.state == StatePause {
		base.flags = (base.flags &^ MarkBits) | c.currentWhite
	} else {
		base.flags = (base.flags &^ MarkBits) | c.otherWhite()
	}
	base.size = obj.GCSize()

	base.next = c.root.next
	c.root.next = base

	c.ReportAlloc(base.size)
	return obj
}

// AddSoftRoot unconditionally pins o as reachable, regardless of whether
// any application pointer still references it, until DelSoftRoot is called.
func (c *Collector) AddSoftRoot(o *Object) {
	if o.flags&Rooted != 0 {
		return
	}
	o.flags |= Rooted
	o.softNext = c.softRoot.softNext
	o.softPrev = &c.softRoot
	c.softRoot.softNext.softPrev = o
	c.softRoot.softNext = o
}

// DelSoftRoot unpins o. Safe to call on an object that is not soft-rooted.
func (c *Collector) DelSoftRoot(o *Object) {
	if o.flags&Rooted == 0 {
		return
	}
	o.flags &^= Rooted
	o.softPrev.softNext = o.softNext
	o.softNext.softPrev = o.softPrev
	o.softNext, o.softPrev = nil, nil
}

// DelSoftRootHead tears down the soft-root set, for process teardown.
func (c *Collector) DelSoftRootHead() {
	for o := c.softRoot.softNext; o != &c.softRoot; {
		next := o.softNext
		o.flags &^= Rooted
		o.softNext, o.softPrev = nil, nil
		o = next
	}
	c.softRoot.softNext = &c.softRoot
	c.softRoot.softPrev = &c.softRoot
}

// ReleaseDirect is the escape hatch for application code that frees a
// managed object outside the collector's own Destroy path. It logs a
// warning unless o carries YesReallyDelete, per the error taxonomy in
// spec.md §7: barrier misuse and direct frees are warnings, never panics.
// It returns ErrAlreadyReleased if o has already been released (by either
// path), so callers that care can distinguish a no-op from a real free.
//
// Unlike the automatic Sweep/Destroy path, ReleaseDirect must find and
// unlink o from an arbitrary position in the Root list: there is no sweep
// cursor to alias here, so this is the one O(n) list walk in the package.
func (c *Collector) ReleaseDirect(o *Object) error {
	if o.flags&Released != 0 {
		return ErrAlreadyReleased
	}
	if o.flags&YesReallyDelete == 0 {
		gclog.Warn(ErrDirectFree.Error(), "ptr", o)
	}
	o.flags |= Released

	for p := &c.root.next; *p != &c.root; p = &(*p).next {
		if *p == o {
			*p = o.next
			o.next = nil
			break
		}
	}
	return nil
}

// pushGray adds o to the gray queue and clears its white bits; gray
// membership is recorded purely by queue presence, not a color bit.
func (c *Collector) pushGray(o *Object) {
	o.flags &^= WhiteBits
	o.grayNext = c.gray
	c.gray = o
}

// popGray removes and returns the gray queue's head, or nil if empty.
func (c *Collector) popGray() *Object {
	o := c.gray
	if o == nil {
		return nil
	}
	c.gray = o.grayNext
	o.grayNext = nil
	return o
}

// mark is the core primitive: grey obj if it is white of the current
// cycle's dead color. Released objects are ignored outright so re-entrant
// marking of an already-freed object is always safe.
func (c *Collector) mark(obj *Object) {
	if obj == nil || obj.flags&Released != 0 {
		return
	}
	if obj.flags&c.currentWhite == 0 {
		return
	}
	c.pushGray(obj)
}

// markRoots runs every registered marker callback and marks every
// soft-rooted object. The registry sentinel is never touched here: it
// always carries Sentinel|Fixed and is simply skipped by Sweep.
func (c *Collector) markRoots() {
	for _, fn := range c.markers {
		fn(c)
	}
	for o := c.softRoot.softNext; o != &c.softRoot; o = o.softNext {
		c.mark(o)
	}
}

// drainGray fully empties the gray queue, scanning every object it holds.
// Used for the atomic re-mark between Propagate and Sweep, where the
// remaining work is assumed small enough to do without a budget.
func (c *Collector) drainGray() {
	for o := c.popGray(); o != nil; o = c.popGray() {
		c.scan(o)
	}
}

// scan invokes o's mark operation and paints it black. An object that was
// released directly (ReleaseDirect) while still sitting in the gray queue
// is skipped rather than scanned.
func (c *Collector) scan(o *Object) {
	if o.flags&Released != 0 {
		return
	}
	if o.self != nil {
		o.self.GCMark(c)
	}
	o.flags = (o.flags &^ MarkBits) | Black
}

// stepBudget computes this step's unit budget from allocation since the
// last step, per spec.md §4.5, and resets the running counters.
func (c *Collector) stepBudget() int {
	budget := int(c.runningAlloc) * c.opts.StepMul / 100
	c.runningAlloc = 0
	c.runningDealloc = 0
	if budget < 1 {
		budget = 1
	}
	return budget
}

// Step performs one bounded unit of incremental collector work, advancing
// the state machine as far as the computed budget allows. Phase
// transitions themselves (Pause→Propagate, the atomic re-mark into Sweep,
// Sweep→Destroy, the white flip into Done, Done→Pause) are free and do not
// consume budget.
func (c *Collector) Step() {
	if c.state == StatePause {
		c.markRoots()
		c.state = StatePropagate
		gclog.WithCycle(c.cycle).Debug("gc phase", "state", c.state)
	}

	budget := c.stepBudget()
	for budget > 0 {
		switch c.state {
		case StatePropagate:
			o := c.popGray()
			if o == nil {
				// Atomic re-mark: a soft root or marker callback may have
				// reached new objects since the last drain without the
				// write barrier ever seeing a black pointer to grey, so
				// roots must be walked again before Sweep, not just the
				// leftover gray queue.
				c.markRoots()
				c.drainGray()
				c.sweepPos = &c.root.next
				c.state = StateSweep
				gclog.WithCycle(c.cycle).Debug("gc phase", "state", c.state)
				continue
			}
			c.scan(o)
			budget--

		case StateSweep:
			if c.sweepOne() {
				c.state = StateDestroy
				gclog.WithCycle(c.cycle).Debug("gc phase", "state", c.state)
				continue
			}
			budget--

		case StateDestroy:
			if len(c.toFinalize) == 0 {
				c.currentWhite = c.otherWhite()
				c.state = StateDone
				gclog.WithCycle(c.cycle).Debug("gc phase", "state", c.state)
				continue
			}
			c.destroyOne()
			budget--

		case StateDone:
			c.threshold = c.allocBytes * uintptr(100+c.opts.Pause) / 100
			c.state = StatePause
			c.cycle++
			gclog.WithCycle(c.cycle).Debug("gc cycle complete",
				"threshold", c.threshold, "liveBytes", c.allocBytes)
			return

		case StatePause:
			return
		}
	}
}

// sweepOne advances the sweep cursor by exactly one candidate, returning
// true once the cursor has reached the registry sentinel (Sweep complete).
//
// sweepPos names the link field of the previous live node rather than a
// node itself: unlinking a dead node is *c.sweepPos = node.next, with no
// predecessor scan, and the aliasing survives list reshaping from
// concurrent Spawn calls landing at the head.
//
// Survivors are repainted to otherWhite, not currentWhite: this is what
// makes the flip at the end of Destroy line their color up with next
// cycle's currentWhite, so root marking finds and re-verifies them again
// instead of treating them as permanently known-alive.
func (c *Collector) sweepOne() bool {
	node := *c.sweepPos
	if node == &c.root {
		return true
	}

	switch {
	case !c.opts.FinalGC && node.flags&Fixed != 0:
		node.flags = (node.flags &^ MarkBits) | c.otherWhite()
		c.sweepPos = &node.next

	case node.flags&Euthanize == 0 && node.flags&Black != 0:
		node.flags = (node.flags &^ MarkBits) | c.otherWhite()
		c.sweepPos = &node.next

	case node.flags&Euthanize == 0 && node.flags&c.otherWhite() != 0:
		node.flags = (node.flags &^ MarkBits) | c.otherWhite()
		c.sweepPos = &node.next

	default: // CurrentWhite, Euthanize, or Fixed-but-FinalGC: dead
		*c.sweepPos = node.next
		node.next = nil
		node.flags |= Euthanize | Cleanup
		c.toFinalize = append(c.toFinalize, node)
	}
	return false
}

// destroyOne runs the finalizer for the next object on the to-finalize
// list, releases it, and reports its size freed to the accountant.
func (c *Collector) destroyOne() {
	o := c.toFinalize[0]
	c.toFinalize = c.toFinalize[1:]

	if o.self != nil {
		o.self.GCDestroy()
	}
	o.flags = (o.flags &^ Cleanup) | Released
	o.self = nil
	c.ReportDealloc(o.size)
}

// FullGC drives Step in a loop until the state machine completes one full
// Pause→Pause cycle.
func (c *Collector) FullGC() {
	c.StartCollection()
	c.Step()
	for c.state != StatePause {
		c.Step()
	}
}

// FinalGC runs FullGC with Fixed objects made collectible, for program
// shutdown. New managed allocations (Spawn) are forbidden while it is
// active; the flag remains set afterward, since a process that has run its
// final collection is not expected to allocate more managed objects.
func (c *Collector) FinalGC() {
	c.opts.FinalGC = true
	c.FullGC()
}
