// Package gc implements an incremental, tri-color, mark-and-sweep garbage
// collector for a population of heterogeneous managed objects belonging to
// a game engine's scripting/object runtime.
//
// # Overview
//
// The collector reclaims unreachable managed objects without pausing the
// host application for perceptible amounts of time, by interleaving small
// units of collector work with the application's normal execution. It is
// strictly single-threaded and cooperatively scheduled: the application and
// the collector share one thread, and the collector never yields mid-step.
//
// A managed object embeds Object and implements Markable. The collector
// tracks every live object in an intrusive registry (the "Root list"),
// discovers reachable objects through a gray queue, and sweeps unreachable
// ("white") objects between cycles.
//
// # Colors
//
// Every object carries exactly one of three colors at a time: white (one of
// two alternating values, White0/White1), gray (implicit: membership in the
// gray queue, not a flag bit), or black. At the start of a cycle the
// "current white" marks potentially-dead objects; its complement, "other
// white", marks objects known alive because they were allocated mid-cycle.
// Sweep repaints every survivor with the other white, and once Destroy has
// finished the collector flips which white value is current, so last
// cycle's "alive" white becomes next cycle's "dead" candidate and every
// survivor is re-verified by the next cycle's marking.
//
// # Phases
//
// The collector advances through five phases: Pause, Propagate, Sweep,
// Destroy, and Done, returning to Pause to complete a cycle. Step performs
// one bounded unit of this work; FullGC and FinalGC drive the state machine
// to completion of a cycle.
//
// # Barriers
//
// Mutating a managed pointer field must be followed by a WriteBarrier call,
// whether the field is a raw pointer or an ObjPtr (ObjPtr.Assign runs no
// barrier; the smart pointer only routes reads through ReadBarrier
// automatically), to preserve the invariant that a black object never
// directly references a white object of the current cycle's white value.
package gc
