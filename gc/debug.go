package gc

import "fmt"

// Violation describes a single invariant breach found by Walk. Grounded on
// the teacher's ValidationError: a typed category plus a human-readable
// message, no offset (this isn't a byte-addressed format).
type Violation struct {
	Invariant string
	Message   string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Invariant, v.Message)
}

// Walk checks live collector state against invariants I1-I4 from the design
// (I5, spanning multiple FullGC calls, is a property test concern rather
// than a single-snapshot walk). It is O(n) over the Root list and is meant
// for tests and the gcctl diagnostics command, never for a production hot
// path.
func Walk(c *Collector) []Violation {
	var violations []Violation

	seen := make(map[*Object]bool)
	for o := c.root.next; o != &c.root; o = o.next {
		// I4: no duplicates, no released objects.
		if seen[o] {
			violations = append(violations, Violation{
				Invariant: "I4",
				Message:   "duplicate entry in root list",
			})
			break
		}
		seen[o] = true

		if o.flags&Released != 0 {
			violations = append(violations, Violation{
				Invariant: "I4",
				Message:   "released object still present in root list",
			})
		}

		// I1 (only meaningful once a cycle has reached Propagate and
		// objects carry black): a black object's outgoing references
		// never point at CurrentWhite.
		if o.flags&Black != 0 && o.self != nil {
			for _, ref := range outgoing(o.self) {
				if ref == nil {
					continue
				}
				if ref.flags&c.currentWhite != 0 {
					violations = append(violations, Violation{
						Invariant: "I1",
						Message:   "black object references a current-white object",
					})
				}
			}
		}
	}

	// I2: after FullGC, the whole root list is CurrentWhite and gray is empty.
	if c.state == StatePause {
		if c.gray != nil {
			violations = append(violations, Violation{
				Invariant: "I2",
				Message:   "gray queue non-empty while collector is paused",
			})
		}
		for o := c.root.next; o != &c.root; o = o.next {
			if o.flags&c.currentWhite == 0 {
				violations = append(violations, Violation{
					Invariant: "I2",
					Message:   "root list entry not painted current-white while paused",
				})
				break
			}
		}
	}

	// I3: AllocBytes equals the sum of reported sizes of all live objects.
	var sum uintptr
	for o := c.root.next; o != &c.root; o = o.next {
		sum += o.size
	}
	if sum != c.allocBytes {
		violations = append(violations, Violation{
			Invariant: "I3",
			Message:   fmt.Sprintf("AllocBytes (%d) does not match sum of live object sizes (%d)", c.allocBytes, sum),
		})
	}

	return violations
}

// ReferenceEnumerator is an optional capability a Markable type can
// implement so Walk can inspect its outgoing references without running
// GCMark (which would mutate collector state). Types that don't implement
// it are skipped by I1's check, same as they always were before this
// diagnostic existed.
type ReferenceEnumerator interface {
	GCReferences() []*Object
}

func outgoing(m Markable) []*Object {
	if re, ok := m.(ReferenceEnumerator); ok {
		return re.GCReferences()
	}
	return nil
}
