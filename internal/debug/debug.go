// Package debug holds the single switch that turns on the engine's internal
// consistency checks (ring divisibility and mixed-valuation sums, tensor
// round-trips). Production code runs with Asserts == false and
// trusts its own construction: the public Resolve call returns a single fatal
// error, never a partial resolution, and never pays for assertions it
// doesn't need.
//
// Tests that want to exercise the assertions flip Asserts in TestMain.
package debug

// Asserts enables internal invariant checks in ring and graded. Never read
// concurrently with a write: set it once, in
// TestMain or an init-time flag, before running any resolution.
var Asserts = false
