// Package binding provides guarded bindings that fail fast on misuse.
//
// Go checks some binding rules statically (constant array indices, unused
// variables) and zero-initializes everything else. The types here restore
// the rules Go leaves to the programmer:
//
//   - Bounds: At rejects indices outside [0, len) with OUT_OF_BOUNDS, and
//     Checked turns a native index panic into the same fault.
//   - Mutability: Let bindings reject a second assignment with IMMUTABLE_ASSIGN.
//   - Ownership: Move invalidates the source; later reads yield USE_AFTER_MOVE.
//   - Definite assignment: Declare bindings reject reads before the first Set
//     with UNASSIGNED_READ.
//
// Every failure is a *Fault carrying a FaultCode, so callers match it with
// errors.As or the Is* helpers even after wrapping.
package binding
