// Package cell provides a generational arena with scoped, checked access.
//
// An [Arena] owns values of a single type and hands out lightweight [Handle]s.
// A handle stays cheap to copy and safe to hold across frames: once the value
// is removed, the slot's generation advances and every outstanding handle to
// it goes stale. Using a stale handle with [Arena.With] panics; [Arena.TryWith]
// reports it instead.
//
// Access is scoped. [Arena.With] lends the value to a callback and marks the
// slot borrowed for the duration, so a nested access to the same value from
// inside the callback panics with the file:line of the borrow already held.
// That turns silent aliasing bugs in reentrant UI code into loud, attributable
// failures.
//
// Arenas are not safe for concurrent use.
package cell
