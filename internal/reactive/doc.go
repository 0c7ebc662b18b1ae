// Package reactive provides the dependency primitive a sort specifier
// reports reads and writes to, and a small cooperative tracker that
// re-runs computations when the dependencies they read change.
//
// ARCHITECTURE:
//
// Producers hold a Dependency per fact they expose. A read calls Depend,
// which records the fact against the computation currently running (if
// any). A write calls Changed, which marks every recorded computation as
// invalidated. Nothing re-runs inside Changed: invalidated computations
// wait for the next Flush, which re-runs them in invalidation order until
// no computation is left invalidated.
//
// Producers only see the Dependency and Source interfaces, so any
// push-based or pull-based observer system can stand in for Tracker.
//
// Single-Writer Loop:
// A Tracker is not safe for concurrent use. Either drive it from one
// goroutine, or start Run and submit work from any goroutine through
// Enqueue. Run executes submitted operations one at a time and flushes
// after each of them.
//
// Termination:
// A computation that invalidates itself (directly or through another
// computation) would re-run forever. Flush gives up after a fixed number
// of re-runs and returns a FlushError.
package reactive
