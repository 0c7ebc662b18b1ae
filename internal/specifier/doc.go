// Package specifier implements SortSpecifier, a reactive container for a
// multi-field sort order.
//
// Reads register against injected reactive dependencies and writes notify
// them:
//
//   - Get depends on the whole value and re-runs on every change.
//   - Equals, EqualsField and EqualsDirection depend on one "does the
//     current order start with X" fact per distinct X. A change notifies
//     only the facts whose answer flipped.
//
// The per-X dependency table grows lazily with every distinct X queried
// and lives as long as the specifier. It is an instance-scoped cache, not
// a leak: forgetting an entry would lose notifications for observers
// still reading it. WithEqualsLimit logs a warning once the table grows
// past a size.
//
// A SortSpecifier is not safe for concurrent use. Drive it from a single
// goroutine, for instance the reactive.Tracker Run loop.
package specifier
