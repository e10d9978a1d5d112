// Package registry provides an append-only, ordered registry of values.
//
// The compiler keeps one process-wide registry of every workflow and task
// entity defined in the process, appended at definition time and read at
// registration-export time. Entries are never removed, and the append order
// is the definition order.
//
// # Basic Usage
//
//	r := registry.New[string]()
//	r.Append("first")
//	r.Append("second")
//
//	r.Range(func(i int, v string) bool {
//	    fmt.Println(i, v)
//	    return true // continue iteration
//	})
//
// # Thread Safety
//
// All methods are safe for concurrent use. Appends from independent
// goroutines are serialized; Snapshot and Range work on a copy, so
// appends during iteration do not affect the iteration itself.
package registry
