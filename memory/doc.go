// Package memory contains concrete SessionMemory implementations. The
// interface and the MemoryEntry type reside in the core package. Import
// github.com/capmesh/capmesh/core and depend on core.SessionMemory in your
// code; select an implementation (like the in-memory log below) at wiring
// time.
package memory
