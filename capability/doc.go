// Package capability implements the capability subsystem: the registry that
// holds the routable executable units and adapters for defining capabilities
// from plain Go functions. The Capability interface and Descriptor type live
// in the core package to centralize domain contracts; this package contains
// implementations only.
//
// The built-in echo and summarize capabilities exist for wiring checks and
// tests; real deployments register their own capabilities at construction
// time.
package capability
