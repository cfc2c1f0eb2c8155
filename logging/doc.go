// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. It also offers a richer CapMeshLogger with contextual
// helpers (component, session, request) and domain specific helpers for
// capability and model calls.
package logging
