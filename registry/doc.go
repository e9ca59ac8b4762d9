// Package registry defines the client-side capability for talking to an
// external service-discovery registry.
//
// It exposes a small Client interface that backends implement: look up the
// application record for a service name, fetch this process's own instance
// record, and deregister on shutdown. Transport failures are reported as
// *TransportError so callers can tell "registry unreachable" apart from
// "registry answered but holds no record" — the latter is a normal result,
// returned as a nil record with a nil error.
//
// # Backends
//
//   - registry/consul: HashiCorp Consul
//   - registry/static: in-memory records for development/testing
package registry
