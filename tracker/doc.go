// Package tracker answers "is this instance currently registered?" against a
// service-discovery registry, without ever failing the caller.
//
// The Tracker performs one synchronous registry lookup per query, classifies
// the outcome (CONNECTED, DISCONNECTED, ERROR), and keeps two timestamps:
// the registration time, fixed at construction, and the last heartbeat,
// advanced whenever a query observes a successful registration. Transport
// failures never cross the tracker's boundary as errors; every accessor
// degrades to a sentinel value instead.
//
// ShutdownSequencer runs the one-shot best-effort deregistration when the
// host process stops.
package tracker
