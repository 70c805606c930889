// Package client is the transport side of the mirror: the Gateway contract
// the services call, its HTTP implementation, and the bootstrap of the local
// SQLite database that keeps durable client state.
//
// # Error Handling
//
// Gateway calls fail with errors matching one of the sentinels via errors.Is:
// ErrUnavailable (network, 429, 5xx), ErrUnauthorized (401/403),
// ErrRejected (success=false envelope or another non-2xx status) and
// ErrDecode (a body that is not an envelope). HTTPGateway additionally
// reports every failure to its notify.Notifier, which is how the user learns
// about transport errors; the services above it only see a failed call.
//
// # Concurrency
//
// HTTPGateway is safe for concurrent use. Cancellation and deadlines come from
// the context passed to each call.
package client
