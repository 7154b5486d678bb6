/*
Package errs provides custom error types and application-level error code constants.

These error codes identify the failures the relay reports over HTTP, before a connection
has been upgraded to a WebSocket.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007

	// ErrUpgradeRequired indicates that a plain HTTP request reached the WebSocket endpoint.
	ErrUpgradeRequired = 1008
)

// 4xxx: Relay Availability Errors
const (
	// ErrRelayUnavailable indicates that the relay is shutting down and accepts no new connections.
	ErrRelayUnavailable = 4001
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
