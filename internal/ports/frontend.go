package ports

// Frontend is a user-facing entry point that accepts messages for
// analysis and reports verdicts back (HTTP API, one-shot CLI).
type Frontend interface {
	// Start begins accepting requests. It returns once the frontend is
	// ready or has failed to come up.
	Start() error

	// Stop shuts the frontend down gracefully.
	Stop() error
}
