package server

// Server is the lifecycle of the API process.
type Server interface {
	// RunServer serves requests until SIGTERM, SIGINT or SIGQUIT is
	// received, then shuts down gracefully.
	RunServer() error

	// Shutdown stops accepting connections and waits for in-flight requests.
	Shutdown()
}
