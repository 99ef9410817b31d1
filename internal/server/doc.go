// Package server runs the HTTP API server of the files manager.
//
// It covers startup, reacting to termination signals and graceful shutdown
// bounded by the configured timeout.
package server
