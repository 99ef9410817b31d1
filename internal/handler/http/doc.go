// Package http implements the REST API of the files manager.
//
// It wires the chi router, decodes requests, resolves X-Token sessions and
// maps service errors onto status codes and {"error": "..."} bodies. Request
// tracing, access logging and request metrics are applied as middleware
// before a request reaches a handler.
package http
