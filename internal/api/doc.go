// Package api exposes the record service and analyzer over HTTP as JSON. It
// decodes and validates requests, maps service errors to status codes and
// safe messages, and leaves routing and server lifecycle to cmd/server.
package api
