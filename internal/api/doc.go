// Package api holds the HTTP handlers for authentication, tasks and user
// administration. Handlers decode and validate requests, call the services
// and render the success or error envelope; errors are translated to status
// codes and client-safe messages in one place (errors.go).
package api
