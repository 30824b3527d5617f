// Package middleware provides the HTTP middleware wrapped around the relay's
// routes.
//
// The server applies them outermost first:
//
//	Recovery -> RequestID -> Logging -> CORS -> handler
//
// The logging middleware's response writer forwards Flush and supports
// http.ResponseController, so event streams pass through unbuffered.
package middleware
