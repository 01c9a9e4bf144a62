// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - Auth: API key validation for the JSON API. The browse page itself can be
//     skipped so a browser can load it and pass the key as a query parameter.
//   - RayID: assigns every request a unique id, stored in the context locals and
//     echoed in the X-Ray-ID response header for tracing.
//
// Both are registered globally by the serve command, RayID first.
package middleware
