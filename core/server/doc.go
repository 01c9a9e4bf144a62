// Package server holds the HTTP server configuration.
//
// The serve command builds the Fiber application itself; this package only defines
// where it listens, the optional API key and whether the browse page is opened in a
// browser on startup.
//
// # Usage
//
//	app.Listen(cfg.Server.Address())
package server
