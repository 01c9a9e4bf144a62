// Package loader registers HTTP features on the Fiber app.
//
// A feature owns a group of routes and decides at startup whether it is active:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// Register adds features in the order they should load. LoadAll loads each enabled one,
// logs skipped features, and returns the first Load error wrapped with the feature name.
// The serve command registers the browse feature this way; tests load a single feature
// onto a bare app.
package loader
