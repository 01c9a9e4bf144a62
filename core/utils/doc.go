// Package utils provides small helpers shared by the presentation adapters.
// It converts selections given as JSON objects (HTTP API) or name=value arguments
// (CLI) into plain string maps.
package utils
