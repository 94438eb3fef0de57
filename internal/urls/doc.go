// Package urls holds the documentation links vassctl prints next to errors
// and in command help, so they can be moved in one place.
package urls
