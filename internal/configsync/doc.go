// Package configsync applies configuration documents to an assistant safely.
//
// The assistant replaces its whole configuration on every write and applies
// it asynchronously, so a successful POST does not mean the new document is
// in effect. Apply takes a snapshot of the current document, writes the new
// one, reads it back until it matches (with exponential backoff), and restores
// the snapshot if it never does.
//
// # Usage Example
//
//	result := configsync.Apply(ctx, client, desired, configsync.DefaultOptions())
//	if !result.Success {
//	    log.Fatal(result.Error)
//	}
package configsync
