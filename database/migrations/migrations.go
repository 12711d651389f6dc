// Package migrations registers the sql store schema. It is imported by
// cmd/pubqr so every migration is known at CLI startup.
package migrations
