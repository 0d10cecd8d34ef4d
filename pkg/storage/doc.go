// Package storage persists downloaded wallpapers to the local filesystem.
//
// The Manager writes through a temporary file followed by a rename, so the
// final path only ever holds a complete image. File names are derived by the
// caller (from the remote URL); an existing file of the same name is
// overwritten, there is no versioning.
package storage
