// Package io reads and writes export documents on disk.
//
// # Compression
//
// Paths ending in ".zst" are compressed with zstd on write and decompressed
// on read; every other path is plain text. Large blueprints export to
// several megabytes of JSON, which compresses well:
//
//	err := io.WriteFile("out/BP_Door.json.zst", data)
//
// # Atomic Writes
//
// [WriteFile] writes to a temporary file in the destination directory and
// renames it into place, creating parent directories as needed. Readers
// never observe a partially written document.
//
// # Streams
//
// [Write] and [Read] apply the same rule to streams, keyed by a name (usually
// the path the stream came from).
package io
