// Package positions reads and writes the binary vehicle position format.
//
// Records repeat until end of stream; all integers are little-endian:
//
//	id           int32
//	registration bytes, terminated by a single 0x00 (no length prefix)
//	latitude     float32
//	longitude    float32
//	recordedAt   uint64, seconds since 1970-01-01T00:00:00Z
//
// Records carry no boundary markers, so a stream can only be decoded front to back.
package positions
