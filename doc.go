// Package rpng is a self-contained PNG codec: it reads, writes, mutates and
// round-trips PNG images without depending on any external image or
// compression library. It owns its own DEFLATE encoder and decoder, its own
// CRC-32 and Adler-32 checksums, and its own chunk-stream engine for
// surgically editing a PNG byte stream (count, read, add, remove, combine,
// split).
//
// File I/O, logging, and any decision about which images to process are
// left to the caller; apart from the LoadFile/SaveFile convenience wrappers
// in iofile.go, every exported entry point here is a pure function over byte
// buffers.
package rpng
