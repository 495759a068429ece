// Package storage provides object stores that vecio records are saved to and
// loaded from.
//
// A Store holds whole records keyed by name. Names use forward slashes and
// carry the record's file extension, which selects the compression codec on
// the way in and out (see the root vecio package).
//
// Implementations:
//   - LocalStore: a directory on the local file system, atomic writes
//   - MemoryStore: in-process map, for tests and tooling
//   - minio.Store: MinIO or any S3-compatible bucket
package storage
