// Package blobstore provides storage abstraction for published solve
// archives.
//
// Store is the interface for writing and reading immutable archive blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: In-memory, for tests
//   - LocalStore: Local filesystem with atomic writes
//   - minio.Store: MinIO and S3-compatible storage
//   - s3.Store: Amazon S3 with parallel multipart uploads
//
// # Custom Implementations
//
// Implement the Store interface to support custom storage backends. Put must
// be atomic: a reader must never observe a partially written blob.
package blobstore
