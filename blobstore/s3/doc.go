// Package s3 implements blobstore.Store on Amazon S3.
//
// Archives upload through the SDK's parallel multipart manager. LatestStore
// layers a DynamoDB version log on top, giving concurrent publishers the
// atomic "latest archive" pointer that S3 itself lacks.
package s3
