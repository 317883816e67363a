// Package s3 keeps an off-box copy of a document in Amazon S3 or an
// S3-compatible service.
//
// Archiver writes a full snapshot to one fixed object key on every call, so
// the bucket always holds the latest version (enable bucket versioning for
// history):
//
//	arch, err := s3.New(ctx, s3.Config{Bucket: "forms", Region: "us-east-1", Key: "submissions.csv"})
//	err = arch.Archive(ctx, data, "text/csv")
//
// Errors are classified into package sentinels (ErrAccessDenied,
// ErrBucketNotFound, ErrServiceUnavailable and the context errors) with the
// SDK error kept in the chain. Ping issues HeadBucket for readiness checks.
package s3
