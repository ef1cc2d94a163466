// Package store writes downloaded recordings to their destination.
//
// The destination is a gocloud.dev blob bucket, so the same code path
// covers a plain local directory (the common case) and object storage
// (s3://, gs://, file://). Keys use "/" separators; under a local root
// they materialize as subdirectories, created as needed.
//
// # Usage
//
//	st, err := store.Open(ctx, "/data/recordings")
//	defer st.Close()
//
//	n, err := st.Write(ctx, "cs101/20220601_1000_intro-lecture_part-1.mp4", body)
package store
