// Package scan turns a collection of paths into facet records.
//
// A Scanner walks a Source and matches every path against a regular expression with
// named capture groups. Each named group that takes part in a match becomes one
// parameter assignment; the path becomes the record target.
//
// # Sources
//
//   - FileSource: walks a local directory tree, honoring doublestar exclude globs.
//   - BucketSource: lists an S3/MinIO bucket through storage.Client. Paths are reported
//     as s3://bucket/key.
//   - CatalogSource: reads a path column from a SQL table through GORM.
//   - ListSource: a fixed list of paths, mostly for tests and piping.
//
// Sources that can also read file content implement Opener.
//
// # Notices
//
// Non-fatal conditions are reported as facet.Notice values:
//   - MalformedPattern at construction when the pattern has no named groups.
//   - EmptyCaptureSet, once per scan, when a path matched but captured nothing.
//   - DuplicateKey when two paths produce the same assignments; the later path wins.
//
// A missing root, bucket or catalog table is an error.
//
// # Usage
//
//	src := &scan.FileSource{Root: "renders"}
//	sc, notices, err := scan.New(`shape_(?P<shape>\w+)/(?P<color>\w+)\.png`, src)
//	res, err := sc.Scan(ctx)
//	engine.Replace(res.Store)
package scan
