package storage

import "fmt"

// ObjectKey addresses one staged file in the bucket. The key scheme mirrors
// the local staging hierarchy: subpath plus filename.
type ObjectKey struct {
	Subpath  string // e.g. "zoo/kcz/master/", trailing slash included
	Filename string
}

func (k ObjectKey) Key() string {
	return k.Subpath + k.Filename
}

// URL returns the public address of the object once uploaded.
func (k ObjectKey) URL(bucket string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, k.Key())
}

// BaseURL returns the public prefix shared by every object under subpath.
// Synthesized upload URLs are base URL plus filename.
func BaseURL(bucket, subpath string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, subpath)
}
