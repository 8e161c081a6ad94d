package cloudstorage

import (
	"context"
	"fmt"
	"strings"
)

type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}

type ObjectGetter interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// ParseURI splits "s3://bucket/key". A bare key is returned with
// defaultBucket.
func ParseURI(uri, defaultBucket string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		if defaultBucket == "" {
			return "", "", fmt.Errorf("no bucket for object %q", uri)
		}
		return defaultBucket, strings.TrimPrefix(uri, "/"), nil
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("malformed object uri %q", uri)
	}
	return bucket, key, nil
}
