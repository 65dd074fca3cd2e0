package rnacompete

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// Open returns a reader over the contents of path. Paths beginning with gs://
// are read from Google Storage with client, which must then be non-nil; "~/"
// is expanded for local paths. Compressed inputs are decompressed
// transparently.
func Open(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	rc, err := openRaw(ctx, path, client)
	if err != nil {
		return nil, err
	}

	out, err := MaybeDecompress(rc)
	if err != nil {
		rc.Close()
		return nil, pfx.Err(fmt.Errorf("%s: %v", path, err))
	}

	return out, nil
}

func openRaw(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	if !strings.HasPrefix(path, "gs://") {
		f, err := os.Open(ExpandHome(path))
		if err != nil {
			return nil, pfx.Err(err)
		}
		return f, nil
	}

	if client == nil {
		return nil, pfx.Err(fmt.Errorf("%s: a Google Storage client is required to read gs:// paths", path))
	}

	bucketName, objectName, err := SplitGSPath(path)
	if err != nil {
		return nil, err
	}

	rdr, err := client.Bucket(bucketName).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
	}

	return rdr, nil
}

// SplitGSPath separates a gs://bucket/object path into its bucket and object
// names.
func SplitGSPath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// NeedsStorageClient reports whether any of the paths must be read from
// Google Storage.
func NeedsStorageClient(paths ...string) bool {
	for _, path := range paths {
		if strings.HasPrefix(path, "gs://") {
			return true
		}
	}

	return false
}
