package io

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
)

const (
	schemeLocal              string = "file"
	schemeGoogleCloudStorage string = "gs"
	schemeHTTP               string = "http"
	schemeHTTPS              string = "https"
	schemeAWSS3              string = "s3"
	schemeAzureStorageBlob   string = "wasbs"
)

// Location is a parsed object URI, a URI without scheme is a local path.
type Location struct {
	URI string
	url *url.URL
}

// ParseLocation parses uri, "path/to/file" and "file://path/to/file" both
// name the same local file.
func ParseLocation(uri string) (Location, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return Location{}, fmt.Errorf("unable to parse file location [%s]: %w", uri, err)
	}

	switch u.Scheme {
	case "":
		u.Scheme = schemeLocal
		fallthrough
	case schemeLocal:
		// "file://relative/path" puts the first element into host
		u.Path = filepath.Join(u.Host, u.Path)
		u.Host = ""
	}
	return Location{URI: uri, url: u}, nil
}

func (l Location) Scheme() string {
	return l.url.Scheme
}

// IsLocal tells if the location is on local file system.
func (l Location) IsLocal() bool {
	return l.url.Scheme == schemeLocal
}

// LocalPath is the file system path of a local location.
func (l Location) LocalPath() string {
	return l.url.Path
}

// Bucket is the host part of a remote location, e.g. S3 or GCS bucket name.
func (l Location) Bucket() string {
	return l.url.Host
}

// Key is the object key inside of its bucket, without leading slash.
func (l Location) Key() string {
	if len(l.url.Path) > 0 && l.url.Path[0] == '/' {
		return l.url.Path[1:]
	}
	return l.url.Path
}

// BaseName is the last element of the path or object key.
func (l Location) BaseName() string {
	if l.IsLocal() {
		return filepath.Base(l.url.Path)
	}
	return path.Base(l.url.Path)
}
