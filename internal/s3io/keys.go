package s3io

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ContentTypeJSON is the content type of configuration and seed documents.
const ContentTypeJSON = "application/json"

// ConfigObjectKey builds the object key holding the document for a config key.
func ConfigObjectKey(prefix, configKey string) string {
	return prefix + configKey + ".json"
}

// ParseConfigObjectKey extracts the config key from an object key of the form
// <prefix><key>.json. Nested paths are rejected.
func ParseConfigObjectKey(prefix, objectKey string) (string, bool) {
	if strings.ToLower(path.Ext(objectKey)) != ".json" || !strings.HasPrefix(objectKey, prefix) {
		return "", false
	}
	name := strings.TrimSuffix(strings.TrimPrefix(objectKey, prefix), path.Ext(objectKey))
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}

// ParseURI splits an s3://bucket/key URI.
func ParseURI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("parse %q: %w", uri, err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("%q: scheme must be s3", uri)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%q: want s3://bucket/key", uri)
	}
	return u.Host, key, nil
}
