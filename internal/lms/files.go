package lms

import (
	"net/url"
	"strings"
)

const (
	mockCollectionPrefix = "mock_"
	placeholderURL       = "https://placehold.co/800x450/2a2e35/f97316?text="
)

// Files formats stored file names into display URLs.
type Files struct {
	BaseURL string
	// Mock marks records served from the fixture store; their files do not
	// exist and are rendered as placeholders.
	Mock bool
}

// CollectionID returns the collection identity of a table.
func (f Files) CollectionID(table string) string {
	if f.Mock {
		return mockCollectionPrefix + table
	}
	return table
}

// URL returns "" for an empty filename.
func (f Files) URL(collectionID, recordID, filename string) string {
	if filename == "" {
		return ""
	}
	if strings.HasPrefix(collectionID, mockCollectionPrefix) {
		return placeholderURL + url.QueryEscape(filename)
	}
	return strings.TrimRight(f.BaseURL, "/") + "/api/files/" +
		url.PathEscape(collectionID) + "/" + url.PathEscape(recordID) + "/" + url.PathEscape(filename)
}
