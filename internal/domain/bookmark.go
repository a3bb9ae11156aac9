package domain

import (
	"net/url"
	"time"
)

const (
	// TitlePlaceholder fills Title when the upstream omits one.
	TitlePlaceholder = "untitled"
	// FolderPlaceholder groups bookmarks the upstream left untagged.
	FolderPlaceholder = "unsorted"
)

// Bookmark is a single validated bookmark entry, ready for digest formatting.
type Bookmark struct {
	ID        string
	Title     string
	URL       string
	Folder    string
	Favorite  bool
	CreatedAt time.Time
}

// Validate enforces the record invariants. A bookmark failing validation must
// never enter a result sequence.
func (b Bookmark) Validate() error {
	if b.ID == "" {
		return &Error{Kind: KindMalformedRecord, Message: "bookmark has empty id"}
	}
	if b.Title == "" {
		return &Error{Kind: KindMalformedRecord, Message: "bookmark has empty title"}
	}
	if b.URL == "" {
		return &Error{Kind: KindMalformedRecord, Message: "bookmark has empty url"}
	}
	parsed, err := url.Parse(b.URL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return &Error{Kind: KindMalformedRecord, Message: "bookmark url is not absolute: " + b.URL}
	}
	if b.Folder == "" {
		return &Error{Kind: KindMalformedRecord, Message: "bookmark has empty folder"}
	}
	if b.CreatedAt.IsZero() {
		return &Error{Kind: KindMalformedRecord, Message: "bookmark has no creation time"}
	}
	return nil
}

// Digest is the rendered weekly summary document. It is produced fresh per
// invocation and never persisted.
type Digest struct {
	Subject        string
	Body           string
	RecordCount    int
	DateRangeLabel string
	From           string
	To             string
}
