package domain

import (
	"testing"
	"time"
)

func validBookmark() Bookmark {
	return Bookmark{
		ID:        "1",
		Title:     "pipelines",
		URL:       "https://example.org/1",
		Folder:    "reading",
		CreatedAt: time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC),
	}
}

func TestValidateAcceptsCompleteRecord(t *testing.T) {
	t.Parallel()

	if err := validBookmark().Validate(); err != nil {
		t.Fatalf("valid bookmark rejected: %v", err)
	}
}

func TestValidateRejectsBrokenRecords(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Bookmark)
	}{
		{"empty id", func(b *Bookmark) { b.ID = "" }},
		{"empty title", func(b *Bookmark) { b.Title = "" }},
		{"empty url", func(b *Bookmark) { b.URL = "" }},
		{"relative url", func(b *Bookmark) { b.URL = "/just/a/path" }},
		{"scheme only", func(b *Bookmark) { b.URL = "https://" }},
		{"empty folder", func(b *Bookmark) { b.Folder = "" }},
		{"zero time", func(b *Bookmark) { b.CreatedAt = time.Time{} }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b := validBookmark()
			tc.mutate(&b)
			if KindOf(b.Validate()) != KindMalformedRecord {
				t.Fatalf("expected MALFORMED_RECORD for %s", tc.name)
			}
		})
	}
}

func TestKindOfPlainError(t *testing.T) {
	t.Parallel()

	if kind := KindOf(nil); kind != "" {
		t.Fatalf("nil error must have no kind, got %s", kind)
	}
}
