// Package digest renders a set of bookmarks into the weekly mail document.
// Every function is pure; nothing here touches the network or clock state
// beyond an optional "now" default.
package digest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"BookmarkDigest/internal/domain"
)

const (
	emptyMessage = "No new bookmarks this period."

	// favoriteMarker is a compatibility surface for the consuming renderer
	// and must be reproduced verbatim.
	favoriteMarker = "%{color: red}★%"

	subjectPrefix = "Weekly Bookmark Digest"
	dateLayout    = "2006/01/02"
)

// Options tunes body rendering. The zero value renders a header and no
// date-range label.
type Options struct {
	// DateRangeLabel, when set, is printed above the header line.
	DateRangeLabel string
	// OmitHeader suppresses the record-count header.
	OmitHeader bool
}

// FormatBody renders the grouped digest body in Textile markup: one
// `h4. Folder` heading per group, one `* "Title":URL` line per bookmark,
// favorites carrying a trailing marker token.
func FormatBody(records []domain.Bookmark, opts Options) string {
	var b strings.Builder

	if len(records) == 0 {
		if opts.DateRangeLabel != "" {
			b.WriteString(opts.DateRangeLabel)
			b.WriteString("\n\n")
		}
		b.WriteString(emptyMessage)
		b.WriteString("\n")
		return b.String()
	}

	if !opts.OmitHeader {
		if opts.DateRangeLabel != "" {
			b.WriteString(opts.DateRangeLabel)
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d new bookmarks\n\n", len(records))
	}

	groups := groupByFolder(records)

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	cmp := localeCompare()
	sort.Slice(names, func(i, j int) bool { return cmp(names[i], names[j]) < 0 })

	for i, name := range names {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "h4. %s\n\n", name)

		entries := groups[name]
		// Stable so that equal timestamps keep their arrival order.
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		})

		for _, r := range entries {
			fmt.Fprintf(&b, "* \"%s\":%s", r.Title, r.URL)
			if r.Favorite {
				b.WriteString(" ")
				b.WriteString(favoriteMarker)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Subject renders the fixed mail subject for the window end date. A zero end
// means "now".
func Subject(end time.Time) string {
	if end.IsZero() {
		end = time.Now()
	}
	return subjectPrefix + " - " + end.Format(dateLayout)
}

// DateRangeLabel renders the window as `YYYY/MM/DD - YYYY/MM/DD`.
func DateRangeLabel(start, end time.Time) string {
	return start.Format(dateLayout) + " - " + end.Format(dateLayout)
}

// BuildOptions carries the window and addressing for one digest build.
// Zero Start or End omits the date-range label.
type BuildOptions struct {
	Start time.Time
	End   time.Time
	From  string
	To    string
}

// Build composes the full digest document for one run.
func Build(records []domain.Bookmark, opts BuildOptions) domain.Digest {
	var label string
	if !opts.Start.IsZero() && !opts.End.IsZero() {
		label = DateRangeLabel(opts.Start, opts.End)
	}

	return domain.Digest{
		Subject:        Subject(opts.End),
		Body:           FormatBody(records, Options{DateRangeLabel: label}),
		RecordCount:    len(records),
		DateRangeLabel: label,
		From:           opts.From,
		To:             opts.To,
	}
}

func groupByFolder(records []domain.Bookmark) map[string][]domain.Bookmark {
	groups := make(map[string][]domain.Bookmark)
	for _, r := range records {
		groups[r.Folder] = append(groups[r.Folder], r)
	}
	return groups
}
