package raindrop

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"BookmarkDigest/internal/domain"
)

// rawItem mirrors one element of the upstream items array. Everything is
// optional at this boundary; toRecord decides what is fatal. Untyped data
// never flows past this file.
type rawItem struct {
	ID        json.RawMessage `json:"_id"`
	Title     string          `json:"title"`
	Link      string          `json:"link"`
	Tags      []string        `json:"tags"`
	Important bool            `json:"important"`
	Created   string          `json:"created"`
}

// ItemError records why one raw item was dropped from a batch.
type ItemError struct {
	Index int
	Err   error
}

func (e ItemError) String() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

// toRecord converts a single raw upstream item into a validated bookmark.
// A missing id or link is fatal for the item, not the batch.
func toRecord(raw json.RawMessage, now time.Time) (domain.Bookmark, error) {
	var item rawItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return domain.Bookmark{}, &domain.Error{Kind: domain.KindMalformedRecord, Message: "undecodable item", Err: err}
	}

	id := normalizeID(item.ID)
	if id == "" {
		return domain.Bookmark{}, &domain.Error{Kind: domain.KindMalformedRecord, Message: "item has no _id"}
	}
	if item.Link == "" {
		return domain.Bookmark{}, &domain.Error{Kind: domain.KindMalformedRecord, Message: "item has no link"}
	}

	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = domain.TitlePlaceholder
	}

	folder := domain.FolderPlaceholder
	if len(item.Tags) > 0 && strings.TrimSpace(item.Tags[0]) != "" {
		folder = item.Tags[0]
	}

	created := now
	if item.Created != "" {
		if parsed, err := time.Parse(time.RFC3339, item.Created); err == nil {
			created = parsed
		}
	}

	record := domain.Bookmark{
		ID:        id,
		Title:     title,
		URL:       item.Link,
		Folder:    folder,
		Favorite:  item.Important,
		CreatedAt: created,
	}

	if err := record.Validate(); err != nil {
		return domain.Bookmark{}, err
	}
	return record, nil
}

// ToRecords converts the raw items array one by one. Individual bad items are
// collected and excluded, never fatal; a non-array input is. The relative
// order of surviving records matches the input.
func ToRecords(itemsJSON json.RawMessage) ([]domain.Bookmark, []ItemError, error) {
	trimmed := bytes.TrimSpace(itemsJSON)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, nil, &domain.Error{Kind: domain.KindInvalidBatchInput, Message: "items is not an array"}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, nil, &domain.Error{Kind: domain.KindInvalidBatchInput, Message: "items is not an array", Err: err}
	}

	now := time.Now().UTC()
	records := make([]domain.Bookmark, 0, len(items))
	var dropped []ItemError
	for i, raw := range items {
		record, err := toRecord(raw, now)
		if err != nil {
			dropped = append(dropped, ItemError{Index: i, Err: err})
			continue
		}
		records = append(records, record)
	}

	return records, dropped, nil
}

// normalizeID accepts the source-determined id shape, string or integer.
func normalizeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func summarizeDropped(dropped []ItemError) string {
	parts := make([]string, 0, len(dropped))
	for _, d := range dropped {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "; ")
}
