package raindrop

import (
	"encoding/json"
	"testing"
	"time"

	"BookmarkDigest/internal/domain"
)

func TestToRecordDerivesFields(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	raw := json.RawMessage(`{
		"_id": 42,
		"title": "Go Concurrency Patterns",
		"link": "https://go.dev/blog/pipelines",
		"tags": ["コーディング", "go"],
		"important": true,
		"created": "2024-03-01T09:30:00Z"
	}`)

	record, err := toRecord(raw, now)
	if err != nil {
		t.Fatalf("toRecord returned error: %v", err)
	}

	if record.ID != "42" {
		t.Fatalf("unexpected id: %s", record.ID)
	}
	if record.Title != "Go Concurrency Patterns" {
		t.Fatalf("unexpected title: %s", record.Title)
	}
	if record.Folder != "コーディング" {
		t.Fatalf("unexpected folder: %s", record.Folder)
	}
	if !record.Favorite {
		t.Fatal("expected favorite record")
	}
	want := time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)
	if !record.CreatedAt.Equal(want) {
		t.Fatalf("unexpected created at: %v", record.CreatedAt)
	}
}

func TestToRecordDefaults(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	raw := json.RawMessage(`{"_id": "abc", "link": "https://example.org/x"}`)

	record, err := toRecord(raw, now)
	if err != nil {
		t.Fatalf("toRecord returned error: %v", err)
	}

	if record.Title != domain.TitlePlaceholder {
		t.Fatalf("expected title placeholder, got %s", record.Title)
	}
	if record.Folder != domain.FolderPlaceholder {
		t.Fatalf("expected folder placeholder, got %s", record.Folder)
	}
	if record.Favorite {
		t.Fatal("favorite should default to false")
	}
	if !record.CreatedAt.Equal(now) {
		t.Fatalf("created at should default to now, got %v", record.CreatedAt)
	}
}

func TestToRecordUnparsableCreatedDefaultsToNow(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	raw := json.RawMessage(`{"_id": 1, "link": "https://example.org/", "created": "yesterday-ish"}`)

	record, err := toRecord(raw, now)
	if err != nil {
		t.Fatalf("toRecord returned error: %v", err)
	}
	if !record.CreatedAt.Equal(now) {
		t.Fatalf("unparsable created should fall back to now, got %v", record.CreatedAt)
	}
}

func TestToRecordIsPureTransformation(t *testing.T) {
	t.Parallel()

	raw := json.RawMessage(`{
		"_id": 42,
		"title": "Go Concurrency Patterns",
		"link": "https://go.dev/blog/pipelines",
		"tags": ["コーディング"],
		"important": true,
		"created": "2024-03-01T09:30:00Z"
	}`)

	// With a source timestamp, conversion is independent of the call time.
	first, err := toRecord(raw, time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("first toRecord returned error: %v", err)
	}
	second, err := toRecord(raw, time.Date(2024, time.March, 6, 18, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("second toRecord returned error: %v", err)
	}
	if first != second {
		t.Fatalf("repeated conversion diverged:\n%+v\n%+v", first, second)
	}

	// Without one, only CreatedAt may differ between conversions.
	bare := json.RawMessage(`{"_id": 7, "link": "https://example.org/bare"}`)
	firstBare, err := toRecord(bare, time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("first bare toRecord returned error: %v", err)
	}
	secondBare, err := toRecord(bare, time.Date(2024, time.March, 6, 18, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("second bare toRecord returned error: %v", err)
	}
	secondBare.CreatedAt = firstBare.CreatedAt
	if firstBare != secondBare {
		t.Fatalf("fields other than CreatedAt diverged:\n%+v\n%+v", firstBare, secondBare)
	}
}

func TestToRecordMissingRequiredFields(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	cases := []json.RawMessage{
		[]byte(`{"link": "https://example.org/"}`),
		[]byte(`{"_id": 7}`),
		[]byte(`{"_id": 7, "link": "not a url"}`),
		[]byte(`not even json`),
	}

	for _, raw := range cases {
		if _, err := toRecord(raw, now); domain.KindOf(err) != domain.KindMalformedRecord {
			t.Fatalf("item %s: expected MALFORMED_RECORD, got %v", raw, err)
		}
	}
}

func TestToRecordsIsolatesBadItems(t *testing.T) {
	t.Parallel()

	items := json.RawMessage(`[
		{"_id": 1, "link": "https://example.org/first"},
		{"title": "no id, no link"},
		{"_id": 3, "link": "https://example.org/third"}
	]`)

	records, dropped, err := ToRecords(items)
	if err != nil {
		t.Fatalf("ToRecords returned error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 surviving records, got %d", len(records))
	}
	if records[0].ID != "1" || records[1].ID != "3" {
		t.Fatalf("survivors out of order: %s, %s", records[0].ID, records[1].ID)
	}

	if len(dropped) != 1 {
		t.Fatalf("expected 1 dropped item, got %d", len(dropped))
	}
	if dropped[0].Index != 1 {
		t.Fatalf("expected dropped index 1, got %d", dropped[0].Index)
	}
	if domain.KindOf(dropped[0].Err) != domain.KindMalformedRecord {
		t.Fatalf("unexpected dropped error: %v", dropped[0].Err)
	}
}

func TestToRecordsRejectsNonArray(t *testing.T) {
	t.Parallel()

	for _, input := range []json.RawMessage{
		[]byte(`{"items": []}`),
		[]byte(`null`),
		[]byte(`"fifty"`),
		nil,
	} {
		_, _, err := ToRecords(input)
		if domain.KindOf(err) != domain.KindInvalidBatchInput {
			t.Fatalf("input %s: expected INVALID_BATCH_INPUT, got %v", input, err)
		}
	}
}

func TestToRecordsEmptyArray(t *testing.T) {
	t.Parallel()

	records, dropped, err := ToRecords(json.RawMessage(`[]`))
	if err != nil {
		t.Fatalf("ToRecords returned error: %v", err)
	}
	if len(records) != 0 || len(dropped) != 0 {
		t.Fatalf("expected empty result, got %d records, %d dropped", len(records), len(dropped))
	}
}
