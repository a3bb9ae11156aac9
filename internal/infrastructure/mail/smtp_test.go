package mail

import (
	"context"
	"strings"
	"testing"

	"BookmarkDigest/internal/domain"
)

func testDigest() domain.Digest {
	return domain.Digest{
		Subject:     "Weekly Bookmark Digest - 2024/03/05",
		Body:        "h4. reading\n\n* \"pipelines\":https://example.org/1\n",
		RecordCount: 1,
		From:        "digest@example.org",
		To:          "reader@example.org",
	}
}

func TestBuildMessageHeadersAndBody(t *testing.T) {
	t.Parallel()

	raw, err := buildMessage(testDigest(), "test-id@example.org")
	if err != nil {
		t.Fatalf("buildMessage returned error: %v", err)
	}

	msg := string(raw)
	for _, want := range []string{
		"From: <digest@example.org>",
		"To: <reader@example.org>",
		"Subject: Weekly Bookmark Digest - 2024/03/05",
		"Message-Id: <test-id@example.org>",
		"Content-Type: text/plain; charset=utf-8",
		"h4. reading",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestSendRejectsMisconfiguration(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	if _, err := NewSender("", 587, "", "").Send(ctx, testDigest()); err == nil {
		t.Fatal("expected error without a host")
	}

	digest := testDigest()
	digest.To = ""
	if _, err := NewSender("smtp.example.org", 587, "", "").Send(ctx, digest); err == nil {
		t.Fatal("expected error without a recipient")
	}
}

func TestSendHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewSender("smtp.example.org", 587, "", "").Send(ctx, testDigest()); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
