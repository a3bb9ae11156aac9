package ports

import (
	"context"
	"time"

	"BookmarkDigest/internal/domain"
)

// BookmarkSource pulls bookmarks created inside a time window from the
// upstream service.
type BookmarkSource interface {
	FetchRecent(ctx context.Context, from, to time.Time) ([]domain.Bookmark, error)
}

// Mailer delivers a rendered digest and reports the transport message id.
type Mailer interface {
	Send(ctx context.Context, digest domain.Digest) (string, error)
}

// Scheduler controls when digest runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
