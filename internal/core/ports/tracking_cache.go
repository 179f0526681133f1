package ports

import (
	"context"
	"time"

	"tracker/internal/core/domain/model/kernel"
)

// TrackingSnapshot is the reduced tracking projection shown to callers that
// are neither involved in the package nor admins.
type TrackingSnapshot struct {
	TrackingCode string          `json:"tracking_number"`
	Status       string          `json:"status"`
	UpdatedAt    time.Time       `json:"updated_at"`
	History      []TrackingEvent `json:"status_updates"`
}

// TrackingEvent is one status record reduced to its status and timestamp.
type TrackingEvent struct {
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// TrackingCache stores reduced snapshots by tracking code. It is best effort:
// a failing cache behaves as a miss and never fails the caller.
type TrackingCache interface {
	Get(ctx context.Context, code kernel.TrackingCode) (TrackingSnapshot, bool)
	Set(ctx context.Context, snapshot TrackingSnapshot)
	Invalidate(ctx context.Context, code kernel.TrackingCode)
}
