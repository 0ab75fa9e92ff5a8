package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ActivityPort reads a user's recent activity.
type ActivityPort interface {
	Recent(ctx context.Context, ownerID string, limit int) ([]Entry, error)
}

// ActivityAdapter implements ActivityPort over the recent-activity service.
type ActivityAdapter struct {
	container mono.ServiceContainer
}

var _ ActivityPort = (*ActivityAdapter)(nil)

// NewActivityAdapter creates a new ActivityAdapter.
func NewActivityAdapter(container mono.ServiceContainer) *ActivityAdapter {
	if container == nil {
		panic("activity adapter requires non-nil ServiceContainer")
	}
	return &ActivityAdapter{container: container}
}

// Recent returns up to limit entries, newest first.
func (a *ActivityAdapter) Recent(ctx context.Context, ownerID string, limit int) ([]Entry, error) {
	req := RecentActivityRequest{OwnerID: ownerID, Limit: limit}
	var resp RecentActivityResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"recent-activity",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("recent-activity request failed: %w", err)
	}
	if resp.Entries == nil {
		resp.Entries = make([]Entry, 0)
	}
	return resp.Entries, nil
}
