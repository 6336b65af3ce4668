package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"mockmate/internal/model"
)

// ReportCache keeps finalized session reports available after the in-memory
// session has been disposed.
type ReportCache interface {
	SetReport(ctx context.Context, sessionID string, report *model.SessionReport) error
	GetReport(ctx context.Context, sessionID string) (*model.SessionReport, error)
	DeleteReport(ctx context.Context, sessionID string) error
}

type reportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a new report cache
func NewReportCache(client *redis.Client) ReportCache {
	return &reportCache{
		client: client,
		ttl:    7 * 24 * time.Hour,
	}
}

func (c *reportCache) SetReport(ctx context.Context, sessionID string, report *model.SessionReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "report:"+sessionID, data, c.ttl).Err()
}

func (c *reportCache) GetReport(ctx context.Context, sessionID string) (*model.SessionReport, error) {
	data, err := c.client.Get(ctx, "report:"+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report model.SessionReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *reportCache) DeleteReport(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, "report:"+sessionID).Err()
}
