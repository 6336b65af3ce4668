package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mockmate/internal/model"
)

// ProblemCache handles Redis operations for AI-generated coding problems,
// shared across sessions per domain and difficulty.
type ProblemCache interface {
	SetProblem(ctx context.Context, domain, difficulty string, problem *model.CodingProblem) error
	GetProblem(ctx context.Context, domain, difficulty string) (*model.CodingProblem, error)
	DeleteProblem(ctx context.Context, domain, difficulty string) error
}

type problemCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProblemCache creates a new problem cache
func NewProblemCache(client *redis.Client) ProblemCache {
	return &problemCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *problemCache) key(domain, difficulty string) string {
	return fmt.Sprintf("problem:%s:%s", domain, difficulty)
}

func (c *problemCache) SetProblem(ctx context.Context, domain, difficulty string, problem *model.CodingProblem) error {
	data, err := json.Marshal(problem)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(domain, difficulty), data, c.ttl).Err()
}

func (c *problemCache) GetProblem(ctx context.Context, domain, difficulty string) (*model.CodingProblem, error) {
	data, err := c.client.Get(ctx, c.key(domain, difficulty)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var problem model.CodingProblem
	if err := json.Unmarshal([]byte(data), &problem); err != nil {
		return nil, err
	}
	return &problem, nil
}

func (c *problemCache) DeleteProblem(ctx context.Context, domain, difficulty string) error {
	return c.client.Del(ctx, c.key(domain, difficulty)).Err()
}
