package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator hands out group ids. Each session owns its generator.
type IDGenerator interface {
	NewID() string
}

// UUIDs generates random UUIDv4 ids.
type UUIDs struct{}

func (UUIDs) NewID() string { return uuid.NewString() }

// Counter generates prefix-1, prefix-2, ... Useful where ids must be stable.
type Counter struct {
	Prefix string

	mu sync.Mutex
	n  int
}

func (c *Counter) NewID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	prefix := c.Prefix
	if prefix == "" {
		prefix = "group"
	}
	return fmt.Sprintf("%s-%d", prefix, c.n)
}
