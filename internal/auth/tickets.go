// AngelaMos | 2026
// tickets.go

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/talenthub/internal/core"
)

// TicketStore enforces exactly-once consumption of reset tickets. The
// signature already proves authenticity; this only has to remember which
// ticket ids have been spent, and only for as long as the ticket could
// otherwise still verify.
type TicketStore interface {
	Consume(ctx context.Context, ticketID string, expiresAt time.Time) error
}

type redisTicketStore struct {
	client *redis.Client
}

func NewTicketStore(client *redis.Client) TicketStore {
	return &redisTicketStore{client: client}
}

func (s *redisTicketStore) Consume(
	ctx context.Context,
	ticketID string,
	expiresAt time.Time,
) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return fmt.Errorf("consume ticket: %w", core.ErrTokenExpired)
	}

	key := "reset_ticket:used:" + ticketID

	set, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return fmt.Errorf("consume ticket: %w", err)
	}

	if !set {
		return fmt.Errorf("consume ticket: %w", core.ErrTokenRevoked)
	}

	return nil
}
