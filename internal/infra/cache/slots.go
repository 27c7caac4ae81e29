package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/delivery-scheduler/internal/domain/availability"
)

// SlotKey identifica um cálculo de horários livres
type SlotKey struct {
	OfferingID      uint
	Date            string // YYYY-MM-DD
	DurationMinutes int
	Lunch           *availability.Block
}

func (k SlotKey) String() string {
	lunch := "-"
	if k.Lunch != nil {
		lunch = fmt.Sprintf("%d-%d", k.Lunch.Start, k.Lunch.End)
	}
	return fmt.Sprintf("%s:%d:%s", dayKey(k.OfferingID, k.Date), k.DurationMinutes, lunch)
}

func dayKey(offeringID uint, date string) string {
	return fmt.Sprintf("slots:%d:%s", offeringID, date)
}

func indexKey(offeringID uint, date string) string {
	return "idx:" + dayKey(offeringID, date)
}

// SlotCache guarda resultados de disponibilidade no redis. Cada dia de
// oferta tem um set com as chaves gravadas para invalidação em bloco.
type SlotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSlotCache(rdb *redis.Client, ttl time.Duration) *SlotCache {
	return &SlotCache{rdb: rdb, ttl: ttl}
}

// Get devolve ok=false em cache miss
func (c *SlotCache) Get(ctx context.Context, key SlotKey) ([]availability.Block, bool, error) {
	raw, err := c.rdb.Get(ctx, key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("slot cache get: %w", err)
	}

	var slots []availability.Block
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false, fmt.Errorf("slot cache decode: %w", err)
	}
	return slots, true, nil
}

func (c *SlotCache) Set(ctx context.Context, key SlotKey, slots []availability.Block) error {
	if slots == nil {
		slots = []availability.Block{}
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return err
	}

	idx := indexKey(key.OfferingID, key.Date)
	_, err = c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, key.String(), raw, c.ttl)
		p.SAdd(ctx, idx, key.String())
		p.Expire(ctx, idx, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("slot cache set: %w", err)
	}
	return nil
}

// InvalidateDay apaga todos os resultados da oferta na data
func (c *SlotCache) InvalidateDay(ctx context.Context, offeringID uint, date string) error {
	idx := indexKey(offeringID, date)

	keys, err := c.rdb.SMembers(ctx, idx).Result()
	if err != nil {
		return fmt.Errorf("slot cache index: %w", err)
	}

	keys = append(keys, idx)
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("slot cache invalidate: %w", err)
	}
	return nil
}

// InvalidateOffering apaga todos os dias em cache da oferta. Usado quando
// horário semanal ou regras mudam e qualquer data pode ter sido afetada.
func (c *SlotCache) InvalidateOffering(ctx context.Context, offeringID uint) error {
	prefix := fmt.Sprintf("slots:%d:", offeringID)

	for _, match := range []string{prefix + "*", "idx:" + prefix + "*"} {
		iter := c.rdb.Scan(ctx, 0, match, 100).Iterator()

		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("slot cache scan: %w", err)
		}
		if len(keys) == 0 {
			continue
		}
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("slot cache invalidate: %w", err)
		}
	}
	return nil
}
