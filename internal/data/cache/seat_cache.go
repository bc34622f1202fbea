package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cineticket/internal/data/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SeatMapCache holds the computed seat availability of a show time.
// Misses and failures both report ok=false; callers fall back to the database.
//
// Writers read Version before querying the database and pass it to Set.
// Invalidate bumps the version, so a snapshot read before an invalidation
// is never stored after it.
type SeatMapCache interface {
	Get(ctx context.Context, showTimeID uuid.UUID) ([]entity.SeatAvailability, bool)
	Version(ctx context.Context, showTimeID uuid.UUID) (int64, bool)
	Set(ctx context.Context, showTimeID uuid.UUID, version int64, seats []entity.SeatAvailability)
	Invalidate(ctx context.Context, showTimeID uuid.UUID) error
}

func SeatMapKey(showTimeID uuid.UUID) string {
	return fmt.Sprintf("seatmap:%s", showTimeID.String())
}

func SeatMapVersionKey(showTimeID uuid.UUID) string {
	return fmt.Sprintf("seatmap:%s:version", showTimeID.String())
}

// versionTTL outlives any seat map entry by a wide margin
const versionTTL = 24 * time.Hour

// setIfVersionScript stores the snapshot only while the version is unchanged.
// A missing version key counts as 0. Returns 1 when stored.
var setIfVersionScript = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// invalidateScript bumps the version and drops the snapshot in one step.
var invalidateScript = redis.NewScript(`
local version = redis.call('INCR', KEYS[2])
redis.call('PEXPIRE', KEYS[2], ARGV[1])
redis.call('DEL', KEYS[1])
return version
`)

type redisSeatMapCache struct {
	rdb redis.Cmdable
	ttl time.Duration
	log *zap.Logger
}

func NewRedisSeatMapCache(rdb redis.Cmdable, ttl time.Duration, log *zap.Logger) SeatMapCache {
	return &redisSeatMapCache{
		rdb: rdb,
		ttl: ttl,
		log: log.With(zap.String("cache", "seat_map")),
	}
}

func (c *redisSeatMapCache) Get(ctx context.Context, showTimeID uuid.UUID) ([]entity.SeatAvailability, bool) {
	raw, err := c.rdb.Get(ctx, SeatMapKey(showTimeID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Seat map cache read failed", zap.Error(err), zap.String("show_time_id", showTimeID.String()))
		}
		return nil, false
	}

	var seats []entity.SeatAvailability
	if err := json.Unmarshal(raw, &seats); err != nil {
		c.log.Warn("Seat map cache entry corrupt", zap.Error(err), zap.String("show_time_id", showTimeID.String()))
		return nil, false
	}
	return seats, true
}

func (c *redisSeatMapCache) Version(ctx context.Context, showTimeID uuid.UUID) (int64, bool) {
	version, err := c.rdb.Get(ctx, SeatMapVersionKey(showTimeID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		c.log.Warn("Seat map version read failed", zap.Error(err), zap.String("show_time_id", showTimeID.String()))
		return 0, false
	}
	return version, true
}

func (c *redisSeatMapCache) Set(ctx context.Context, showTimeID uuid.UUID, version int64, seats []entity.SeatAvailability) {
	raw, err := json.Marshal(seats)
	if err != nil {
		c.log.Warn("Seat map encode failed", zap.Error(err))
		return
	}

	keys := []string{SeatMapKey(showTimeID), SeatMapVersionKey(showTimeID)}
	stored, err := setIfVersionScript.Run(ctx, c.rdb, keys,
		strconv.FormatInt(version, 10), string(raw), c.ttl.Milliseconds()).Int64()
	if err != nil {
		c.log.Warn("Seat map cache write failed", zap.Error(err), zap.String("show_time_id", showTimeID.String()))
		return
	}
	if stored == 0 {
		c.log.Debug("Seat map changed while loading, not cached", zap.String("show_time_id", showTimeID.String()))
	}
}

func (c *redisSeatMapCache) Invalidate(ctx context.Context, showTimeID uuid.UUID) error {
	keys := []string{SeatMapKey(showTimeID), SeatMapVersionKey(showTimeID)}
	if err := invalidateScript.Run(ctx, c.rdb, keys, versionTTL.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("invalidate seat map %s: %w", showTimeID, err)
	}
	return nil
}

// NoopSeatMapCache is used when caching is disabled.
type NoopSeatMapCache struct{}

func (NoopSeatMapCache) Get(context.Context, uuid.UUID) ([]entity.SeatAvailability, bool) {
	return nil, false
}

func (NoopSeatMapCache) Version(context.Context, uuid.UUID) (int64, bool) {
	return 0, false
}

func (NoopSeatMapCache) Set(context.Context, uuid.UUID, int64, []entity.SeatAvailability) {}

func (NoopSeatMapCache) Invalidate(context.Context, uuid.UUID) error {
	return nil
}
