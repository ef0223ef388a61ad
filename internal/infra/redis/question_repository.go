package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"trivia-engine/internal/domain"
)

// PackLoader fetches question packs from a backing store (e.g., Postgres).
type PackLoader interface {
	LoadPack(ctx context.Context, packID string) (domain.QuestionPack, error)
}

// QuestionRepository caches serialized packs in Redis and falls back to a
// loader on cache miss. Packs are stored as: SET pack:{packID}:data {json}
type QuestionRepository struct {
	client *redis.Client
	loader PackLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuestionRepository(client *redis.Client, loader PackLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestionRepository) GetPack(ctx context.Context, packID string) (domain.QuestionPack, error) {
	key := r.packKey(packID)

	raw, err := r.client.Get(ctx, key).Result()
	if err == nil && raw != "" {
		var pack domain.QuestionPack
		if err := json.Unmarshal([]byte(raw), &pack); err == nil {
			return pack, nil
		}
		// Corrupt cache entry; fall through and reload.
	}

	result, err, _ := r.sf.Do(packID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		raw, err := r.client.Get(ctx, key).Result()
		if err == nil && raw != "" {
			var pack domain.QuestionPack
			if err := json.Unmarshal([]byte(raw), &pack); err == nil {
				return pack, nil
			}
		}

		pack, err := r.loader.LoadPack(ctx, packID)
		if err != nil {
			return domain.QuestionPack{}, err
		}

		data, err := json.Marshal(pack)
		if err != nil {
			return domain.QuestionPack{}, err
		}
		_ = r.client.Set(ctx, key, data, r.ttlWithJitter()).Err()
		return pack, nil
	})
	if err != nil {
		return domain.QuestionPack{}, err
	}
	return result.(domain.QuestionPack), nil
}

func (r *QuestionRepository) packKey(packID string) string {
	return "pack:" + packID + ":data"
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
