package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quizhub/internal/domain"
)

// AnswerSource fetches the correct answers of a quiz from the backing store.
type AnswerSource interface {
	ListCorrectByQuiz(ctx context.Context, quizID int64) ([]domain.Answer, error)
}

// AnswerKeyCache caches the correct-answer set of a quiz in Redis and falls
// back to the source on cache miss. Scoring hits this on every submission,
// so a missing or expired key is filled exactly once via singleflight.
// Keys are stored as: SET quiz:{quizID}:answerkey {json} EX {ttl+jitter}
type AnswerKeyCache struct {
	client *redis.Client
	source AnswerSource
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewAnswerKeyCache(client *redis.Client, source AnswerSource, ttl time.Duration) *AnswerKeyCache {
	return &AnswerKeyCache{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *AnswerKeyCache) CorrectAnswers(ctx context.Context, quizID int64) ([]domain.Answer, error) {
	key := c.key(quizID)

	if answers, ok := c.fromCache(ctx, key); ok {
		return answers, nil
	}

	result, err, _ := c.sf.Do(strconv.FormatInt(quizID, 10), func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if answers, ok := c.fromCache(ctx, key); ok {
			return answers, nil
		}

		answers, err := c.source.ListCorrectByQuiz(ctx, quizID)
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal(answers)
		if err != nil {
			return nil, fmt.Errorf("encode answer key: %w", err)
		}
		// best-effort write; a failed SET just means the next call reloads
		_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()

		return answers, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Answer), nil
}

func (c *AnswerKeyCache) fromCache(ctx context.Context, key string) ([]domain.Answer, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var answers []domain.Answer
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, false
	}
	return answers, true
}

func (c *AnswerKeyCache) key(quizID int64) string {
	return "quiz:" + strconv.FormatInt(quizID, 10) + ":answerkey"
}

func (c *AnswerKeyCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
