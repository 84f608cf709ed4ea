package memory

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quizhub/internal/domain"
)

// AnswerSource loads the correct-answer set of a quiz from the backing store.
type AnswerSource interface {
	ListCorrectByQuiz(ctx context.Context, quizID int64) ([]domain.Answer, error)
}

// AnswerKeyCache caches correct-answer sets with TTL to avoid re-running the
// join on every submit.
type AnswerKeyCache struct {
	source AnswerSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[int64]cachedKey
}

type cachedKey struct {
	answers   []domain.Answer
	expiresAt time.Time
}

func NewAnswerKeyCache(source AnswerSource, ttl time.Duration) *AnswerKeyCache {
	return &AnswerKeyCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[int64]cachedKey),
	}
}

func (c *AnswerKeyCache) CorrectAnswers(ctx context.Context, quizID int64) ([]domain.Answer, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[quizID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.answers, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(sfKey(quizID), func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[quizID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.answers, nil
		}
		c.mu.RUnlock()

		answers, err := c.source.ListCorrectByQuiz(ctx, quizID)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache[quizID] = cachedKey{
			answers:   answers,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return answers, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Answer), nil
}

func (c *AnswerKeyCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

func sfKey(quizID int64) string {
	return "quiz-" + strconv.FormatInt(quizID, 10)
}
