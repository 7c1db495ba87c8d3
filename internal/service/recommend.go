package service

import (
	"math/rand"
	"time"

	"eventbot/internal/model"
)

// Recommender picks one event uniformly at random from a candidate set.
type Recommender struct {
	rng *rand.Rand
}

// NewRecommender creates a recommender. Pass a seeded rng for deterministic
// picks in tests; nil gets a time-seeded source.
func NewRecommender(rng *rand.Rand) *Recommender {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Recommender{rng: rng}
}

// Pick returns a uniformly random event, or nil when there is nothing to
// recommend.
func (r *Recommender) Pick(events []model.Event) *model.Event {
	if len(events) == 0 {
		return nil
	}
	return &events[r.rng.Intn(len(events))]
}
