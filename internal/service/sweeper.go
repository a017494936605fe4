package service

import (
	"context"
	"time"

	"marketplace/internal/logger"
	"marketplace/internal/models"
	"marketplace/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// SweeperService periodically repairs referential drift: deletes leave
// dangling review references on listings and dangling product references on
// users (deletes never cascade). Each pass pulls references whose target
// document no longer exists.
type SweeperService struct {
	users    repository.Users
	listings repository.Listings
	reviews  repository.Reviews
	log      *logger.Logger
	rec      recorder
}

func NewSweeperService(users repository.Users, listings repository.Listings, reviews repository.Reviews, events repository.Events, log *logger.Logger) *SweeperService {
	return &SweeperService{
		users:    users,
		listings: listings,
		reviews:  reviews,
		log:      log,
		rec:      recorder{events: events, log: log},
	}
}

// Run ticks at the given interval until ctx is canceled.
func (s *SweeperService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			removed, err := s.Sweep(ctx)
			if err != nil {
				if s.log != nil {
					s.log.Errorw("sweep_failed", "err", err)
				}
				continue
			}
			if removed > 0 && s.log != nil {
				s.log.Infow("sweep_done", "removed_refs", removed)
			}
		}
	}
}

// Sweep performs one pass and returns the number of references removed.
func (s *SweeperService) Sweep(ctx context.Context) (int, error) {
	removed, err := s.sweepListingReviews(ctx)
	if err != nil {
		return removed, err
	}

	n, err := s.sweepUserProducts(ctx)
	removed += n
	if err != nil {
		return removed, err
	}

	if removed > 0 {
		s.rec.record(ctx, models.EventSweep, "dangling references removed", map[string]int{"removed": removed})
	}
	return removed, nil
}

// sweepListingReviews pulls review references whose review document is gone.
func (s *SweeperService) sweepListingReviews(ctx context.Context) (int, error) {
	listings, err := s.listings.List(ctx)
	if err != nil {
		return 0, err
	}

	var all []bson.ObjectID
	for _, l := range listings {
		all = append(all, l.Reviews...)
	}
	existing, err := s.reviews.ExistingIDs(ctx, all)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, l := range listings {
		for _, rid := range l.Reviews {
			if existing[rid] {
				continue
			}
			if err := s.listings.PullReview(ctx, l.ID, rid); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

// sweepUserProducts pulls product references whose listing document is gone.
func (s *SweeperService) sweepUserProducts(ctx context.Context) (int, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return 0, err
	}

	var all []bson.ObjectID
	for _, u := range users {
		all = append(all, u.Products...)
	}
	existing, err := s.listings.ExistingIDs(ctx, all)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, u := range users {
		for _, lid := range u.Products {
			if existing[lid] {
				continue
			}
			if err := s.users.PullProduct(ctx, u.ID, lid); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}
