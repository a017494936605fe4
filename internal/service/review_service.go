package service

import (
	"context"
	"errors"

	"marketplace/internal/cache"
	"marketplace/internal/logger"
	"marketplace/internal/models"
	"marketplace/internal/repository"
)

// ReviewService attaches reviews to listings and removes them again.
type ReviewService struct {
	reviews  repository.Reviews
	listings repository.Listings
	cache    *cache.Cache
	log      *logger.Logger
	rec      recorder
}

func NewReviewService(reviews repository.Reviews, listings repository.Listings, events repository.Events, cfg Config) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		listings: listings,
		cache:    cfg.Cache,
		log:      cfg.Log,
		rec:      recorder{events: events, log: cfg.Log},
	}
}

// Add creates a review owned by ownerID and appends the reference to the
// listing. The listing must exist; the two writes are not atomic.
func (s *ReviewService) Add(ctx context.Context, listingID, ownerID string, rating float64, comment string) (string, error) {
	lid, err := parseID(listingID)
	if err != nil {
		return "", err
	}
	oid, err := parseID(ownerID)
	if err != nil {
		return "", err
	}

	if _, err := s.listings.GetByID(ctx, lid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrListingNotFound
		}
		return "", err
	}

	id, err := s.reviews.Create(ctx, &models.Review{
		Rating:  rating,
		Comment: comment,
		Owner:   oid,
	})
	if err != nil {
		return "", err
	}

	if err := s.listings.AppendReview(ctx, lid, id); err != nil {
		return "", err
	}

	s.invalidate(ctx, lid.Hex())
	s.rec.record(ctx, models.EventReviewAdded, "review added", map[string]string{
		"review":  id.Hex(),
		"listing": lid.Hex(),
	})
	return id.Hex(), nil
}

// Remove deletes a review and pulls its reference from the listing.
// Both steps are idempotent on absent documents.
func (s *ReviewService) Remove(ctx context.Context, reviewID, listingID string) error {
	rid, err := parseID(reviewID)
	if err != nil {
		return err
	}
	lid, err := parseID(listingID)
	if err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, rid); err != nil {
		return err
	}
	if err := s.listings.PullReview(ctx, lid, rid); err != nil {
		return err
	}

	s.invalidate(ctx, lid.Hex())
	s.rec.record(ctx, models.EventReviewDeleted, "review deleted", map[string]string{
		"review":  rid.Hex(),
		"listing": lid.Hex(),
	})
	return nil
}

func (s *ReviewService) invalidate(ctx context.Context, listingHex string) {
	keys := []string{cacheKeyListings, cacheKeyListingPrefix + listingHex}
	if err := s.cache.Delete(ctx, keys...); err != nil && s.log != nil {
		s.log.Infow("cache_delete_failed", "keys", keys, "err", err)
	}
}
