package service

import (
	"context"
	"errors"

	"marketplace/internal/cache"
	"marketplace/internal/logger"
	"marketplace/internal/models"
	"marketplace/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrInvalidID       = errors.New("invalid id")
)

// Cache keys for the read paths. Any listing or review mutation invalidates
// them.
const (
	cacheKeyListings      = "listings:all"
	cacheKeyListingPrefix = "listing:"
)

// ListingParams is the full set of listing fields accepted from clients.
type ListingParams struct {
	Title       string
	Description string
	Price       float64
	Image       string
	Category    string
}

// CatalogService implements listing CRUD with manual reference population.
type CatalogService struct {
	listings repository.Listings
	users    repository.Users
	reviews  repository.Reviews
	cache    *cache.Cache
	log      *logger.Logger
	rec      recorder
}

func NewCatalogService(listings repository.Listings, users repository.Users, reviews repository.Reviews, events repository.Events, cfg Config) *CatalogService {
	return &CatalogService{
		listings: listings,
		users:    users,
		reviews:  reviews,
		cache:    cfg.Cache,
		log:      cfg.Log,
		rec:      recorder{events: events, log: cfg.Log},
	}
}

// parseID converts a hex path parameter into an ObjectID.
func parseID(s string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return bson.ObjectID{}, ErrInvalidID
	}
	return id, nil
}

// Add creates a listing owned by ownerID and appends the reference to the
// owner's products. The two writes are not atomic; the sweeper repairs drift.
func (s *CatalogService) Add(ctx context.Context, ownerID string, p ListingParams) (string, error) {
	oid, err := parseID(ownerID)
	if err != nil {
		return "", err
	}

	owner, err := s.users.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	id, err := s.listings.Create(ctx, &models.Listing{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Category:    p.Category,
		Owner:       owner.ID,
	})
	if err != nil {
		return "", err
	}

	if err := s.users.AppendProduct(ctx, owner.ID, id); err != nil {
		return "", err
	}

	s.invalidate(ctx, cacheKeyListings)
	s.rec.record(ctx, models.EventListingAdded, "listing added", map[string]string{
		"listing": id.Hex(),
		"owner":   owner.ID.Hex(),
	})
	return id.Hex(), nil
}

// List returns all listings, served from cache when possible.
func (s *CatalogService) List(ctx context.Context) ([]models.Listing, error) {
	var cached []models.Listing
	if hit, err := s.cache.Get(ctx, cacheKeyListings, &cached); err == nil && hit {
		return cached, nil
	} else if err != nil && s.log != nil {
		s.log.Infow("cache_get_failed", "key", cacheKeyListings, "err", err)
	}

	listings, err := s.listings.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKeyListings, listings); err != nil && s.log != nil {
		s.log.Infow("cache_set_failed", "key", cacheKeyListings, "err", err)
	}
	return listings, nil
}

// Show returns a listing with its owner and reviews populated, each review's
// owner included.
func (s *CatalogService) Show(ctx context.Context, id string) (*models.ListingDetail, error) {
	lid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	key := cacheKeyListingPrefix + lid.Hex()
	var cached models.ListingDetail
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	} else if err != nil && s.log != nil {
		s.log.Infow("cache_get_failed", "key", key, "err", err)
	}

	listing, err := s.listings.GetByID(ctx, lid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	detail, err := s.populate(ctx, listing)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, detail); err != nil && s.log != nil {
		s.log.Infow("cache_set_failed", "key", key, "err", err)
	}
	return detail, nil
}

// Edit overwrites every listing field. No existence check: editing an absent
// id succeeds without effect, matching the route contract.
func (s *CatalogService) Edit(ctx context.Context, id string, p ListingParams) error {
	lid, err := parseID(id)
	if err != nil {
		return err
	}
	err = s.listings.Update(ctx, lid, repository.ListingFields{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Category:    p.Category,
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, cacheKeyListings, cacheKeyListingPrefix+lid.Hex())
	s.rec.record(ctx, models.EventListingEdited, "listing edited", map[string]string{"listing": lid.Hex()})
	return nil
}

// Delete removes a listing. Idempotent: unknown ids succeed. Review documents
// and the owner's product reference are left behind; the sweeper collects
// them later.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	lid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.listings.Delete(ctx, lid); err != nil {
		return err
	}

	s.invalidate(ctx, cacheKeyListings, cacheKeyListingPrefix+lid.Hex())
	s.rec.record(ctx, models.EventListingDeleted, "listing deleted", map[string]string{"listing": lid.Hex()})
	return nil
}

// populate resolves owner and review references. A dangling reference is
// skipped, not an error.
func (s *CatalogService) populate(ctx context.Context, listing *models.Listing) (*models.ListingDetail, error) {
	detail := &models.ListingDetail{
		ID:          listing.ID,
		Title:       listing.Title,
		Description: listing.Description,
		Price:       listing.Price,
		Image:       listing.Image,
		Category:    listing.Category,
		Reviews:     []models.ReviewDetail{},
	}

	if !listing.Owner.IsZero() {
		owner, err := s.users.GetByID(ctx, listing.Owner)
		if err == nil {
			detail.Owner = owner
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	reviews, err := s.reviews.GetByIDs(ctx, listing.Reviews)
	if err != nil {
		return nil, err
	}

	// preserve the listing's review order
	byID := make(map[bson.ObjectID]models.Review, len(reviews))
	for _, rv := range reviews {
		byID[rv.ID] = rv
	}
	for _, rid := range listing.Reviews {
		rv, ok := byID[rid]
		if !ok {
			continue
		}
		rd := models.ReviewDetail{ID: rv.ID, Rating: rv.Rating, Comment: rv.Comment}
		if !rv.Owner.IsZero() {
			owner, err := s.users.GetByID(ctx, rv.Owner)
			if err == nil {
				rd.Owner = owner
			} else if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
		}
		detail.Reviews = append(detail.Reviews, rd)
	}
	return detail, nil
}

func (s *CatalogService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil && s.log != nil {
		s.log.Infow("cache_delete_failed", "keys", keys, "err", err)
	}
}
