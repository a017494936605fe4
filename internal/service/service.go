package service

import (
	"context"
	"time"

	"marketplace/internal/cache"
	"marketplace/internal/logger"
	"marketplace/internal/models"
	"marketplace/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, userName, email, password string) (string, error)
	GenerateToken(ctx context.Context, email, password string) (string, error)
	ParseToken(accessToken string) (*TokenClaims, error)
	CurrentUser(ctx context.Context, accessToken string) (*models.User, error)
}

// Catalog exposes listing CRUD plus populated reads.
type Catalog interface {
	Add(ctx context.Context, ownerID string, p ListingParams) (string, error)
	List(ctx context.Context) ([]models.Listing, error)
	Show(ctx context.Context, id string) (*models.ListingDetail, error)
	Edit(ctx context.Context, id string, p ListingParams) error
	Delete(ctx context.Context, id string) error
}

// Reviews attaches reviews to listings and removes them again.
type Reviews interface {
	Add(ctx context.Context, listingID, ownerID string, rating float64, comment string) (string, error)
	Remove(ctx context.Context, reviewID, listingID string) error
}

// Activity exposes the append-only activity log with filtering access.
type Activity interface {
	List(ctx context.Context, f ActivityFilter) ([]models.Event, error)
}

// Sweeper runs the background loop that repairs dangling references.
// Stop via context cancellation in main() for graceful shutdown.
type Sweeper interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Authorization
	Catalog
	Reviews
	Activity
	Sweeper
}

// Config carries the cross-cutting dependencies the services need beyond
// the repositories: token signing material and the optional read cache.
type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
	Cache     *cache.Cache
	Log       *logger.Logger
}

func NewService(repos *repository.Repository, cfg Config) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}
	return &Service{
		Authorization: NewAuthService(repos.Users, repos.Events, cfg),
		Catalog:       NewCatalogService(repos.Listings, repos.Users, repos.Reviews, repos.Events, cfg),
		Reviews:       NewReviewService(repos.Reviews, repos.Listings, repos.Events, cfg),
		Activity:      NewActivityService(repos.Events),
		Sweeper:       NewSweeperService(repos.Users, repos.Listings, repos.Reviews, repos.Events, cfg.Log),
	}
}
