package handlers

import (
	"context"
	"net/http"

	"marketplace/internal/models"
	"marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID    string
	signUpErr   error
	tokenValue  string
	tokenErr    error
	parseClaims *service.TokenClaims
	parseErr    error
	currUser    *models.User
	currErr     error

	lastSignUpUserName string
	lastSignUpEmail    string
	lastSignUpPassword string
	lastTokenEmail     string
	lastTokenPassword  string
	lastParseToken     string
	lastCurrToken      string
}

func (m *mockAuth) SignUp(ctx context.Context, userName, email, password string) (string, error) {
	m.lastSignUpUserName = userName
	m.lastSignUpEmail = email
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(ctx context.Context, email, password string) (string, error) {
	m.lastTokenEmail = email
	m.lastTokenPassword = password
	return m.tokenValue, m.tokenErr
}

func (m *mockAuth) ParseToken(token string) (*service.TokenClaims, error) {
	m.lastParseToken = token
	return m.parseClaims, m.parseErr
}

func (m *mockAuth) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	m.lastCurrToken = token
	return m.currUser, m.currErr
}

type mockCatalog struct {
	addID     string
	addErr    error
	listResp  []models.Listing
	listErr   error
	showResp  *models.ListingDetail
	showErr   error
	editErr   error
	deleteErr error

	lastAddOwner  string
	lastAddParams service.ListingParams
	lastShowID    string
	lastEditID    string
	lastEdit      service.ListingParams
	lastDeleteID  string
	deleteCalls   int
}

func (m *mockCatalog) Add(ctx context.Context, ownerID string, p service.ListingParams) (string, error) {
	m.lastAddOwner = ownerID
	m.lastAddParams = p
	return m.addID, m.addErr
}

func (m *mockCatalog) List(ctx context.Context) ([]models.Listing, error) {
	return m.listResp, m.listErr
}

func (m *mockCatalog) Show(ctx context.Context, id string) (*models.ListingDetail, error) {
	m.lastShowID = id
	return m.showResp, m.showErr
}

func (m *mockCatalog) Edit(ctx context.Context, id string, p service.ListingParams) error {
	m.lastEditID = id
	m.lastEdit = p
	return m.editErr
}

func (m *mockCatalog) Delete(ctx context.Context, id string) error {
	m.lastDeleteID = id
	m.deleteCalls++
	return m.deleteErr
}

type mockReviews struct {
	addID     string
	addErr    error
	removeErr error

	lastAddListing  string
	lastAddOwner    string
	lastAddRating   float64
	lastAddComment  string
	lastRemoveRID   string
	lastRemovePID   string
	removeCallCount int
}

func (m *mockReviews) Add(ctx context.Context, listingID, ownerID string, rating float64, comment string) (string, error) {
	m.lastAddListing = listingID
	m.lastAddOwner = ownerID
	m.lastAddRating = rating
	m.lastAddComment = comment
	return m.addID, m.addErr
}

func (m *mockReviews) Remove(ctx context.Context, reviewID, listingID string) error {
	m.lastRemoveRID = reviewID
	m.lastRemovePID = listingID
	m.removeCallCount++
	return m.removeErr
}

type mockActivity struct {
	resp       []models.Event
	err        error
	lastFilter service.ActivityFilter
}

func (m *mockActivity) List(ctx context.Context, f service.ActivityFilter) ([]models.Event, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
