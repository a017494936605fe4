package handlers

import (
	"marketplace/internal/logger"
	"marketplace/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
// Paths are kept compatible with the original client surface.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestIDMiddleware, newCORS())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Liveness
	router.GET("/", h.health)

	h.registerAuthRoutes(router)
	h.registerListingRoutes(router)
	h.registerReviewRoutes(router)

	// Activity log (protected) and its live feed
	router.GET("/events", h.bearerAuth, h.listEvents)
	router.GET("/ws", h.wsEvents)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	r.POST("/signup", h.signUp)
	r.POST("/login", h.logIn)
	// curruser reads the token from the body, not the Authorization header
	r.POST("/curruser", h.currentUser)
}

func (h *Handler) registerListingRoutes(r *gin.Engine) {
	r.GET("/testing", h.listListings)
	r.GET("/show/:id", h.showListing)
	r.POST("/add", h.bearerAuth, h.addListing)
	r.GET("/deleteListing/:id", h.deleteListing)
	r.POST("/edit/:id", h.editListing)
}

func (h *Handler) registerReviewRoutes(r *gin.Engine) {
	r.POST("/review/:pid", h.bearerAuth, h.addReview)
	r.GET("/review/delete/:rid/:pid", h.deleteReview)
}

// newCORS allows any origin with credentials, mirroring the original
// `cors({ credentials: true })` setup.
func newCORS() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowCredentials = true
	cfg.AllowOriginFunc = func(origin string) bool { return true }
	cfg.AddAllowHeaders("Authorization")
	return cors.New(cfg)
}

// @Summary      Liveness check
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string
// @Router       / [get]
func (h *Handler) health(c *gin.Context) {
	c.String(200, "Routes working")
}
