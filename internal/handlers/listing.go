package handlers

import (
	"errors"
	"net/http"

	"marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// Response message constants shared by the listing handlers.
const (
	msgListingAdded   = "Listing added successfully"
	msgListingDeleted = "Listing deleted successfully"
	msgListingEdited  = "Edited the Listing"
	msgAllFields      = "All fields are required"
	msgInvalidID      = "Invalid id"
	msgListingMissing = "Listing not found"
)

// addListingRequest mirrors the original add payload: the image URL arrives
// as "imageLink" and is stored as "image".
type addListingRequest struct {
	ImageLink   string  `json:"imageLink" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Category    string  `json:"category" binding:"required"`
}

// editListingRequest uses "image", not "imageLink" — a quirk of the original
// surface that existing clients depend on.
type editListingRequest struct {
	Image       string  `json:"image" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Category    string  `json:"category" binding:"required"`
}

// @Summary      List all listings
// @Tags         listings
// @Produce      json
// @Success      200  {array}   models.Listing
// @Failure      500  {object}  map[string]string
// @Router       /testing [get]
func (h *Handler) listListings(c *gin.Context) {
	listings, err := h.services.Catalog.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load listings", "listings_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

// @Summary      Show a listing
// @Description  Returns the listing with owner and reviews populated (each review's owner included).
// @Tags         listings
// @Produce      json
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  models.ListingDetail
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /show/{id} [get]
func (h *Handler) showListing(c *gin.Context) {
	detail, err := h.services.Catalog.Show(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidID})
		case errors.Is(err, service.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": msgListingMissing})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, "failed to load listing", "listing_show_failed", err, "id", c.Param("id"))
		}
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary      Add a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        body  body  addListingRequest  true  "Listing payload"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /add [post]
// @Security     BearerAuth
func (h *Handler) addListing(c *gin.Context) {
	var req addListingRequest
	if ok := h.bindJSONOrBadRequest(c, &req, msgAllFields); !ok {
		return
	}

	_, err := h.services.Catalog.Add(c.Request.Context(), userIDFromCtx(c), service.ListingParams{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.ImageLink,
		Category:    req.Category,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, "Internal server error", "listing_add_failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgListingAdded})
}

// @Summary      Delete a listing
// @Description  Idempotent: deleting an unknown id still succeeds. References held by the owner and reviews are cleaned up by the background sweep, not here.
// @Tags         listings
// @Produce      json
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  map[string]interface{}
// @Router       /deleteListing/{id} [get]
func (h *Handler) deleteListing(c *gin.Context) {
	err := h.services.Catalog.Delete(c.Request.Context(), c.Param("id"))
	if err != nil && !errors.Is(err, service.ErrInvalidID) {
		// The route contract is unconditional success; keep the error in the logs.
		if h.log != nil {
			h.log.Errorw("listing_delete_failed", "err", err, "id", c.Param("id"))
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": msgListingDeleted,
	})
}

// @Summary      Edit a listing
// @Description  Overwrites every field. Editing an unknown id succeeds without effect.
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "Listing id"
// @Param        body  body  editListingRequest  true  "Listing payload"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /edit/{id} [post]
func (h *Handler) editListing(c *gin.Context) {
	var req editListingRequest
	if ok := h.bindJSONOrBadRequest(c, &req, msgAllFields); !ok {
		return
	}

	err := h.services.Catalog.Edit(c.Request.Context(), c.Param("id"), service.ListingParams{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidID})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "Error saving listing", "listing_edit_failed", err, "id", c.Param("id"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgListingEdited})
}
