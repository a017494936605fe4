package handlers

import (
	"errors"
	"net/http"

	"marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgReviewAdded   = "Review added"
	msgReviewDeleted = "Review Deleted"
	msgReviewFailed  = "Failed to add review"
	msgRequestFailed = "Request Failed"
)

type addReviewRequest struct {
	Rating  float64 `json:"rating" binding:"required"`
	Comment string  `json:"comment" binding:"required"`
}

// @Summary      Add a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        pid   path  string            true  "Listing id"
// @Param        body  body  addReviewRequest  true  "Review payload"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /review/{pid} [post]
// @Security     BearerAuth
func (h *Handler) addReview(c *gin.Context) {
	var req addReviewRequest
	if ok := h.bindJSONOrBadRequest(c, &req, msgReviewFailed); !ok {
		return
	}

	_, err := h.services.Reviews.Add(c.Request.Context(), c.Param("pid"), userIDFromCtx(c), req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": msgListingMissing})
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"message": msgReviewFailed})
		default:
			h.logAndJSONError(c, http.StatusBadRequest, msgReviewFailed, "review_add_failed", err, "listing", c.Param("pid"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgReviewAdded})
}

// @Summary      Delete a review
// @Description  Removes the review document and pulls its reference from the listing.
// @Tags         reviews
// @Produce      json
// @Param        rid  path  string  true  "Review id"
// @Param        pid  path  string  true  "Listing id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /review/delete/{rid}/{pid} [get]
func (h *Handler) deleteReview(c *gin.Context) {
	err := h.services.Reviews.Remove(c.Request.Context(), c.Param("rid"), c.Param("pid"))
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, msgRequestFailed, "review_delete_failed", err,
			"review", c.Param("rid"), "listing", c.Param("pid"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgReviewDeleted})
}
