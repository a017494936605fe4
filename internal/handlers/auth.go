package handlers

import (
	"errors"
	"net/http"

	"marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

type signUpRequest struct {
	UserName string `json:"userName" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type logInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type currentUserRequest struct {
	Token string `json:"token" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a
// 400 JSON on failure. Returns false if the request was already handled.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any, userMsg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": userMsg})
		return false
	}
	return true
}

// logAndJSONError logs the underlying error and answers with a user message.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"message": userMsg})
}

// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  signUpRequest  true  "Credentials"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /signup [post]
func (h *Handler) signUp(c *gin.Context) {
	var req signUpRequest
	if ok := h.bindJSONOrBadRequest(c, &req, "userName, email and password are required"); !ok {
		return
	}

	_, err := h.services.SignUp(c.Request.Context(), req.UserName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"message": "User already registered"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "Internal server error", "signup_failed", err, "email", req.Email)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Signup successful"})
}

// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  logInRequest  true  "Credentials"
// @Success      200  {object}  map[string]string  "message, token"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /login [post]
func (h *Handler) logIn(c *gin.Context) {
	var req logInRequest
	if ok := h.bindJSONOrBadRequest(c, &req, "email and password are required"); !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, service.ErrInvalidPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Incorrect password"})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, "Internal server error", "login_failed", err, "email", req.Email)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
	})
}

// @Summary      Current user
// @Description  Returns the user carried by the token in the request body, without the password hash.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  currentUserRequest  true  "Token"
// @Success      200  {object}  models.User
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /curruser [post]
func (h *Handler) currentUser(c *gin.Context) {
	var req currentUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token"})
		return
	}

	user, err := h.services.CurrentUser(c.Request.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			if h.log != nil {
				h.log.Errorw("curruser_failed", "err", err)
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}
