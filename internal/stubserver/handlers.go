package stubserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devpal/newbase/internal/api"
)

// Every response uses the envelope shape the client expects:
// {"status":"success"|"error","message":...,"data":...}. Business failures
// (bad credentials, duplicate email) are HTTP 200 with status "error";
// only auth and malformed-request problems use non-2xx codes.

func respondSuccess(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, gin.H{"status": api.StatusSuccess, "message": message, "data": data})
}

func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": api.StatusError, "message": message, "data": nil})
}

type Handler struct {
	Store       *Store
	TokenConfig TokenConfig
}

func (h *Handler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request")
		return
	}

	user, err := h.Store.Authenticate(req.Email, req.Password)
	if err != nil {
		respondError(c, http.StatusOK, "invalid credentials")
		return
	}

	token, err := CreateToken(user.ID, h.TokenConfig)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not issue token")
		return
	}
	user.Token = token
	respondSuccess(c, "login successful", user)
}

func (h *Handler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request")
		return
	}

	if _, err := h.Store.CreateAccount(req.Username, req.Email, req.Password, req.FirstName, req.LastName); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			respondError(c, http.StatusOK, "email already registered")
			return
		}
		respondError(c, http.StatusInternalServerError, "registration failed")
		return
	}
	respondSuccess(c, "registration successful", nil)
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req api.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request")
		return
	}

	// Same answer whether or not the account exists; no enumeration.
	_ = h.Store.HasEmail(req.Email)
	respondSuccess(c, "password reset email sent if the account exists", nil)
}

func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := UserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := h.Store.GetUser(userID)
	if err != nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}
	respondSuccess(c, "profile loaded", user)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := UserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	existing, err := h.Store.GetUser(userID)
	if err != nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}

	// Decode over a copy of the stored profile so absent fields keep their
	// current values, then pin the identity fields.
	updated := *existing
	if err := c.ShouldBindJSON(&updated); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request")
		return
	}
	updated.ID = existing.ID
	updated.Email = existing.Email
	updated.CreatedAt = existing.CreatedAt

	if err := h.Store.UpdateUser(updated); err != nil {
		respondError(c, http.StatusInternalServerError, "update failed")
		return
	}
	respondSuccess(c, "profile updated", nil)
}

func (h *Handler) ListNotifications(c *gin.Context) {
	userID, ok := UserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	respondSuccess(c, "notifications loaded", h.Store.Notifications(userID))
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	userID, ok := UserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req api.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request")
		return
	}

	if err := h.Store.MarkRead(userID, req.NotificationID); err != nil {
		respondError(c, http.StatusOK, "notification not found")
		return
	}
	respondSuccess(c, "notification marked read", nil)
}
