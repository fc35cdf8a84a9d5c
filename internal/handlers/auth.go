package handlers

import (
	"errors"
	"net/http"

	"github.com/Diarra45/projet-Nan/internal/auth"
	"github.com/Diarra45/projet-Nan/internal/dto"
	"github.com/Diarra45/projet-Nan/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles register, login, refresh, logout and profile.
type AuthHandler struct {
	userSvc *service.UserService
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(userSvc *service.UserService) *AuthHandler {
	return &AuthHandler{userSvc: userSvc}
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Credentials"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failErr(c, http.StatusBadRequest, "validation error", err)
		return
	}
	user, pair, err := h.userSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			fail(c, http.StatusConflict, "user already exists")
			return
		}
		serviceError(c, err)
		return
	}
	respond(c, http.StatusCreated, "registered", dto.AuthResponse{User: dto.UserToResponse(user), Tokens: pair})
}

// Login godoc
// @Summary      Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failErr(c, http.StatusBadRequest, "validation error", err)
		return
	}
	user, pair, err := h.userSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		serviceError(c, err)
		return
	}
	respond(c, http.StatusOK, "logged in", dto.AuthResponse{User: dto.UserToResponse(user), Tokens: pair})
}

// Refresh godoc
// @Summary      Exchange a refresh token for a new pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RefreshRequest  true  "Refresh token"
// @Success      200   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /refresh-token [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken == "" {
		fail(c, http.StatusUnauthorized, "refresh token required")
		return
	}
	pair, err := h.userSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			fail(c, http.StatusForbidden, "invalid token")
			return
		}
		if errors.Is(err, service.ErrIdentityGone) {
			fail(c, http.StatusForbidden, "user not found")
			return
		}
		serviceError(c, err)
		return
	}
	respond(c, http.StatusOK, "token refreshed", pair)
}

// Logout godoc
// @Summary      Revoke the current bearer token
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Failure      401  {object}  dto.Envelope
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := auth.TokenFromContext(c)
	if token != "" {
		h.userSvc.Revoke(token)
	}
	respond(c, http.StatusOK, "logged out", nil)
}

// Profile godoc
// @Summary      Return the caller's identity
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	claims := auth.ClaimsFromContext(c)
	if claims == nil {
		fail(c, http.StatusUnauthorized, "token required")
		return
	}
	ident, err := h.userSvc.Profile(c.Request.Context(), claims.UserID, claims.Role)
	if err != nil {
		if errors.Is(err, service.ErrIdentityGone) {
			fail(c, http.StatusNotFound, "user not found")
			return
		}
		serviceError(c, err)
		return
	}
	respond(c, http.StatusOK, "profile", dto.IdentityToProfile(ident))
}
