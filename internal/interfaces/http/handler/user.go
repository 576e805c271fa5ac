package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	identityapp "github.com/shopfeed/backend/internal/application/identity"
	"github.com/shopfeed/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// UserHandler serves registration, login and the caller's profile
type UserHandler struct {
	BaseHandler
	auth *identityapp.AuthService
}

// NewUserHandler creates a new user handler
func NewUserHandler(auth *identityapp.AuthService, logger *zap.Logger) *UserHandler {
	return &UserHandler{BaseHandler: newBaseHandler(logger), auth: auth}
}

// Register creates an inactive account; the confirmation link goes out by email
// @Summary      Register an account
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Request body"
// @Success      201 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      409 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{errors=dto.ErrorInfo}
// @Router       /user/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !h.Bind(c, &req) {
		return
	}
	user, err := h.auth.Register(c.Request.Context(), req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// Confirm activates an account from the emailed link. email and token come
// from the query string, or from a form body.
// @Summary      Confirm an account
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        email query string true "Account email"
// @Param        token query string true "Confirmation token"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{errors=dto.ErrorInfo}
// @Router       /user/register/confirm [post]
func (h *UserHandler) Confirm(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		email = c.PostForm("email")
	}
	token := c.Query("token")
	if token == "" {
		token = c.PostForm("token")
	}
	if err := h.auth.Confirm(c.Request.Context(), email, token); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nil)
}

// Login issues a token pair for an active account
// @Summary      Log in
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Request body"
// @Success      200 {object} dto.Response{data=identityapp.TokenResponse}
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{errors=dto.ErrorInfo}
// @Router       /user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !h.Bind(c, &req) {
		return
	}
	tokens, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tokens)
}

// Refresh rotates a refresh token into a new pair
// @Summary      Refresh the token pair
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Request body"
// @Success      200 {object} dto.Response{data=identityapp.TokenResponse}
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{errors=dto.ErrorInfo}
// @Router       /user/token/refresh [post]
func (h *UserHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if !h.Bind(c, &req) {
		return
	}
	tokens, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tokens)
}

// Logout revokes the access token of the request
// @Summary      Log out
// @Tags         user
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /user/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.GetJWTClaims(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Profile returns the caller's account
// @Summary      Get the caller's profile
// @Tags         user
// @Produce      json
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /user/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.auth.Profile(c.Request.Context(), caller(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// UpdateProfile changes the fields present in the body
// @Summary      Update the caller's profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body ProfileRequest true "Request body"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{errors=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /user/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if !h.Bind(c, &req) {
		return
	}
	user, err := h.auth.UpdateProfile(c.Request.Context(), caller(c), req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}
