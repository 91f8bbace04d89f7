package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/lockerroom/internal/middleware"
	"github.com/lalith-99/lockerroom/internal/models"
	"github.com/lalith-99/lockerroom/internal/service"
)

// SessionCookie describes the cookie that carries the session token.
type SessionCookie struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// AuthHandler serves signup, login, logout and account deletion. Signup and
// login are the only routes that work without a session.
type AuthHandler struct {
	accounts AccountService
	cookie   SessionCookie
}

func NewAuthHandler(accounts AccountService, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{accounts: accounts, cookie: cookie}
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Signup handles POST /v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req service.SignupInput
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.accounts.Signup(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login handles POST /v1/auth/login
//
// The token is set as an HTTP-only cookie and also returned in the body for
// clients that prefer the Authorization header.
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginInput
	if !bindJSON(c, &req) {
		return
	}

	token, user, err := h.accounts.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setCookie(c, token, int(h.cookie.MaxAge.Seconds()))
	c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

// DeleteAccount handles DELETE /v1/auth/account
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	if err := h.accounts.DeleteAccount(c.Request.Context(), middleware.CurrentUser(c)); err != nil {
		writeError(c, err)
		return
	}
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
