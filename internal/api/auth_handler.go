package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelichko/scribe/internal/auth"
	"github.com/avelichko/scribe/internal/service"
)

// sessionCookieMaxAge outlives the 24h token by an hour so the browser sends
// the cookie for the token's whole lifetime.
const sessionCookieMaxAge = 25 * time.Hour

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

type registerRequest struct {
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	Password string  `json:"password"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}

	if _, err := h.service.Register(c.Request().Context(), req.Username, req.Name, req.Email, req.Password); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /auth/login. The session token travels in an http-only
// cookie; SameSite=None keeps cross-site frontends working, which also
// forces the Secure flag.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}

	token, _, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return mapServiceError(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	return c.JSON(http.StatusOK, map[string]string{"message": "Logged in successfully"})
}

// Me handles GET /auth/me. The password hash never serializes (excluded at
// the model), and the repository projection drops it as well.
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.service.CurrentUser(c.Request().Context(), auth.GetUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Logout handles POST /auth/logout. Sessions are stateless, so logging out
// is just clearing the cookie; the server keeps no session state.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
