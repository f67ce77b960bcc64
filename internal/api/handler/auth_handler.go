package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/safevault/safevault/internal/api/metrics"
	"github.com/safevault/safevault/internal/core/domain"
	"github.com/safevault/safevault/internal/core/ports"
)

// AuthHandler serves the registration and login form endpoints.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Register creates a new user account from form fields.
//
// Invalid input and duplicate usernames return the same generic 400 body so
// the endpoint cannot be used to probe which usernames exist.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      plain
// @Param        username  formData  string  true  "Username"
// @Param        email     formData  string  true  "Email address"
// @Param        password  formData  string  true  "Password"
// @Success      200  {string}  string  "Registration successful."
// @Failure      400  {string}  string  "Registration failed."
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	username := c.FormValue("username")
	email := c.FormValue("email")
	password := c.FormValue("password")

	_, err := h.authService.Register(c.Request().Context(), username, email, password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		case errors.Is(err, domain.ErrInvalidUsername),
			errors.Is(err, domain.ErrInvalidEmail),
			errors.Is(err, domain.ErrWeakPassword):
			metrics.RegistrationsTotal.WithLabelValues("invalid_input").Inc()
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			return err
		}
		return c.String(http.StatusBadRequest, "Registration failed.")
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.String(http.StatusOK, "Registration successful.")
}

// Login authenticates a user and returns a signed token with its role.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  loginResponse
// @Failure      401  {string}  string  "Invalid credentials."
// @Failure      429  {string}  string  "Too many login attempts."
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	token, user, err := h.authService.Login(c.Request().Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("unauthorized").Inc()
			return c.String(http.StatusUnauthorized, "Invalid credentials.")
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return c.String(http.StatusTooManyRequests, "Too many login attempts.")
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			return err
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token, Role: user.Role})
}
