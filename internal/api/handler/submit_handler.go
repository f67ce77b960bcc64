package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/safevault/safevault/internal/api/metrics"
	"github.com/safevault/safevault/internal/core/domain"
	"github.com/safevault/safevault/internal/core/ports"
)

// SubmitHandler serves the unauthenticated form submission endpoint.
type SubmitHandler struct {
	service ports.SubmissionService
}

func NewSubmitHandler(service ports.SubmissionService) *SubmitHandler {
	return &SubmitHandler{service: service}
}

// Submit accepts the public form and echoes the accepted values. The echoed
// fields come back from the service already sanitized, so they are inert in
// any HTML context.
//
// @Summary      Submit the public form
// @Tags         submissions
// @Accept       x-www-form-urlencoded
// @Produce      plain
// @Param        username  formData  string  true  "Username"
// @Param        email     formData  string  true  "Email address"
// @Success      200  {string}  string  "Received: <username>, <email>"
// @Failure      400  {string}  string  "Invalid username. / Invalid email."
// @Router       /submit [post]
func (h *SubmitHandler) Submit(c echo.Context) error {
	username := c.FormValue("username")
	email := c.FormValue("email")

	submission, err := h.service.Submit(c.Request().Context(), username, email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidUsername):
			metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
			return c.String(http.StatusBadRequest, "Invalid username.")
		case errors.Is(err, domain.ErrInvalidEmail):
			metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
			return c.String(http.StatusBadRequest, "Invalid email.")
		default:
			return err
		}
	}

	metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()
	return c.String(http.StatusOK, fmt.Sprintf("Received: %s, %s", submission.Username, submission.Email))
}
