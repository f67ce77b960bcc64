package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminHandler serves the role-gated resource. Authentication and the role
// check happen in the Auth and RBAC middleware; by the time this runs the
// caller is a validated admin.
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// Dashboard handles GET /admin.
//
// @Summary      Admin-only resource
// @Tags         admin
// @Produce      plain
// @Security     BearerAuth
// @Success      200  {string}  string  "Welcome, admin!"
// @Failure      401  {string}  string
// @Failure      403  {string}  string
// @Router       /admin [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	return c.String(http.StatusOK, "Welcome, admin!")
}
