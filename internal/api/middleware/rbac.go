package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/safevault/safevault/internal/api/metrics"
)

// RBAC enforces role-based access control on the role claim set by Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				metrics.AuthzDeniedTotal.WithLabelValues("forbidden").Inc()
				return c.String(http.StatusForbidden, "Access denied.")
			}
			return next(c)
		}
	}
}
