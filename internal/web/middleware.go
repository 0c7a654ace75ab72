package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shoplite/internal/models"
)

// noStore disables response caching on admin pages.
func noStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

// requireAdmin redirects unauthenticated requests to the login page.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentAdmin(c); !ok {
			flashError(c, "Please log in to the admin panel.")
			c.Redirect(http.StatusSeeOther, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// requireSuperAdmin gates admin-account management.
func (s *Server) requireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := currentAdmin(c)
		if !ok || admin.Role != models.RoleSuperAdmin {
			flashError(c, "Super admin access required.")
			c.Redirect(http.StatusSeeOther, "/admin")
			c.Abort()
			return
		}
		c.Next()
	}
}
