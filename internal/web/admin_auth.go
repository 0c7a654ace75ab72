package web

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shoplite/internal/models"
)

// loginPage handles GET /admin/login.
func (s *Server) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", s.adminData(c, ViewData{
		"LoggedOut": c.Query("logged_out") == "1",
		"Username":  "",
	}))
}

// login handles POST /admin/login.
func (s *Server) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.tmpl", s.adminData(c, ViewData{
			"Errors":   formErrors(err),
			"Username": form.Username,
		}))
		return
	}

	var admin models.Admin
	if err := s.db.WithContext(c.Request.Context()).
		Where("username = ?", form.Username).First(&admin).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Errorf("admin login lookup: %v", err)
		}
		flashError(c, "Invalid username or password")
		c.Redirect(http.StatusSeeOther, "/admin/login")
		return
	}
	if !models.CheckPassword(admin.PasswordHash, form.Password) {
		flashError(c, "Invalid username or password")
		c.Redirect(http.StatusSeeOther, "/admin/login")
		return
	}

	sess := sessions.Default(c)
	sess.Set(sessionUserID, admin.ID)
	sess.Set(sessionUsername, admin.Username)
	sess.Set(sessionRole, string(admin.Role))
	sess.AddFlash("You are now logged in", "success")
	if err := sess.Save(); err != nil {
		s.log.Errorf("save session: %v", err)
	}
	c.Redirect(http.StatusSeeOther, "/admin")
}

// logout handles GET /admin/logout.
func (s *Server) logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	if err := sess.Save(); err != nil {
		s.log.Errorf("clear session: %v", err)
	}
	c.Redirect(http.StatusSeeOther, "/admin/login?logged_out=1")
}

// dashboard handles GET /admin.
func (s *Server) dashboard(c *gin.Context) {
	var products []models.Product
	if err := s.db.WithContext(c.Request.Context()).
		Order("id desc").Find(&products).Error; err != nil {
		s.log.Errorf("dashboard products: %v", err)
		flashError(c, "Could not load the product list.")
	}
	c.HTML(http.StatusOK, "dashboard.tmpl", s.adminData(c, ViewData{
		"Products": products,
	}))
}
