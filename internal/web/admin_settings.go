package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shoplite/internal/models"
)

// settingsPage handles GET /admin/settings.
func (s *Server) settingsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "site_settings.tmpl", s.adminData(c, ViewData{
		"Settings": s.siteSettings(c),
	}))
}

// updateSettings handles POST /admin/settings/update with insert-or-update
// semantics on the single site_settings row.
func (s *Server) updateSettings(c *gin.Context) {
	var form settingsForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "site_settings.tmpl", s.adminData(c, ViewData{
			"Errors": formErrors(err),
			"Settings": models.SiteSetting{
				SiteTitle:       form.SiteTitle,
				SiteDescription: form.SiteDescription,
			},
		}))
		return
	}

	db := s.db.WithContext(c.Request.Context())
	var settings models.SiteSetting
	err := db.First(&settings).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		settings = models.SiteSetting{
			SiteTitle:       form.SiteTitle,
			SiteDescription: form.SiteDescription,
		}
		err = db.Create(&settings).Error
	case err == nil:
		settings.SiteTitle = form.SiteTitle
		settings.SiteDescription = form.SiteDescription
		err = db.Save(&settings).Error
	}
	if err != nil {
		s.log.Errorf("update site settings: %v", err)
		flashError(c, "Could not update the site settings.")
		c.Redirect(http.StatusSeeOther, "/admin/settings")
		return
	}

	flashSuccess(c, "Site settings updated.")
	c.Redirect(http.StatusSeeOther, "/admin/settings")
}

// changePasswordPage handles GET /admin/settings/change-password.
func (s *Server) changePasswordPage(c *gin.Context) {
	c.HTML(http.StatusOK, "change_password.tmpl", s.adminData(c, nil))
}

// changePassword handles POST /admin/settings/change-password.
func (s *Server) changePassword(c *gin.Context) {
	var form changePasswordForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "change_password.tmpl", s.adminData(c, ViewData{
			"Errors": formErrors(err),
		}))
		return
	}

	current, _ := currentAdmin(c)
	var admin models.Admin
	if err := s.db.WithContext(c.Request.Context()).
		First(&admin, "id = ?", current.ID).Error; err != nil {
		s.log.Errorf("load admin %d for password change: %v", current.ID, err)
		flashError(c, "Admin not found.")
		c.Redirect(http.StatusSeeOther, "/admin/settings/change-password")
		return
	}
	if !models.CheckPassword(admin.PasswordHash, form.CurrentPassword) {
		flashError(c, "Current password is incorrect.")
		c.Redirect(http.StatusSeeOther, "/admin/settings/change-password")
		return
	}

	hash, err := models.HashPassword(form.NewPassword)
	if err != nil {
		s.log.Errorf("hash new password: %v", err)
		flashError(c, "Could not update the password.")
		c.Redirect(http.StatusSeeOther, "/admin/settings/change-password")
		return
	}
	if err := s.db.WithContext(c.Request.Context()).Model(&admin).
		Update("password_hash", hash).Error; err != nil {
		s.log.Errorf("update password for admin %d: %v", admin.ID, err)
		flashError(c, "Could not update the password.")
		c.Redirect(http.StatusSeeOther, "/admin/settings/change-password")
		return
	}

	flashSuccess(c, "Password changed.")
	c.Redirect(http.StatusSeeOther, "/admin")
}
