package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shoplite/internal/models"
)

// adminUsers handles GET /admin/users.
func (s *Server) adminUsers(c *gin.Context) {
	var admins []models.Admin
	if err := s.db.WithContext(c.Request.Context()).
		Order("id desc").Find(&admins).Error; err != nil {
		s.log.Errorf("admin users: %v", err)
		flashError(c, "Could not load the admin list.")
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}
	c.HTML(http.StatusOK, "manage_users.tmpl", s.adminData(c, ViewData{
		"Admins": admins,
	}))
}

// addUserPage handles GET /admin/users/add.
func (s *Server) addUserPage(c *gin.Context) {
	c.HTML(http.StatusOK, "user_form.tmpl", s.adminData(c, ViewData{
		"Mode": "create",
		"Form": adminAddForm{},
	}))
}

// addUser handles POST /admin/users/add.
func (s *Server) addUser(c *gin.Context) {
	var form adminAddForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "user_form.tmpl", s.adminData(c, ViewData{
			"Mode":   "create",
			"Errors": formErrors(err),
			"Form":   form,
		}))
		return
	}

	var count int64
	if err := s.db.WithContext(c.Request.Context()).Model(&models.Admin{}).
		Where("username = ?", form.Username).Count(&count).Error; err != nil {
		s.log.Errorf("check admin username: %v", err)
		flashError(c, "Could not add the admin.")
		c.Redirect(http.StatusSeeOther, "/admin/users/add")
		return
	}
	if count > 0 {
		c.HTML(http.StatusBadRequest, "user_form.tmpl", s.adminData(c, ViewData{
			"Mode":   "create",
			"Errors": []string{"Username taken"},
			"Form":   form,
		}))
		return
	}

	hash, err := models.HashPassword(form.Password)
	if err != nil {
		s.log.Errorf("hash admin password: %v", err)
		flashError(c, "Could not add the admin.")
		c.Redirect(http.StatusSeeOther, "/admin/users/add")
		return
	}
	admin := models.Admin{
		Username:     form.Username,
		PasswordHash: hash,
		Role:         models.Role(form.Role),
	}
	if err := s.db.WithContext(c.Request.Context()).Create(&admin).Error; err != nil {
		s.log.Errorf("create admin: %v", err)
		flashError(c, "Could not add the admin.")
		c.Redirect(http.StatusSeeOther, "/admin/users/add")
		return
	}

	flashSuccess(c, "Admin added!")
	c.Redirect(http.StatusSeeOther, "/admin/users")
}

// editUserPage handles GET /admin/users/edit/:id.
func (s *Server) editUserPage(c *gin.Context) {
	admin, ok := s.findAdmin(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "user_form.tmpl", s.adminData(c, ViewData{
		"Mode": "edit",
		"User": admin,
		"Form": adminAddForm{Username: admin.Username, Role: string(admin.Role)},
	}))
}

// editUser handles POST /admin/users/edit/:id. Passwords are not changed
// here; accounts change their own via the change-password flow.
func (s *Server) editUser(c *gin.Context) {
	admin, ok := s.findAdmin(c)
	if !ok {
		return
	}

	var form adminEditForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "user_form.tmpl", s.adminData(c, ViewData{
			"Mode":   "edit",
			"User":   admin,
			"Errors": formErrors(err),
			"Form":   adminAddForm{Username: form.Username, Role: form.Role},
		}))
		return
	}

	admin.Username = form.Username
	admin.Role = models.Role(form.Role)
	if err := s.db.WithContext(c.Request.Context()).Save(admin).Error; err != nil {
		s.log.Errorf("update admin %d: %v", admin.ID, err)
		flashError(c, "Could not update the admin.")
		c.Redirect(http.StatusSeeOther, "/admin/users/edit/"+c.Param("id"))
		return
	}

	flashSuccess(c, "Admin updated!")
	c.Redirect(http.StatusSeeOther, "/admin/users")
}

// deleteUser handles POST /admin/users/delete/:id.
func (s *Server) deleteUser(c *gin.Context) {
	admin, ok := s.findAdmin(c)
	if !ok {
		return
	}
	if current, _ := currentAdmin(c); current.ID == admin.ID {
		flashError(c, "You cannot delete your own account.")
		c.Redirect(http.StatusSeeOther, "/admin/users")
		return
	}

	if err := s.db.WithContext(c.Request.Context()).Delete(&models.Admin{}, admin.ID).Error; err != nil {
		s.log.Errorf("delete admin %d: %v", admin.ID, err)
		flashError(c, "Could not delete the admin.")
		c.Redirect(http.StatusSeeOther, "/admin/users")
		return
	}

	flashSuccess(c, "Admin deleted!")
	c.Redirect(http.StatusSeeOther, "/admin/users")
}

func (s *Server) findAdmin(c *gin.Context) (*models.Admin, bool) {
	var admin models.Admin
	if err := s.db.WithContext(c.Request.Context()).
		First(&admin, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			flashError(c, "Admin not found.")
		} else {
			s.log.Errorf("load admin %s: %v", c.Param("id"), err)
			flashError(c, "Could not load the admin.")
		}
		c.Redirect(http.StatusSeeOther, "/admin/users")
		return nil, false
	}
	return &admin, true
}
