package web

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("price", validPrice)
	}
}

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type productForm struct {
	Name            string `form:"name" binding:"required"`
	Price           string `form:"price" binding:"required,price"`
	Description     string `form:"description" binding:"required"`
	Characteristics string `form:"characteristics" binding:"required"`
}

type adminAddForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required,min=6"`
	Role     string `form:"role" binding:"required,oneof=admin superadmin"`
}

type adminEditForm struct {
	Username string `form:"username" binding:"required"`
	Role     string `form:"role" binding:"required,oneof=admin superadmin"`
}

type settingsForm struct {
	SiteTitle       string `form:"site_title" binding:"required"`
	SiteDescription string `form:"site_description" binding:"required"`
}

type changePasswordForm struct {
	CurrentPassword string `form:"current_password" binding:"required"`
	NewPassword     string `form:"new_password" binding:"required,min=6"`
	ConfirmPassword string `form:"confirm_new_password" binding:"required,eqfield=NewPassword"`
}

// validPrice accepts a decimal with either comma or dot separator.
func validPrice(fl validator.FieldLevel) bool {
	raw := strings.ReplaceAll(fl.Field().String(), ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	return err == nil && v >= 0
}

// parsePrice returns the numeric value of an already validated price field.
func parsePrice(raw string) float64 {
	v, _ := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	return v
}

// formErrors converts a binding failure into user-facing field messages
// for inline rendering on the originating form.
func formErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid form submission"}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	field := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "eqfield":
		return "Passwords do not match"
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "price":
		return "Price must be a number"
	}
	return field + " is invalid"
}

func fieldLabel(field string) string {
	switch field {
	case "SiteTitle":
		return "Site title"
	case "SiteDescription":
		return "Site description"
	case "CurrentPassword":
		return "Current password"
	case "NewPassword":
		return "New password"
	case "ConfirmPassword":
		return "Password confirmation"
	default:
		return field
	}
}
