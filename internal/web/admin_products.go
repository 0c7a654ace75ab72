package web

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shoplite/internal/models"
	"shoplite/internal/storage"
)

// adminProducts handles GET /admin/products.
func (s *Server) adminProducts(c *gin.Context) {
	var products []models.Product
	if err := s.db.WithContext(c.Request.Context()).
		Order("id desc").Find(&products).Error; err != nil {
		s.log.Errorf("admin products: %v", err)
		flashError(c, "Could not load the product list.")
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}
	c.HTML(http.StatusOK, "manage_products.tmpl", s.adminData(c, ViewData{
		"Products": products,
	}))
}

// addProductPage handles GET /admin/products/add.
func (s *Server) addProductPage(c *gin.Context) {
	c.HTML(http.StatusOK, "product_form.tmpl", s.adminData(c, ViewData{
		"Mode": "create",
		"Form": productForm{},
	}))
}

// addProduct handles POST /admin/products/add.
func (s *Server) addProduct(c *gin.Context) {
	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "product_form.tmpl", s.adminData(c, ViewData{
			"Mode":   "create",
			"Errors": formErrors(err),
			"Form":   form,
		}))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.HTML(http.StatusBadRequest, "product_form.tmpl", s.adminData(c, ViewData{
			"Mode":   "create",
			"Errors": []string{"Image is required"},
			"Form":   form,
		}))
		return
	}
	image, err := s.saveImage(file)
	if err != nil {
		c.HTML(http.StatusBadRequest, "product_form.tmpl", s.adminData(c, ViewData{
			"Mode":   "create",
			"Errors": []string{uploadErrorMessage(err)},
			"Form":   form,
		}))
		return
	}

	p := models.Product{
		Name:            form.Name,
		Price:           parsePrice(form.Price),
		Image:           image,
		Description:     form.Description,
		Characteristics: form.Characteristics,
	}
	if err := s.db.WithContext(c.Request.Context()).Create(&p).Error; err != nil {
		s.log.Errorf("create product: %v", err)
		if rmErr := s.images.Remove(image); rmErr != nil {
			s.log.Warnf("remove orphaned image %s: %v", image, rmErr)
		}
		flashError(c, "Could not add the product.")
		c.Redirect(http.StatusSeeOther, "/admin/products/add")
		return
	}

	flashSuccess(c, "Product added!")
	c.Redirect(http.StatusSeeOther, "/admin/products")
}

// editProductPage handles GET /admin/products/edit/:id.
func (s *Server) editProductPage(c *gin.Context) {
	p, ok := s.findProduct(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "product_form.tmpl", s.adminData(c, ViewData{
		"Mode":    "edit",
		"Product": p,
		"Form": productForm{
			Name:            p.Name,
			Price:           FormatPriceInput(p.Price),
			Description:     p.Description,
			Characteristics: p.Characteristics,
		},
	}))
}

// editProduct handles POST /admin/products/edit/:id. A new upload replaces
// the stored image; the old file is removed after the row update succeeds,
// best-effort. Without an upload the existing file stays untouched.
func (s *Server) editProduct(c *gin.Context) {
	p, ok := s.findProduct(c)
	if !ok {
		return
	}

	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "product_form.tmpl", s.adminData(c, ViewData{
			"Mode":    "edit",
			"Product": p,
			"Errors":  formErrors(err),
			"Form":    form,
		}))
		return
	}

	oldImage := ""
	if file, ferr := c.FormFile("image"); ferr == nil {
		image, err := s.saveImage(file)
		if err != nil {
			c.HTML(http.StatusBadRequest, "product_form.tmpl", s.adminData(c, ViewData{
				"Mode":    "edit",
				"Product": p,
				"Errors":  []string{uploadErrorMessage(err)},
				"Form":    form,
			}))
			return
		}
		oldImage = p.Image
		p.Image = image
	}

	p.Name = form.Name
	p.Price = parsePrice(form.Price)
	p.Description = form.Description
	p.Characteristics = form.Characteristics

	if err := s.db.WithContext(c.Request.Context()).Save(p).Error; err != nil {
		s.log.Errorf("update product %d: %v", p.ID, err)
		if oldImage != "" {
			if rmErr := s.images.Remove(p.Image); rmErr != nil {
				s.log.Warnf("remove orphaned image %s: %v", p.Image, rmErr)
			}
		}
		flashError(c, "Could not update the product.")
		c.Redirect(http.StatusSeeOther, "/admin/products/edit/"+c.Param("id"))
		return
	}
	if oldImage != "" {
		if err := s.images.Remove(oldImage); err != nil {
			s.log.Warnf("remove replaced image %s: %v", oldImage, err)
		}
	}

	flashSuccess(c, "Product updated!")
	c.Redirect(http.StatusSeeOther, "/admin/products")
}

// deleteProduct handles POST /admin/products/delete/:id. The row goes
// first; a failed file removal is logged and never undoes the row change.
func (s *Server) deleteProduct(c *gin.Context) {
	p, ok := s.findProduct(c)
	if !ok {
		return
	}

	if err := s.db.WithContext(c.Request.Context()).Delete(&models.Product{}, p.ID).Error; err != nil {
		s.log.Errorf("delete product %d: %v", p.ID, err)
		flashError(c, "Could not delete the product.")
		c.Redirect(http.StatusSeeOther, "/admin/products")
		return
	}
	if p.Image != "" {
		if err := s.images.Remove(p.Image); err != nil {
			s.log.Warnf("remove image %s of deleted product %d: %v", p.Image, p.ID, err)
		}
	}

	flashSuccess(c, "Product deleted!")
	c.Redirect(http.StatusSeeOther, "/admin/products")
}

// findProduct loads the product named by the :id param, redirecting with a
// flash message when it is missing or the store fails.
func (s *Server) findProduct(c *gin.Context) (*models.Product, bool) {
	var p models.Product
	if err := s.db.WithContext(c.Request.Context()).
		First(&p, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			flashError(c, "Product not found.")
		} else {
			s.log.Errorf("load product %s: %v", c.Param("id"), err)
			flashError(c, "Could not load the product.")
		}
		c.Redirect(http.StatusSeeOther, "/admin/products")
		return nil, false
	}
	return &p, true
}

func (s *Server) saveImage(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return s.images.Save(file.Filename, src)
}

func uploadErrorMessage(err error) string {
	if errors.Is(err, storage.ErrUnsupportedFormat) {
		return "Unsupported image format"
	}
	return "Could not save the uploaded image"
}
