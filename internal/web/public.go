package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shoplite/internal/catalog"
)

// catalogPage renders the catalog shell; the product grid and pagination
// are driven client-side against /api/products.
func (s *Server) catalogPage(c *gin.Context) {
	c.HTML(http.StatusOK, "catalog.tmpl", s.publicData(c, nil))
}

// productPage renders the detail page for one product.
func (s *Server) productPage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusNotFound, "Product not found")
		return
	}

	p, err := s.catalog.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.String(http.StatusNotFound, "Product not found")
			return
		}
		s.log.Errorf("product page %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Server error")
		return
	}

	c.HTML(http.StatusOK, "product.tmpl", s.publicData(c, ViewData{
		"Product":      p,
		"DisplayPrice": FormatPrice(p.Price),
	}))
}
