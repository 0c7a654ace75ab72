package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shoplite/internal/catalog"
)

// listProducts handles GET /api/products?page=&limit=.
func (s *Server) listProducts(c *gin.Context) {
	req := catalog.ParsePageRequest(c.Query("page"), c.Query("limit"))

	listing, err := s.catalog.List(c.Request.Context(), req)
	if err != nil {
		s.log.Errorf("list products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": listing.Products,
		"total":    listing.Total,
		"page":     req.Page,
		"limit":    req.Limit,
	})
}

// getProduct handles GET /api/products/:id.
func (s *Server) getProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	p, err := s.catalog.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		s.log.Errorf("get product %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, p)
}
