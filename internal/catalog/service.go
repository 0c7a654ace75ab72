package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"shoplite/internal/models"
)

// Listing defaults; absent or malformed query parameters fall back to these.
const (
	DefaultPage  = 1
	DefaultLimit = 12
)

// ErrNotFound is returned when a product id has no row.
var ErrNotFound = errors.New("product not found")

// PageRequest is a normalized page/limit pair. Build one with
// ParsePageRequest so the defaults are always applied.
type PageRequest struct {
	Page  int
	Limit int
}

// ParsePageRequest coerces raw query values into a valid PageRequest.
// Missing, non-numeric or non-positive values silently fall back to the
// defaults; no error is ever raised.
func ParsePageRequest(page, limit string) PageRequest {
	req := PageRequest{Page: DefaultPage, Limit: DefaultLimit}
	if n, err := strconv.Atoi(page); err == nil && n > 0 {
		req.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		req.Limit = n
	}
	return req
}

// Offset returns the row offset for the page, clamped so a huge but
// parseable page number cannot overflow into a negative offset.
func (r PageRequest) Offset() int {
	if r.Page <= 1 || r.Limit <= 0 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.Limit {
		return math.MaxInt
	}
	return (r.Page - 1) * r.Limit
}

// TotalPages returns ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Listing is one page of products plus the unpaginated row count.
type Listing struct {
	Products []models.Product
	Total    int64
}

// Service answers paginated product queries. Read-only.
type Service struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewService(db *gorm.DB, log *logrus.Logger) *Service {
	return &Service{db: db, log: log}
}

// List returns the products for the requested page, ordered by id
// descending, and the total row count. A page past the last valid page
// yields an empty product set, not an error.
func (s *Service) List(ctx context.Context, req PageRequest) (Listing, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		s.log.Errorf("catalog: count products: %v", err)
		return Listing{}, fmt.Errorf("count products: %w", err)
	}

	products := []models.Product{}
	if err := s.db.WithContext(ctx).
		Order("id desc").
		Limit(req.Limit).
		Offset(req.Offset()).
		Find(&products).Error; err != nil {
		s.log.Errorf("catalog: list products page=%d limit=%d: %v", req.Page, req.Limit, err)
		return Listing{}, fmt.Errorf("list products: %w", err)
	}

	return Listing{Products: products, Total: total}, nil
}

// Get returns a single product or ErrNotFound.
func (s *Service) Get(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.log.Errorf("catalog: get product %d: %v", id, err)
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}
