package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	csrf "github.com/utrack/gin-csrf"
	"gorm.io/gorm"

	"shoplite/internal/catalog"
	"shoplite/internal/config"
	"shoplite/internal/models"
	"shoplite/internal/storage"
)

// ProductSource is the read side of the catalog used by the public surface.
type ProductSource interface {
	List(ctx context.Context, req catalog.PageRequest) (catalog.Listing, error)
	Get(ctx context.Context, id uint) (*models.Product, error)
}

// Server wires the HTTP surface to its dependencies. Everything is
// constructed once in main and injected; handlers carry no ambient state.
type Server struct {
	db      *gorm.DB
	catalog ProductSource
	images  *storage.Store
	cfg     *config.Config
	log     *logrus.Logger
}

func NewServer(db *gorm.DB, src ProductSource, images *storage.Store, cfg *config.Config, log *logrus.Logger) *Server {
	return &Server{db: db, catalog: src, images: images, cfg: cfg, log: log}
}

// Router builds the gin engine: sessions, static mounts, templates and all
// public and admin routes.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(s.cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("shop_session", store))

	r.SetFuncMap(template.FuncMap{
		"price":      FormatPrice,
		"paragraphs": Paragraphs,
	})
	r.LoadHTMLGlob("internal/views/**/*.tmpl")

	r.Static("/uploads", s.images.BaseDir())
	r.Static("/static", "./static")

	// public pages
	r.GET("/", s.catalogPage)
	r.GET("/product/:id", s.productPage)

	// JSON API
	api := r.Group("/api")
	{
		api.GET("/products", s.listProducts)
		api.GET("/products/:id", s.getProduct)
	}

	// admin panel: no caching, CSRF token on every mutating form
	admin := r.Group("/admin")
	admin.Use(noStore())
	admin.Use(csrf.Middleware(csrf.Options{
		Secret: s.cfg.SessionSecret,
		ErrorFunc: func(c *gin.Context) {
			c.String(http.StatusBadRequest, "CSRF token mismatch")
			c.Abort()
		},
	}))

	admin.GET("/login", s.loginPage)
	admin.POST("/login", s.login)

	authed := admin.Group("")
	authed.Use(s.requireAdmin())
	{
		authed.GET("", s.dashboard)
		authed.GET("/logout", s.logout)

		authed.GET("/products", s.adminProducts)
		authed.GET("/products/add", s.addProductPage)
		authed.POST("/products/add", s.addProduct)
		authed.GET("/products/edit/:id", s.editProductPage)
		authed.POST("/products/edit/:id", s.editProduct)
		authed.POST("/products/delete/:id", s.deleteProduct)

		authed.GET("/settings", s.settingsPage)
		authed.POST("/settings/update", s.updateSettings)
		authed.GET("/settings/change-password", s.changePasswordPage)
		authed.POST("/settings/change-password", s.changePassword)
	}

	users := authed.Group("/users")
	users.Use(s.requireSuperAdmin())
	{
		users.GET("", s.adminUsers)
		users.GET("/add", s.addUserPage)
		users.POST("/add", s.addUser)
		users.GET("/edit/:id", s.editUserPage)
		users.POST("/edit/:id", s.editUser)
		users.POST("/delete/:id", s.deleteUser)
	}

	return r
}

// adminData builds the per-request template context for admin pages:
// authenticated identity, one-shot flash messages and the CSRF token.
func (s *Server) adminData(c *gin.Context, data ViewData) ViewData {
	if data == nil {
		data = ViewData{}
	}
	if admin, ok := currentAdmin(c); ok {
		data["Admin"] = admin
	}
	popFlashes(c, data)
	data["CSRFToken"] = csrf.GetToken(c)
	return data
}

// publicData builds the template context for public pages.
func (s *Server) publicData(c *gin.Context, data ViewData) ViewData {
	if data == nil {
		data = ViewData{}
	}
	data["Settings"] = s.siteSettings(c)
	return data
}

// siteSettings loads the single settings row; a missing row is fine.
func (s *Server) siteSettings(c *gin.Context) models.SiteSetting {
	var st models.SiteSetting
	if err := s.db.WithContext(c.Request.Context()).First(&st).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warnf("load site settings: %v", err)
		}
	}
	return st
}
