package webapp

import (
	"embed"
	"html/template"
	"net/http"
	"sync"

	appidentity "github.com/dracarys/library/internal/application/identity"
	"github.com/dracarys/library/internal/client"
	"github.com/dracarys/library/internal/domain/catalog"
	"github.com/dracarys/library/internal/domain/identity"
	"github.com/dracarys/library/internal/infrastructure/logger"
	"github.com/dracarys/library/internal/localstore"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// UserInfo is the logged-in user as kept in the local store, the same
// shape the login endpoint returns
type UserInfo = appidentity.LoginResponse

// Server renders the library web frontend. All data comes from the
// backend API through the typed client; the cart and the session live in
// the local store.
type Server struct {
	api    *client.Client
	store  *localstore.Store
	logger *zap.Logger

	mu         sync.Mutex
	lastReport *ReportData
}

// NewServer creates a Server
func NewServer(api *client.Client, store *localstore.Store, log *zap.Logger) *Server {
	return &Server{api: api, store: store, logger: log}
}

// Engine builds the gin engine with all pages mounted
func (s *Server) Engine() *gin.Engine {
	engine := gin.New()
	engine.Use(logger.GinMiddleware(s.logger))
	engine.Use(logger.Recovery(s.logger))

	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"deref": func(p *string) string {
			if p == nil {
				return ""
			}
			return *p
		},
	}).ParseFS(templateFS, "templates/*.tmpl"))
	engine.SetHTMLTemplate(tmpl)

	engine.GET("/", s.Landing)
	engine.GET("/login", s.LoginPage)
	engine.POST("/login", s.LoginSubmit)
	engine.GET("/logout", s.Logout)
	engine.GET("/home", s.Home)

	engine.GET("/cart", s.CartPage)
	engine.POST("/cart/add", s.CartAdd)
	engine.POST("/cart/remove-one", s.CartRemoveOne)
	engine.POST("/cart/remove-all", s.CartRemoveAll)
	engine.POST("/cart/confirm", s.CartConfirm)

	engine.GET("/myprofile", s.MyProfile)

	admin := engine.Group("/", s.requireAdmin())
	admin.GET("/admin/books", s.AdminBooks)
	admin.POST("/admin/books/create", s.AdminBookCreate)
	admin.POST("/admin/books/:id/update", s.AdminBookUpdate)
	admin.POST("/admin/books/:id/delete", s.AdminBookDelete)
	admin.GET("/admin/users", s.AdminUsers)
	admin.POST("/admin/users/create", s.AdminUserCreate)
	admin.POST("/admin/users/:id/delete", s.AdminUserDelete)
	admin.GET("/admin/borrows", s.AdminBorrows)
	admin.POST("/admin/borrows/:id/return", s.AdminBorrowReturn)
	admin.POST("/admin/borrows/:id/delete", s.AdminBorrowDelete)
	admin.GET("/dashboard", s.Dashboard)
	admin.GET("/report", s.ReportPage)
	admin.GET("/report/export", s.ReportExport)

	return engine
}

// currentUser reads the session from the local store; nil when logged out
func (s *Server) currentUser() *UserInfo {
	var info UserInfo
	found, err := s.store.Get(localstore.UserInfoKey, &info)
	if err != nil {
		s.logger.Warn("failed to read session", zap.Error(err))
		return nil
	}
	if !found {
		return nil
	}
	return &info
}

// requireAdmin gates the admin pages on the stored role. Anonymous
// visitors go to the login page; logged-in members get an access-denied
// notice. This gates navigation only, the API itself stays open.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := s.currentUser()
		if user == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if user.RoleID != identity.RoleAdmin {
			c.HTML(http.StatusForbidden, "denied.tmpl", gin.H{"Page": s.page()})
			c.Abort()
			return
		}
		c.Next()
	}
}

// cart reads the raw cart from the local store
func (s *Server) cart() []catalog.Book {
	var items []catalog.Book
	if _, err := s.store.Get(localstore.CartKey, &items); err != nil {
		s.logger.Warn("failed to read cart", zap.Error(err))
		return nil
	}
	return items
}

// saveCart writes the raw cart back
func (s *Server) saveCart(items []catalog.Book) {
	if err := s.store.Put(localstore.CartKey, items); err != nil {
		s.logger.Warn("failed to save cart", zap.Error(err))
	}
}

// pageData is what every template receives alongside its own fields
type pageData struct {
	User      *UserInfo
	CartCount int
}

func (s *Server) page() pageData {
	return pageData{
		User:      s.currentUser(),
		CartCount: CartCount(s.cart()),
	}
}
