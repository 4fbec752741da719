package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/atelierweb/site-backend/internal/admin"
	adminHttp "github.com/atelierweb/site-backend/internal/admin/http"
	"github.com/atelierweb/site-backend/internal/auth"
	"github.com/atelierweb/site-backend/internal/blog"
	blogHttp "github.com/atelierweb/site-backend/internal/blog/http"
	"github.com/atelierweb/site-backend/internal/contact"
	contactHttp "github.com/atelierweb/site-backend/internal/contact/http"
	"github.com/atelierweb/site-backend/internal/media"
	mediaHttp "github.com/atelierweb/site-backend/internal/media/http"
	"github.com/atelierweb/site-backend/internal/meeting"
	meetingHttp "github.com/atelierweb/site-backend/internal/meeting/http"
)

// RouterConfig carries the knobs the router needs beyond the services.
type RouterConfig struct {
	IsProduction bool
	// ProdOrigins lists the browser origins allowed in production.
	// Development allows localhost dev servers.
	ProdOrigins []string
	// HorizonDays bounds the public availability grid.
	HorizonDays int
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(
	cfg RouterConfig,
	adminService admin.Service,
	contactService contact.Service,
	meetingService meeting.Service,
	blogService blog.Service,
	mediaService media.Service,
	jwtManager *auth.JWTManager,
	logger *zap.Logger,
) *gin.Engine {

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // React dev server
			"http://localhost:5173", // Vite dev server
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(jwtManager)
	// superMiddleware: Further checks if the authenticated admin has super privileges.
	superMiddleware := RequireSuperAdmin(adminService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	adminHandler := adminHttp.NewHandler(adminService, contactService, meetingService, jwtManager, logger)
	contactHandler := contactHttp.NewHandler(contactService)
	meetingHandler := meetingHttp.NewHandler(meetingService, cfg.HorizonDays)
	blogHandler := blogHttp.NewHandler(blogService)
	mediaHandler := mediaHttp.NewHandler(mediaService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		contactHttp.RegisterPublicRoutes(v1, contactHandler)
		meetingHttp.RegisterPublicRoutes(v1, meetingHandler)
		blogHttp.RegisterPublicRoutes(v1, blogHandler)
		mediaHttp.RegisterPublicRoutes(v1, mediaHandler)

		adminHttp.RegisterRoutes(v1, adminHandler, authMiddleware, superMiddleware)
		adminArea := v1.Group("/admin")
		{
			contactHttp.RegisterAdminRoutes(adminArea, contactHandler, authMiddleware)
			meetingHttp.RegisterAdminRoutes(adminArea, meetingHandler, authMiddleware)
			blogHttp.RegisterAdminRoutes(adminArea, blogHandler, authMiddleware)
			mediaHttp.RegisterAdminRoutes(adminArea, mediaHandler, authMiddleware)
		}
	}

	return r
}
