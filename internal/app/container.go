package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/atelierweb/site-backend/internal/admin"
	"github.com/atelierweb/site-backend/internal/api"
	"github.com/atelierweb/site-backend/internal/auth"
	"github.com/atelierweb/site-backend/internal/blog"
	"github.com/atelierweb/site-backend/internal/contact"
	"github.com/atelierweb/site-backend/internal/mailer"
	"github.com/atelierweb/site-backend/internal/media"
	"github.com/atelierweb/site-backend/internal/meeting"
	"github.com/atelierweb/site-backend/internal/pkg/clock"
	"github.com/atelierweb/site-backend/internal/pkg/storage"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	HorizonDays  int
	MediaDir     string
	Mail         mailer.Config
	Logger       *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router       *gin.Engine
	JWTManager   *auth.JWTManager
	AdminService admin.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	clk := clock.System()
	notifier := mailer.New(cfg.Mail, cfg.Logger)

	mediaStore, err := storage.NewLocalStorage(cfg.MediaDir)
	if err != nil {
		return nil, fmt.Errorf("init media storage: %w", err)
	}

	// Admin Module
	adminRepo := admin.NewPgxRepository(cfg.DBPool)
	adminService := admin.NewService(adminRepo, passwordHasher, clk, cfg.Logger)

	// Contact Module
	contactRepo := contact.NewPgxRepository(cfg.DBPool)
	contactService := contact.NewService(contactRepo, notifier, cfg.Logger)

	// Meeting Module
	meetingRepo := meeting.NewPgxRepository(cfg.DBPool)
	meetingService := meeting.NewService(meetingRepo, notifier, clk, cfg.Logger)

	// Blog Module
	postRepo := blog.NewPgxPostRepository(cfg.DBPool)
	topicRepo := blog.NewPgxTopicRepository(cfg.DBPool)
	blogService := blog.NewService(postRepo, topicRepo, clk)

	// Media Module
	mediaRepo := media.NewPgxRepository(cfg.DBPool)
	mediaService := media.NewService(mediaRepo, mediaStore, cfg.Logger)

	// Router
	router := api.NewRouter(
		api.RouterConfig{
			IsProduction: cfg.IsProduction,
			ProdOrigins:  splitOrigins(cfg.ProdOrigins),
			HorizonDays:  cfg.HorizonDays,
		},
		adminService,
		contactService,
		meetingService,
		blogService,
		mediaService,
		jwtManager,
		cfg.Logger,
	)

	return &Container{
		Router:       router,
		JWTManager:   jwtManager,
		AdminService: adminService,
	}, nil
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
