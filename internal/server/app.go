package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shashiranjanraj/catalog/app/controllers"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/app/routes"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/config"
	"github.com/shashiranjanraj/catalog/internal/kernel"
	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/router"
	"github.com/shashiranjanraj/catalog/pkg/storage"
)

// LogCollection receives log records when LOG_MONGO is on.
const LogCollection = "logs"

// App is the wired service: configuration, the database handle and the
// HTTP kernel built on top of them.
type App struct {
	Config      *config.Config
	DB          *database.Gateway // nil with DB_DRIVER=memory
	Credentials *auth.Credentials
	Disk        storage.Disk
	Kernel      *kernel.HTTPKernel

	logSink *logger.MongoHandler
}

// Boot connects to the database (unless the memory driver is selected),
// ensures indexes and builds the HTTP kernel.
func Boot(ctx context.Context, cfg *config.Config) (*App, error) {
	logger.Setup(cfg.AppEnv)
	a := &App{Config: cfg}

	if cfg.IsProduction() && cfg.InsecureSecret() {
		logger.Warn("JWT_SECRET is the built-in default; set a real secret in production")
	}

	var (
		users services.UserStore
		items services.ItemStore
		ping  kernel.Pinger
	)
	switch cfg.DBDriver {
	case "memory":
		logger.Warn("using in-memory store; data is lost on restart")
		users = repositories.NewMemoryUserRepository()
		items = repositories.NewMemoryItemRepository()
	case "", "mongo", "mongodb":
		db, err := Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.DB = db
		ping = db
		if err := db.EnsureIndexes(ctx, repositories.Indexes...); err != nil {
			_ = db.Close(context.Background())
			return nil, err
		}
		if cfg.LogMongo {
			a.logSink = logger.NewMongoHandler(db.Collection(LogCollection), slog.LevelInfo)
			logger.Setup(cfg.AppEnv, a.logSink)
		}
		users = repositories.NewUserRepository(db)
		items = repositories.NewItemRepository(db)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	disk, err := storage.New(cfg)
	if err != nil {
		a.Close(context.Background())
		return nil, err
	}
	a.Disk = disk
	a.Credentials = auth.NewCredentials(cfg.JWTSecret, cfg.JWTTTL, cfg.BcryptCost)

	opts := kernel.Options{
		APIPrefix:   cfg.APIPrefix,
		CORSOrigins: cfg.CORSOrigins,
		Health:      ping,
		API:         a.routeDeps(users, items),
	}
	if local, ok := disk.(*storage.LocalDisk); ok {
		opts.Uploads = local.Handler()
		opts.UploadsURL = local.BaseURL()
	}
	a.Kernel = kernel.NewHTTPKernel(opts)
	return a, nil
}

// Connect opens the Mongo gateway described by cfg.
func Connect(ctx context.Context, cfg *config.Config) (*database.Gateway, error) {
	db, err := database.Connect(ctx, database.Options{
		URI:            cfg.MongoURI,
		Database:       cfg.MongoDB,
		ConnectTimeout: 10 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("connected to MongoDB", "database", cfg.MongoDB)
	return db, nil
}

func (a *App) routeDeps(users services.UserStore, items services.ItemStore) routes.Deps {
	sessions := services.NewSessionService(users, a.Credentials)
	return routes.Deps{
		Items:    services.NewItemService(items),
		Users:    services.NewUserService(users, a.Credentials),
		Sessions: sessions,
		Profiles: services.NewProfileService(users, a.Credentials, a.Disk),
		Tokens:   a.Credentials,
		Cookie: controllers.CookieOptions{
			TTL:    a.Credentials.TTL(),
			Secure: a.Config.CookieSecure,
		},
		Limits: controllers.Limits{
			MaxBodyBytes:   a.Config.MaxBodyBytes,
			MaxUploadBytes: a.Config.MaxUploadBytes,
		},
	}
}

// Close flushes the log sink and disconnects from the database.
func (a *App) Close(ctx context.Context) {
	if a.logSink != nil {
		logger.Setup(a.Config.AppEnv)
		a.logSink.Close()
		a.logSink = nil
	}
	if a.DB != nil {
		if err := a.DB.Close(ctx); err != nil {
			logger.Error("database disconnect failed", "error", err)
		}
		a.DB = nil
	}
}

// Routes builds the kernel against throwaway memory stores and returns its
// route table. Nothing is connected or logged.
func Routes(cfg *config.Config) []router.RouteInfo {
	local := storage.NewLocal(cfg.StorageLocalRoot, cfg.StorageURL)
	a := &App{
		Config:      cfg,
		Credentials: auth.NewCredentials(cfg.JWTSecret, cfg.JWTTTL, cfg.BcryptCost),
		Disk:        local,
	}
	k := kernel.NewHTTPKernel(kernel.Options{
		APIPrefix:  cfg.APIPrefix,
		Uploads:    http.NotFoundHandler(),
		UploadsURL: local.BaseURL(),
		API:        a.routeDeps(repositories.NewMemoryUserRepository(), repositories.NewMemoryItemRepository()),
	})
	return k.Router().Routes()
}
