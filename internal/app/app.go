package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haguru/shashin/config"
	"github.com/haguru/shashin/internal/interfaces"
	apimetrics "github.com/haguru/shashin/internal/metrics"
	"github.com/haguru/shashin/internal/middleware"
	mongoPhotoRepo "github.com/haguru/shashin/internal/photorepo/mongo"
	postgresPhotoRepo "github.com/haguru/shashin/internal/photorepo/postgres"
	"github.com/haguru/shashin/internal/photoservice"
	"github.com/haguru/shashin/internal/routes"
	"github.com/haguru/shashin/internal/server"
	"github.com/haguru/shashin/internal/storage"
	mongoUserRepo "github.com/haguru/shashin/internal/userrepo/mongo"
	postgresUserRepo "github.com/haguru/shashin/internal/userrepo/postgres"
	"github.com/haguru/shashin/internal/userservice"
	"github.com/haguru/shashin/pkg/databases/mongo"
	"github.com/haguru/shashin/pkg/databases/postgres"
	"github.com/haguru/shashin/pkg/metrics"
	"github.com/haguru/shashin/pkg/zerolog"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
)

var (
	StartupTimeout  = 30 * time.Second
	ShutdownTimeout = 15 * time.Second
)

// App represents the main application, containing server and configuration.
// It owns the database handle for the lifetime of the process.
type App struct {
	Server   interfaces.Server
	Config   *config.ServiceConfig
	Logger   interfaces.Logger
	dbClient interfaces.DBClient
}

type repositories struct {
	users  interfaces.UserRepository
	photos interfaces.PhotoRepository
}

type endpoint struct {
	method  string
	path    string
	handler func(http.ResponseWriter, *http.Request)
}

// NewApp creates and configures a new App instance.
func NewApp(configPath string) (*App, error) {
	cfg, err := config.LoadConfig(configPath, config.ENV_PATH)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	validator := structValidator.New()
	if err := cfg.Validate(validator); err != nil {
		return nil, err
	}

	logger := zerolog.NewZerologLogger(cfg.ServiceName)
	logger.SetLevel(cfg.LogLevel)

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	metricsInstance := app.initializeMetrics()

	ctx, cancel := context.WithTimeout(context.Background(), StartupTimeout)
	defer cancel()

	repos, err := app.initializeRepositories(ctx)
	if err != nil {
		return nil, err
	}

	fileStore, err := storage.NewFileStore(afero.NewOsFs(), cfg.Uploads.Dir, cfg.Uploads.PublicPrefix)
	if err != nil {
		app.closeDB(ctx)
		return nil, fmt.Errorf("failed to initialize upload store: %w", err)
	}

	userService := userservice.NewUserService(repos.users, fileStore, logger, cfg.Security.HashPasswords)
	photoService := photoservice.NewPhotoService(repos.photos, fileStore, logger)
	route := routes.NewRoute(metricsInstance, userService, photoService, app.dbClient, logger, validator,
		cfg.Uploads.MaxUploadBytes)

	app.Server = server.NewServer(cfg.ServiceName, cfg.Host, cfg.Port, logger)
	app.Server.Use(
		middleware.AccessLog(logger),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.RateLimitMiddleware(
			middleware.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst), metricsInstance),
	)
	app.Server.UseOnRoutes(middleware.Instrument(metricsInstance))

	if err := app.registerRoutes(route, metricsInstance, fileStore); err != nil {
		app.closeDB(ctx)
		return nil, err
	}

	if !cfg.Security.HashPasswords {
		logger.Warn("Passwords are stored in plaintext, set security.hash_passwords to store bcrypt hashes")
	}

	return app, nil
}

// Run serves requests until SIGINT or SIGTERM, then drains in-flight requests and closes the database.
func (app *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- app.Server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		closeErr := app.Close(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return closeErr
	case <-ctx.Done():
		app.Logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	shutdownErr := app.Server.Shutdown(shutdownCtx)
	if err := <-serveErr; err != nil {
		shutdownErr = errors.Join(shutdownErr, err)
	}
	return errors.Join(shutdownErr, app.Close(shutdownCtx))
}

// Close disconnects the database.
func (app *App) Close(ctx context.Context) error {
	if app.dbClient == nil {
		return nil
	}
	if err := app.dbClient.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect database: %w", err)
	}
	app.Logger.Info("Database disconnected")
	return nil
}

func (app *App) registerRoutes(route *routes.Route, metricsInstance interfaces.Metrics, fileStore interfaces.FileStore) error {
	metricsHandler := promhttp.HandlerFor(metricsInstance.GetRegistry(), promhttp.HandlerOpts{})

	endpoints := []endpoint{
		{http.MethodPost, routes.SignupRouteAPI, route.Signup},
		{http.MethodPost, routes.LoginRouteAPI, route.Login},
		{http.MethodPost, routes.RecoverLoginRouteAPI, route.RecoverLogin},
		{http.MethodPost, routes.ProfileUploadRouteAPI, route.UploadProfilePicture},
		{http.MethodGet, routes.PhotosRouteAPI, route.ListPhotos},
		{http.MethodPost, routes.PhotoUploadRouteAPI, route.UploadPhoto},
		{http.MethodPost, routes.PhotoLikeRouteAPI, route.ToggleLike},
		{http.MethodPut, routes.PhotoRouteAPI, route.EditPhoto},
		{http.MethodDelete, routes.PhotoRouteAPI, route.DeletePhoto},
		{http.MethodPost, routes.RenameUserRouteAPI, route.RenameUser},
		{http.MethodGet, routes.PublicProfileRouteAPI, route.GetPublicProfile},
		{http.MethodGet, routes.HealthRouteAPI, route.Health},
		{http.MethodGet, routes.MetricsRouteAPI, metricsHandler.ServeHTTP},
	}

	for _, e := range endpoints {
		if err := app.Server.AddRoute(e.method, e.path, e.handler); err != nil {
			return fmt.Errorf("failed to add route %s %s: %w", e.method, e.path, err)
		}
	}

	if err := app.Server.AddPrefix(app.Config.Uploads.PublicPrefix, fileStore.Handler()); err != nil {
		return fmt.Errorf("failed to add uploads prefix: %w", err)
	}

	return nil
}

func (app *App) initializeMetrics() interfaces.Metrics {
	appMetrics := metrics.NewMetrics(app.Config.ServiceName)
	apimetrics.RegisterAPIMetrics(appMetrics)
	return appMetrics
}

// initializeRepositories connects the configured database and builds both repositories on it.
func (app *App) initializeRepositories(ctx context.Context) (*repositories, error) {
	repos := &repositories{}

	switch app.Config.Database.Type {
	case config.DatabaseTypeMongo:
		client, err := mongo.NewMongoDB(app.Config.Database.MongoDB, app.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
		}
		if err := client.Connect(ctx, app.Config.Database.MongoDB.DSN); err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		app.dbClient = client

		if repos.users, err = mongoUserRepo.NewMongoUserRepository(client); err != nil {
			app.closeDB(ctx)
			return nil, fmt.Errorf("failed to initialize MongoDB user repository: %w", err)
		}
		if repos.photos, err = mongoPhotoRepo.NewMongoPhotoRepository(client); err != nil {
			app.closeDB(ctx)
			return nil, fmt.Errorf("failed to initialize MongoDB photo repository: %w", err)
		}

	case config.DatabaseTypePostgres:
		client := postgres.NewPostgresDatabaseClient(app.Config.Database.Postgres.Options, app.Logger)
		if err := client.Connect(ctx, app.Config.Database.Postgres.DSN); err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		app.dbClient = client

		var err error
		if repos.users, err = postgresUserRepo.NewPostgresUserRepository(client); err != nil {
			app.closeDB(ctx)
			return nil, fmt.Errorf("failed to initialize PostgreSQL user repository: %w", err)
		}
		if repos.photos, err = postgresPhotoRepo.NewPostgresPhotoRepository(client); err != nil {
			app.closeDB(ctx)
			return nil, fmt.Errorf("failed to initialize PostgreSQL photo repository: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported database type: %s", app.Config.Database.Type)
	}

	if err := repos.users.EnsureIndices(ctx); err != nil {
		app.closeDB(ctx)
		return nil, fmt.Errorf("failed to ensure user indices: %w", err)
	}
	if err := repos.photos.EnsureIndices(ctx); err != nil {
		app.closeDB(ctx)
		return nil, fmt.Errorf("failed to ensure photo indices: %w", err)
	}

	app.Logger.Info("Database ready", "type", app.Config.Database.Type)
	return repos, nil
}

func (app *App) closeDB(ctx context.Context) {
	if err := app.Close(ctx); err != nil {
		app.Logger.Error("Failed to close database", "error", err)
	}
}
