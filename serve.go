package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-portfolio/api"
	"github.com/beka-birhanu/vinom-portfolio/api/blog"
	"github.com/beka-birhanu/vinom-portfolio/api/contact"
	api_i "github.com/beka-birhanu/vinom-portfolio/api/i"
	"github.com/beka-birhanu/vinom-portfolio/api/identity"
	"github.com/beka-birhanu/vinom-portfolio/api/mazeapi"
	"github.com/beka-birhanu/vinom-portfolio/config"
	"github.com/beka-birhanu/vinom-portfolio/content"
	dmn "github.com/beka-birhanu/vinom-portfolio/domain"
	"github.com/beka-birhanu/vinom-portfolio/infrastruture/logger"
	"github.com/beka-birhanu/vinom-portfolio/infrastruture/ratelimit"
	"github.com/beka-birhanu/vinom-portfolio/infrastruture/repo"
	"github.com/beka-birhanu/vinom-portfolio/infrastruture/token"
	"github.com/beka-birhanu/vinom-portfolio/infrastruture/web3forms"
	"github.com/beka-birhanu/vinom-portfolio/service"
	"github.com/beka-birhanu/vinom-portfolio/service/i"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const shutdownTimeout = 5 * time.Second

// Dependencies of the serve command.
var (
	mongoClient       *mongo.Client
	redisClient       *redis.Client
	messageRepo       i.MessageRepo
	rateLimiter       i.RateLimiter
	forwarder         i.Forwarder
	contactService    i.ContactService
	postStore         *content.Store
	postWatcher       *content.Watcher
	jwtTokenizer      i.Tokenizer
	authService       i.Authenticator
	authController    api_i.Controller
	blogController    api_i.Controller
	contactController api_i.Controller
	mazeController    api_i.Controller
	router            *api.Router
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func initMongo(ctx context.Context) {
	uri := config.Envs.MongoURI()
	if uri == "" {
		appLogger.Warning("DB_HOST not set, contact messages will not be archived")
		return
	}

	var err error
	mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initMessageRepo(ctx context.Context) {
	if mongoClient == nil {
		return
	}
	r := repo.NewMessageRepo(mongoClient, config.Envs.DBName, "messages")
	if err := r.EnsureIndexes(ctx); err != nil {
		appLogger.Warning(fmt.Sprintf("Creating message indexes: %v", err))
	}
	messageRepo = r
	appLogger.Info("Message repository initialized")
}

func initRateLimiter(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		appLogger.Warning("REDIS_ADDR not set, contact form is not rate limited")
		return
	}

	redisClient = redis.NewClient(&redis.Options{Addr: config.Envs.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}

	limiter, err := ratelimit.NewRedisWindow(redisClient, ratelimit.Options{
		Prefix: "contact",
		Limit:  config.Envs.ContactRateLimit,
		Window: config.Envs.ContactRateWindow,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating rate limiter: %v", err))
		os.Exit(1)
	}
	rateLimiter = limiter
	appLogger.Info("Rate limiter initialized")
}

func initForwarder() {
	client, err := web3forms.New(web3forms.Options{
		Endpoint:  config.Envs.Web3FormsEndpoint,
		AccessKey: config.Envs.Web3FormsKey,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating contact forwarder: %v", err))
		os.Exit(1)
	}
	forwarder = client
	appLogger.Info("Contact forwarder initialized")
}

func initContactService() {
	contactLogger, err := logger.New("CONTACT", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating contact logger: %v", err))
		os.Exit(1)
	}

	contactService, err = service.NewContactService(service.ContactOptions{
		Forwarder: forwarder,
		Repo:      messageRepo,
		Limiter:   rateLimiter,
		Logger:    contactLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating contact service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Contact service initialized")
}

func initPostStore() {
	postsLogger, err := logger.New("POSTS", config.ColorMagenta, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating posts logger: %v", err))
		os.Exit(1)
	}
	postsLogger.SetDebug(verbose)

	postStore = content.NewStore(config.Envs.PostsDir, postsLogger)
	if err := postStore.Load(); err != nil {
		appLogger.Error(fmt.Sprintf("Loading posts: %v", err))
		os.Exit(1)
	}

	postWatcher, err = postStore.Watch(content.DefaultDebounce)
	if err != nil {
		appLogger.Warning(fmt.Sprintf("Posts will not reload on change: %v", err))
	}
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	admin, err := dmn.NewAdmin(config.Envs.AdminUser, config.Envs.AdminPasswordHash)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Invalid admin credentials: %v", err))
		os.Exit(1)
	}

	authService, err = service.NewAuthService(admin, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initControllers() {
	authController = identity.NewIdentityServer(authService)
	blogController = blog.NewController(postStore, config.Envs.SiteURL)
	contactController = contact.NewController(contactService)
	mazeController = mazeapi.NewController(service.NewMazePreview(service.MaxPreviewSize), service.DefaultPreviewSize)
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Mode:                    config.Envs.GinMode,
		Controllers:             []api_i.Controller{authController, blogController, contactController, mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := config.Envs.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	initMongo(startCtx)
	defer func() {
		if mongoClient != nil {
			_ = mongoClient.Disconnect(context.Background())
		}
	}()
	initMessageRepo(startCtx)

	initRateLimiter(startCtx)
	defer func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	initForwarder()
	initContactService()
	initPostStore()
	defer func() {
		if postWatcher != nil {
			_ = postWatcher.Stop()
		}
	}()

	initJWTTokenizer()
	initAuthService()
	initControllers()
	initRouter(jwtTokenizer)

	srv := router.Server()
	errCh := make(chan error, 1)
	go func() {
		appLogger.Info(fmt.Sprintf("Listening on %s", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("starting server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}
