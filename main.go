package main

import (
	"fmt"
	"net/http"
	"time"

	"goblog/auth"
	"goblog/config"
	"goblog/controllers"
	"goblog/database"
	"goblog/repositories"
	"goblog/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sessionSweepInterval is how often expired sessions are reaped.
const sessionSweepInterval = time.Hour

// AccessLog is a container filter logging every request with a request id.
func AccessLog(logger *zap.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		startTime := time.Now()
		requestID := uuid.NewString()

		chain.ProcessFilter(req, resp)

		logger.Info("Request",
			zap.String("request_id", requestID),
			zap.String("client_ip", req.Request.RemoteAddr),
			zap.String("method", req.Request.Method),
			zap.String("path", req.Request.URL.Path),
			zap.Int("status_code", resp.StatusCode()),
			zap.Duration("latency", time.Since(startTime)),
			zap.String("user_agent", req.Request.UserAgent()),
		)
	}
}

// notFoundHandler turns go-restful's plain-text routing errors into the API
// error envelope.
func notFoundHandler(serviceError restful.ServiceError, request *restful.Request, response *restful.Response) {
	message := serviceError.Message
	if serviceError.Code == http.StatusNotFound {
		message = "Route not found"
	}
	_ = response.WriteHeaderAndJson(serviceError.Code, controllers.ErrorResponse{Error: message}, restful.MIME_JSON)
}

func main() {
	// Initialize configs
	config.InitConfig()
	cfg := config.AppConfig

	var logger *zap.Logger
	switch cfg.LogLevel {
	case "debug":
		logger, _ = zap.NewDevelopment()
	default:
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync() // Make sure the buffer is flushed before the program exits

	db, err := database.Init(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	sessions := auth.NewMemoryStore(cfg.SessionTTL)
	stopSweeping := sessions.StartSweeping(sessionSweepInterval)
	defer stopSweeping()

	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)

	userService := services.NewUserService(userRepo)
	postService := services.NewPostService(postRepo, userRepo)
	authService := services.NewAuthService(userRepo, sessions)

	authController := controllers.NewAuthController(authService, sessions, cfg.SessionTTL, logger)
	userController := controllers.NewUserController(userService, logger)
	postController := controllers.NewPostController(postService, logger)
	healthController := controllers.NewHealthController(db)

	container := restful.NewContainer()
	container.Filter(AccessLog(logger))
	container.ServiceErrorHandler(notFoundHandler)

	cors := restful.CrossOriginResourceSharing{
		AllowedHeaders: []string{"Content-Type", "Accept"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		CookiesAllowed: true,
		Container:      container,
	}
	container.Filter(cors.Filter)
	container.Filter(container.OPTIONSFilter)

	for _, ctl := range []interface {
		RegisterRoutes(ws *restful.WebService)
	}{authController, userController, postController, healthController} {
		ws := new(restful.WebService)
		ctl.RegisterRoutes(ws)
		container.Add(ws)
	}

	container.Add(restfulspec.NewOpenAPIService(restfulspec.Config{
		WebServices: container.RegisteredWebServices(),
		APIPath:     "/apidocs.json",
	}))

	mux := http.NewServeMux()
	mux.Handle("/api/", container)
	mux.Handle("/health", container)
	mux.Handle("/apidocs.json", container)
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Server listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
