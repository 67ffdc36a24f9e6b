package controllers

import (
	"net/http"
	"time"

	"goblog/auth"
	"goblog/models"
	"goblog/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"go.uber.org/zap"
)

// AuthController exposes the session lifecycle under /api/auth.
type AuthController struct {
	authService services.AuthService
	sessions    auth.SessionStore
	sessionTTL  time.Duration
	logger      *zap.Logger
}

// NewAuthController creates a new AuthController instance
func NewAuthController(authService services.AuthService, sessions auth.SessionStore, sessionTTL time.Duration, logger *zap.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

// AuthResponse wraps the user record returned by register and login.
type AuthResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// MeResponse wraps the user record returned by /me.
type MeResponse struct {
	User *models.User `json:"user"`
}

// RegisterRoutes sets up the auth routes for a go-restful WebService.
func (ctl *AuthController) RegisterRoutes(ws *restful.WebService) {
	ws.Path("/api/auth").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)

	ws.Route(ws.POST("/register").To(ctl.registerHandler).
		Doc("Register a new user and open a session").
		Metadata(restfulspec.KeyOpenAPITags, []string{"auth"}).
		Reads(services.RegisterInput{}).
		Returns(http.StatusCreated, "User registered successfully", AuthResponse{}).
		Returns(http.StatusBadRequest, "Invalid input or email already taken", ErrorResponse{}))

	ws.Route(ws.POST("/login").To(ctl.loginHandler).
		Doc("Log in with email and password").
		Metadata(restfulspec.KeyOpenAPITags, []string{"auth"}).
		Reads(services.LoginInput{}).
		Returns(http.StatusOK, "Login successful", AuthResponse{}).
		Returns(http.StatusBadRequest, "Missing email or password", ErrorResponse{}).
		Returns(http.StatusUnauthorized, "Invalid credentials", ErrorResponse{}))

	ws.Route(ws.POST("/logout").To(ctl.logoutHandler).
		Doc("Destroy the current session").
		Metadata(restfulspec.KeyOpenAPITags, []string{"auth"}).
		Returns(http.StatusOK, "Logout successful", MessageResponse{}).
		Returns(http.StatusInternalServerError, "Session store failure", ErrorResponse{}))

	ws.Route(ws.GET("/me").Filter(auth.SessionFilter(ctl.sessions)).To(ctl.meHandler).
		Doc("Return the currently authenticated user").
		Metadata(restfulspec.KeyOpenAPITags, []string{"auth"}).
		Writes(MeResponse{}).
		Returns(http.StatusOK, "Current user", MeResponse{}).
		Returns(http.StatusUnauthorized, "Not authenticated", ErrorResponse{}).
		Returns(http.StatusNotFound, "User record no longer exists", ErrorResponse{}))
}

// registerHandler (Handles POST /api/auth/register)
func (ctl *AuthController) registerHandler(request *restful.Request, response *restful.Response) {
	input := new(services.RegisterInput)
	if err := request.ReadEntity(input); err != nil {
		writeBadRequest(response, "Invalid request body")
		return
	}

	user, token, err := ctl.authService.Register(input)
	if err != nil {
		writeError(response, err, ctl.logger)
		return
	}

	auth.WriteSessionCookie(response.ResponseWriter, token, ctl.sessionTTL)
	_ = response.WriteHeaderAndJson(http.StatusCreated, AuthResponse{
		Message: "User registered successfully",
		User:    user,
	}, restful.MIME_JSON)
}

// loginHandler (Handles POST /api/auth/login)
func (ctl *AuthController) loginHandler(request *restful.Request, response *restful.Response) {
	input := new(services.LoginInput)
	if err := request.ReadEntity(input); err != nil {
		writeBadRequest(response, "Invalid request body")
		return
	}

	user, token, err := ctl.authService.Login(input)
	if err != nil {
		writeError(response, err, ctl.logger)
		return
	}

	auth.WriteSessionCookie(response.ResponseWriter, token, ctl.sessionTTL)
	_ = response.WriteHeaderAndJson(http.StatusOK, AuthResponse{
		Message: "Login successful",
		User:    user,
	}, restful.MIME_JSON)
}

// logoutHandler (Handles POST /api/auth/logout)
func (ctl *AuthController) logoutHandler(request *restful.Request, response *restful.Response) {
	token, _ := auth.ReadSessionCookie(request.Request)
	if err := ctl.authService.Logout(token); err != nil {
		ctl.logger.Error("failed to destroy session", zap.Error(err))
		_ = response.WriteHeaderAndJson(http.StatusInternalServerError, ErrorResponse{Error: "Failed to logout"}, restful.MIME_JSON)
		return
	}

	auth.ClearSessionCookie(response.ResponseWriter)
	_ = response.WriteHeaderAndJson(http.StatusOK, MessageResponse{Message: "Logout successful"}, restful.MIME_JSON)
}

// meHandler (Handles GET /api/auth/me). The SessionFilter has already
// resolved the cookie; the service re-fetches the user record.
func (ctl *AuthController) meHandler(request *restful.Request, response *restful.Response) {
	token, _ := request.Attribute(auth.TokenAttribute).(string)

	user, err := ctl.authService.CurrentUser(token)
	if err != nil {
		writeError(response, err, ctl.logger)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusOK, MeResponse{User: user}, restful.MIME_JSON)
}
