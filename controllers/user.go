package controllers

import (
	"net/http"
	"strconv"

	"goblog/models"
	"goblog/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"go.uber.org/zap"
)

// UserController exposes user CRUD under /api/users.
type UserController struct {
	userService services.UserService
	logger      *zap.Logger
}

// NewUserController creates a new UserController instance
func NewUserController(userService services.UserService, logger *zap.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

// RegisterRoutes sets up the user-related routes for a go-restful WebService.
func (ctl *UserController) RegisterRoutes(ws *restful.WebService) {
	ws.Path("/api/users").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)

	ws.Route(ws.GET("").To(ctl.listUsersHandler).
		Doc("List users newest first, posts included").
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Writes([]models.User{}).
		Returns(http.StatusOK, "Users listed successfully", []models.User{}))

	ws.Route(ws.GET("/{user-id}").To(ctl.getUserHandler).
		Doc("Get user by ID").
		Param(ws.PathParameter("user-id", "Identifier of the user").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Writes(models.User{}).
		Returns(http.StatusOK, "User found", models.User{}).
		Returns(http.StatusNotFound, "User not found", ErrorResponse{}))

	ws.Route(ws.POST("").To(ctl.createUserHandler).
		Doc("Create a new user").
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Reads(services.CreateUserInput{}).
		Returns(http.StatusCreated, "User created successfully", models.User{}).
		Returns(http.StatusBadRequest, "Invalid input or email already taken", ErrorResponse{}))

	ws.Route(ws.PUT("/{user-id}").To(ctl.updateUserHandler).
		Doc("Update user by ID").
		Param(ws.PathParameter("user-id", "Identifier of the user to update").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Reads(services.UpdateUserInput{}).
		Writes(models.User{}).
		Returns(http.StatusOK, "User updated successfully", models.User{}).
		Returns(http.StatusBadRequest, "Invalid input or email already taken", ErrorResponse{}).
		Returns(http.StatusNotFound, "User not found", ErrorResponse{}))

	ws.Route(ws.DELETE("/{user-id}").To(ctl.deleteUserHandler).
		Doc("Delete user by ID, cascading to its posts").
		Param(ws.PathParameter("user-id", "Identifier of the user to delete").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Returns(http.StatusOK, "User deleted successfully", MessageResponse{}).
		Returns(http.StatusNotFound, "User not found", ErrorResponse{}))
}

// listUsersHandler (Handles GET /api/users)
func (ctl *UserController) listUsersHandler(request *restful.Request, response *restful.Response) {
	users, err := ctl.userService.ListUsers()
	if err != nil {
		writeError(response, err, ctl.logger)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, users, restful.MIME_JSON)
}

// getUserHandler (Handles GET /api/users/{user-id})
func (ctl *UserController) getUserHandler(request *restful.Request, response *restful.Response) {
	id, ok := parseID(request, response, "user-id")
	if !ok {
		return
	}

	user, err := ctl.userService.GetUser(id)
	if err != nil {
		writeError(response, err, ctl.logger)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, user, restful.MIME_JSON)
}

// createUserHandler (Handles POST /api/users)
func (ctl *UserController) createUserHandler(request *restful.Request, response *restful.Response) {
	input := new(services.CreateUserInput)
	if err := request.ReadEntity(input); err != nil {
		writeBadRequest(response, "Invalid request body")
		return
	}

	user, err := ctl.userService.CreateUser(input)
	if err != nil {
		writeError(response, err, ctl.logger)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusCreated, user, restful.MIME_JSON)
}

// updateUserHandler (Handles PUT /api/users/{user-id})
func (ctl *UserController) updateUserHandler(request *restful.Request, response *restful.Response) {
	id, ok := parseID(request, response, "user-id")
	if !ok {
		return
	}

	input := new(services.UpdateUserInput)
	if err := request.ReadEntity(input); err != nil {
		writeBadRequest(response, "Invalid request body")
		return
	}

	user, err := ctl.userService.UpdateUser(id, input)
	if err != nil {
		writeError(response, err, ctl.logger)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, user, restful.MIME_JSON)
}

// deleteUserHandler (Handles DELETE /api/users/{user-id})
func (ctl *UserController) deleteUserHandler(request *restful.Request, response *restful.Response) {
	id, ok := parseID(request, response, "user-id")
	if !ok {
		return
	}

	if err := ctl.userService.DeleteUser(id); err != nil {
		writeError(response, err, ctl.logger)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, MessageResponse{Message: "User deleted successfully"}, restful.MIME_JSON)
}

// parseID extracts a numeric path parameter, answering 400 on bad input.
func parseID(request *restful.Request, response *restful.Response, param string) (uint, bool) {
	raw := request.PathParameter(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid ID format")
		return 0, false
	}
	return uint(id), true
}
