package controllers

import (
	"net/http"

	"goblog/models"
	"goblog/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"go.uber.org/zap"
)

// PostController exposes post CRUD under /api/posts.
type PostController struct {
	postService services.PostService
	logger      *zap.Logger
}

// NewPostController creates a new PostController instance
func NewPostController(postService services.PostService, logger *zap.Logger) *PostController {
	return &PostController{postService: postService, logger: logger}
}

// RegisterRoutes sets up the post-related routes for a go-restful WebService.
func (ctl *PostController) RegisterRoutes(ws *restful.WebService) {
	ws.Path("/api/posts").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)

	ws.Route(ws.GET("").To(ctl.listPostsHandler).
		Doc("List posts newest first, authors included").
		Metadata(restfulspec.KeyOpenAPITags, []string{"posts"}).
		Writes([]models.Post{}).
		Returns(http.StatusOK, "Posts listed successfully", []models.Post{}))

	ws.Route(ws.GET("/{post-id}").To(ctl.getPostHandler).
		Doc("Get post by ID").
		Param(ws.PathParameter("post-id", "Identifier of the post").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"posts"}).
		Writes(models.Post{}).
		Returns(http.StatusOK, "Post found", models.Post{}).
		Returns(http.StatusNotFound, "Post not found", ErrorResponse{}))

	ws.Route(ws.POST("").To(ctl.createPostHandler).
		Doc("Create a new post for an existing user").
		Metadata(restfulspec.KeyOpenAPITags, []string{"posts"}).
		Reads(services.CreatePostInput{}).
		Returns(http.StatusCreated, "Post created successfully", models.Post{}).
		Returns(http.StatusBadRequest, "Missing title or user_id", ErrorResponse{}))

	ws.Route(ws.PUT("/{post-id}").To(ctl.updatePostHandler).
		Doc("Update post by ID").
		Param(ws.PathParameter("post-id", "Identifier of the post to update").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"posts"}).
		Reads(services.UpdatePostInput{}).
		Writes(models.Post{}).
		Returns(http.StatusOK, "Post updated successfully", models.Post{}).
		Returns(http.StatusNotFound, "Post not found", ErrorResponse{}))

	ws.Route(ws.DELETE("/{post-id}").To(ctl.deletePostHandler).
		Doc("Delete post by ID").
		Param(ws.PathParameter("post-id", "Identifier of the post to delete").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"posts"}).
		Returns(http.StatusOK, "Post deleted successfully", MessageResponse{}).
		Returns(http.StatusNotFound, "Post not found", ErrorResponse{}))
}

// listPostsHandler (Handles GET /api/posts)
func (ctl *PostController) listPostsHandler(request *restful.Request, response *restful.Response) {
	posts, err := ctl.postService.ListPosts()
	if err != nil {
		writeError(response, err, ctl.logger)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, posts, restful.MIME_JSON)
}

// getPostHandler (Handles GET /api/posts/{post-id})
func (ctl *PostController) getPostHandler(request *restful.Request, response *restful.Response) {
	id, ok := parseID(request, response, "post-id")
	if !ok {
		return
	}

	post, err := ctl.postService.GetPost(id)
	if err != nil {
		writeError(response, err, ctl.logger)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, post, restful.MIME_JSON)
}

// createPostHandler (Handles POST /api/posts)
func (ctl *PostController) createPostHandler(request *restful.Request, response *restful.Response) {
	input := new(services.CreatePostInput)
	if err := request.ReadEntity(input); err != nil {
		writeBadRequest(response, "Invalid request body")
		return
	}

	post, err := ctl.postService.CreatePost(input)
	if err != nil {
		writeError(response, err, ctl.logger)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusCreated, post, restful.MIME_JSON)
}

// updatePostHandler (Handles PUT /api/posts/{post-id})
func (ctl *PostController) updatePostHandler(request *restful.Request, response *restful.Response) {
	id, ok := parseID(request, response, "post-id")
	if !ok {
		return
	}

	input := new(services.UpdatePostInput)
	if err := request.ReadEntity(input); err != nil {
		writeBadRequest(response, "Invalid request body")
		return
	}

	post, err := ctl.postService.UpdatePost(id, input)
	if err != nil {
		writeError(response, err, ctl.logger)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, post, restful.MIME_JSON)
}

// deletePostHandler (Handles DELETE /api/posts/{post-id})
func (ctl *PostController) deletePostHandler(request *restful.Request, response *restful.Response) {
	id, ok := parseID(request, response, "post-id")
	if !ok {
		return
	}

	if err := ctl.postService.DeletePost(id); err != nil {
		writeError(response, err, ctl.logger)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, MessageResponse{Message: "Post deleted successfully"}, restful.MIME_JSON)
}
