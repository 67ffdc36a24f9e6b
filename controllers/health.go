package controllers

import (
	"net/http"
	"time"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"gorm.io/gorm"
)

// HealthController answers the /health probe.
type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

// RegisterRoutes sets up the health route for a go-restful WebService.
func (ctl *HealthController) RegisterRoutes(ws *restful.WebService) {
	ws.Path("/health").Produces(restful.MIME_JSON)

	ws.Route(ws.GET("").To(ctl.healthHandler).
		Doc("Service health and database connectivity").
		Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
		Writes(HealthResponse{}).
		Returns(http.StatusOK, "Health status", HealthResponse{}))
}

// healthHandler (Handles GET /health)
func (ctl *HealthController) healthHandler(request *restful.Request, response *restful.Response) {
	database := "Disconnected"
	if sqlDB, err := ctl.db.DB(); err == nil {
		if err := sqlDB.PingContext(request.Request.Context()); err == nil {
			database = "Connected"
		}
	}

	_ = response.WriteHeaderAndJson(http.StatusOK, HealthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database:  database,
	}, restful.MIME_JSON)
}
