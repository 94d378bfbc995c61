package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/models"
	"github.com/rs/zerolog"
)

const APIDocsPath = "/apidocs.json"

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/decide").
			To(handler.Decide).
			// Any content type reaches the handler; the body is always decoded as JSON.
			Consumes(restful.MIME_JSON, "*/*").
			Doc("Ask the three council members and return the majority decision").
			Metadata(restfulspec.KeyOpenAPITags, []string{"decide"}).
			Reads(models.DecisionRequest{}).
			Writes(models.DecisionResult{}).
			Returns(200, "OK", models.DecisionResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}

// RegisterOpenAPI serves the OpenAPI document for every web service already added.
func RegisterOpenAPI(container *restful.Container) {
	config := restfulspec.Config{
		WebServices: container.RegisteredWebServices(),
		APIPath:     APIDocsPath,
	}
	container.Add(restfulspec.NewOpenAPIService(config))
}

// NewContainer builds the REST container with request id, logging and panic
// recovery filters installed.
func NewContainer(handler *Handler, logger *zerolog.Logger) *restful.Container {
	container := restful.NewContainer()
	container.Filter(middleware.RequestID)
	container.Filter(middleware.Logger(logger))
	container.Filter(middleware.RecoverPanic(logger))

	RegisterRoutes(container, handler)
	RegisterOpenAPI(container)

	return container
}
