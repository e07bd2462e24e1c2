package http_swagger

import (
	"github.com/gin-gonic/gin"
	"github.com/humanbelnik/catalog/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Controller struct {
	host string
}

// New serves the API docs. host overrides the one baked into the spec so
// "Try it out" targets the running instance.
func New(host string) *Controller {
	return &Controller{host: host}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	if c.host != "" {
		docs.SwaggerInfo.Host = c.host
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}
