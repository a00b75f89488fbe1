package httpserver

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github-asana-bridge/internal/model"
	"github-asana-bridge/pkg/response"
)

// DefaultWebhookPath is where GitHub deliveries are accepted.
const DefaultWebhookPath = "/webhook/github"

func (srv HTTPServer) mapHandlers() {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerWebhookRoutes()
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(otelgin.Middleware(srv.serviceName))
	srv.gin.Use(gin.CustomRecovery(srv.handlePanic))

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "Server mode: production")
	} else {
		srv.l.Infof(ctx, "Server mode: %s", srv.environment)
		srv.gin.Use(gin.Logger())
	}
}

// handlePanic turns a panic into a 500 carrying its description.
func (srv HTTPServer) handlePanic(c *gin.Context, recovered any) {
	err, ok := recovered.(error)
	if !ok {
		err = fmt.Errorf("%v", recovered)
	}
	srv.l.Errorf(c.Request.Context(), "httpserver: panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, err)

	response.Internal(err).Write(c)
	c.Abort()
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

func (srv HTTPServer) registerWebhookRoutes() {
	srv.gin.POST(srv.webhookPath, srv.webhookHandler.HandleGitHubWebhook)
	srv.l.Infof(context.Background(), "GitHub webhook route registered at POST %s", srv.webhookPath)
}
