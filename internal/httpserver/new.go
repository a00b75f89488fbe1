package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github-asana-bridge/pkg/log"
)

// WebhookHandler is the delivery endpoint for GitHub events.
type WebhookHandler interface {
	HandleGitHubWebhook(c *gin.Context)
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	serviceName string
	version     string

	// Webhook
	webhookPath    string
	webhookHandler WebhookHandler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger         log.Logger
	Port           int
	Mode           string
	Environment    string
	ServiceName    string
	Version        string
	WebhookPath    string
	WebhookHandler WebhookHandler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:              logger,
		gin:            gin.New(),
		port:           cfg.Port,
		mode:           cfg.Mode,
		environment:    cfg.Environment,
		serviceName:    cfg.ServiceName,
		version:        cfg.Version,
		webhookPath:    cfg.WebhookPath,
		webhookHandler: cfg.WebhookHandler,
	}
	if srv.serviceName == "" {
		srv.serviceName = ServiceName
	}
	if srv.version == "" {
		srv.version = HealthVersion
	}
	if srv.webhookPath == "" {
		srv.webhookPath = DefaultWebhookPath
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.webhookHandler == nil {
		return errors.New("webhook handler is required")
	}
	return nil
}
