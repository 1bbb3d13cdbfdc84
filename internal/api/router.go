// Package api exposes the REST read path, the push ingestion endpoint and the viewer websocket.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/openshift-assisted/machine-monitor/internal/config"
	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/internal/domain/repo"
	"github.com/openshift-assisted/machine-monitor/internal/hub"
	"github.com/openshift-assisted/machine-monitor/internal/ingestion"
	"github.com/openshift-assisted/machine-monitor/internal/query"
	"github.com/openshift-assisted/machine-monitor/internal/status"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline"
)

// Dependencies groups what the handlers read from and write to.
// Ingest and History may be nil, their routes then answer 503.
type Dependencies struct {
	Facade          query.Facade
	Criteria        *status.Criteria
	Refresher       ingestion.Refresher
	History         repo.StatusHistoryReader
	Ingest          pipeline.Processing[entity.InboundSnapshot]
	ErrorProcessing pipeline.ErrorProcessing
	Hub             *hub.Hub
	Clock           clockwork.Clock
}

type server struct {
	ctx      context.Context
	deps     Dependencies
	conf     config.Server
	validate *validator.Validate
	upgrader websocket.Upgrader
}

// NewRouter builds the gin engine. ctx bounds the lifetime of viewer sessions.
func NewRouter(ctx context.Context, conf config.Server, deps Dependencies) *gin.Engine {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}

	s := server{
		ctx:      ctx,
		deps:     deps,
		conf:     conf,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")

				return origin == "" || originAllowed(conf.AllowedOrigins, origin)
			},
		},
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(deps.Clock), cors(conf.AllowedOrigins))

	router.GET("/", s.root)
	router.GET("/healthz", s.healthz)
	router.GET("/ws", s.websocket)

	api := router.Group("/api")
	api.GET("/machines", s.listMachines)
	api.GET("/machines/:id", s.getMachine)
	api.GET("/machines/:id/history", s.getHistory)
	api.POST("/machines/:id/status",
		newRateLimiter(conf.RateLimit, deps.Clock).middleware(),
		bearerAuth(conf.APIKey),
		s.pushStatus,
	)
	api.GET("/criteria", s.getCriteria)
	api.PUT("/criteria", bearerAuth(conf.APIKey), s.putCriteria)

	return router
}

func (s server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Global Machine Monitor API", "status": "running"})
}

func (s server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"machines": len(s.deps.Facade.ListAll()),
		"viewers":  s.deps.Hub.Count(),
	})
}

func (s server) websocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader already answered
		return
	}

	hub.NewWebsocketSession(conn, s.conf.Hub).Run(s.ctx, s.deps.Hub)
}
