package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docproc-backend/internal/documents"
	"docproc-backend/internal/shared/config"
	"docproc-backend/internal/shared/metrics"
	"docproc-backend/internal/shared/server/middleware"
	"docproc-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config           config.Config
	DocumentsHandler *documents.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/", home)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	deps.DocumentsHandler.RegisterRoutes(api)

	return r
}

func home(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{
		"status":  "running",
		"message": "Document Processing API",
		"endpoints": gin.H{
			"POST /api/extract": "Upload and extract document info (invoice, PO, approval)",
			"GET /api/<type>":   "Get all documents by type (invoice, purchase_order, approval)",
		},
	})
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
