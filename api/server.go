// Package api exposes the pricing registry over HTTP.
package api

import (
	"net/http"

	"github.com/banachtech/quantmodeling/pricer"
	"github.com/gin-gonic/gin"
)

// Server serves HTTP requests for the pricing service.
type Server struct {
	registry   *pricer.Registry
	router     *gin.Engine
	apiKeyHash string
}

// NewServer creates a new HTTP server and sets up routing. apiKeyHash
// is the bcrypt hash of the accepted bearer key; empty disables auth.
func NewServer(registry *pricer.Registry, apiKeyHash string) *Server {
	server := &Server{registry: registry, apiKeyHash: apiKeyHash}
	server.setupRouter()
	return server
}

func (server *Server) setupRouter() {
	router := gin.Default()

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1").Use(server.rateLimit())
	if server.apiKeyHash != "" {
		v1 = v1.Use(server.authentication)
	}
	v1.GET("/engines", server.engines)
	v1.POST("/price/vanilla", server.priceVanilla)
	v1.POST("/price/asian", server.priceAsian)
	v1.POST("/price/future", server.priceFuture)
	v1.POST("/price/zcb", server.priceZeroCouponBond)
	v1.POST("/price/frb", server.priceFixedRateBond)

	server.router = router
}

// Start runs the HTTP server on a specific address.
func (server *Server) Start(address string) error {
	return server.router.Run(address)
}

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}
