package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LJTian/MarketCards/internal/processor"
)

// CollectionSource 返回当前集合（缓存或新算出的）
type CollectionSource interface {
	Get(ctx context.Context) (processor.Collection, error)
}

type Server struct {
	source CollectionSource
}

func NewServer(source CollectionSource) *Server {
	return &Server{source: source}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)
	r.GET("/generate", s.generate)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// generate 原样返回集合：{ eventsData: [ { markets: [...] } ] }
func (s *Server) generate(c *gin.Context) {
	col, err := s.source.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, col)
}
