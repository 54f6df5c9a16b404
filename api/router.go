package api

import (
	"github.com/Domenick1991/airadmin/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Registrar interface {
	Register(router *gin.RouterGroup)
}

// NewRouter builds the engine with request id, logging, recovery and actor
// middleware, then mounts every handler at the root.
func NewRouter(log *zap.Logger, actor domain.Actor, handlers ...Registrar) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), Logger(log), Recovery(log), WithActor(actor))

	root := router.Group("/")
	for _, h := range handlers {
		h.Register(root)
	}
	return router
}
