package api

import (
	"context"
	"net/http"

	"github.com/Domenick1991/airadmin/internal/domain"
	"github.com/Domenick1991/airadmin/internal/service/dashboard"
	"github.com/gin-gonic/gin"
)

type HealthChecker interface {
	Check(ctx context.Context) domain.HealthReport
}

type DashboardHandler struct {
	dashboard dashboard.DashboardUseCase
	health    HealthChecker
}

func NewDashboardHandler(d dashboard.DashboardUseCase, health HealthChecker) *DashboardHandler {
	return &DashboardHandler{dashboard: d, health: health}
}

func (h *DashboardHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.summary)
	router.GET("/health", h.check)
}

func (h *DashboardHandler) summary(c *gin.Context) {
	d, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"dashboard": d})
}

func (h *DashboardHandler) check(c *gin.Context) {
	report := h.health.Check(c.Request.Context())

	code := http.StatusOK
	if report.Status != domain.HealthOK {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, report)
}
