package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type alertHandler struct {
	svc    AlertService
	logger *zap.Logger
}

func (h *alertHandler) send(c *gin.Context) {
	result, err := h.svc.Run(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	if !result.Sent() {
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("no products expiring on %s", result.TargetDate)})
		return
	}
	h.logger.Info("alerts processed", zap.String("target_date", result.TargetDate), zap.Int("count", len(result.Products)))
	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("alerts processed and email sent for %d products", len(result.Products)),
		"products": result.Products,
	})
}
