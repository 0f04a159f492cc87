package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/blog/internal/utils"
	"golang.org/x/sync/errgroup"
)

const readyTimeout = 3 * time.Second

// Health 存活检查
func (h *Handler) Health(c *gin.Context) {
	utils.Success(c, StatusResponse{Status: "ok"})
}

// Ready 并发检查数据库和对象存储
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	for _, probe := range h.Probes {
		g.Go(func() error {
			if err := probe.Check(ctx); err != nil {
				return fmt.Errorf("%s: %w", probe.Name, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		utils.LogError(err, "就绪检查失败")
		utils.ServiceUnavailable(c, "")
		return
	}
	utils.Success(c, StatusResponse{Status: "ready"})
}
