package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const healthTimeout = 3 * time.Second

// Health godoc
// @Summary Verifica a saude do servico e das dependencias
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		deps := gin.H{
			"postgres": pingPostgres(ctx, db),
			"redis":    pingRedis(ctx, rdb),
		}

		code := http.StatusOK
		for _, v := range deps {
			if v != "ok" {
				code = http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{"status": statusLabel(code), "deps": deps})
	}
}

func pingPostgres(ctx context.Context, db *gorm.DB) string {
	sqlDB, err := db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		return "indisponivel"
	}
	return "ok"
}

func pingRedis(ctx context.Context, rdb *redis.Client) string {
	if rdb.Ping(ctx).Err() != nil {
		return "indisponivel"
	}
	return "ok"
}

func statusLabel(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "degradado"
}
