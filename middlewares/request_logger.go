package middlewares

import (
	"errors"
	"time"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/pkg/metrics"
	"etkinlik.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// statusOf handler hatası dönmüşse hata handler'ının yazacağı durum kodunu tahmin eder.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// RequestLogger her isteği request id ile birlikte zap'e loglar.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := statusOf(c, err)

		fields := []zap.Field{
			zap.String("request_id", requestID(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		if identity := utils.CurrentIdentity(c); identity != nil {
			fields = append(fields, zap.Uint("member_id", identity.MemberID))
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			configslog.Log.Error("HTTP isteği", fields...)
		case status >= fiber.StatusBadRequest:
			configslog.Log.Warn("HTTP isteği", fields...)
		default:
			configslog.Log.Info("HTTP isteği", fields...)
		}
		return err
	}
}

// Metrics istek sayısını ve süresini rota şablonu bazında kaydeder.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		metrics.ObserveRequest(c.Method(), c.Route().Path, statusOf(c, err), time.Since(start))
		return err
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
