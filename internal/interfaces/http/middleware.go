package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

const (
	localLogger    = "logger"
	localRequestID = "request_id"
	headerReqID    = "X-Request-ID"
)

// RequestLogger registra cada petición (método, ruta, status, latencia) y deja en locals un logger con request_id.
func RequestLogger(log *logger.Logger) fiber.Handler {
	httpLog := log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(headerReqID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(headerReqID, reqID)
		c.Locals(localRequestID, reqID)
		c.Locals(localLogger, httpLog.With("request_id", reqID))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := httpLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = httpLog.Error()
		}
		ev.Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}

// requestLogger devuelve el logger de la petición o uno nulo si no pasó por RequestLogger.
func requestLogger(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(localLogger).(*logger.Logger); ok {
		return l
	}
	return logger.Nop()
}
