package middlewares

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger writes one log line per request. Requests whose route matches one
// of quietPaths are served without a log line.
func ZapLogger(log *zap.Logger, quietPaths ...string) echo.MiddlewareFunc {
	quiet := make(map[string]struct{}, len(quietPaths))
	for _, path := range quietPaths {
		quiet[path] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			if _, ok := quiet[c.Path()]; ok {
				return nil
			}

			request := c.Request()
			response := c.Response()

			id := request.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = response.Header().Get(echo.HeaderXRequestID)
			}

			fields := []zapcore.Field{
				zap.String("id", id),
				zap.String("remote_ip", c.RealIP()),
				zap.String("host", request.Host),
				zap.String("method", request.Method),
				zap.String("uri", request.RequestURI),
				zap.String("route", c.Path()),
				zap.String("user_agent", request.UserAgent()),
				zap.Int("status", response.Status),
				zap.Duration("latency", time.Since(start)),
				zap.Int64("bytes_in", request.ContentLength),
				zap.Int64("bytes_out", response.Size),
			}

			status := response.Status
			switch {
			case status >= http.StatusInternalServerError:
				log.Error("Server error", fields...)
			case status >= http.StatusBadRequest:
				log.Warn("Client error", fields...)
			case status >= http.StatusMultipleChoices:
				log.Info("Redirection", fields...)
			default:
				log.Info("Success", fields...)
			}

			return nil
		}
	}
}
