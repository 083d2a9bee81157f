package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"flights/pkg/logger"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestLogger tags each request with a request ID (reusing the caller's if sent) and
// logs its completion along with the trace and span IDs when a span is active.
func RequestLogger(log logger.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		fields := []logger.Field{
			{Key: RequestIDKey, Value: requestID},
			{Key: "method", Value: c.Request.Method},
			{Key: "path", Value: c.Request.URL.Path},
			{Key: "status", Value: c.Writer.Status()},
			{Key: "latency", Value: time.Since(start)},
		}

		span := trace.SpanFromContext(c.Request.Context())
		if sc := span.SpanContext(); sc.IsValid() {
			fields = append(fields,
				logger.Field{Key: "trace_id", Value: sc.TraceID().String()},
				logger.Field{Key: "span_id", Value: sc.SpanID().String()},
			)
		}

		if c.Writer.Status() >= 500 {
			log.Warn("request completed", fields...)
			return
		}
		log.Info("request completed", fields...)
	}
}
