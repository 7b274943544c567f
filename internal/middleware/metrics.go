package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by operation.
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "miniblog_redis_errors_total",
		Help: "Total number of Redis command errors.",
	},
	[]string{"operation"},
)

// InitMetrics creates the Prometheus HTTP metrics collector for the service.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(service)
}

// MetricsMiddleware returns the request metrics middleware.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
