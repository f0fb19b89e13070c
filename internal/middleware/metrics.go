package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "earshot_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"operation"})

	// ExternalAPIRequests counts outbound metadata provider calls by provider and outcome.
	ExternalAPIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "earshot_external_api_requests_total",
		Help: "Total number of external metadata provider requests",
	}, []string{"provider", "status"})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus handler as a Fiber middleware.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
