package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agrilink",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duração dos pedidos HTTP em segundos.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agrilink",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total de pedidos HTTP.",
		},
		[]string{"method", "path", "status"},
	)

	requestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "agrilink",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Pedidos HTTP em curso.",
	})

	pushDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agrilink",
			Subsystem: "push",
			Name:      "deliveries_total",
			Help:      "Entregas web push por resultado.",
		},
		[]string{"result"}, // "success" | "failed" | "gone"
	)
)

// metricsRegistry registry próprio para não colidir com o registry global em testes.
var metricsRegistry = prometheus.NewRegistry()

func init() {
	metricsRegistry.MustRegister(collectors.NewGoCollector())
	metricsRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsRegistry.MustRegister(requestDuration, requestTotal, requestInFlight, pushDeliveries)
}

// RecordPushDeliveries acumula os resultados de um fan-out push.
func RecordPushDeliveries(sent, failed, removed int) {
	pushDeliveries.WithLabelValues("success").Add(float64(sent))
	pushDeliveries.WithLabelValues("failed").Add(float64(failed))
	pushDeliveries.WithLabelValues("gone").Add(float64(removed))
}

// MetricsMiddleware instrumenta cada pedido: histograma de duração, contador
// total e gauge de pedidos em curso. O label path usa a rota registada
// (c.Route().Path) para manter a cardinalidade baixa.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestInFlight.Inc()
		defer requestInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		path := c.Route().Path
		method := c.Method()
		code := strconv.Itoa(status)

		requestDuration.WithLabelValues(method, path, code).Observe(time.Since(start).Seconds())
		requestTotal.WithLabelValues(method, path, code).Inc()
		return err
	}
}

// MetricsHandler expõe o endpoint /metrics no formato Prometheus.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
}
