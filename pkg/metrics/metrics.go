// Package metrics uygulamanın prometheus metriklerini tanımlar.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "etkinlik"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "İşlenen HTTP isteklerinin sayısı.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP isteklerinin işlenme süresi.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Oluşturulan rezervasyon sayısı.",
	})

	SeatsBooked = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seats_booked_total",
		Help:      "Rezerve edilen toplam koltuk sayısı.",
	})

	BookingsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_rejected_total",
		Help:      "Yetersiz koltuk nedeniyle reddedilen rezervasyonlar.",
	})

	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_cancelled_total",
		Help:      "İptal edilen rezervasyon sayısı.",
	})
)

// ObserveRequest bir HTTP isteğinin sonucunu kaydeder.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler /metrics uç noktası için promhttp handler'ını fiber'a uyarlar.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
