package handlers

import (
	"etkinlik.link/configs/configslog"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/pkg/renderer"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardHomeHandler yönetici ana sayfası ile rezervasyon ve mesaj listeleri.
type DashboardHomeHandler struct {
	dashboard services.IDashboardService
	bookings  services.IBookingService
	inquiries services.IInquiryService
}

// NewDashboardHomeHandler yönetici ana sayfası handler'ını oluşturur.
func NewDashboardHomeHandler(dashboard services.IDashboardService, bookings services.IBookingService, inquiries services.IInquiryService) *DashboardHomeHandler {
	return &DashboardHomeHandler{dashboard: dashboard, bookings: bookings, inquiries: inquiries}
}

func (h *DashboardHomeHandler) Home(c *fiber.Ctx) error {
	stats, err := h.dashboard.GetStats(c.UserContext())
	if err != nil {
		configslog.Log.Error("Yönetici paneli istatistikleri alınamadı", zap.Error(err))
		return renderer.ServerError(c, "Panel istatistikleri yüklenemedi.")
	}
	return renderer.Render(c, "admin/index", fiber.Map{
		"Title": "Yönetim Paneli",
		"Stats": stats,
	})
}

func (h *DashboardHomeHandler) ListBookings(c *fiber.Ctx) error {
	filter := queryparams.ParseBookingFilter(func(key string) string { return c.Query(key) })

	listing, err := h.bookings.ListBookings(c.UserContext(), filter)
	if err != nil {
		configslog.Log.Error("Yönetici rezervasyon listesi alınamadı", zap.Error(err))
		return renderer.ServerError(c, "Rezervasyonlar listelenirken bir hata oluştu.")
	}
	return renderer.Render(c, "admin/bookings", fiber.Map{
		"Title":    "Tüm Rezervasyonlar",
		"Bookings": listing.Bookings,
		"Events":   listing.Events,
		"Members":  listing.Members,
		"Filter":   listing.Filter,
	})
}

func (h *DashboardHomeHandler) ListInquiries(c *fiber.Ctx) error {
	inquiries, err := h.inquiries.ListInquiries(c.UserContext())
	if err != nil {
		configslog.Log.Error("İletişim mesajları listelenemedi", zap.Error(err))
		return renderer.ServerError(c, "Mesajlar listelenirken bir hata oluştu.")
	}
	return renderer.Render(c, "admin/inquiries", fiber.Map{
		"Title":     "İletişim Mesajları",
		"Inquiries": inquiries,
	})
}
