package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"etkinlik.link/configs"
	"etkinlik.link/database/seeders"
	"etkinlik.link/models"
	"etkinlik.link/pkg/passwords"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/repositories"
	"etkinlik.link/repositories/memory"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdminEmail    = "admin@culturalcouncil.org"
	testAdminPassword = "admin123"
)

func TestMain(m *testing.M) {
	passwords.DefaultParams = passwords.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	os.Exit(m.Run())
}

// testApp bellek içi depolar ve bellek içi session ile çalışan uygulamadır.
type testApp struct {
	t     *testing.T
	app   *fiber.App
	repos *repositories.Repositories
}

// client bir tarayıcı gibi çerezleri istekler arasında taşır.
type client struct {
	t       *testing.T
	ta      *testApp
	cookies map[string]string
}

type viewResponse struct {
	View string                 `json:"view"`
	Data map[string]interface{} `json:"data"`
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	repos := memory.New()
	cfg := configs.SeedConfig{AdminName: "Administrator", AdminEmail: testAdminEmail, AdminPassword: testAdminPassword}
	require.NoError(t, seeders.SeedRepositories(context.Background(), repos, cfg))

	sessionCfg := configs.SessionConfig{IdleTimeout: 30 * time.Minute, CookieName: "etkinlik_session"}
	app := NewApp("etkinlik.link-test", Dependencies{
		Services:     services.NewServices(repos),
		SessionStore: configs.SetupSession(sessionCfg, nil),
		HealthCheck: func(context.Context) error {
			return nil
		},
	})
	return &testApp{t: t, app: app, repos: repos}
}

func (ta *testApp) newClient(t *testing.T) *client {
	return &client{t: t, ta: ta, cookies: map[string]string{}}
}

func (c *client) do(method, target string, form url.Values) *http.Response {
	c.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	}
	for name, value := range c.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := c.ta.app.Test(req, -1)
	require.NoError(c.t, err)

	for _, ck := range resp.Cookies() {
		if ck.Value == "" || (!ck.Expires.IsZero() && ck.Expires.Before(time.Now())) {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck.Value
	}
	return resp
}

func (c *client) get(target string) *http.Response {
	return c.do(http.MethodGet, target, nil)
}

func (c *client) post(target string, form url.Values) *http.Response {
	if form == nil {
		form = url.Values{}
	}
	return c.do(http.MethodPost, target, form)
}

func decodeView(t *testing.T, resp *http.Response) viewResponse {
	t.Helper()
	defer resp.Body.Close()
	var v viewResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (c *client) login(email, password string) {
	c.t.Helper()
	resp := c.post("/account/login", url.Values{"email": {email}, "password": {password}})
	require.Equal(c.t, fiber.StatusSeeOther, resp.StatusCode)
}

func (c *client) registerAndLogin(name, email string) {
	c.t.Helper()
	resp := c.post("/account/register", url.Values{"full_name": {name}, "email": {email}, "password": {"secret123"}})
	require.Equal(c.t, fiber.StatusSeeOther, resp.StatusCode)
	c.login(email, "secret123")
}

func (ta *testApp) firstEvent() models.Event {
	ta.t.Helper()
	upcoming, err := ta.repos.Events.ListUpcoming(context.Background(), time.Now(), 10)
	require.NoError(ta.t, err)
	require.NotEmpty(ta.t, upcoming)
	return upcoming[0]
}

func (ta *testApp) memberByEmail(email string) *models.Member {
	ta.t.Helper()
	m, err := ta.repos.Members.FindByEmail(context.Background(), email)
	require.NoError(ta.t, err)
	return m
}

func TestHealthAndNotFound(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t)
	c := ta.newClient(t)

	resp := c.get("/health")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = c.get("/bu-sayfa-yok")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "errors/404", decodeView(t, resp).View)

	resp = c.get("/events/details/9999")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHomeAndEventPagesArePublic(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t)
	c := ta.newClient(t)

	home := decodeView(t, c.get("/"))
	assert.Equal(t, "home/index", home.View)
	assert.NotEmpty(t, home.Data["UpcomingEvents"])

	list := decodeView(t, c.get("/events?category=Music"))
	events, ok := list.Data["Events"].([]interface{})
	require.True(t, ok)
	assert.Len(t, events, 2)

	resp := c.get("/events?maxPrice=20")
	events, _ = decodeView(t, resp).Data["Events"].([]interface{})
	assert.Len(t, events, 1)
}

func TestGatesRedirect(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t)

	tests := []struct {
		name         string
		path         string
		loginAs      string
		wantStatus   int
		wantLocation string
	}{
		{name: "guest to bookings", path: "/bookings", wantStatus: fiber.StatusFound, wantLocation: "/account/login?returnUrl=%2Fbookings"},
		{name: "guest to review form", path: "/reviews/create?eventId=1", wantStatus: fiber.StatusFound, wantLocation: "/account/login?returnUrl=%2Freviews%2Fcreate%3FeventId%3D1"},
		{name: "guest to admin", path: "/admin/members", wantStatus: fiber.StatusFound, wantLocation: "/account/login?returnUrl=%2Fadmin%2Fmembers"},
		{name: "member to admin", path: "/admin/events", loginAs: "uye@example.com", wantStatus: fiber.StatusFound, wantLocation: "/?error=unauthorized"},
		{name: "member to login page", path: "/account/login", loginAs: "uye2@example.com", wantStatus: fiber.StatusFound, wantLocation: "/"},
		{name: "admin to admin", path: "/admin/members", loginAs: testAdminEmail, wantStatus: fiber.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c := ta.newClient(t)
			switch tt.loginAs {
			case "":
			case testAdminEmail:
				c.login(testAdminEmail, testAdminPassword)
			default:
				c.registerAndLogin("Üye", tt.loginAs)
			}

			resp := c.get(tt.path)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, resp.Header.Get(fiber.HeaderLocation))
			}
		})
	}
}

func TestLoginFlow(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t)

	t.Run("invalid credentials", func(t *testing.T) {
		c := ta.newClient(t)
		resp := c.post("/account/login", url.Values{"email": {testAdminEmail}, "password": {"yanlis"}})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		v := decodeView(t, resp)
		errs, _ := v.Data["Errors"].(map[string]interface{})
		assert.Contains(t, errs, "form")
		form, _ := v.Data["Form"].(map[string]interface{})
		assert.Empty(t, form["password"])
	})

	t.Run("local return url is honoured", func(t *testing.T) {
		c := ta.newClient(t)
		resp := c.post("/account/login?returnUrl=%2Fbookings", url.Values{"email": {testAdminEmail}, "password": {testAdminPassword}})
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/bookings", resp.Header.Get(fiber.HeaderLocation))
	})

	for _, external := range []string{"https://evil.example.com/", "//evil.example.com", "/\\evil.example.com"} {
		external := external
		t.Run("rejects "+external, func(t *testing.T) {
			c := ta.newClient(t)
			resp := c.post("/account/login", url.Values{"email": {testAdminEmail}, "password": {testAdminPassword}, "returnUrl": {external}})
			assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
		})
	}

	t.Run("welcome flash then logout", func(t *testing.T) {
		c := ta.newClient(t)
		c.login(testAdminEmail, testAdminPassword)

		home := decodeView(t, c.get("/"))
		assert.Contains(t, home.Data["Success"], "Hoş geldiniz")
		assert.NotNil(t, home.Data["CurrentMember"])

		// Flash bir kez gösterilir
		again := decodeView(t, c.get("/"))
		assert.Nil(t, again.Data["Success"])

		resp := c.post("/account/logout", nil)
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
		resp = c.get("/admin")
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t)

	for _, method := range []string{http.MethodPost, http.MethodGet} {
		method := method
		t.Run(method, func(t *testing.T) {
			c := ta.newClient(t)
			c.login(testAdminEmail, testAdminPassword)
			require.Equal(t, fiber.StatusOK, c.get("/admin").StatusCode)

			resp := c.do(method, "/account/logout", nil)
			assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

			resp = c.get("/admin")
			assert.Equal(t, fiber.StatusFound, resp.StatusCode)
			assert.Equal(t, "/account/login?returnUrl=%2Fadmin", resp.Header.Get(fiber.HeaderLocation))
			assert.Equal(t, fiber.StatusOK, c.get("/account/login").StatusCode)
		})
	}

	t.Run("without session", func(t *testing.T) {
		c := ta.newClient(t)
		resp := c.post("/account/logout", nil)
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
	})
}

func TestFormValuesSurviveLaterRequests(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t)

	members := []struct {
		name  string
		email string
	}{
		{name: "Birinci Üye", email: "birinci@example.com"},
		{name: "İkinci Üye Uzun Adlı", email: "ikinci.uzun.adres@example.com"},
		{name: "Üç", email: "uc@example.com"},
	}
	for _, m := range members {
		c := ta.newClient(t)
		c.registerAndLogin(m.name, m.email)
		// Araya farklı boyutta istekler girsin
		decodeView(t, c.get("/events?category=Music"))
		c.post("/inquiries/create", url.Values{"name": {strings.Repeat("x", 64)}, "email": {"baska@example.com"}, "message": {strings.Repeat("y", 256)}})
	}

	for _, m := range members {
		got := ta.memberByEmail(m.email)
		assert.Equal(t, m.name, got.FullName)
		assert.Equal(t, m.email, got.Email)
	}

	admin := ta.newClient(t)
	admin.login(testAdminEmail, testAdminPassword)
	resp := admin.post("/admin/events/create", url.Values{
		"name":        {"Bahar Şenliği"},
		"category":    {"Festival"},
		"event_date":  {"2031-04-20T18:00"},
		"venue":       {"Açık Hava Sahnesi"},
		"price":       {"0"},
		"total_seats": {"500"},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	admin.post("/admin/events/create", url.Values{"name": {strings.Repeat("z", 90)}, "category": {"Other"}, "venue": {"Salon"}})

	events, err := ta.repos.Events.List(context.Background(), queryparams.EventFilter{Category: "Festival"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Bahar Şenliği", events[0].Name)
	assert.Equal(t, "Açık Hava Sahnesi", events[0].Venue)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t)
	c := ta.newClient(t)

	resp := c.post("/account/register", url.Values{"full_name": {"Kopya"}, "email": {"ADMIN@culturalcouncil.org"}, "password": {"secret123"}})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = c.post("/account/register", url.Values{"full_name": {""}, "email": {"x"}, "password": {"1"}})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	errs, _ := decodeView(t, resp).Data["Errors"].(map[string]interface{})
	assert.Contains(t, errs, "full_name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestBookAndReviewFlow(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t)
	event := ta.firstEvent()
	eventID := idString(event.ID)

	c := ta.newClient(t)
	c.registerAndLogin("Ayşe Yılmaz", "ayse@example.com")

	// Bilet almadan yorum yapılamaz
	resp := c.get("/reviews/create?eventId=" + eventID)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/events/details/"+eventID, resp.Header.Get(fiber.HeaderLocation))

	resp = c.post("/bookings/create", url.Values{"event_id": {eventID}, "seat_type": {"VIP"}, "quantity": {"11"}})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = c.post("/bookings/create", url.Values{"event_id": {eventID}, "seat_type": {"VIP"}, "quantity": {"2"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/bookings", resp.Header.Get(fiber.HeaderLocation))

	list := decodeView(t, c.get("/bookings"))
	assert.Contains(t, list.Data["Success"], "2 adet")
	bookings, _ := list.Data["Bookings"].([]interface{})
	require.Len(t, bookings, 1)

	resp = c.post("/reviews/create", url.Values{"event_id": {eventID}, "rating": {"5"}, "comment": {"Muhteşemdi"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/events/details/"+eventID, resp.Header.Get(fiber.HeaderLocation))

	resp = c.post("/reviews/create", url.Values{"event_id": {eventID}, "rating": {"4"}, "comment": {"Tekrar"}})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	detail := decodeView(t, c.get("/events/details/"+eventID))
	assert.Equal(t, true, detail.Data["HasBooked"])
	assert.Equal(t, true, detail.Data["HasReviewed"])
	assert.EqualValues(t, 5, detail.Data["AverageRating"])

	// Başka bir üye bu rezervasyonu göremez
	other := ta.newClient(t)
	other.registerAndLogin("Mehmet", "mehmet@example.com")
	member := ta.memberByEmail("ayse@example.com")
	own, err := ta.repos.Bookings.ListByMember(context.Background(), member.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	resp = other.get("/bookings/details/" + idString(own[0].ID))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp = other.post("/bookings/delete/"+idString(own[0].ID), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = c.post("/bookings/delete/"+idString(own[0].ID), nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
}

func TestBookingInsufficientSeats(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t)
	ctx := context.Background()

	event := &models.Event{Name: "Küçük Atölye", Category: "Workshop", EventDate: time.Now().AddDate(0, 1, 0), Venue: "Stüdyo", TotalSeats: 3}
	require.NoError(t, ta.repos.Events.Create(ctx, event))

	c := ta.newClient(t)
	c.registerAndLogin("Dolu", "dolu@example.com")

	resp := c.post("/bookings/create", url.Values{"event_id": {idString(event.ID)}, "seat_type": {"Standard"}, "quantity": {"5"}})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	errs, _ := decodeView(t, resp).Data["Errors"].(map[string]interface{})
	assert.Equal(t, "Yalnızca 3 koltuk mevcut.", errs["quantity"])

	resp = c.post("/bookings/create", url.Values{"event_id": {"9999"}, "seat_type": {"Standard"}, "quantity": {"1"}})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeletedMemberSessionIsEnded(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t)
	ctx := context.Background()
	event := ta.firstEvent()
	eventID := idString(event.ID)

	c := ta.newClient(t)
	c.registerAndLogin("Geçici Üye", "gecici@example.com")
	member := ta.memberByEmail("gecici@example.com")

	admin := ta.newClient(t)
	admin.login(testAdminEmail, testAdminPassword)
	resp := admin.post("/admin/members/delete/"+idString(member.ID), nil)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp = c.post("/bookings/create", url.Values{"event_id": {eventID}, "seat_type": {"Standard"}, "quantity": {"2"}})
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/account/login", resp.Header.Get(fiber.HeaderLocation))

	bookings, err := ta.repos.Bookings.List(ctx, queryparams.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, bookings)
	got, err := ta.repos.Events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.BookedSeats, got.BookedSeats)

	// Oturum kapatıldığı için üye kapısı tekrar girişe yönlendirir
	resp = c.get("/bookings")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/account/login?returnUrl=%2Fbookings", resp.Header.Get(fiber.HeaderLocation))
}

func TestAdminMemberProtection(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t)
	admin := ta.memberByEmail(testAdminEmail)

	member := ta.newClient(t)
	member.registerAndLogin("Silinecek", "silinecek@example.com")
	target := ta.memberByEmail("silinecek@example.com")

	c := ta.newClient(t)
	c.login(testAdminEmail, testAdminPassword)

	resp := c.post("/admin/members/delete/"+idString(admin.ID), nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/members", resp.Header.Get(fiber.HeaderLocation))
	_, err := ta.repos.Members.FindByID(context.Background(), admin.ID)
	require.NoError(t, err)

	resp = c.post("/admin/members/edit/"+idString(target.ID), url.Values{"full_name": {"Yeni"}, "email": {testAdminEmail}})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = c.post("/admin/members/delete/"+idString(target.ID), nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	_, err = ta.repos.Members.FindByID(context.Background(), target.ID)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func TestAdminEventCrud(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t)
	c := ta.newClient(t)
	c.login(testAdminEmail, testAdminPassword)

	form := url.Values{
		"name":        {"Yeni Yıl Konseri"},
		"category":    {"Music"},
		"event_date":  {"2030-12-31T21:00"},
		"venue":       {"Grand Concert Hall"},
		"price":       {"60"},
		"total_seats": {"300"},
	}
	resp := c.post("/admin/events/create", form)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	form.Set("event_date", "bozuk")
	resp = c.post("/admin/events/create", form)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	stats := decodeView(t, c.get("/admin"))
	data, _ := stats.Data["Stats"].(map[string]interface{})
	assert.EqualValues(t, 7, data["total_events"])

	resp = c.post("/admin/events/delete/9999", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInquiryPrefillAndSubmit(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t)
	c := ta.newClient(t)
	c.registerAndLogin("Zeynep", "zeynep@example.com")

	v := decodeView(t, c.get("/inquiries/create"))
	form, _ := v.Data["Form"].(map[string]interface{})
	assert.Equal(t, "zeynep@example.com", form["email"])

	resp := c.post("/inquiries/create", url.Values{"name": {"Zeynep"}, "email": {"zeynep@example.com"}, "message": {"Engelli erişimi var mı?"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	count, err := ta.repos.Inquiries.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
