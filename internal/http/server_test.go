package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"showroom/internal/cache"
	"showroom/internal/core"
	"showroom/internal/inventory"
	"showroom/internal/log"
	"showroom/internal/repository"
	"showroom/internal/services"
	"showroom/internal/storage"
	"showroom/internal/testdrive"
)

const testVisitor = "6f1c2b7e-2d4a-4c1e-9a55-0b7b8d1f3e21"

var fixedNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	leads []core.Lead
}

func (p *recordingPublisher) PublishLead(_ context.Context, lead core.Lead) error {
	p.leads = append(p.leads, lead)
	return nil
}

func newTestServer(t *testing.T, opts Options) (*Server, *recordingPublisher) {
	t.Helper()

	clock := func() time.Time { return fixedNow }
	repos := repository.New(storage.NewMemoryStore())
	results := cache.NewLRUCache[inventory.Result](16, time.Minute)
	catalog := inventory.NewService(inventory.DefaultVehicles(), results, nil)
	pub := &recordingPublisher{}

	opts.Finance = services.NewFinanceService(repos.Calculations, clock)
	opts.Bookings = services.NewBookingService(catalog, testdrive.LaunchWeek(), repos.Bookings, pub, clock)
	opts.Account = services.NewAccountService(repos, catalog, pub, clock)
	opts.Receptionist = services.NewReceptionistService(repos.ChatHistory, clock)
	opts.Inventory = catalog
	opts.CacheStats = results.Stats
	opts.Logger = log.New(log.Config{Level: slog.LevelError, Component: log.ComponentApp, Output: io.Discard})

	s := NewServer(":0", opts)
	t.Cleanup(func() { s.limiter.Stop() })
	return s, pub
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(HeaderVisitorID, testVisitor)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

func TestHealthAndReadiness(t *testing.T) {
	s, _ := newTestServer(t, Options{Checks: map[string]CheckFunc{
		"store": func(context.Context) error { return nil },
		"amqp":  func(context.Context) error { return errors.New("connection refused") },
	}})

	expectStatus(t, do(t, s, http.MethodGet, "/healthz", ""), http.StatusOK)

	rec := do(t, s, http.MethodGet, "/readyz", "")
	expectStatus(t, rec, http.StatusServiceUnavailable)
	got := decode[struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}](t, rec)
	if got.Status != "not ready" || got.Checks["store"] != "ok" || got.Checks["amqp"] != "connection refused" {
		t.Fatalf("readiness = %+v", got)
	}
}

func TestMetrics(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	do(t, s, http.MethodGet, "/api/inventory?make=ferrari", "")
	do(t, s, http.MethodGet, "/api/inventory?make=ferrari", "")

	rec := do(t, s, http.MethodGet, "/metrics", "")
	expectStatus(t, rec, http.StatusOK)
	body := rec.Body.String()
	for _, want := range []string{
		"showroom_http_requests_total 2",
		"showroom_inventory_cache_hits_total 1",
		"showroom_inventory_cache_misses_total 1",
		"# TYPE showroom_rate_limited_total counter",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q:\n%s", want, body)
		}
	}
}

func TestVisitorIdentity(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/finance/calculations", nil)
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusOK)

	issued := rec.Header().Get(HeaderVisitorID)
	if _, ok := parseVisitorID(issued); !ok {
		t.Fatalf("issued visitor id %q is not a uuid", issued)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != visitorCookie || cookies[0].Value != issued {
		t.Fatalf("cookies = %+v", cookies)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/finance/calculations", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	if got := rec.Header().Get(HeaderVisitorID); got != issued {
		t.Fatalf("cookie visitor = %q, want %q", got, issued)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("known visitor should not get a new cookie")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/finance/calculations", nil)
	req.Header.Set(HeaderVisitorID, "not-a-uuid")
	rec = httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	if got := rec.Header().Get(HeaderVisitorID); got == "not-a-uuid" || got == "" {
		t.Fatalf("malformed visitor id was accepted: %q", got)
	}
}

func TestCalculate(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	tests := []struct {
		name       string
		target     string
		body       string
		status     int
		computable bool
		monthly    string
	}{
		{
			name:       "default vehicle",
			target:     "/api/finance/calculate",
			body:       `{"vehiclePrice":280000,"downPayment":56000,"interestRate":4.9,"loanTerm":60}`,
			status:     http.StatusOK,
			computable: true,
			monthly:    "$4,217",
		},
		{
			name:   "down payment covers price",
			target: "/api/finance/calculate",
			body:   `{"vehiclePrice":280000,"downPayment":280000,"interestRate":4.9,"loanTerm":60}`,
			status: http.StatusOK,
		},
		{
			name:   "zero rate",
			target: "/api/finance/calculate",
			body:   `{"vehiclePrice":280000,"downPayment":56000,"interestRate":0,"loanTerm":60}`,
			status: http.StatusOK,
		},
		{
			name:       "clamped zero rate",
			target:     "/api/finance/calculate?clamp=true",
			body:       `{"vehiclePrice":280000,"downPayment":56000,"interestRate":0,"loanTerm":60}`,
			status:     http.StatusOK,
			computable: true,
		},
		{
			name:   "malformed body",
			target: "/api/finance/calculate",
			body:   `{"vehiclePrice":`,
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.target, tt.body)
			expectStatus(t, rec, tt.status)
			if tt.status != http.StatusOK {
				return
			}
			got := decode[map[string]any](t, rec)
			if got["computable"] != tt.computable {
				t.Fatalf("computable = %v, want %v", got["computable"], tt.computable)
			}
			_, hasPayment := got["monthlyPayment"]
			if hasPayment != tt.computable {
				t.Fatalf("monthlyPayment present = %v, want %v", hasPayment, tt.computable)
			}
			if tt.monthly != "" {
				display := got["display"].(map[string]any)
				if display["monthlyPayment"] != tt.monthly {
					t.Errorf("display monthly = %v, want %s", display["monthlyPayment"], tt.monthly)
				}
			}
		})
	}
}

func TestScheduleEndpoint(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	rec := do(t, s, http.MethodGet, "/api/finance/schedule?price=$320,000&rate=5.5&term=36", "")
	expectStatus(t, rec, http.StatusOK)
	got := decode[struct {
		Request struct {
			DownPayment float64 `json:"downPayment"`
		} `json:"request"`
		Installments []struct {
			Month   int     `json:"month"`
			Balance float64 `json:"balance"`
		} `json:"installments"`
	}](t, rec)
	if got.Request.DownPayment != 64000 {
		t.Errorf("down payment = %v, want preset 64000", got.Request.DownPayment)
	}
	if len(got.Installments) != 36 {
		t.Fatalf("installments = %d, want 36", len(got.Installments))
	}
	if last := got.Installments[35]; last.Month != 36 || last.Balance != 0 {
		t.Errorf("last installment = %+v", last)
	}

	expectStatus(t, do(t, s, http.MethodGet, "/api/finance/schedule?term=six", ""), http.StatusBadRequest)
	expectStatus(t, do(t, s, http.MethodGet, "/api/finance/schedule?rate=0", ""), http.StatusUnprocessableEntity)
}

func TestPresets(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	rec := do(t, s, http.MethodGet, "/api/finance/presets?price=450000", "")
	expectStatus(t, rec, http.StatusOK)
	got := decode[struct {
		Terms       []int `json:"terms"`
		DownPayment []struct {
			Preset float64 `json:"preset"`
			Min    float64 `json:"min"`
			Max    float64 `json:"max"`
		} `json:"downPayment"`
	}](t, rec)
	if len(got.Terms) != 5 || len(got.DownPayment) != 1 {
		t.Fatalf("presets = %+v", got)
	}
	if d := got.DownPayment[0]; d.Preset != 90000 || math.Abs(d.Min-45000) > 1e-6 || math.Abs(d.Max-225000) > 1e-6 {
		t.Errorf("down payment bounds = %+v", d)
	}

	expectStatus(t, do(t, s, http.MethodGet, "/api/finance/presets?price=lots", ""), http.StatusBadRequest)
}

func TestCalculationsLedger(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	for i := 0; i < 12; i++ {
		body := `{"vehiclePrice":` + []string{"280000", "320000", "450000"}[i%3] + `,"downPayment":50000,"interestRate":4.9,"loanTerm":60}`
		expectStatus(t, do(t, s, http.MethodPost, "/api/finance/calculations", body), http.StatusCreated)
	}

	rec := do(t, s, http.MethodGet, "/api/finance/calculations", "")
	expectStatus(t, rec, http.StatusOK)
	got := decode[struct {
		Calculations []struct {
			VehiclePrice float64 `json:"vehiclePrice"`
		} `json:"calculations"`
	}](t, rec)
	if len(got.Calculations) != 10 {
		t.Fatalf("ledger holds %d entries, want 10", len(got.Calculations))
	}
	// The twelfth save (i=11) priced 450000 sits at the head.
	if got.Calculations[0].VehiclePrice != 450000 {
		t.Errorf("newest entry price = %v", got.Calculations[0].VehiclePrice)
	}

	expectStatus(t, do(t, s, http.MethodPost, "/api/finance/calculations",
		`{"vehiclePrice":1000,"downPayment":5000,"interestRate":4.9,"loanTerm":60}`), http.StatusUnprocessableEntity)

	expectStatus(t, do(t, s, http.MethodDelete, "/api/finance/calculations", ""), http.StatusNoContent)
	rec = do(t, s, http.MethodGet, "/api/finance/calculations", "")
	if !strings.Contains(rec.Body.String(), `"calculations":[]`) {
		t.Fatalf("after clear: %s", rec.Body.String())
	}
}

func TestInventoryEndpoints(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	tests := []struct {
		target string
		status int
		total  int
	}{
		{"/api/inventory", http.StatusOK, 3},
		{"/api/inventory?make=mclaren", http.StatusOK, 1},
		{"/api/inventory?year=2024&price=all", http.StatusOK, 2},
		{"/api/inventory?q=aventador", http.StatusOK, 1},
		{"/api/inventory?year=last", http.StatusBadRequest, 0},
		{"/api/inventory?price=cheap", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		rec := do(t, s, http.MethodGet, tt.target, "")
		if rec.Code != tt.status {
			t.Errorf("%s: status = %d, want %d", tt.target, rec.Code, tt.status)
			continue
		}
		if tt.status == http.StatusOK {
			if got := decode[inventory.Result](t, rec); got.Total != tt.total {
				t.Errorf("%s: total = %d, want %d", tt.target, got.Total, tt.total)
			}
		}
	}

	rec := do(t, s, http.MethodGet, "/api/inventory/3", "")
	expectStatus(t, rec, http.StatusOK)
	if v := decode[inventory.Vehicle](t, rec); v.Name != "McLaren 720S" {
		t.Errorf("vehicle = %+v", v)
	}
	expectStatus(t, do(t, s, http.MethodGet, "/api/inventory/99", ""), http.StatusNotFound)
	expectStatus(t, do(t, s, http.MethodGet, "/api/inventory/options", ""), http.StatusOK)
}

func TestTestDriveFlow(t *testing.T) {
	s, pub := newTestServer(t, Options{})

	rec := do(t, s, http.MethodGet, "/api/test-drives/slots?date=2024-01-17", "")
	expectStatus(t, rec, http.StatusOK)
	slots := decode[struct {
		Slots []string `json:"slots"`
	}](t, rec)
	if len(slots.Slots) != 5 {
		t.Fatalf("slots = %v", slots.Slots)
	}
	rec = do(t, s, http.MethodGet, "/api/test-drives/slots?date=2024-01-20", "")
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"slots":[]`) {
		t.Errorf("weekend slots: %s", rec.Body.String())
	}
	expectStatus(t, do(t, s, http.MethodGet, "/api/test-drives/slots?date=17/01/2024", ""), http.StatusUnprocessableEntity)

	booking := `{"firstName":"Mia","lastName":"Toretto","email":"mia@example.com","phone":"555-0100",
		"licenseNumber":"D1234567","vehicleId":3,"date":"2024-01-17","time":"2:00 PM"}`
	rec = do(t, s, http.MethodPost, "/api/test-drives", booking)
	expectStatus(t, rec, http.StatusCreated)
	b := decode[core.Booking](t, rec)
	if b.Vehicle != "McLaren 720S" || b.Status != core.BookingConfirmed {
		t.Fatalf("booking = %+v", b)
	}
	if len(pub.leads) != 1 || pub.leads[0].Kind != core.LeadTestDrive {
		t.Fatalf("leads = %+v", pub.leads)
	}

	bad := strings.Replace(booking, "2:00 PM", "8:00 PM", 1)
	expectStatus(t, do(t, s, http.MethodPost, "/api/test-drives", bad), http.StatusUnprocessableEntity)

	rec = do(t, s, http.MethodGet, "/api/test-drives", "")
	if !strings.Contains(rec.Body.String(), b.ID) {
		t.Fatalf("list missing booking: %s", rec.Body.String())
	}

	expectStatus(t, do(t, s, http.MethodDelete, "/api/test-drives/"+b.ID, ""), http.StatusOK)
	expectStatus(t, do(t, s, http.MethodDelete, "/api/test-drives/"+b.ID, ""), http.StatusConflict)
	expectStatus(t, do(t, s, http.MethodDelete, "/api/test-drives/missing", ""), http.StatusNotFound)
}

func TestReceptionistEndpoints(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	rec := do(t, s, http.MethodGet, "/api/receptionist/history", "")
	expectStatus(t, rec, http.StatusOK)
	history := decode[struct {
		Messages []core.ChatMessage `json:"messages"`
	}](t, rec)
	if len(history.Messages) != 1 || history.Messages[0].ID != "greeting" {
		t.Fatalf("initial history = %+v", history.Messages)
	}

	rec = do(t, s, http.MethodPost, "/api/receptionist/messages", `{"message":"Do you offer a loan?"}`)
	expectStatus(t, rec, http.StatusOK)
	reply := decode[struct {
		Messages []core.ChatMessage `json:"messages"`
	}](t, rec)
	if len(reply.Messages) != 2 || reply.Messages[1].Intent != "financing" {
		t.Fatalf("reply = %+v", reply.Messages)
	}

	expectStatus(t, do(t, s, http.MethodPost, "/api/receptionist/messages", `{"message":"   "}`), http.StatusUnprocessableEntity)
	expectStatus(t, do(t, s, http.MethodPost, "/api/receptionist/quick-actions/hours", ""), http.StatusOK)
	expectStatus(t, do(t, s, http.MethodPost, "/api/receptionist/quick-actions/warp", ""), http.StatusUnprocessableEntity)

	rec = do(t, s, http.MethodGet, "/api/receptionist/history", "")
	if got := decode[struct {
		Messages []core.ChatMessage `json:"messages"`
	}](t, rec); len(got.Messages) != 4 {
		t.Fatalf("history has %d messages, want 4", len(got.Messages))
	}

	expectStatus(t, do(t, s, http.MethodDelete, "/api/receptionist/history", ""), http.StatusNoContent)
	rec = do(t, s, http.MethodGet, "/api/receptionist/quick-actions", "")
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"testDrive"`) {
		t.Errorf("quick actions: %s", rec.Body.String())
	}
}

func TestAccountFlow(t *testing.T) {
	s, pub := newTestServer(t, Options{})

	rec := do(t, s, http.MethodGet, "/api/account", "")
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"profile":null`) {
		t.Fatalf("fresh dashboard: %s", rec.Body.String())
	}
	expectStatus(t, do(t, s, http.MethodGet, "/api/account/profile", ""), http.StatusNotFound)

	expectStatus(t, do(t, s, http.MethodPost, "/api/account/register",
		`{"firstName":"Brian","lastName":"O'Conner","email":"brian@example.com","password":"a","confirmPassword":"b"}`),
		http.StatusUnprocessableEntity)
	expectStatus(t, do(t, s, http.MethodPost, "/api/account/register",
		`{"firstName":"Brian","lastName":"O'Conner","email":"brian@example.com","phone":"555-0199","password":"nos","confirmPassword":"nos"}`),
		http.StatusCreated)
	if len(pub.leads) != 1 || pub.leads[0].Kind != core.LeadRegistration {
		t.Fatalf("leads = %+v", pub.leads)
	}

	rec = do(t, s, http.MethodPut, "/api/account/profile",
		`{"firstName":"Brian","lastName":"Spilner","email":"spilner@example.com","phone":"555-0199"}`)
	expectStatus(t, rec, http.StatusOK)
	if p := decode[core.Profile](t, rec); p.LastName != "Spilner" {
		t.Fatalf("profile = %+v", p)
	}

	expectStatus(t, do(t, s, http.MethodPost, "/api/account/saved-cars", `{"vehicleId":2}`), http.StatusCreated)
	expectStatus(t, do(t, s, http.MethodPost, "/api/account/saved-cars", `{"vehicleId":2}`), http.StatusOK)
	expectStatus(t, do(t, s, http.MethodPost, "/api/account/saved-cars", `{"vehicleId":42}`), http.StatusNotFound)

	rec = do(t, s, http.MethodGet, "/api/account", "")
	dash := decode[services.Dashboard](t, rec)
	if dash.Profile == nil || len(dash.SavedCars) != 1 || dash.SavedCars[0].Name != "Lamborghini Aventador" {
		t.Fatalf("dashboard = %+v", dash)
	}

	expectStatus(t, do(t, s, http.MethodDelete, "/api/account/saved-cars/2", ""), http.StatusNoContent)
	expectStatus(t, do(t, s, http.MethodDelete, "/api/account/saved-cars/2", ""), http.StatusNotFound)
}

func TestContact(t *testing.T) {
	s, pub := newTestServer(t, Options{})

	rec := do(t, s, http.MethodPost, "/api/contact",
		`{"name":"Gisele Yashar","email":"gisele@example.com","subject":"Pricing","message":"Is the 488 available?"}`)
	expectStatus(t, rec, http.StatusAccepted)
	if len(pub.leads) != 1 || pub.leads[0].Detail != "Pricing: Is the 488 available?" {
		t.Fatalf("leads = %+v", pub.leads)
	}

	expectStatus(t, do(t, s, http.MethodPost, "/api/contact",
		`{"name":"Gisele","email":"not-an-email","message":"hi"}`), http.StatusUnprocessableEntity)
}

func TestRateLimitAppliesToWrites(t *testing.T) {
	s, _ := newTestServer(t, Options{RateLimitPerMinute: 2})

	body := `{"vehiclePrice":280000,"downPayment":56000,"interestRate":4.9,"loanTerm":60}`
	expectStatus(t, do(t, s, http.MethodPost, "/api/finance/calculate", body), http.StatusOK)
	expectStatus(t, do(t, s, http.MethodPost, "/api/finance/calculate", body), http.StatusOK)

	rec := do(t, s, http.MethodPost, "/api/finance/calculate", body)
	expectStatus(t, rec, http.StatusTooManyRequests)
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q", rec.Header().Get("Retry-After"))
	}

	expectStatus(t, do(t, s, http.MethodGet, "/api/finance/calculations", ""), http.StatusOK)
}

func TestProbesAndUnknownRoutes(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	rec := do(t, s, http.MethodGet, "/.env", "")
	expectStatus(t, rec, http.StatusNotFound)

	rec = do(t, s, http.MethodGet, "/api/nowhere", "")
	expectStatus(t, rec, http.StatusNotFound)
	if got := decode[errorResponse](t, rec); got.Error != "not found" {
		t.Errorf("error = %q", got.Error)
	}

	rec = do(t, s, http.MethodGet, "/healthz", "")
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("request id missing")
	}
}
