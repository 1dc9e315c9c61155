package resources

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/recursosayuda/internal/app/system/finder"
	"github.com/dalemusser/recursosayuda/internal/app/system/metrics"
	"github.com/dalemusser/recursosayuda/internal/app/system/prefs"
	"github.com/dalemusser/recursosayuda/internal/app/system/presentation"
	"github.com/dalemusser/recursosayuda/internal/app/system/profiles"
	"github.com/dalemusser/recursosayuda/internal/app/system/ratelimit"
	"github.com/dalemusser/recursosayuda/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	pm, err := prefs.NewManager("test-session-key-must-be-32-chars-long", "test-prefs", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create prefs manager: %v", err)
	}
	return NewHandler(
		testutil.SampleStore(t),
		profiles.Default(),
		finder.DedupeByName,
		pm,
		metrics.New(prometheus.NewRegistry()),
		nil,
		zap.NewNop(),
	)
}

// serve runs fn, tolerating template panics when no engine is booted.
func serve(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			// Template rendering may panic in tests
		}
	}()
	fn()
}

func decodeAPI(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}
	var resp apiResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return resp
}

func TestServeAPI_CrisisRanking(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/recursos?perfil=crisis&provincia=Granada", nil)
	rec := httptest.NewRecorder()
	h.ServeAPI(rec, req)

	resp := decodeAPI(t, rec)
	if resp.Profile != "crisis" || resp.Province != "Granada" {
		t.Errorf("echoed selection: got %q / %q", resp.Profile, resp.Province)
	}
	if resp.Count != len(resp.Results) {
		t.Errorf("count %d does not match %d results", resp.Count, len(resp.Results))
	}

	type row struct {
		Name     string
		Priority int
		Scope    string
	}
	var got []row
	for _, r := range resp.Results {
		got = append(got, row{r.Name, r.Priority, r.Scope})
	}
	want := []row{
		{"Emergencias 112", finder.PriorityEmergency, presentation.KindRegion},
		{"Línea 024", finder.PriorityEmergency, presentation.KindNational},
		{"Salud Responde", finder.PriorityHotline, presentation.KindRegion},
		{"Teléfono de la Esperanza", finder.PriorityProvince, presentation.KindLocal},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestServeAPI_UnknownProfileUsesDefault(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/recursos?perfil=desconocido&provincia=Jaén", nil)
	rec := httptest.NewRecorder()
	h.ServeAPI(rec, req)

	resp := decodeAPI(t, rec)
	if resp.Profile != h.Rules.DefaultProfile().ID {
		t.Errorf("profile: got %q, want %q", resp.Profile, h.Rules.DefaultProfile().ID)
	}
}

func TestServeAPI_EmptyProvinceKeepsGlobalRows(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/recursos?perfil=general", nil)
	rec := httptest.NewRecorder()
	h.ServeAPI(rec, req)

	resp := decodeAPI(t, rec)
	if resp.Count == 0 {
		t.Fatal("expected global rows")
	}
	for _, r := range resp.Results {
		if !h.Rules.IsScopeSentinel(r.Province) {
			t.Errorf("%q (%s) returned without a province", r.Name, r.Province)
		}
	}
	if got := promtest.ToFloat64(h.Metrics.SearchesTotal.WithLabelValues("general", metrics.SurfaceAPI)); got != 1 {
		t.Errorf("api searches: got %v, want 1", got)
	}
}

func TestServeAPI_TrimsParameters(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/recursos?perfil=duelo&provincia=%20granada%20&localidad=%20MOTRIL%20", nil)
	rec := httptest.NewRecorder()
	h.ServeAPI(rec, req)

	resp := decodeAPI(t, rec)
	if resp.Count == 0 || resp.Results[0].Name != "Asociación Motril Vive" {
		t.Fatalf("expected the Motril row first, got %+v", resp.Results)
	}
	if resp.Results[0].Priority != finder.PriorityLocality {
		t.Errorf("priority: got %d", resp.Results[0].Priority)
	}
}

func TestServeView_UnknownID(t *testing.T) {
	h := newTestHandler(t)

	req := testutil.WithChiURLParam(httptest.NewRequest("GET", "/recursos/nope", nil), "id", "nope")
	rec := httptest.NewRecorder()
	serve(func() { h.ServeView(rec, req) })

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestServeView_KnownID(t *testing.T) {
	h := newTestHandler(t)
	id := h.Catalog.Rows()[0].ID

	req := testutil.WithChiURLParam(httptest.NewRequest("GET", "/recursos/"+id, nil), "id", id)
	rec := httptest.NewRecorder()
	serve(func() { h.ServeView(rec, req) })

	if rec.Code == http.StatusNotFound {
		t.Error("known id should not 404")
	}
}

func TestServeDirectory_HTMXRecordsSnippet(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/?perfil=crisis&provincia=Granada", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	serve(func() { h.ServeDirectory(rec, req) })

	if got := promtest.ToFloat64(h.Metrics.SearchesTotal.WithLabelValues("crisis", metrics.SurfaceSnippet)); got != 1 {
		t.Errorf("snippet searches: got %v, want 1", got)
	}
	if got := promtest.ToFloat64(h.Metrics.SearchesTotal.WithLabelValues("crisis", metrics.SurfacePage)); got != 0 {
		t.Errorf("page searches: got %v, want 0", got)
	}
}

func TestServeDirectory_RemembersSelection(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/?perfil=duelo&provincia=Granada&localidad=Motril", nil)
	rec := httptest.NewRecorder()
	serve(func() { h.ServeDirectory(rec, req) })

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected the selection cookie, got %d cookies", len(cookies))
	}

	next := httptest.NewRequest("GET", "/", nil)
	next.AddCookie(cookies[0])
	q, sel := h.selection(next, true)
	want := prefs.Selection{Profile: "duelo", Province: "Granada", Locality: "Motril"}
	if sel != want {
		t.Errorf("remembered selection: got %+v, want %+v", sel, want)
	}
	if q.Profile.ID != "duelo" {
		t.Errorf("profile: got %q", q.Profile.ID)
	}
}

func TestSelection_Defaults(t *testing.T) {
	h := newTestHandler(t)

	q, sel := h.selection(httptest.NewRequest("GET", "/", nil), true)
	if q.Profile.ID != h.Rules.DefaultProfile().ID {
		t.Errorf("profile: got %q, want the first profile", q.Profile.ID)
	}
	if sel.Province != h.provinces()[0] {
		t.Errorf("province: got %q, want the first province %q", sel.Province, h.provinces()[0])
	}
}

func TestSelection_ExplicitParamsOverrideCookie(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	if err := h.Prefs.Save(rec, httptest.NewRequest("GET", "/", nil), prefs.Selection{Profile: "duelo", Province: "Jaén"}); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("GET", "/?perfil=menores&provincia=Sevilla", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	q, _ := h.selection(req, true)
	if q.Profile.ID != "menores" || q.Province != "Sevilla" {
		t.Errorf("got %q / %q, want menores / Sevilla", q.Profile.ID, q.Province)
	}
}

func TestDirectoryData(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest("GET", "/", nil)
	q, _ := h.selection(httptest.NewRequest("GET", "/?perfil=crisis&provincia=Granada", nil), true)
	results := finder.Search(h.Catalog.Rows(), q, h.Rules, h.Dedupe)

	data := h.directoryData(req, q, results)

	if data.Count != len(data.Cards) || data.Count != 4 {
		t.Errorf("Count: got %d with %d cards", data.Count, len(data.Cards))
	}
	if len(data.Profiles) != len(h.Rules.Profiles) {
		t.Errorf("profiles: got %d", len(data.Profiles))
	}
	selected := 0
	for _, p := range data.Profiles {
		if p.Selected {
			selected++
			if p.ID != "crisis" {
				t.Errorf("selected profile: got %q", p.ID)
			}
		}
	}
	if selected != 1 {
		t.Errorf("expected one selected profile, got %d", selected)
	}

	var provinces []string
	for _, p := range data.Provinces {
		provinces = append(provinces, p.Value)
		if p.Selected != (p.Value == "Granada") {
			t.Errorf("province %q selected=%v", p.Value, p.Selected)
		}
	}
	if diff := cmp.Diff([]string{"Granada", "Jaén", "Sevilla"}, provinces); diff != "" {
		t.Errorf("provinces mismatch (-want +got):\n%s", diff)
	}
}

func TestRoutes_APILimit(t *testing.T) {
	h := newTestHandler(t)
	h.APILimit = ratelimit.New(1, time.Minute)
	router := Routes(h)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/recursos?perfil=crisis&provincia=Granada", nil)
		req.RemoteAddr = "198.51.100.4:4000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if diff := cmp.Diff([]int{http.StatusOK, http.StatusTooManyRequests}, codes); diff != "" {
		t.Errorf("status codes mismatch (-want +got):\n%s", diff)
	}
}

func TestServeAPI_RejectsBadParameters(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"invalid utf-8", "perfil=crisis&provincia=%FF%FE"},
		{"too long", "perfil=crisis&localidad=" + strings.Repeat("a", maxParamRunes+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)
			req := httptest.NewRequest("GET", "/api/recursos?"+tt.query, nil)
			rec := httptest.NewRecorder()
			serve(func() { h.ServeAPI(rec, req) })

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
			if got := promtest.ToFloat64(h.Metrics.SearchesTotal.WithLabelValues("crisis", metrics.SurfaceAPI)); got != 0 {
				t.Errorf("rejected request should not count as a search, got %v", got)
			}
		})
	}
}

func TestServeDirectory_BadParametersHTMX(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/?provincia="+strings.Repeat("x", maxParamRunes+1), nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeDirectory(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), badParamMessage) {
		t.Errorf("expected the plain-text message, got %q", rec.Body.String())
	}
}
