package health

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dalemusser/recursosayuda/internal/app/system/catalog"
	"go.uber.org/zap"
)

// Source is the catalog view the health check needs.
type Source interface {
	Get() (catalog.Catalog, error)
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Catalog Source
	Log     *zap.Logger
}

// NewHandler constructs a health Handler with the catalog and logger.
func NewHandler(src Source, logger *zap.Logger) *Handler {
	return &Handler{
		Catalog: src,
		Log:     logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string     `json:"status"`
	Catalog  string     `json:"catalog"`
	Rows     int        `json:"rows"`
	Encoding string     `json:"encoding,omitempty"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
	Message  string     `json:"message,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "catalog":"loaded", "rows":87, "encoding":"utf-8", "loaded_at":"…" }
//
// On load failure: 503 and
//
//	{ "status":"error", "catalog":"unavailable", "message":"Resource table unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	cat, err := h.Catalog.Get()
	if err != nil {
		h.Log.Error("health-check: resource table unavailable", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:  "error",
			Catalog: "unavailable",
			Message: "Resource table unavailable",
			Error:   err.Error(),
		})
		return
	}

	loadedAt := cat.LoadedAt
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:   "ok",
		Catalog:  "loaded",
		Rows:     len(cat.Rows),
		Encoding: cat.Encoding,
		LoadedAt: &loadedAt,
	})
}
