package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"animd/internal/sched"
	"animd/pkg/types"
)

// Service is the scheduling surface the HTTP layer exposes.
// *sched.Scheduler satisfies it.
type Service interface {
	Enqueue(spec sched.Spec) (string, error)
	Cancel(id string)
	ClearAll()
	PlanAppear(targets []string, opts sched.AppearOptions) ([]string, error)
	PlanDisappear(targets []string, opts sched.DisappearOptions) ([]string, error)
	PlanZoomTransition(visible, hidden []string, zoomLevel int) (sched.ZoomPlan, error)
	Hover(targetID string, entering bool) (string, error)
	Click(targetID string) (string, error)
	Status() types.StatusResponse
	SetCinematicMode(enabled bool) types.DisplayMode
	Ready() bool
}

// RendererBridge is the websocket fanout mounted at /ws. A nil bridge
// disables the endpoint and leaves StatusResponse.KnownTargets at zero.
type RendererBridge interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
	TargetCount() int
}

func NewMux(svc Service, bridge RendererBridge) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Request metrics
	r.Use(MetricsMiddleware)
	// CORS is opt-in; map pages usually call the planner from another origin
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Post("/animations", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		var req types.EnqueueRequest
		if !readJSON(w, r, &req) {
			return
		}
		id, err := svc.Enqueue(sched.Spec{
			TargetID: req.TargetID,
			Kind:     sched.Kind(req.Kind),
			Priority: req.Priority,
			Delay:    time.Duration(req.DelayMs) * time.Millisecond,
			Duration: time.Duration(req.DurationMs) * time.Millisecond,
			Easing:   req.Easing,
		})
		if err != nil {
			writeSchedError(w, err)
			return
		}
		logRequest(r, http.StatusOK, start, "enqueue")
		writeJSON(w, http.StatusOK, types.EnqueueResponse{ID: id})
	})

	r.Delete("/animations/{id}", func(w http.ResponseWriter, r *http.Request) {
		// Cancellation is idempotent: unknown and finished ids succeed too.
		svc.Cancel(chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/animations/clear", func(w http.ResponseWriter, r *http.Request) {
		svc.ClearAll()
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/plan/appear", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		var req types.PlanAppearRequest
		if !readJSON(w, r, &req) {
			return
		}
		ids, err := svc.PlanAppear(req.Targets, sched.AppearOptions{
			Stagger:        time.Duration(req.StaggerMs) * time.Millisecond,
			MaxStagger:     time.Duration(req.MaxStaggerMs) * time.Millisecond,
			QualityOrdered: req.QualityOrdered,
			Duration:       time.Duration(req.DurationMs) * time.Millisecond,
			Easing:         req.Easing,
		})
		if err != nil {
			writeSchedError(w, err)
			return
		}
		logRequest(r, http.StatusOK, start, "plan appear")
		writeJSON(w, http.StatusOK, types.PlanResponse{IDs: ids, Count: len(ids)})
	})

	r.Post("/plan/disappear", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		var req types.PlanDisappearRequest
		if !readJSON(w, r, &req) {
			return
		}
		ids, err := svc.PlanDisappear(req.Targets, sched.DisappearOptions{
			Stagger:  time.Duration(req.StaggerMs) * time.Millisecond,
			Order:    req.Order,
			Duration: time.Duration(req.DurationMs) * time.Millisecond,
		})
		if err != nil {
			writeSchedError(w, err)
			return
		}
		logRequest(r, http.StatusOK, start, "plan disappear")
		writeJSON(w, http.StatusOK, types.PlanResponse{IDs: ids, Count: len(ids)})
	})

	r.Post("/plan/zoom", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		var req types.ZoomTransitionRequest
		if !readJSON(w, r, &req) {
			return
		}
		plan, err := svc.PlanZoomTransition(req.Visible, req.Hidden, req.ZoomLevel)
		if err != nil {
			writeSchedError(w, err)
			return
		}
		// Hidden targets lead the timeline, so report them first.
		ids := append(append([]string(nil), plan.HiddenIDs...), plan.VisibleIDs...)
		logRequest(r, http.StatusOK, start, "plan zoom")
		writeJSON(w, http.StatusOK, types.PlanResponse{IDs: ids, Count: len(ids)})
	})

	r.Post("/hover", func(w http.ResponseWriter, r *http.Request) {
		var req types.HoverRequest
		if !readJSON(w, r, &req) {
			return
		}
		id, err := svc.Hover(req.TargetID, req.Entering)
		if err != nil {
			writeSchedError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.EnqueueResponse{ID: id})
	})

	r.Post("/click", func(w http.ResponseWriter, r *http.Request) {
		var req types.ClickRequest
		if !readJSON(w, r, &req) {
			return
		}
		id, err := svc.Click(req.TargetID)
		if err != nil {
			writeSchedError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.EnqueueResponse{ID: id})
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		st := svc.Status()
		if bridge != nil {
			st.KnownTargets = bridge.TargetCount()
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(st); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Post("/mode/cinematic", func(w http.ResponseWriter, r *http.Request) {
		var req types.ModeRequest
		if !readJSON(w, r, &req) {
			return
		}
		writeJSON(w, http.StatusOK, svc.SetCinematicMode(req.Enabled))
	})

	if bridge != nil {
		r.Get("/ws", bridge.ServeWS)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("closed"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// readJSON decodes a JSON body into dst, enforcing the content type and the
// configured size limit. On failure it writes the error and returns false.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeSchedError maps scheduler errors onto HTTP status codes.
func writeSchedError(w http.ResponseWriter, err error) {
	switch {
	case sched.IsUnknownKind(err), sched.IsEmptyTarget(err):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case sched.IsClosed(err):
		IncrementBackpressure("closed")
		writeJSONError(w, http.StatusServiceUnavailable, err.Error())
	default:
		if he, ok := err.(HTTPError); ok {
			writeJSONError(w, he.StatusCode(), he.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
