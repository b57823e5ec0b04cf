// Package listener implements the HTTP receiver that records host beacons.
package listener

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"rtkit/internal/beacon"
	"rtkit/internal/store"
)

const maxBeaconsPerMin = 30

// rateTracker tracks per-source-IP beacon counts for rate limiting.
type rateTracker struct {
	mu        sync.Mutex
	counts    map[string]int
	resetTime time.Time
	limit     int
}

func newRateTracker(limit int) *rateTracker {
	return &rateTracker{
		counts:    make(map[string]int),
		resetTime: time.Now().Add(time.Minute),
		limit:     limit,
	}
}

// allow counts one beacon from ip and reports whether it is under the limit.
func (rt *rateTracker) allow(ip string) bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	now := time.Now()
	if now.After(rt.resetTime) {
		rt.counts = make(map[string]int)
		rt.resetTime = now.Add(time.Minute)
	}
	rt.counts[ip]++
	return rt.counts[ip] <= rt.limit
}

// Handler receives beacons and records them.
type Handler struct {
	db      *store.Store
	param   string
	tracker *rateTracker
	log     zerolog.Logger
}

// NewRouter returns the listener's HTTP routes. param names the combined
// hostname\username query parameter.
func NewRouter(db *store.Store, param string, log zerolog.Logger) *mux.Router {
	h := &Handler{
		db:      db,
		param:   param,
		tracker: newRateTracker(maxBeaconsPerMin),
		log:     log,
	}

	r := mux.NewRouter()
	r.HandleFunc("/", h.handleBeacon).Methods(http.MethodGet)
	return r
}

func (h *Handler) handleBeacon(w http.ResponseWriter, r *http.Request) {
	srcIP := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		srcIP = host
	}

	if !h.tracker.allow(srcIP) {
		h.log.Warn().Str("src_ip", srcIP).Msg("Rate limit exceeded, dropping beacon")
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return
	}

	hostname, username, ok := h.identity(r)
	if !ok {
		h.log.Warn().
			Str("src_ip", srcIP).
			Str("query", r.URL.RawQuery).
			Msg("Request without beacon identity")
		http.Error(w, "missing identity", http.StatusBadRequest)
		return
	}

	h.log.Info().
		Str("src_ip", srcIP).
		Str("hostname", hostname).
		Str("username", username).
		Msg("Beacon received")

	_, err := h.db.Upsert(store.Sighting{
		Hostname:   hostname,
		Username:   username,
		RemoteAddr: r.RemoteAddr,
		UserAgent:  r.UserAgent(),
	})
	if err != nil {
		h.log.Error().Err(err).Str("hostname", hostname).Msg("Database write error")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// identity accepts either the combined parameter or separate hostname and
// username parameters.
func (h *Handler) identity(r *http.Request) (string, string, bool) {
	q := r.URL.Query()
	if v := q.Get(h.param); v != "" {
		return beacon.ParseValue(v)
	}
	hostname, username := q.Get("hostname"), q.Get("username")
	if hostname == "" || username == "" {
		return "", "", false
	}
	return hostname, username, true
}
