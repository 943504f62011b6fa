package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/hglok/raidsync/internal/metrics"
	"github.com/hglok/raidsync/internal/models"
	participantRepo "github.com/hglok/raidsync/internal/repositories/participant"
	"github.com/hglok/raidsync/internal/services/draft"
	"github.com/hglok/raidsync/internal/services/feed"
)

// Config holds the dependencies for the HTTP API
type Config struct {
	// Service executes draft and roster operations
	Service draft.Service

	// Participants manages the guild signup pool
	Participants participantRepo.Repository

	// Feed hands out live change subscriptions for the feed endpoint
	Feed *feed.Feed
}

// Handler serves the draft coordination HTTP API
type Handler struct {
	service      draft.Service
	participants participantRepo.Repository
	feed         *feed.Feed
}

// New creates a new API handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if cfg.Service == nil {
		return nil, errors.New("draft service is required")
	}
	if cfg.Participants == nil {
		return nil, errors.New("participant repository is required")
	}
	if cfg.Feed == nil {
		return nil, errors.New("feed is required")
	}

	return &Handler{
		service:      cfg.Service,
		participants: cfg.Participants,
		feed:         cfg.Feed,
	}, nil
}

// Routes returns the API's route table
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /events", h.instrument("create_event", h.createEvent))
	mux.Handle("GET /events/{id}", h.instrument("get_event", h.getEvent))
	mux.Handle("DELETE /events/{id}", h.instrument("delete_event", h.deleteEvent))

	mux.Handle("GET /events/{id}/locks", h.instrument("list_locks", h.listLocks))
	mux.Handle("POST /events/{id}/locks", h.instrument("acquire_lock", h.acquireLock))
	mux.Handle("POST /events/{id}/locks/release", h.instrument("release_lock", h.releaseLock))
	mux.Handle("POST /events/{id}/locks/release-all", h.instrument("release_all_locks", h.releaseAllLocks))

	mux.Handle("POST /events/{id}/roster/assign", h.instrument("assign", h.assign))
	mux.Handle("POST /events/{id}/roster/unassign", h.instrument("unassign", h.unassign))

	mux.Handle("POST /guilds/{guild}/participants", h.instrument("save_participant", h.saveParticipant))
	mux.Handle("GET /guilds/{guild}/participants", h.instrument("list_participants", h.listParticipants))
	mux.Handle("DELETE /guilds/{guild}/participants/{type}/{id}", h.instrument("delete_participant", h.deleteParticipant))

	mux.HandleFunc("GET /events/{id}/feed", h.streamFeed)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", metrics.Handler())

	return mux
}

// statusRecorder captures the status code written by a handler so the
// request metric can carry it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (h *Handler) instrument(endpoint string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		metrics.RecordHTTPRequest(endpoint, strconv.Itoa(rec.status), time.Since(start))
	})
}

type createEventRequest struct {
	GuildID   string    `json:"guildId"`
	ChannelID string    `json:"channelId"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	CreatedBy string    `json:"createdBy"`
}

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, errBadBody(err))
		return
	}

	out, err := h.service.CreateEvent(r.Context(), &draft.CreateEventInput{
		GuildID:   req.GuildID,
		ChannelID: req.ChannelID,
		Title:     req.Title,
		StartTime: req.StartTime,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, out.Event)
}

func (h *Handler) getEvent(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.GetEvent(r.Context(), &draft.GetEventInput{EventID: r.PathValue("id")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Event)
}

func (h *Handler) deleteEvent(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.DeleteEvent(r.Context(), &draft.DeleteEventInput{EventID: r.PathValue("id")}); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listLocks(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListLocks(r.Context(), &draft.ListLocksInput{EventID: r.PathValue("id")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	locks := out.Locks
	if locks == nil {
		locks = []*models.DraftLock{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"locks": locks})
}

type acquireLockRequest struct {
	ParticipantID   string                 `json:"participantId"`
	ParticipantType models.ParticipantType `json:"participantType"`
	HolderID        string                 `json:"holderId"`
	HolderName      string                 `json:"holderName"`
	TTLSeconds      int                    `json:"ttlSeconds"`
}

type acquireLockResponse struct {
	Lock     *models.DraftLock `json:"lock"`
	Extended bool              `json:"extended"`
}

func (h *Handler) acquireLock(w http.ResponseWriter, r *http.Request) {
	var req acquireLockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, errBadBody(err))
		return
	}

	out, err := h.service.AcquireLock(r.Context(), &draft.AcquireLockInput{
		EventID:         r.PathValue("id"),
		ParticipantID:   req.ParticipantID,
		ParticipantType: req.ParticipantType,
		HolderID:        req.HolderID,
		HolderName:      req.HolderName,
		TTL:             time.Duration(req.TTLSeconds) * time.Second,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := http.StatusCreated
	if out.Extended {
		status = http.StatusOK
	}
	writeJSON(w, status, acquireLockResponse{Lock: out.Lock, Extended: out.Extended})
}

type releaseLockRequest struct {
	ParticipantID   string                 `json:"participantId"`
	ParticipantType models.ParticipantType `json:"participantType"`
	HolderID        string                 `json:"holderId"`
}

func (h *Handler) releaseLock(w http.ResponseWriter, r *http.Request) {
	var req releaseLockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, errBadBody(err))
		return
	}

	out, err := h.service.ReleaseLock(r.Context(), &draft.ReleaseLockInput{
		EventID:         r.PathValue("id"),
		ParticipantID:   req.ParticipantID,
		ParticipantType: req.ParticipantType,
		HolderID:        req.HolderID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"lock": out.Lock})
}

type releaseAllRequest struct {
	HolderID string `json:"holderId"`
}

func (h *Handler) releaseAllLocks(w http.ResponseWriter, r *http.Request) {
	var req releaseAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, errBadBody(err))
		return
	}

	out, err := h.service.ReleaseAllLocks(r.Context(), &draft.ReleaseAllLocksInput{
		EventID:  r.PathValue("id"),
		HolderID: req.HolderID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	released := out.Released
	if released == nil {
		released = []*models.DraftLock{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"released": released})
}

type assignRequest struct {
	HolderID        string                 `json:"holderId"`
	SlotID          string                 `json:"slotId"`
	ParticipantID   string                 `json:"participantId"`
	ParticipantType models.ParticipantType `json:"participantType"`
	SelectedJob     models.Job             `json:"selectedJob,omitempty"`
}

func (h *Handler) assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, errBadBody(err))
		return
	}

	out, err := h.service.AssignParticipant(r.Context(), &draft.AssignParticipantInput{
		EventID:         r.PathValue("id"),
		HolderID:        req.HolderID,
		SlotID:          req.SlotID,
		ParticipantID:   req.ParticipantID,
		ParticipantType: req.ParticipantType,
		SelectedJob:     req.SelectedJob,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Event)
}

type unassignRequest struct {
	HolderID string `json:"holderId"`
	SlotID   string `json:"slotId"`
}

func (h *Handler) unassign(w http.ResponseWriter, r *http.Request) {
	var req unassignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, errBadBody(err))
		return
	}

	out, err := h.service.UnassignParticipant(r.Context(), &draft.UnassignParticipantInput{
		EventID:  r.PathValue("id"),
		HolderID: req.HolderID,
		SlotID:   req.SlotID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Event)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
