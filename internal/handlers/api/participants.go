package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hglok/raidsync/internal/models"
	participantRepo "github.com/hglok/raidsync/internal/repositories/participant"
)

type saveParticipantRequest struct {
	ID          string                 `json:"id"`
	DiscordID   string                 `json:"discordId"`
	DisplayName string                 `json:"displayName"`
	Job         models.Job             `json:"job"`
	Type        models.ParticipantType `json:"type"`
}

func (h *Handler) saveParticipant(w http.ResponseWriter, r *http.Request) {
	var req saveParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, errBadBody(err))
		return
	}
	if !req.Type.IsValid() {
		writeError(w, r, errBadBody(fmt.Errorf("unknown participant type %q", req.Type)))
		return
	}
	if !req.Job.IsValid() {
		writeError(w, r, errBadBody(fmt.Errorf("unknown job %q", req.Job)))
		return
	}

	p := &models.Participant{
		ID:          req.ID,
		GuildID:     r.PathValue("guild"),
		DiscordID:   req.DiscordID,
		DisplayName: req.DisplayName,
		Job:         req.Job,
		Type:        req.Type,
	}

	if err := h.participants.SaveParticipant(r.Context(), &participantRepo.SaveParticipantInput{Participant: p}); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) listParticipants(w http.ResponseWriter, r *http.Request) {
	out, err := h.participants.ListParticipantsByGuild(r.Context(), &participantRepo.ListParticipantsByGuildInput{
		GuildID: r.PathValue("guild"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	participants := out.Participants
	if participants == nil {
		participants = []*models.Participant{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"participants": participants})
}

func (h *Handler) deleteParticipant(w http.ResponseWriter, r *http.Request) {
	err := h.participants.DeleteParticipant(r.Context(), &participantRepo.DeleteParticipantInput{
		GuildID:         r.PathValue("guild"),
		ParticipantType: models.ParticipantType(r.PathValue("type")),
		ParticipantID:   r.PathValue("id"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
