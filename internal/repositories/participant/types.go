package participant

import "github.com/hglok/raidsync/internal/models"

// SaveParticipantInput contains parameters for saving a participant
type SaveParticipantInput struct {
	Participant *models.Participant
}

// GetParticipantInput contains parameters for resolving a participant
type GetParticipantInput struct {
	GuildID         string
	ParticipantType models.ParticipantType
	ParticipantID   string
}

// DeleteParticipantInput contains parameters for removing a participant
type DeleteParticipantInput struct {
	GuildID         string
	ParticipantType models.ParticipantType
	ParticipantID   string
}

// ListParticipantsByGuildInput contains parameters for listing a guild's pool
type ListParticipantsByGuildInput struct {
	GuildID string
}

// ListParticipantsByGuildOutput contains the result of listing a guild's pool
type ListParticipantsByGuildOutput struct {
	Participants []*models.Participant
}
