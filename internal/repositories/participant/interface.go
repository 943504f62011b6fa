package participant

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/hglok/raidsync/internal/repositories/participant Repository

import (
	"context"

	"github.com/hglok/raidsync/internal/models"
)

// Repository defines the interface for the participant pool. It backs the
// directory used by assignment validation: a participant is assignable only
// if it resolves here.
type Repository interface {
	// SaveParticipant persists a participant
	SaveParticipant(ctx context.Context, input *SaveParticipantInput) error

	// GetParticipant retrieves a participant by guild, type, and ID
	GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.Participant, error)

	// DeleteParticipant removes a participant from the pool
	DeleteParticipant(ctx context.Context, input *DeleteParticipantInput) error

	// ListParticipantsByGuild retrieves a guild's signup pool
	ListParticipantsByGuild(ctx context.Context, input *ListParticipantsByGuildInput) (*ListParticipantsByGuildOutput, error)
}
