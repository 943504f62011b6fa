package models

// ParticipantType represents the kind of volunteer a participant is
type ParticipantType string

const (
	// ParticipantTypeHelper indicates a recurring support player
	ParticipantTypeHelper ParticipantType = "helper"

	// ParticipantTypeProgger indicates a primary learner on the raid team
	ParticipantTypeProgger ParticipantType = "progger"
)

// IsValid returns true if the participant type is a known type
func (t ParticipantType) IsValid() bool {
	return t == ParticipantTypeHelper || t == ParticipantTypeProgger
}

// Participant represents a volunteer eligible to be drafted into a roster
type Participant struct {
	// ID is the participant's identifier, stable within a guild
	ID string `json:"id"`

	// GuildID is the Discord server/guild the participant signed up in
	GuildID string `json:"guildId"`

	// DiscordID is the participant's Discord user ID
	DiscordID string `json:"discordId"`

	// DisplayName is the participant's display name
	DisplayName string `json:"displayName"`

	// Job is the job the participant signed up with
	Job Job `json:"job"`

	// Type is whether the participant is a helper or a progger
	Type ParticipantType `json:"participantType"`
}
