package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/hglok/raidsync/internal/models"
)

// Embed colors per event status
const (
	colorDraft     = 0xf1c40f // yellow, roster still open
	colorScheduled = 0x2ecc71 // green
	colorDefault   = 0x95a5a6 // grey
)

var roleEmoji = map[models.Role]string{
	models.RoleTank:   "🛡️",
	models.RoleHealer: "💚",
	models.RoleDPS:    "⚔️",
}

// renderRosterEmbed builds the roster overview embed for an event
func renderRosterEmbed(event *models.ScheduledEvent) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: event.Title,
		Description: fmt.Sprintf("%d/%d slots filled • starts <t:%d:F>",
			event.Roster.FilledSlots, event.Roster.TotalSlots, event.StartTime.Unix()),
		Color: colorForStatus(event.Status),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("event %s • revision %d", event.ID, event.Version),
		},
	}

	for _, slot := range event.Roster.Party {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s %s", roleEmoji[slot.Role], slot.ID),
			Value:  renderSlot(slot),
			Inline: true,
		})
	}

	return embed
}

func colorForStatus(status models.EventStatus) int {
	switch status {
	case models.EventStatusDraft:
		return colorDraft
	case models.EventStatusScheduled:
		return colorScheduled
	default:
		return colorDefault
	}
}

func renderSlot(slot *models.PartySlot) string {
	if slot.AssignedParticipant == nil {
		if slot.JobRestriction != "" {
			return fmt.Sprintf("_open (%s only)_", prettyJob(slot.JobRestriction))
		}
		return "_open_"
	}

	assigned := slot.AssignedParticipant
	value := fmt.Sprintf("**%s** — %s", assigned.Participant.DisplayName, prettyJob(assigned.Job))
	if slot.DraftedBy != "" {
		value += fmt.Sprintf("\ndrafted by <@%s>", slot.DraftedBy)
	}
	return value
}

// renderLocksEmbed builds the active-locks embed for an event
func renderLocksEmbed(event *models.ScheduledEvent, locks []*models.DraftLock) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Active claims — %s", event.Title),
		Color: colorDraft,
	}

	if len(locks) == 0 {
		embed.Description = "No one is holding a claim right now."
		return embed
	}

	for _, lock := range locks {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("%s (%s)", lock.ParticipantID, lock.ParticipantType),
			Value: fmt.Sprintf("held by **%s** • expires <t:%d:R>",
				lock.LockedByName, lock.ExpiresAt.Unix()),
		})
	}

	return embed
}

// prettyJob turns a job constant like "dark_knight" into "Dark Knight"
func prettyJob(job models.Job) string {
	parts := strings.Split(string(job), "_")
	for n, part := range parts {
		if part == "" {
			continue
		}
		parts[n] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
