package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/hglok/raidsync/internal/models"
	"github.com/hglok/raidsync/internal/services/draft"
)

// RaidCommand handles the /raid command and its subcommands
type RaidCommand struct {
	BaseCommand
	draftService draft.Service
}

// NewRaidCommand creates a new raid command handler
func NewRaidCommand(draftService draft.Service) *RaidCommand {
	typeOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "type",
		Description: "Participant type",
		Required:    true,
		Choices: []*discordgo.ApplicationCommandOptionChoice{
			{Name: "Progger", Value: string(models.ParticipantTypeProgger)},
			{Name: "Helper", Value: string(models.ParticipantTypeHelper)},
		},
	}
	eventOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "event",
		Description: "Event ID",
		Required:    true,
	}
	participantOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "participant",
		Description: "Participant ID",
		Required:    true,
	}

	return &RaidCommand{
		BaseCommand: BaseCommand{
			Name:        "raid",
			Description: "Coordinate raid rosters",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Create a raid event",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "title",
							Description: "Event title",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "start",
							Description: "Start time (RFC3339, e.g. 2025-03-14T20:00:00Z)",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "roster",
					Description: "Show an event's roster",
					Options:     []*discordgo.ApplicationCommandOption{eventOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "claims",
					Description: "Show who is claiming whom",
					Options:     []*discordgo.ApplicationCommandOption{eventOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "lock",
					Description: "Claim a participant while you decide",
					Options: []*discordgo.ApplicationCommandOption{
						eventOption, participantOption, typeOption,
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "minutes",
							Description: "How long to hold the claim",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "release",
					Description: "Release one of your claims",
					Options: []*discordgo.ApplicationCommandOption{
						eventOption, participantOption, typeOption,
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "assign",
					Description: "Place a participant into a roster slot",
					Options: []*discordgo.ApplicationCommandOption{
						eventOption,
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "slot",
							Description: "Slot ID, e.g. tank-1 or dps-3",
							Required:    true,
						},
						participantOption, typeOption,
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "job",
							Description: "Override the participant's signup job",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "unassign",
					Description: "Clear a slot you drafted",
					Options: []*discordgo.ApplicationCommandOption{
						eventOption,
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "slot",
							Description: "Slot ID, e.g. tank-1 or dps-3",
							Required:    true,
						},
					},
				},
			},
		},
		draftService: draftService,
	}
}

// Handle processes a /raid interaction
func (c *RaidCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return RespondWithError(s, i, "Missing subcommand")
	}

	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "create":
		return c.handleCreate(s, i, opts)
	case "roster":
		return c.handleRoster(s, i, opts)
	case "claims":
		return c.handleClaims(s, i, opts)
	case "lock":
		return c.handleLock(s, i, opts)
	case "release":
		return c.handleRelease(s, i, opts)
	case "assign":
		return c.handleAssign(s, i, opts)
	case "unassign":
		return c.handleUnassign(s, i, opts)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown subcommand: %s", sub.Name))
	}
}

func (c *RaidCommand) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate, opts optionValues) error {
	ctx := context.Background()

	start, err := time.Parse(time.RFC3339, opts.str("start"))
	if err != nil {
		return RespondWithError(s, i, "Start time must be RFC3339, e.g. 2025-03-14T20:00:00Z")
	}

	out, err := c.draftService.CreateEvent(ctx, &draft.CreateEventInput{
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		Title:     opts.str("title"),
		StartTime: start,
		CreatedBy: interactionUserID(i),
	})
	if err != nil {
		return RespondWithError(s, i, friendlyError(err))
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{renderRosterEmbed(out.Event)},
			Components: rosterComponents(out.Event.ID),
		},
	})
}

func (c *RaidCommand) handleRoster(s *discordgo.Session, i *discordgo.InteractionCreate, opts optionValues) error {
	ctx := context.Background()

	out, err := c.draftService.GetEvent(ctx, &draft.GetEventInput{EventID: opts.str("event")})
	if err != nil {
		return RespondWithError(s, i, friendlyError(err))
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{renderRosterEmbed(out.Event)},
			Components: rosterComponents(out.Event.ID),
		},
	})
}

func (c *RaidCommand) handleClaims(s *discordgo.Session, i *discordgo.InteractionCreate, opts optionValues) error {
	ctx := context.Background()
	eventID := opts.str("event")

	eventOut, err := c.draftService.GetEvent(ctx, &draft.GetEventInput{EventID: eventID})
	if err != nil {
		return RespondWithError(s, i, friendlyError(err))
	}

	locksOut, err := c.draftService.ListLocks(ctx, &draft.ListLocksInput{EventID: eventID})
	if err != nil {
		return RespondWithError(s, i, friendlyError(err))
	}

	return RespondWithEmbed(s, i, renderLocksEmbed(eventOut.Event, locksOut.Locks))
}

func (c *RaidCommand) handleLock(s *discordgo.Session, i *discordgo.InteractionCreate, opts optionValues) error {
	ctx := context.Background()

	var ttl time.Duration
	if minutes := opts.num("minutes"); minutes > 0 {
		ttl = time.Duration(minutes) * time.Minute
	}

	out, err := c.draftService.AcquireLock(ctx, &draft.AcquireLockInput{
		EventID:         opts.str("event"),
		ParticipantID:   opts.str("participant"),
		ParticipantType: models.ParticipantType(opts.str("type")),
		HolderID:        interactionUserID(i),
		HolderName:      interactionUserName(i),
		TTL:             ttl,
	})
	if err != nil {
		return RespondWithError(s, i, friendlyError(err))
	}

	verb := "Claimed"
	if out.Extended {
		verb = "Extended your claim on"
	}
	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("%s **%s** until <t:%d:R>.", verb, out.Lock.ParticipantID, out.Lock.ExpiresAt.Unix()))
}

func (c *RaidCommand) handleRelease(s *discordgo.Session, i *discordgo.InteractionCreate, opts optionValues) error {
	ctx := context.Background()

	out, err := c.draftService.ReleaseLock(ctx, &draft.ReleaseLockInput{
		EventID:         opts.str("event"),
		ParticipantID:   opts.str("participant"),
		ParticipantType: models.ParticipantType(opts.str("type")),
		HolderID:        interactionUserID(i),
	})
	if err != nil {
		return RespondWithError(s, i, friendlyError(err))
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("Released your claim on **%s**.", out.Lock.ParticipantID))
}

func (c *RaidCommand) handleAssign(s *discordgo.Session, i *discordgo.InteractionCreate, opts optionValues) error {
	ctx := context.Background()

	out, err := c.draftService.AssignParticipant(ctx, &draft.AssignParticipantInput{
		EventID:         opts.str("event"),
		HolderID:        interactionUserID(i),
		SlotID:          opts.str("slot"),
		ParticipantID:   opts.str("participant"),
		ParticipantType: models.ParticipantType(opts.str("type")),
		SelectedJob:     models.Job(opts.str("job")),
	})
	if err != nil {
		return RespondWithError(s, i, friendlyError(err))
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{renderRosterEmbed(out.Event)},
			Components: rosterComponents(out.Event.ID),
		},
	})
}

func (c *RaidCommand) handleUnassign(s *discordgo.Session, i *discordgo.InteractionCreate, opts optionValues) error {
	ctx := context.Background()

	out, err := c.draftService.UnassignParticipant(ctx, &draft.UnassignParticipantInput{
		EventID:  opts.str("event"),
		HolderID: interactionUserID(i),
		SlotID:   opts.str("slot"),
	})
	if err != nil {
		return RespondWithError(s, i, friendlyError(err))
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{renderRosterEmbed(out.Event)},
			Components: rosterComponents(out.Event.ID),
		},
	})
}

type optionValues map[string]*discordgo.ApplicationCommandInteractionDataOption

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) optionValues {
	m := make(optionValues, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func (o optionValues) str(name string) string {
	if opt, ok := o[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func (o optionValues) num(name string) int64 {
	if opt, ok := o[name]; ok {
		return opt.IntValue()
	}
	return 0
}

// friendlyError maps service errors to something readable in Discord
func friendlyError(err error) string {
	var conflict *draft.LockConflictError
	if errors.As(err, &conflict) {
		return fmt.Sprintf("That participant is claimed by **%s** until <t:%d:R>.",
			conflict.HolderName, conflict.ExpiresAt.Unix())
	}

	switch {
	case errors.Is(err, draft.ErrEventNotFound):
		return "No such event."
	case errors.Is(err, draft.ErrSlotNotFound):
		return "No such slot. Use tank-1..2, healer-1..2, or dps-1..4."
	case errors.Is(err, draft.ErrParticipantNotFound):
		return "That participant isn't signed up for this guild."
	case errors.Is(err, draft.ErrLockNotFound):
		return "You don't have a claim on that participant."
	case errors.Is(err, draft.ErrNotLockHolder):
		return "Someone else holds that claim."
	case errors.Is(err, draft.ErrSlotOccupied):
		return "That slot is already filled."
	case errors.Is(err, draft.ErrSlotEmpty):
		return "That slot is already empty."
	case errors.Is(err, draft.ErrNotDrafter):
		return "Only the leader who drafted that slot can clear it."
	case errors.Is(err, draft.ErrJobRoleMismatch):
		return "That job can't fill that slot's role."
	case errors.Is(err, draft.ErrJobRestricted):
		return "That slot is restricted to a specific job."
	case errors.Is(err, draft.ErrInvalidJob):
		return "Unknown job."
	case errors.Is(err, draft.ErrConcurrentUpdate):
		return "The roster changed underneath you. Try again."
	}

	return "Something went wrong. Try again in a moment."
}
