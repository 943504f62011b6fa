package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/hglok/raidsync/internal/common/logger"
	"github.com/hglok/raidsync/internal/services/draft"
)

// Bot represents the Discord bot instance
type Bot struct {
	session      *discordgo.Session
	commands     map[string]CommandHandler
	commandIDs   map[string]string // Maps command name to command ID
	draftService draft.Service
	config       *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Draft service
	DraftService draft.Service
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.DraftService == nil {
		return nil, errors.New("draft service cannot be nil")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:      session,
		commands:     make(map[string]CommandHandler),
		commandIDs:   make(map[string]string),
		draftService: cfg.DraftService,
		config:       cfg,
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	// Register the raid command
	raidCmd := NewRaidCommand(b.draftService)
	if err := b.RegisterCommand(raidCmd); err != nil {
		return fmt.Errorf("failed to register raid command: %w", err)
	}

	logger.L().Info(context.Background(), "discord bot is running")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	ctx := context.Background()

	// Remove all commands
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			logger.L().Warn(ctx, "failed to delete command",
				logger.String("command", cmdName),
				logger.Error(err))
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	ctx := context.Background()

	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	guildID := b.config.GuildID

	createdCmd, err := b.session.ApplicationCommandCreate(appID, guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	logger.L().Info(ctx, "registered command",
		logger.String("command", cmd.GetName()),
		logger.String("command_id", createdCmd.ID))

	return nil
}

// Component custom ID prefixes. The event ID rides along after the colon.
const (
	ButtonRefreshRoster = "refresh_roster"
	ButtonReleaseLocks  = "release_my_locks"
)

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		// Handle slash commands
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				logger.L().Error(context.Background(), "command failed",
					logger.String("command", i.ApplicationCommandData().Name),
					logger.Error(err))
			}
		}
	case discordgo.InteractionMessageComponent:
		// Handle buttons and other components
		if err := b.handleComponentInteraction(s, i); err != nil {
			logger.L().Error(context.Background(), "component interaction failed",
				logger.Error(err))
		}
	}
}

// handleComponentInteraction handles button clicks on roster messages
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	action, eventID, ok := strings.Cut(i.MessageComponentData().CustomID, ":")
	if !ok {
		return RespondWithError(s, i, "Unknown button")
	}

	switch action {
	case ButtonRefreshRoster:
		return b.handleRefreshRoster(s, i, eventID)
	case ButtonReleaseLocks:
		return b.handleReleaseMyLocks(s, i, eventID)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", action))
	}
}

// handleRefreshRoster re-renders the roster embed in place
func (b *Bot) handleRefreshRoster(s *discordgo.Session, i *discordgo.InteractionCreate, eventID string) error {
	ctx := context.Background()

	out, err := b.draftService.GetEvent(ctx, &draft.GetEventInput{EventID: eventID})
	if err != nil {
		return RespondWithError(s, i, friendlyError(err))
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{renderRosterEmbed(out.Event)},
			Components: rosterComponents(eventID),
		},
	})
}

// handleReleaseMyLocks drops every claim the clicking leader holds
func (b *Bot) handleReleaseMyLocks(s *discordgo.Session, i *discordgo.InteractionCreate, eventID string) error {
	ctx := context.Background()

	out, err := b.draftService.ReleaseAllLocks(ctx, &draft.ReleaseAllLocksInput{
		EventID:  eventID,
		HolderID: interactionUserID(i),
	})
	if err != nil {
		return RespondWithError(s, i, friendlyError(err))
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("Released %d claim(s).", len(out.Released)))
}

// rosterComponents builds the action row attached to roster messages
func rosterComponents(eventID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Refresh",
					Style:    discordgo.SecondaryButton,
					CustomID: ButtonRefreshRoster + ":" + eventID,
				},
				discordgo.Button{
					Label:    "Release my claims",
					Style:    discordgo.DangerButton,
					CustomID: ButtonReleaseLocks + ":" + eventID,
				},
			},
		},
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func interactionUserName(i *discordgo.InteractionCreate) string {
	if i.Member != nil {
		if i.Member.Nick != "" {
			return i.Member.Nick
		}
		if i.Member.User != nil {
			return i.Member.User.Username
		}
	}
	if i.User != nil {
		return i.User.Username
	}
	return ""
}
