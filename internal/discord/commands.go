package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/TrainerBot_Go/internal/api"
	"github.com/osse101/TrainerBot_Go/internal/claim"
	"github.com/osse101/TrainerBot_Go/internal/domain"
	"github.com/osse101/TrainerBot_Go/internal/logger"
	"github.com/osse101/TrainerBot_Go/internal/metrics"
	"github.com/osse101/TrainerBot_Go/internal/rewards"
)

// CommandTimeout bounds the backend work done for one interaction
const CommandTimeout = 30 * time.Second

// CommandHandler handles a slash command
type CommandHandler func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, claims claim.Service)

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands map[string]*discordgo.ApplicationCommand
	Handlers map[string]CommandHandler
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands: make(map[string]*discordgo.ApplicationCommand),
		Handlers: make(map[string]CommandHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// Handle processes an interaction. Each interaction gets its own request id
// so every log line and backend call it causes can be correlated.
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, claims claim.Service) {
	name := i.ApplicationCommandData().Name
	h, ok := r.Handlers[name]
	if !ok {
		slog.Warn("Unknown command", "command", name)
		return
	}

	RecordCommand()

	ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	logger.FromContext(ctx).Info("Command received", "command", commandName(i), "user_id", interactionUserID(i))
	h(ctx, s, i, claims)
}

// RegisterCommands intelligently registers/updates commands with Discord
// Only performs updates if commands have changed to avoid rate limits
func (b *Bot) RegisterCommands(registry *CommandRegistry, forceUpdate bool) error {
	slog.Info("Checking Discord commands...")

	existingCmds, err := b.Session.ApplicationCommands(b.AppID, "")
	if err != nil {
		return fmt.Errorf("failed to fetch existing commands: %w", err)
	}

	desiredCmds := make([]*discordgo.ApplicationCommand, 0, len(registry.Commands))
	for _, cmd := range registry.Commands {
		desiredCmds = append(desiredCmds, cmd)
	}

	if forceUpdate {
		slog.Info("Force update enabled - replacing all commands", "count", len(desiredCmds))
		_, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, "", desiredCmds)
		if err != nil {
			return fmt.Errorf("failed to bulk overwrite commands: %w", err)
		}
		slog.Info("Commands force updated successfully")
		return nil
	}

	if commandsEqual(existingCmds, desiredCmds) {
		slog.Info("Commands unchanged, skipping registration", "count", len(existingCmds))
		return nil
	}

	slog.Info("Commands changed, updating...",
		"existing", len(existingCmds),
		"desired", len(desiredCmds))

	_, err = b.Session.ApplicationCommandBulkOverwrite(b.AppID, "", desiredCmds)
	if err != nil {
		return fmt.Errorf("failed to update commands: %w", err)
	}

	slog.Info("Commands updated successfully", "count", len(desiredCmds))
	return nil
}

// commandsEqual checks if two command sets are equivalent
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	existingMap := make(map[string]*discordgo.ApplicationCommand)
	for _, cmd := range existing {
		existingMap[cmd.Name] = cmd
	}

	for _, desired := range desired {
		existing, ok := existingMap[desired.Name]
		if !ok {
			return false
		}
		if !commandEqual(existing, desired) {
			return false
		}
	}

	return true
}

// commandEqual checks if two commands are equivalent
func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description {
		return false
	}

	if (a.DefaultMemberPermissions == nil) != (b.DefaultMemberPermissions == nil) {
		return false
	}
	if a.DefaultMemberPermissions != nil && *a.DefaultMemberPermissions != *b.DefaultMemberPermissions {
		return false
	}

	return optionsEqual(a.Options, b.Options)
}

func optionsEqual(a, b []*discordgo.ApplicationCommandOption) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !optionEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// optionEqual checks if two command options, and their subcommand options, are equivalent
func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	if a.Type != b.Type || a.Name != b.Name || a.Description != b.Description ||
		a.Required != b.Required || a.Autocomplete != b.Autocomplete {
		return false
	}

	if len(a.Choices) != len(b.Choices) {
		return false
	}
	for i := range a.Choices {
		if a.Choices[i].Name != b.Choices[i].Name || a.Choices[i].Value != b.Choices[i].Value {
			return false
		}
	}

	return optionsEqual(a.Options, b.Options)
}

// deferResponse acknowledges an interaction with a deferred message visible
// only to the caller. Required before any backend call, since Discord drops
// interactions not acknowledged within 3 seconds. Returns false if deferral
// failed (should return early from handler).
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		slog.Error("Failed to send deferred response", "error", err)
		return false
	}
	return true
}

// getInteractionUser extracts the user from an interaction.
// Handles both guild (i.Member.User) and DM (i.User) contexts.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if user := getInteractionUser(i); user != nil {
		return user.ID
	}
	return ""
}

// commandName is the command plus its subcommand, if any ("claim levels")
func commandName(i *discordgo.InteractionCreate) string {
	data := i.ApplicationCommandData()
	if len(data.Options) > 0 && data.Options[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		return data.Name + " " + data.Options[0].Name
	}
	return data.Name
}

// respondError sends a plain message as the deferred reply
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	recordCommandStatus(i, metrics.CommandStatusError)
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		slog.Error("Failed to edit interaction response", "error", err)
	}
}

// respondFriendlyError logs err and replies with a message the user can act on
func respondFriendlyError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	logger.FromContext(ctx).Warn("Command failed", "command", commandName(i), "error", err)
	respondError(s, i, formatFriendlyError(err))
}

// formatFriendlyError maps claim and backend errors to user-facing text.
// Allocation and readiness failures always name the specific blocking reason.
func formatFriendlyError(err error) string {
	var (
		verr *domain.ValidationError
		nerr *domain.NotReadyError
		serr *domain.SubmissionError
	)

	switch {
	case errors.As(err, &verr):
		return "⚠️ " + reasonMessage(verr.Reason)
	case errors.As(err, &nerr):
		return "⚠️ " + reasonMessage(nerr.Reason)
	case errors.Is(err, domain.ErrDiscordNotLinked):
		return MsgDiscordNotLinked
	case errors.Is(err, domain.ErrClaimInFlight):
		return MsgClaimInFlight
	case errors.Is(err, domain.ErrNoActiveSession):
		return MsgNoActiveSession
	case errors.Is(err, domain.ErrRewardNotFound):
		return MsgRewardNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return MsgInvalidTarget
	case errors.As(err, &serr):
		if serr.StatusCode == 0 || serr.StatusCode >= 500 {
			return MsgBackendUnavailable
		}
		if serr.Message != "" {
			return fmt.Sprintf("**%s**\n%s", TitleClaimRejected, serr.Message)
		}
		return fmt.Sprintf("**%s**\nThe server refused this claim (status %d).", TitleClaimRejected, serr.StatusCode)
	case errors.Is(err, api.ErrMaxRetries), errors.Is(err, context.DeadlineExceeded):
		return MsgBackendUnavailable
	default:
		return "❌ " + err.Error()
	}
}

func reasonMessage(code string) string {
	if reason, ok := rewards.ParseReason(code); ok {
		return reason.Message()
	}
	return code
}

// sendEmbed sends an embed as the deferred reply
func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	recordCommandStatus(i, metrics.CommandStatusOK)
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error("Failed to send response", "error", err)
	}
}

// createEmbed creates a standard embed; an empty footerText uses FooterTrainerBot
func createEmbed(title, description string, color int, footerText string) *discordgo.MessageEmbed {
	if footerText == "" {
		footerText = FooterTrainerBot
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText,
		},
	}
}

func recordCommandStatus(i *discordgo.InteractionCreate, status string) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	metrics.DiscordCommandsTotal.WithLabelValues(commandName(i), status).Inc()
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n-1])) + "…"
}
