package discord

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TrainerBot_Go/internal/api"
	"github.com/osse101/TrainerBot_Go/internal/claim"
	"github.com/osse101/TrainerBot_Go/internal/domain"
	"github.com/osse101/TrainerBot_Go/internal/logger"
	"github.com/osse101/TrainerBot_Go/internal/rewards"
)

// TestCommandRegistry tests the command registry
func TestCommandRegistry(t *testing.T) {
	registry := NewCommandRegistry()

	cmd := &discordgo.ApplicationCommand{
		Name:        "test",
		Description: "Test command",
	}

	var gotRequestID string
	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, claims claim.Service) {
		gotRequestID = logger.GetRequestID(ctx)
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
	}

	registry.Register(cmd, handler)
	require.NotNil(t, registry.Commands["test"])
	require.NotNil(t, registry.Handlers["test"])

	before := commandCounter.Load()
	registry.Handle(nil, commandInteraction(discordgo.InteractionApplicationCommand, "test", ""), nil)

	assert.NotEmpty(t, gotRequestID, "Handler runs with a request id")
	assert.Equal(t, before+1, commandCounter.Load())
}

func TestCommandRegistry_UnknownCommand(t *testing.T) {
	registry := NewCommandRegistry()
	before := commandCounter.Load()

	registry.Handle(nil, commandInteraction(discordgo.InteractionApplicationCommand, "missing", ""), nil)

	assert.Equal(t, before, commandCounter.Load())
}

func TestCommandName(t *testing.T) {
	assert.Equal(t, "claim levels", commandName(claimInteraction(SubLevels)))
	assert.Equal(t, "rewards", commandName(commandInteraction(discordgo.InteractionApplicationCommand, "rewards", "")))
}

func TestGetInteractionUser(t *testing.T) {
	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "dm-user"},
	}}
	assert.Equal(t, "dm-user", getInteractionUser(dm).ID)

	guild := claimInteraction(SubStatus)
	assert.Equal(t, testDiscordID, getInteractionUser(guild).ID)

	none := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}
	assert.Nil(t, getInteractionUser(none))
	assert.Empty(t, interactionUserID(none))
}

func TestCommandsEqual(t *testing.T) {
	claimCmd, _ := ClaimCommand()
	rewardsCmd, _ := RewardsCommand()
	again, _ := ClaimCommand()

	assert.True(t, commandsEqual(
		[]*discordgo.ApplicationCommand{claimCmd, rewardsCmd},
		[]*discordgo.ApplicationCommand{rewardsCmd, again},
	), "Order does not matter")

	assert.False(t, commandsEqual(
		[]*discordgo.ApplicationCommand{claimCmd},
		[]*discordgo.ApplicationCommand{claimCmd, rewardsCmd},
	))

	changed, _ := ClaimCommand()
	changed.Options[1].Options[0].Description = "Something else"
	assert.False(t, commandsEqual(
		[]*discordgo.ApplicationCommand{claimCmd},
		[]*discordgo.ApplicationCommand{changed},
	), "Nested option changes are detected")

	noAutocomplete, _ := ClaimCommand()
	noAutocomplete.Options[0].Options[0].Autocomplete = false
	assert.False(t, commandsEqual(
		[]*discordgo.ApplicationCommand{claimCmd},
		[]*discordgo.ApplicationCommand{noAutocomplete},
	))
}

func TestFormatFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Allocation rejected",
			err:      &domain.ValidationError{Reason: rewards.ReasonUnknownMonster.String()},
			expected: "⚠️ " + rewards.ReasonUnknownMonster.Message(),
		},
		{
			name:     "Not ready",
			err:      fmt.Errorf("submit: %w", &domain.NotReadyError{Reason: rewards.ReasonCoinsNotAllocated.String()}),
			expected: "⚠️ " + rewards.ReasonCoinsNotAllocated.Message(),
		},
		{
			name:     "Unknown reason code",
			err:      &domain.ValidationError{Reason: "mystery"},
			expected: "⚠️ mystery",
		},
		{
			name:     "Not linked",
			err:      domain.ErrDiscordNotLinked,
			expected: MsgDiscordNotLinked,
		},
		{
			name:     "In flight",
			err:      domain.ErrClaimInFlight,
			expected: MsgClaimInFlight,
		},
		{
			name:     "No session",
			err:      fmt.Errorf("%w: %w", domain.ErrNoActiveSession, domain.ErrCorruptDraft),
			expected: MsgNoActiveSession,
		},
		{
			name:     "Reward not found",
			err:      fmt.Errorf("%w: %d", domain.ErrRewardNotFound, 42),
			expected: MsgRewardNotFound,
		},
		{
			name:     "Bad option",
			err:      fmt.Errorf("%w: bad", domain.ErrInvalidInput),
			expected: MsgInvalidTarget,
		},
		{
			name:     "Transport failure",
			err:      &domain.SubmissionError{Err: errors.New("connection refused")},
			expected: MsgBackendUnavailable,
		},
		{
			name:     "Server error",
			err:      &domain.SubmissionError{StatusCode: 502},
			expected: MsgBackendUnavailable,
		},
		{
			name:     "Rejected without message",
			err:      &domain.SubmissionError{StatusCode: 409},
			expected: "**" + TitleClaimRejected + "**\nThe server refused this claim (status 409).",
		},
		{
			name:     "Retries exhausted",
			err:      fmt.Errorf("%w: server error: 503", api.ErrMaxRetries),
			expected: MsgBackendUnavailable,
		},
		{
			name:     "Timed out",
			err:      context.DeadlineExceeded,
			expected: MsgBackendUnavailable,
		},
		{
			name:     "Generic Error",
			err:      errors.New("some random error"),
			expected: "❌ some random error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFriendlyError(tt.err))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "ééé…", truncate("éééééé", 4), "Counts runes, not bytes")
}
