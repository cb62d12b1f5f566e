package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TrainerBot_Go/internal/domain"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		entityType domain.EntityType
		id         int64
		owner      int64
		wantErr    bool
	}{
		{name: "trainer", value: "trainer:4", entityType: domain.EntityTrainer, id: 4},
		{name: "bare number is a trainer", value: " 9 ", entityType: domain.EntityTrainer, id: 9},
		{name: "monster with owner", value: "monster:10:1", entityType: domain.EntityMonster, id: 10, owner: 1},
		{name: "monster without owner", value: "monster:10", wantErr: true},
		{name: "free text", value: "Pikachu", wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "unknown kind", value: "egg:3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entityType, id, owner, err := parseTarget(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.entityType, entityType)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.owner, owner)
		})
	}
}

func TestTargetRoundTrip(t *testing.T) {
	entityType, id, owner, err := parseTarget(monsterTarget(domain.Monster{ID: 33, TrainerID: 2}))
	require.NoError(t, err)
	assert.Equal(t, domain.EntityMonster, entityType)
	assert.Equal(t, int64(33), id)
	assert.Equal(t, int64(2), owner)

	entityType, id, _, err = parseTarget(trainerTarget(5))
	require.NoError(t, err)
	assert.Equal(t, domain.EntityTrainer, entityType)
	assert.Equal(t, int64(5), id)
}

func TestSubcommandOptions(t *testing.T) {
	sub, opts := subcommandOptions(claimInteraction(SubCoins, stringOpt(OptTrainer, "2"), intOpt(OptAmount, 15)))

	assert.Equal(t, SubCoins, sub)
	id, err := opts.id(OptTrainer)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
	amount, err := opts.amount(OptAmount)
	require.NoError(t, err)
	assert.Equal(t, 15, amount)

	_, err = opts.id(OptItem)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, opts.str(OptTarget))
}

func TestFocusedOption(t *testing.T) {
	i := commandInteraction(discordgo.InteractionApplicationCommandAutocomplete, "claim", SubLevels,
		stringOpt(OptTarget, "trainer:1"),
		focused(stringOpt(OptTrainer, "mi")))

	opt := focusedOption(i.ApplicationCommandData().Options)
	require.NotNil(t, opt)
	assert.Equal(t, OptTrainer, opt.Name)
	assert.Equal(t, "mi", opt.StringValue())
}
