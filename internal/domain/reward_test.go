package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardItem_UnmarshalAliases(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected RewardItem
	}{
		{
			name:     "adventure log camelCase",
			payload:  `{"itemId": 4, "itemName": "Potion", "quantity": 2, "rarity": "common"}`,
			expected: RewardItem{ItemID: 4, Name: "Potion", Quantity: 2, Rarity: "common"},
		},
		{
			name:     "prompt reward snake_case",
			payload:  `{"item_id": 9, "item_name": "Ether"}`,
			expected: RewardItem{ItemID: 9, Name: "Ether", Quantity: 1},
		},
		{
			name:     "website plain name",
			payload:  `{"id": 3, "name": "Rare Candy", "description": "Raises level"}`,
			expected: RewardItem{ItemID: 3, Name: "Rare Candy", Description: "Raises level", Quantity: 1},
		},
		{
			name:     "empty name falls through to alias",
			payload:  `{"name": "", "itemName": "Elixir"}`,
			expected: RewardItem{Name: "Elixir", Quantity: 1},
		},
		{
			name:     "non-positive quantity defaults to one",
			payload:  `{"name": "Potion", "quantity": 0}`,
			expected: RewardItem{Name: "Potion", Quantity: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var item RewardItem
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &item))
			assert.Equal(t, tt.expected, item)
		})
	}
}

func TestUnclaimedReward_Decode(t *testing.T) {
	payload := `{
		"id": 12,
		"adventure_id": 3,
		"adventure_title": "",
		"word_count": 1200,
		"levels_earned": -2,
		"coins_earned": 1200,
		"items_earned": null,
		"created_at": "2025-03-01T10:00:00Z",
		"is_claimed": false
	}`

	var reward UnclaimedReward
	require.NoError(t, json.Unmarshal([]byte(payload), &reward))
	reward.Normalize()

	assert.Equal(t, int64(12), reward.ID)
	assert.Equal(t, 0, reward.LevelsEarned)
	assert.Equal(t, 1200, reward.CoinsEarned)
	assert.NotNil(t, reward.ItemsEarned)
	assert.Empty(t, reward.ItemsEarned)
	assert.Equal(t, "Untitled Adventure", reward.Title())
}

func TestClaimRequest_WireNames(t *testing.T) {
	req := ClaimRequest{
		AdventureLogID: 1,
		UserID:         2,
		LevelAllocations: []LevelAllocation{
			{ID: 1, EntityType: EntityMonster, EntityID: 5, EntityName: "Sparky", Levels: 2,
				TrainerInfo: &TrainerInfo{TrainerID: 3, TrainerName: "Ash"}},
		},
		CoinAllocations: []CoinAllocation{{ID: 2, TrainerID: 3, TrainerName: "Ash", Coins: 10}},
		ItemAllocations: []ItemAllocation{{Item: RewardItem{ItemID: 7, Name: "Potion", Quantity: 1}, TrainerID: 3}},
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "adventureLogId")
	assert.Contains(t, raw, "userId")

	level := raw["levelAllocations"].([]any)[0].(map[string]any)
	assert.Equal(t, "monster", level["entityType"])
	assert.Equal(t, float64(5), level["entityId"])
	assert.Equal(t, float64(3), level["trainerInfo"].(map[string]any)["trainerId"])

	coin := raw["coinAllocations"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(10), coin["coins"])

	item := raw["itemAllocations"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(3), item["trainerId"])
	assert.Equal(t, "Potion", item["item"].(map[string]any)["name"])
}

func TestMonster_DisplayName(t *testing.T) {
	assert.Equal(t, "Sparky", Monster{Name: "Sparky", Species1: "Pikachu"}.DisplayName())
	assert.Equal(t, "Pikachu/Raichu", Monster{Species1: "Pikachu", Species2: "Raichu"}.DisplayName())
	assert.Equal(t, "", Monster{}.DisplayName())
	assert.Equal(t, []string{"Fire", "Wind"}, Monster{Type1: "Fire", Type3: "Wind"}.Types())
}

func TestErrors_Matching(t *testing.T) {
	var err error = &ValidationError{Reason: "unknown trainer"}
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "invalid allocation: unknown trainer", err.Error())

	err = &NotReadyError{Reason: "coins not fully allocated"}
	assert.True(t, errors.Is(err, ErrNotReady))

	cause := errors.New("connection refused")
	err = &SubmissionError{Err: cause}
	assert.True(t, errors.Is(err, ErrSubmission))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")

	err = &SubmissionError{StatusCode: 409, Message: "already claimed"}
	assert.Equal(t, "claim submission failed (status 409): already claimed", err.Error())
}
