package domain

import (
	"encoding/json"
	"time"
)

// EntityType identifies what a level allocation targets
type EntityType string

const (
	EntityTrainer EntityType = "trainer"
	EntityMonster EntityType = "monster"
)

// Valid reports whether t is one of the known entity types.
func (t EntityType) Valid() bool {
	return t == EntityTrainer || t == EntityMonster
}

// RewardItem is one indivisible item earned on an adventure
type RewardItem struct {
	ItemID      int64  `json:"item_id,omitempty"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Rarity      string `json:"rarity,omitempty"`
	Quantity    int    `json:"quantity,omitempty"`
}

// rewardItemWire lists every field name the backend has used for items.
// Adventure logs store camelCase (itemName), prompt rewards use snake_case
// (item_name), and the website model uses plain name.
type rewardItemWire struct {
	ID          *int64 `json:"id"`
	ItemIDCamel *int64 `json:"itemId"`
	ItemIDSnake *int64 `json:"item_id"`

	Name      *string `json:"name"`
	NameCamel *string `json:"itemName"`
	NameSnake *string `json:"item_name"`

	Description *string `json:"description"`
	Rarity      *string `json:"rarity"`
	Quantity    *int    `json:"quantity"`
}

// UnmarshalJSON decodes an item accepting the known field-name aliases.
// The first alias present wins, in the order listed on rewardItemWire.
func (i *RewardItem) UnmarshalJSON(data []byte) error {
	var w rewardItemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*i = RewardItem{Quantity: 1}
	if id := firstInt64(w.ID, w.ItemIDCamel, w.ItemIDSnake); id != nil {
		i.ItemID = *id
	}
	if name := firstString(w.Name, w.NameCamel, w.NameSnake); name != nil {
		i.Name = *name
	}
	if w.Description != nil {
		i.Description = *w.Description
	}
	if w.Rarity != nil {
		i.Rarity = *w.Rarity
	}
	if w.Quantity != nil && *w.Quantity > 0 {
		i.Quantity = *w.Quantity
	}
	return nil
}

func firstInt64(vals ...*int64) *int64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstString(vals ...*string) *string {
	for _, v := range vals {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}

// UnclaimedReward is a completed-adventure payout that has not been distributed
type UnclaimedReward struct {
	ID                   int64        `json:"id"`
	AdventureID          int64        `json:"adventure_id"`
	AdventureTitle       string       `json:"adventure_title"`
	AdventureDescription string       `json:"adventure_description,omitempty"`
	WordCount            int          `json:"word_count"`
	MessageCount         int          `json:"message_count"`
	LevelsEarned         int          `json:"levels_earned"`
	CoinsEarned          int          `json:"coins_earned"`
	ItemsEarned          []RewardItem `json:"items_earned"`
	CreatedAt            time.Time    `json:"created_at"`
	IsClaimed            bool         `json:"is_claimed"`
}

// Normalize clamps negative counters to zero and replaces a nil item list.
func (r *UnclaimedReward) Normalize() {
	if r.WordCount < 0 {
		r.WordCount = 0
	}
	if r.LevelsEarned < 0 {
		r.LevelsEarned = 0
	}
	if r.CoinsEarned < 0 {
		r.CoinsEarned = 0
	}
	if r.ItemsEarned == nil {
		r.ItemsEarned = []RewardItem{}
	}
}

// Title returns the adventure title or a placeholder for untitled adventures.
func (r UnclaimedReward) Title() string {
	if r.AdventureTitle == "" {
		return "Untitled Adventure"
	}
	return r.AdventureTitle
}

// TrainerInfo identifies the owner of a monster receiving levels
type TrainerInfo struct {
	TrainerID   int64  `json:"trainerId" validate:"required,gt=0"`
	TrainerName string `json:"trainerName"`
}

// LevelAllocation commits part of the level pool to a trainer or monster
type LevelAllocation struct {
	ID          int64        `json:"id" validate:"required,gt=0"`
	EntityType  EntityType   `json:"entityType" validate:"required,entitytype"`
	EntityID    int64        `json:"entityId" validate:"required,gt=0"`
	EntityName  string       `json:"entityName"`
	Levels      int          `json:"levels" validate:"required,gte=1"`
	TrainerInfo *TrainerInfo `json:"trainerInfo,omitempty" validate:"required_if=EntityType monster"`
}

// CoinAllocation commits part of the coin pool to a trainer
type CoinAllocation struct {
	ID          int64  `json:"id" validate:"required,gt=0"`
	TrainerID   int64  `json:"trainerId" validate:"required,gt=0"`
	TrainerName string `json:"trainerName"`
	Coins       int    `json:"coins" validate:"required,gte=1"`
}

// ItemAllocation assigns one earned item to a trainer
type ItemAllocation struct {
	Item      RewardItem `json:"item"`
	TrainerID int64      `json:"trainerId" validate:"required,gt=0"`
}

// ClaimRequest is the single payload sent to the claim endpoint
type ClaimRequest struct {
	AdventureLogID   int64             `json:"adventureLogId" validate:"required,gt=0"`
	UserID           int64             `json:"userId" validate:"required,gt=0"`
	LevelAllocations []LevelAllocation `json:"levelAllocations" validate:"dive"`
	CoinAllocations  []CoinAllocation  `json:"coinAllocations" validate:"dive"`
	ItemAllocations  []ItemAllocation  `json:"itemAllocations" validate:"dive"`
}

// ClaimResult is the claim endpoint response
type ClaimResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
