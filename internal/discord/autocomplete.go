package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/TrainerBot_Go/internal/claim"
	"github.com/osse101/TrainerBot_Go/internal/logger"
)

// AutocompleteTimeout keeps suggestions inside Discord's 3 second window
const AutocompleteTimeout = 2500 * time.Millisecond

// HandleAutocomplete routes autocomplete interactions to the appropriate handler
func HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, claims claim.Service) {
	data := i.ApplicationCommandData()
	if data.Name != "claim" {
		slog.Warn("Unhandled autocomplete command", "command", data.Name)
		return
	}

	user := getInteractionUser(i)
	if user == nil {
		return
	}

	focused := focusedOption(data.Options)
	if focused == nil {
		return
	}

	ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
	ctx, cancel := context.WithTimeout(ctx, AutocompleteTimeout)
	defer cancel()

	sub, _ := subcommandOptions(i)
	choices, err := claimChoices(ctx, claims, user.ID, sub, focused.Name)
	if err != nil {
		// No session or no backend just means no suggestions
		logger.FromContext(ctx).Debug("Autocomplete lookup failed", "option", focused.Name, "error", err)
	}

	respondChoices(s, i, filterChoices(choices, focused.StringValue()))
}

func claimChoices(ctx context.Context, claims claim.Service, discordID, sub, option string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	switch option {
	case OptReward:
		return rewardChoices(ctx, claims, discordID)
	case OptTarget:
		return targetChoices(ctx, claims, discordID)
	case OptTrainer:
		return trainerChoices(ctx, claims, discordID)
	case OptItem:
		return itemChoices(ctx, claims, discordID, sub == SubUnassign)
	case OptAllocation:
		return allocationChoices(ctx, claims, discordID, sub == SubUndoCoins)
	default:
		return nil, nil
	}
}

func rewardChoices(ctx context.Context, claims claim.Service, discordID string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	list, err := claims.ListRewards(ctx, discordID)
	if err != nil {
		return nil, err
	}

	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, r := range list {
		if r.IsClaimed {
			continue
		}
		choices = append(choices, choice(fmt.Sprintf("%s (%s)", r.Title(), rewardSummary(r)), strconv.FormatInt(r.ID, 10)))
	}
	return choices, nil
}

func targetChoices(ctx context.Context, claims claim.Service, discordID string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	roster, err := claims.Roster(ctx, discordID)
	if err != nil {
		return nil, err
	}

	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, t := range roster.Trainers() {
		choices = append(choices, choice(fmt.Sprintf("Trainer: %s (Lv %d)", t.Name, t.Level), trainerTarget(t.ID)))
	}
	for _, m := range roster.Monsters() {
		owner := "?"
		if t, ok := roster.Trainer(m.TrainerID); ok {
			owner = t.Name
		}
		choices = append(choices, choice(fmt.Sprintf("Monster: %s (Lv %d, %s's)", m.DisplayName(), m.Level, owner), monsterTarget(m)))
	}
	return choices, nil
}

func trainerChoices(ctx context.Context, claims claim.Service, discordID string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	roster, err := claims.Roster(ctx, discordID)
	if err != nil {
		return nil, err
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(roster.Trainers()))
	for _, t := range roster.Trainers() {
		choices = append(choices, choice(fmt.Sprintf("%s (Lv %d)", t.Name, t.Level), strconv.FormatInt(t.ID, 10)))
	}
	return choices, nil
}

// itemChoices lists the session's items; assignedOnly narrows to items that have a trainer
func itemChoices(ctx context.Context, claims claim.Service, discordID string, assignedOnly bool) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	view, err := claims.Status(ctx, discordID)
	if err != nil {
		return nil, err
	}

	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, slot := range view.Items {
		if assignedOnly && !slot.Assigned() {
			continue
		}
		name := fmt.Sprintf("%d. %s", slot.Index+1, itemLabel(slot.Item))
		if slot.Assigned() {
			name += " → " + slot.TrainerName
		}
		choices = append(choices, choice(name, strconv.Itoa(slot.Index)))
	}
	return choices, nil
}

func allocationChoices(ctx context.Context, claims claim.Service, discordID string, coins bool) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	view, err := claims.Status(ctx, discordID)
	if err != nil {
		return nil, err
	}

	var choices []*discordgo.ApplicationCommandOptionChoice
	if coins {
		for _, a := range view.CoinAllocations {
			choices = append(choices, choice(fmt.Sprintf("#%d %s +%s coins", a.ID, a.TrainerName, number(a.Coins)), strconv.FormatInt(a.ID, 10)))
		}
		return choices, nil
	}
	for _, a := range view.LevelAllocations {
		choices = append(choices, choice(fmt.Sprintf("#%d %s +%s levels", a.ID, a.EntityName, number(a.Levels)), strconv.FormatInt(a.ID, 10)))
	}
	return choices, nil
}

func choice(name, value string) *discordgo.ApplicationCommandOptionChoice {
	return &discordgo.ApplicationCommandOptionChoice{
		Name:  truncate(name, MaxChoiceNameLength),
		Value: value,
	}
}

// filterChoices keeps choices whose name contains the typed text, up to Discord's limit
func filterChoices(choices []*discordgo.ApplicationCommandOptionChoice, typed string) []*discordgo.ApplicationCommandOptionChoice {
	typed = strings.ToLower(strings.TrimSpace(typed))

	filtered := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(choices))
	for _, c := range choices {
		if typed == "" || strings.Contains(strings.ToLower(c.Name), typed) {
			filtered = append(filtered, c)
		}
		if len(filtered) >= MaxAutocompleteChoices {
			break
		}
	}
	return filtered
}

func respondChoices(s *discordgo.Session, i *discordgo.InteractionCreate, choices []*discordgo.ApplicationCommandOptionChoice) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		slog.Error("Failed to respond to autocomplete", "error", err)
	}
}
