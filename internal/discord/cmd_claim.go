package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/TrainerBot_Go/internal/claim"
	"github.com/osse101/TrainerBot_Go/internal/domain"
)

// Claim subcommand and option names
const (
	SubStart     = "start"
	SubLevels    = "levels"
	SubCoins     = "coins"
	SubItem      = "item"
	SubUnassign  = "unassign"
	SubUndoLevel = "undo-level"
	SubUndoCoins = "undo-coins"
	SubStatus    = "status"
	SubSubmit    = "submit"
	SubCancel    = "cancel"

	OptReward     = "reward"
	OptTarget     = "target"
	OptTrainer    = "trainer"
	OptAmount     = "amount"
	OptItem       = "item"
	OptAllocation = "allocation"
)

var minAmount = 1.0

func autocompleteOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         name,
		Description:  description,
		Required:     required,
		Autocomplete: true,
	}
}

func amountOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        OptAmount,
		Description: description,
		Required:    true,
		MinValue:    &minAmount,
	}
}

func subcommand(name, description string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options:     options,
	}
}

// ClaimCommand returns the claim command definition and handler
func ClaimCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "claim",
		Description: "Distribute an adventure reward across your trainers and monsters",
		Options: []*discordgo.ApplicationCommandOption{
			subcommand(SubStart, "Start distributing a reward",
				autocompleteOption(OptReward, "Reward to claim", true)),
			subcommand(SubLevels, "Give levels to a trainer or monster",
				autocompleteOption(OptTarget, "Trainer or monster", true),
				amountOption("Levels to give"),
				autocompleteOption(OptTrainer, "Owning trainer, for monsters", false)),
			subcommand(SubCoins, "Give coins to a trainer",
				autocompleteOption(OptTrainer, "Trainer", true),
				amountOption("Coins to give")),
			subcommand(SubItem, "Give an item to a trainer",
				autocompleteOption(OptItem, "Item", true),
				autocompleteOption(OptTrainer, "Trainer", true)),
			subcommand(SubUnassign, "Take back an item assignment",
				autocompleteOption(OptItem, "Item", true)),
			subcommand(SubUndoLevel, "Undo a level allocation",
				autocompleteOption(OptAllocation, "Level allocation", true)),
			subcommand(SubUndoCoins, "Undo a coin allocation",
				autocompleteOption(OptAllocation, "Coin allocation", true)),
			subcommand(SubStatus, "Show what is left to distribute"),
			subcommand(SubSubmit, "Submit the claim"),
			subcommand(SubCancel, "Discard this claim without submitting"),
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, claims claim.Service) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		if user == nil {
			respondError(s, i, MsgGenericError)
			return
		}

		sub, opts := subcommandOptions(i)
		embed, err := runClaimSubcommand(ctx, claims, user.ID, sub, opts)
		if err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

func runClaimSubcommand(ctx context.Context, claims claim.Service, discordID, sub string, opts optionMap) (*discordgo.MessageEmbed, error) {
	switch sub {
	case SubStart:
		rewardID, err := opts.id(OptReward)
		if err != nil {
			return nil, err
		}
		view, err := claims.Begin(ctx, discordID, rewardID)
		if err != nil {
			return nil, err
		}
		return claimStatusEmbed(view, "Claim started. Give out every level, coin and item, then submit."), nil

	case SubLevels:
		entityType, entityID, owner, err := parseTarget(opts.str(OptTarget))
		if err != nil {
			return nil, err
		}
		if opts.has(OptTrainer) {
			if owner, err = opts.id(OptTrainer); err != nil {
				return nil, err
			}
		}
		amount, err := opts.amount(OptAmount)
		if err != nil {
			return nil, err
		}
		alloc, err := claims.AddLevels(ctx, discordID, entityType, entityID, amount, owner)
		if err != nil {
			return nil, err
		}
		return statusWithNote(ctx, claims, discordID, fmt.Sprintf("Gave %s levels to **%s** (`#%d`).", number(alloc.Levels), alloc.EntityName, alloc.ID))

	case SubCoins:
		trainerID, err := opts.id(OptTrainer)
		if err != nil {
			return nil, err
		}
		amount, err := opts.amount(OptAmount)
		if err != nil {
			return nil, err
		}
		alloc, err := claims.AddCoins(ctx, discordID, trainerID, amount)
		if err != nil {
			return nil, err
		}
		return statusWithNote(ctx, claims, discordID, fmt.Sprintf("Gave %s coins to **%s** (`#%d`).", number(alloc.Coins), alloc.TrainerName, alloc.ID))

	case SubItem:
		index, err := opts.id(OptItem)
		if err != nil {
			return nil, err
		}
		trainerID, err := opts.id(OptTrainer)
		if err != nil {
			return nil, err
		}
		if err := claims.AssignItem(ctx, discordID, int(index), trainerID); err != nil {
			return nil, err
		}
		return statusWithNote(ctx, claims, discordID, "Item assigned.")

	case SubUnassign:
		index, err := opts.id(OptItem)
		if err != nil {
			return nil, err
		}
		cleared, err := claims.UnassignItem(ctx, discordID, int(index))
		if err != nil {
			return nil, err
		}
		note := "Item unassigned."
		if !cleared {
			note = "That item was not assigned."
		}
		return statusWithNote(ctx, claims, discordID, note)

	case SubUndoLevel, SubUndoCoins:
		id, err := opts.id(OptAllocation)
		if err != nil {
			return nil, err
		}
		var removed bool
		if sub == SubUndoLevel {
			removed, err = claims.RemoveLevels(ctx, discordID, id)
		} else {
			removed, err = claims.RemoveCoins(ctx, discordID, id)
		}
		if err != nil {
			return nil, err
		}
		note := fmt.Sprintf("Allocation `#%d` undone.", id)
		if !removed {
			note = fmt.Sprintf("There is no allocation `#%d`.", id)
		}
		return statusWithNote(ctx, claims, discordID, note)

	case SubStatus:
		return statusWithNote(ctx, claims, discordID, "")

	case SubSubmit:
		result, err := claims.Submit(ctx, discordID)
		if err != nil {
			return nil, err
		}
		return claimSubmittedEmbed(result), nil

	case SubCancel:
		if err := claims.Cancel(ctx, discordID); err != nil {
			return nil, err
		}
		return createEmbed(TitleClaimCancelled, MsgClaimCancelled, ColorWarning, ""), nil

	default:
		return nil, fmt.Errorf("%w: unknown subcommand %q", domain.ErrInvalidInput, sub)
	}
}

func statusWithNote(ctx context.Context, claims claim.Service, discordID, note string) (*discordgo.MessageEmbed, error) {
	view, err := claims.Status(ctx, discordID)
	if err != nil {
		return nil, err
	}
	return claimStatusEmbed(view, note), nil
}
