package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/TrainerBot_Go/internal/claim"
	"github.com/osse101/TrainerBot_Go/internal/domain"
)

// maxListedRewards caps how many rewards /rewards shows
const maxListedRewards = 10

// RewardsCommand returns the rewards command definition and handler
func RewardsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "rewards",
		Description: "List your unclaimed adventure rewards",
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

		list, err := claims.ListRewards(ctx, user.ID)
		if err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}

		sendEmbed(s, i, rewardsEmbed(list))
	}

	return cmd, handler
}

func rewardsEmbed(list []domain.UnclaimedReward) *discordgo.MessageEmbed {
	var lines []string
	for _, r := range list {
		if r.IsClaimed {
			continue
		}
		if len(lines) == maxListedRewards {
			lines = append(lines, "…and more. Claim some to see the rest.")
			break
		}
		lines = append(lines, rewardLine(r))
	}

	if len(lines) == 0 {
		return createEmbed(TitleRewards, MsgNoRewards, ColorInfo, "")
	}

	desc := strings.Join(lines, "\n\n")
	return createEmbed(TitleRewards, desc, ColorInfo, fmt.Sprintf("%s • /claim start to distribute a reward", FooterTrainerBot))
}
