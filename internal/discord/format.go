package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/TrainerBot_Go/internal/claim"
	"github.com/osse101/TrainerBot_Go/internal/domain"
)

var (
	titleCaser = cases.Title(language.English)
	printer    = message.NewPrinter(language.English)
)

// label title-cases an identifier such as an entity type or rarity
func label(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}

// number formats n with thousands separators
func number(n int) string {
	return printer.Sprintf("%d", n)
}

var rarityIcons = map[string]string{
	domain.RarityCommon:    "⚪",
	domain.RarityUncommon:  "🟢",
	domain.RarityRare:      "🔵",
	domain.RarityEpic:      "🟣",
	domain.RarityLegendary: "🟠",
}

func itemLabel(item domain.RewardItem) string {
	var b strings.Builder
	if icon, ok := rarityIcons[strings.ToLower(item.Rarity)]; ok {
		b.WriteString(icon + " ")
	}
	b.WriteString(item.Name)
	if item.Quantity > 1 {
		fmt.Fprintf(&b, " ×%d", item.Quantity)
	}
	if item.Rarity != "" {
		fmt.Fprintf(&b, " (%s)", label(item.Rarity))
	}
	return b.String()
}

// rewardSummary is the one-line description used in lists and choices
func rewardSummary(r domain.UnclaimedReward) string {
	return fmt.Sprintf("%s lv • %s coins • %d items",
		number(r.LevelsEarned), number(r.CoinsEarned), len(r.ItemsEarned))
}

func rewardLine(r domain.UnclaimedReward) string {
	line := fmt.Sprintf("**%s** (#%d)\n📝 %s words • %s", r.Title(), r.ID, number(r.WordCount), rewardSummary(r))
	if !r.CreatedAt.IsZero() {
		line += " • " + r.CreatedAt.Format("Jan 2, 2006")
	}
	return line
}

func levelAllocationLine(a domain.LevelAllocation) string {
	line := fmt.Sprintf("`#%d` %s **%s** +%s", a.ID, label(string(a.EntityType)), a.EntityName, number(a.Levels))
	if a.TrainerInfo != nil {
		line += fmt.Sprintf(" (%s's)", a.TrainerInfo.TrainerName)
	}
	return line
}

func coinAllocationLine(a domain.CoinAllocation) string {
	return fmt.Sprintf("`#%d` **%s** +%s", a.ID, a.TrainerName, number(a.Coins))
}

func itemSlotLine(slot claim.ItemSlot) string {
	owner := "_unassigned_"
	if slot.Assigned() {
		owner = "**" + slot.TrainerName + "**"
	}
	return fmt.Sprintf("`%d.` %s → %s", slot.Index+1, itemLabel(slot.Item), owner)
}

// joinField joins lines for an embed field, cutting at Discord's field limit
func joinField(lines []string, empty string) string {
	if len(lines) == 0 {
		return empty
	}
	return truncate(strings.Join(lines, "\n"), MaxEmbedFieldLength)
}

// claimStatusEmbed renders the session for the user. note, when set, leads
// the description (for example the result of the last action).
func claimStatusEmbed(view *claim.View, note string) *discordgo.MessageEmbed {
	var desc []string
	if note != "" {
		desc = append(desc, note)
	}
	if view.LastRejection != "" {
		desc = append(desc, fmt.Sprintf("⚠️ Last submission was rejected: %s", view.LastRejection))
	}

	color := ColorInfo
	if view.Ready() {
		desc = append(desc, "✅ Ready to claim. Use `/claim submit`.")
		color = ColorSuccess
	} else {
		desc = append(desc, "⏳ "+view.Readiness.Message())
	}

	levels := make([]string, 0, len(view.LevelAllocations))
	for _, a := range view.LevelAllocations {
		levels = append(levels, levelAllocationLine(a))
	}
	coins := make([]string, 0, len(view.CoinAllocations))
	for _, a := range view.CoinAllocations {
		coins = append(coins, coinAllocationLine(a))
	}
	items := make([]string, 0, len(view.Items))
	for _, slot := range view.Items {
		items = append(items, itemSlotLine(slot))
	}

	embed := createEmbed(TitleClaimPrefix+view.Reward.Title(), strings.Join(desc, "\n"), color, FooterClaimHelp)
	embed.Fields = []*discordgo.MessageEmbedField{
		{
			Name:   "⬆️ Levels",
			Value:  fmt.Sprintf("%s of %s left", number(view.AvailableLevels), number(view.Reward.LevelsEarned)),
			Inline: true,
		},
		{
			Name:   "🪙 Coins",
			Value:  fmt.Sprintf("%s of %s left", number(view.AvailableCoins), number(view.Reward.CoinsEarned)),
			Inline: true,
		},
		{Name: "Level allocations", Value: joinField(levels, "_none_")},
		{Name: "Coin allocations", Value: joinField(coins, "_none_")},
	}
	if len(items) > 0 {
		name := "🎒 Items"
		if n := len(view.Unassigned); n > 0 {
			name = fmt.Sprintf("🎒 Items (%d unassigned)", n)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: name, Value: joinField(items, "")})
	}
	return embed
}

// claimSubmittedEmbed summarizes an accepted claim
func claimSubmittedEmbed(result *claim.SubmitResult) *discordgo.MessageEmbed {
	req := result.Request

	var lines []string
	if result.Message != "" {
		lines = append(lines, result.Message)
	}
	for _, a := range req.LevelAllocations {
		lines = append(lines, fmt.Sprintf("⬆️ %s +%s levels", a.EntityName, number(a.Levels)))
	}
	for _, a := range req.CoinAllocations {
		lines = append(lines, fmt.Sprintf("🪙 %s +%s coins", a.TrainerName, number(a.Coins)))
	}
	for _, a := range req.ItemAllocations {
		lines = append(lines, fmt.Sprintf("🎒 %s → trainer #%d", itemLabel(a.Item), a.TrainerID))
	}
	return createEmbed(TitleClaimSubmitted, truncate(strings.Join(lines, "\n"), 4096), ColorSuccess, "")
}
