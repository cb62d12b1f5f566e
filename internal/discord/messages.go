package discord

// Friendly message constants for Discord responses
const (
	// Account
	MsgDiscordNotLinked = "🔗 **Discord account not linked.**\nPlease link your Discord account first."

	// Claim sessions
	MsgNoActiveSession = "📭 **No Active Claim**\nStart one with `/claim start`."
	MsgClaimInFlight   = "⏳ **Hold on!**\nYour claim is already being submitted."
	MsgRewardNotFound  = "❓ **Reward Not Found**\nIt may already be claimed. Check `/rewards`."
	MsgClaimCancelled  = "🗑️ Claim cancelled. Your rewards are still waiting in `/rewards`."
	MsgNoRewards       = "You have no unclaimed adventure rewards right now."
	MsgInvalidTarget   = "❓ **Invalid Choice**\nPick an option from the autocomplete list."

	// Backend
	MsgBackendUnavailable = "🔌 **Game server unavailable**\nPlease try again in a moment."

	MsgGenericError = "❌ Something went wrong."
)

// Embed titles and colors
const (
	TitleRewards        = "🎁 Unclaimed Rewards"
	TitleClaimPrefix    = "📜 Claim: "
	TitleClaimSubmitted = "✅ Rewards Claimed"
	TitleClaimRejected  = "⚠️ Claim Rejected"
	TitleClaimCancelled = "🗑️ Claim Cancelled"

	ColorInfo    = 0x3498DB
	ColorSuccess = 0x2ECC71
	ColorWarning = 0xF39C12
	ColorError   = 0xE74C3C
)

// Footer constants for standardized embed footers
const (
	FooterTrainerBot = "TrainerBot"
	FooterClaimHelp  = "TrainerBot • /claim status to review, /claim submit when ready"
)

// Discord limits
const (
	MaxAutocompleteChoices = 25
	MaxChoiceNameLength    = 100
	MaxEmbedFieldLength    = 1024
)
