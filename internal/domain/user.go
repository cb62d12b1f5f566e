package domain

// User is the backend account linked to a Discord user
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	DiscordID string `json:"discord_id"`
}
