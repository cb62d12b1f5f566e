package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TrainerBot_Go/internal/api"
	"github.com/osse101/TrainerBot_Go/internal/claim"
	"github.com/osse101/TrainerBot_Go/internal/domain"
	"github.com/osse101/TrainerBot_Go/internal/roster"
)

const testDiscordID = "123"

// MockRoundTripper implements http.RoundTripper for intercepting requests
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

// TestContext wires a real claim service to a fake backend and a Discord
// session whose HTTP calls are captured instead of sent
type TestContext struct {
	Server       *httptest.Server
	Mux          *http.ServeMux
	APIClient    *api.Client
	Claims       claim.Service
	Session      *discordgo.Session
	DiscordMocks *MockRoundTripper

	// OnClaim, when set, answers claim submissions instead of the stub
	OnClaim http.HandlerFunc

	mu        sync.Mutex
	edits     []discordgo.WebhookEdit
	responses []discordgo.InteractionResponse
	submitted []domain.ClaimRequest
}

func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL, "test-api-key", 5*time.Second, 0)
	loader := roster.NewLoader(client, 10, time.Minute)
	store := claim.NewMemoryStore(10, time.Hour)

	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)

	ctx := &TestContext{
		Server:    server,
		Mux:       mux,
		APIClient: client,
		Claims:    claim.NewService(client, loader, store, time.Hour),
		Session:   session,
	}

	ctx.DiscordMocks = &MockRoundTripper{RoundTripFunc: ctx.capture}
	session.Client = &http.Client{Transport: ctx.DiscordMocks}

	return ctx
}

// capture records deferred reply edits (PATCH) and interaction callbacks (POST)
func (c *TestContext) capture(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case req.Method == http.MethodPatch:
		var body discordgo.WebhookEdit
		if err := json.NewDecoder(req.Body).Decode(&body); err == nil {
			c.edits = append(c.edits, body)
		}
	case req.Method == http.MethodPost && strings.HasSuffix(req.URL.Path, "/callback"):
		var body discordgo.InteractionResponse
		if err := json.NewDecoder(req.Body).Decode(&body); err == nil {
			c.responses = append(c.responses, body)
		}
	}

	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString("{}")),
		Header:     make(http.Header),
	}, nil
}

// LastEdit returns the most recent deferred reply edit
func (c *TestContext) LastEdit(t *testing.T) discordgo.WebhookEdit {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.edits, "no reply was sent")
	return c.edits[len(c.edits)-1]
}

// LastEmbed returns the embed of the most recent reply
func (c *TestContext) LastEmbed(t *testing.T) *discordgo.MessageEmbed {
	t.Helper()
	edit := c.LastEdit(t)
	require.NotNil(t, edit.Embeds, "reply has no embeds")
	require.NotEmpty(t, *edit.Embeds)
	return (*edit.Embeds)[0]
}

// LastContent returns the text of the most recent reply
func (c *TestContext) LastContent(t *testing.T) string {
	t.Helper()
	edit := c.LastEdit(t)
	require.NotNil(t, edit.Content, "reply has no content")
	return *edit.Content
}

// LastChoices returns the choices of the most recent autocomplete response
func (c *TestContext) LastChoices(t *testing.T) []*discordgo.ApplicationCommandOptionChoice {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.responses, "no autocomplete response was sent")
	last := c.responses[len(c.responses)-1]
	require.Equal(t, discordgo.InteractionApplicationCommandAutocompleteResult, last.Type)
	require.NotNil(t, last.Data)
	return last.Data.Choices
}

// SubmittedClaims returns the claim requests the backend received
func (c *TestContext) SubmittedClaims() []domain.ClaimRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.ClaimRequest(nil), c.submitted...)
}

// StubBackend serves one linked user (id 7) with a single unclaimed reward
// (id 42: 5 levels, 10 coins, one Potion), trainers Ash (1) and Misty (2),
// and Ash's monster Sparky (10). Claims are accepted unless OnClaim is set.
func (c *TestContext) StubBackend() {
	c.StubUser()
	c.Mux.HandleFunc("/adventures/discord/rewards/unclaimed/"+testDiscordID, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, map[string]interface{}{
			"data": []map[string]interface{}{{
				"id":              42,
				"adventure_id":    3,
				"adventure_title": "The Lost Cave",
				"word_count":      1200,
				"levels_earned":   5,
				"coins_earned":    10,
				"items_earned":    []map[string]interface{}{{"name": "Potion", "quantity": 1}},
			}},
		})
	})
	c.Mux.HandleFunc("/trainers/user/7", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, map[string]interface{}{
			"trainers": []domain.Trainer{{ID: 1, Name: "Ash", Level: 12}, {ID: 2, Name: "Misty", Level: 9}},
		})
	})
	c.Mux.HandleFunc("/monsters/trainer/1", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, map[string]interface{}{
			"monsters": []domain.Monster{{ID: 10, Name: "Sparky", Species1: "Pikachu", Level: 5}},
		})
	})
	c.Mux.HandleFunc("/monsters/trainer/2", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, map[string]interface{}{"monsters": []domain.Monster{}})
	})
	c.Mux.HandleFunc("/adventures/rewards/claim", func(w http.ResponseWriter, r *http.Request) {
		if c.OnClaim != nil {
			c.OnClaim(w, r)
			return
		}
		var req domain.ClaimRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c.mu.Lock()
		c.submitted = append(c.submitted, req)
		c.mu.Unlock()
		WriteJSON(w, domain.ClaimResult{Success: true, Message: "Rewards claimed!"})
	})
}

// StubUser links testDiscordID to site user 7
func (c *TestContext) StubUser() {
	c.Mux.HandleFunc("/users/discord/"+testDiscordID, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, map[string]interface{}{
			"user": domain.User{ID: 7, Username: "Tester", DiscordID: testDiscordID},
		})
	})
}

// Helper to return JSON success
func WriteJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		panic(fmt.Sprintf("encode test response: %v", err))
	}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func intOpt(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(value),
	}
}

func focused(opt *discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	opt.Focused = true
	return opt
}

// commandInteraction builds a /name sub invocation from testDiscordID
func commandInteraction(kind discordgo.InteractionType, name, sub string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	data := discordgo.ApplicationCommandInteractionData{Name: name}
	if sub != "" {
		data.Options = []*discordgo.ApplicationCommandInteractionDataOption{{
			Name:    sub,
			Type:    discordgo.ApplicationCommandOptionSubCommand,
			Options: opts,
		}}
	} else {
		data.Options = opts
	}

	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:    "interaction-1",
			AppID: "app-1",
			Token: "token-1",
			Type:  kind,
			Data:  data,
			Member: &discordgo.Member{
				User: &discordgo.User{ID: testDiscordID, Username: "Tester"},
			},
		},
	}
}

func claimInteraction(sub string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return commandInteraction(discordgo.InteractionApplicationCommand, "claim", sub, opts...)
}
