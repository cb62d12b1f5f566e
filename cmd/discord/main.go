package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/TrainerBot_Go/internal/api"
	"github.com/osse101/TrainerBot_Go/internal/claim"
	"github.com/osse101/TrainerBot_Go/internal/config"
	"github.com/osse101/TrainerBot_Go/internal/database"
	"github.com/osse101/TrainerBot_Go/internal/database/postgres"
	"github.com/osse101/TrainerBot_Go/internal/discord"
	"github.com/osse101/TrainerBot_Go/internal/roster"
	"github.com/osse101/TrainerBot_Go/internal/scheduler"
	"github.com/osse101/TrainerBot_Go/internal/worker"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server
const shutdownTimeout = 5 * time.Second

// CommandFactory creates a Discord command and its handler.
// Used to register all available commands in one place.
type CommandFactory func() (*discordgo.ApplicationCommand, discord.CommandHandler)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	closer := initLogger(cfg)
	defer closer.Close()

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	for _, warning := range cfg.Warnings() {
		slog.Warn(warning)
	}

	if err := run(cfg); err != nil {
		slog.Error("Bot failed", "error", err)
		closer.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.NewClient(cfg.APIURL, cfg.APIKey, cfg.APITimeout, cfg.APIMaxRetries)
	rosters := roster.NewLoader(client, cfg.RosterCacheSize, cfg.RosterCacheTTL)

	var (
		store claim.Store
		db    database.Pool
	)
	if cfg.UsesDatabase() {
		pool, err := database.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		store = postgres.NewDraftRepository(pool)
		db = pool
		slog.Info("Claim drafts persisted in Postgres")
	} else {
		store = claim.NewMemoryStore(cfg.DraftCacheSize, cfg.DraftTTL)
		slog.Info("Claim drafts kept in memory")
	}

	claims := claim.NewService(client, rosters, store, cfg.DraftTTL)

	// Background draft expiry
	pool := worker.NewPool(ctx, cfg.WorkerCount, cfg.WorkerCount*2)
	pool.Start()
	defer pool.Stop()

	sched, err := scheduler.New(pool)
	if err != nil {
		return err
	}
	if err := sched.Schedule(cfg.DraftSweepInterval, worker.NewDraftSweepJob(claims)); err != nil {
		return err
	}
	sched.Start()
	defer func() {
		if err := sched.Stop(); err != nil {
			slog.Error("Failed to stop scheduler", "error", err)
		}
	}()

	bot, err := discord.New(discord.Config{Token: cfg.DiscordToken, AppID: cfg.DiscordAppID}, claims)
	if err != nil {
		return err
	}

	httpServer := discord.NewHTTPServer(strconv.Itoa(cfg.HTTPPort), discord.ServerDeps{
		API:       client,
		DB:        db,
		Connected: bot.Connected,
	})
	httpServer.Start()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		httpServer.Stop(shutdownCtx)
	}()

	registerCommands(bot, getCommandFactories())

	if cfg.ForceCommandUpdate {
		slog.Info("Force command update enabled via environment variable")
	}
	if err := bot.RegisterCommands(bot.Registry, cfg.ForceCommandUpdate); err != nil {
		slog.Error("Failed to register commands", "error", err)
		// Don't exit - bot can still run if commands are already registered
	}

	slog.Info("TrainerBot started", "version", cfg.Version, "environment", cfg.Environment)
	return bot.Run(ctx)
}

// getCommandFactories returns a list of all available Discord command factories.
func getCommandFactories() []CommandFactory {
	return []CommandFactory{
		discord.RewardsCommand,
		discord.ClaimCommand,
	}
}

// registerCommands registers all provided command factories with the bot's registry.
func registerCommands(bot *discord.Bot, factories []CommandFactory) {
	for _, factory := range factories {
		cmd, handler := factory()
		bot.Registry.Register(cmd, handler)
	}
}
