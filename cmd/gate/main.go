package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"translationgate/internal/adapters/discord"
	"translationgate/internal/adapters/web"
	"translationgate/internal/application"
	"translationgate/internal/config"
	"translationgate/internal/infrastructure/auth"
	"translationgate/internal/infrastructure/database"
	"translationgate/internal/infrastructure/hostapi"
	"translationgate/internal/infrastructure/i18n"
	"translationgate/internal/infrastructure/logging"
	"translationgate/internal/infrastructure/memory"
	"translationgate/internal/ports/output"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logging.SetDefault()
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("❌ Arrêt du service")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openOptionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	registry, translation := hostPorts(cfg)
	translator := i18n.NewTranslator(cfg.DefaultLocale)

	tokens, err := auth.NewTokenService(cfg.AdminTokenKey)
	if err != nil {
		return err
	}

	settings := application.NewSettingsService(store, registry, cfg.OptionKey, cfg.LegacyOptionKeys)
	gatekeeper := application.NewGatekeeperService(settings, registry)

	var (
		bot      *discord.Bot
		notifier output.AdminNotifier
	)
	if cfg.DiscordEnabled() {
		bot, err = discord.NewBot(cfg.DiscordToken, discord.NewHandler(settings, translator))
		if err != nil {
			return err
		}
		notifier = discord.NewNotifier(bot.Session(), cfg.DiscordAdminChannelID, translator, cfg.DefaultLocale)
	}
	dependency := application.NewDependencyService(translation, notifier)

	if bot != nil {
		go func() {
			if err := bot.Start(ctx); err != nil {
				log.Error().Err(err).Msg("❌ Erreur lors du démarrage du bot")
			}
		}()
	}

	dependency.Check(ctx)
	go dependency.RunScheduledChecks(ctx, cfg.CheckInterval)

	srv := web.NewServer(settings, gatekeeper, dependency, tokens, translator, web.Options{
		Capability: cfg.AdminCapability,
		HookSecret: cfg.HookSecret,
	})
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("🌐 Serveur HTTP démarré")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Arrêt en cours...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func openOptionStore(ctx context.Context, cfg *config.Config) (output.OptionStore, func(), error) {
	switch cfg.Store() {
	case config.StoreMemory:
		log.Warn().Msg("⚠️ DATABASE_URL=memory : les réglages ne survivront pas au redémarrage")
		return memory.NewOptionStore(), func() {}, nil

	case config.StoreSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath())
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunSQLiteMigrations(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return database.NewSQLiteOptionRepository(db), func() { db.Close() }, nil

	default:
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, nil, err
		}
		pool, err := database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return database.NewOptionRepository(pool), pool.Close, nil
	}
}

// hostPorts returns the host REST client for both ports, or a static catalog
// with an always-active translation service when no host API is configured.
func hostPorts(cfg *config.Config) (output.CategoryRegistry, output.TranslationService) {
	if cfg.HostAPIURL == "" {
		log.Info().Strs("categories", cfg.Categories).Msg("Catalogue statique utilisé")
		return memory.NewRegistry(cfg.Categories, nil), memory.NewTranslationService(true)
	}
	client := hostapi.NewClient(hostapi.Options{
		BaseURL:         cfg.HostAPIURL,
		Token:           cfg.HostAPIToken,
		CategoriesPath:  cfg.HostCategoriesPath,
		CategoriesQuery: cfg.HostCategoriesQuery,
		ResolvePath:     cfg.HostResolvePath,
		ResolveQuery:    cfg.HostResolveQuery,
		PluginPath:      cfg.HostPluginPath,
		PluginQuery:     cfg.HostPluginQuery,
		Timeout:         cfg.HostTimeout,
	})
	return client, client
}
