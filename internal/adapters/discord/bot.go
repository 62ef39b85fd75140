package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const exclusionsCommand = "exclusions"

// Bot is the Discord adapter: operator notifications and a read-only slash command.
type Bot struct {
	session *discordgo.Session
	handler *Handler
}

// NewBot opens nothing yet; call Start.
func NewBot(token string, handler *Handler) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la création de la session Discord: %w", err)
	}
	bot := &Bot{session: s, handler: handler}
	bot.setupHandlers()
	return bot, nil
}

// Session is shared with the Notifier.
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.ApplicationCommandData().Name == exclusionsCommand {
		b.handler.HandleExclusions(s, i)
	}
}

// Start opens the session, registers the commands and blocks until ctx is done.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("erreur lors de l'ouverture de la session: %w", err)
	}
	defer b.session.Close()

	for _, cmd := range b.handler.Commands() {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd); err != nil {
			log.Warn().Err(err).Str("command", cmd.Name).Msg("⚠️ Erreur lors de l'enregistrement de la commande")
		}
	}

	log.Info().Msg("🤖 Bot en ligne")
	<-ctx.Done()
	return nil
}
