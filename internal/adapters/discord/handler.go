package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"translationgate/internal/ports/input"
	"translationgate/internal/ports/output"
	pkgdiscord "translationgate/pkg/discord"
)

const commandTimeout = 5 * time.Second

// Translator renders messages; Match picks the closest supported locale.
type Translator interface {
	output.T
	Match(acceptLanguage string) string
}

// Handler handles Discord interactions using use cases.
type Handler struct {
	settings   input.SettingsUseCase
	translator Translator
}

// NewHandler creates a Handler.
func NewHandler(settings input.SettingsUseCase, translator Translator) *Handler {
	return &Handler{
		settings:   settings,
		translator: translator,
	}
}

// Commands returns the slash commands to register. Only members allowed to
// manage the guild see /exclusions.
func (h *Handler) Commands() []*discordgo.ApplicationCommand {
	perms := int64(discordgo.PermissionManageGuild)
	dm := false
	en := h.translator.T("en", "discord.exclusions.description", nil)
	return []*discordgo.ApplicationCommand{{
		Name:                     exclusionsCommand,
		Description:              en,
		DefaultMemberPermissions: &perms,
		DMPermission:             &dm,
		DescriptionLocalizations: &map[discordgo.Locale]string{
			discordgo.French: h.translator.T("fr", "discord.exclusions.description", nil),
		},
	}}
}

func (h *Handler) HandleExclusions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	locale := h.translator.Match(string(i.Locale))
	if !canManage(i.Member) {
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "discord.forbidden", nil))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	embed, err := h.exclusionsEmbed(ctx, locale)
	if err != nil {
		log.Error().Err(err).Msg("❌ Erreur lors de la lecture du catalogue")
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.translator, locale, err))
		return
	}
	log.Info().Str("member", resolveDisplayName(i.Member)).Msg("/exclusions")
	respondEmbed(s, i.Interaction, embed)
}

func (h *Handler) exclusionsEmbed(ctx context.Context, locale string) (*discordgo.MessageEmbed, error) {
	catalog, err := h.settings.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	excluded := h.settings.Load(ctx)

	summary := h.translator.T(locale, "discord.exclusions.empty", nil)
	if len(excluded) > 0 {
		summary = h.translator.T(locale, "discord.exclusions.list", map[string]any{
			"Count": len(excluded),
			"List":  pkgdiscord.FormatCategoryList(excluded.Strings()),
		})
	}
	footer := h.translator.T(locale, "discord.exclusions.footer", map[string]any{"Count": len(catalog)})
	return pkgdiscord.BuildExclusionsEmbed(h.translator.T(locale, "discord.exclusions.title", nil), summary, footer), nil
}

func canManage(member *discordgo.Member) bool {
	return member != nil && member.Permissions&discordgo.PermissionManageGuild != 0
}
