package discord

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"translationgate/internal/application"
	"translationgate/internal/domain"
	"translationgate/internal/domain/entities"
	"translationgate/internal/infrastructure/i18n"
	"translationgate/internal/infrastructure/memory"
)

type brokenRegistry struct{}

func (brokenRegistry) ListRegisteredCategories(context.Context) (entities.CategoryCatalog, error) {
	return nil, assert.AnError
}

func (brokenRegistry) ResolveCategoryOf(context.Context, string) (string, bool, error) {
	return "", false, assert.AnError
}

func TestExclusionsEmbed(t *testing.T) {
	ctx := context.Background()
	registry := memory.NewRegistry([]string{"post", "page", "product"}, nil)
	settings := application.NewSettingsService(memory.NewOptionStore(), registry, "excluded_categories", nil)
	h := NewHandler(settings, i18n.NewTranslator("en"))

	embed, err := h.exclusionsEmbed(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, "🌐 Excluded categories", embed.Title)
	assert.Equal(t, "No category is excluded from translation.", embed.Description)
	assert.Equal(t, "3 categories registered on the site", embed.Footer.Text)

	_, err = settings.Save(ctx, []string{"product"})
	require.NoError(t, err)

	embed, err = h.exclusionsEmbed(ctx, "fr")
	require.NoError(t, err)
	assert.Equal(t, "1 catégorie exclue de la traduction : `product`", embed.Description)
}

func TestExclusionsEmbed_CatalogUnavailable(t *testing.T) {
	settings := application.NewSettingsService(memory.NewOptionStore(), brokenRegistry{}, "excluded_categories", nil)
	h := NewHandler(settings, i18n.NewTranslator("en"))

	_, err := h.exclusionsEmbed(context.Background(), "en")
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestCommands(t *testing.T) {
	h := NewHandler(nil, i18n.NewTranslator("en"))

	cmds := h.Commands()
	require.Len(t, cmds, 1)
	assert.Equal(t, exclusionsCommand, cmds[0].Name)
	require.NotNil(t, cmds[0].DefaultMemberPermissions)
	assert.Equal(t, int64(discordgo.PermissionManageGuild), *cmds[0].DefaultMemberPermissions)
	assert.NotEmpty(t, (*cmds[0].DescriptionLocalizations)[discordgo.French])
}

func TestCanManage(t *testing.T) {
	assert.False(t, canManage(nil))
	assert.False(t, canManage(&discordgo.Member{Permissions: discordgo.PermissionSendMessages}))
	assert.True(t, canManage(&discordgo.Member{Permissions: discordgo.PermissionManageGuild | discordgo.PermissionSendMessages}))
}

func TestResolveDisplayName(t *testing.T) {
	assert.Equal(t, "", resolveDisplayName(nil))
	assert.Equal(t, "nick", resolveDisplayName(&discordgo.Member{Nick: "nick", User: &discordgo.User{Username: "u"}}))
	assert.Equal(t, "Global", resolveDisplayName(&discordgo.Member{User: &discordgo.User{GlobalName: "Global", Username: "u"}}))
	assert.Equal(t, "u", resolveDisplayName(&discordgo.Member{User: &discordgo.User{Username: "u"}}))
}
