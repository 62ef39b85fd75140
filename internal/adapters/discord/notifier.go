package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"translationgate/internal/domain/entities"
	pkgdiscord "translationgate/pkg/discord"
)

type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier posts admin notices to the operator channel.
type Notifier struct {
	sender     embedSender
	channelID  string
	translator Translator
	locale     string
}

func NewNotifier(session *discordgo.Session, channelID string, translator Translator, locale string) *Notifier {
	return &Notifier{
		sender:     session,
		channelID:  channelID,
		translator: translator,
		locale:     locale,
	}
}

func (n *Notifier) Notify(ctx context.Context, notice entities.Notice) error {
	embed := pkgdiscord.BuildNoticeEmbed(
		notice.Level,
		n.translator.T(n.locale, notice.Key, nil),
		notice.RaisedAt,
	)
	if _, err := n.sender.ChannelMessageSendEmbed(n.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send notice %s: %w", notice.Key, err)
	}
	return nil
}
