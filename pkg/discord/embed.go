package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"translationgate/internal/domain/entities"
)

const (
	embedColor   = 0x5865F2
	colorError   = 0xED4245
	colorWarning = 0xFEE75C
	colorInfo    = 0x57F287
)

// FormatCategoryList renders ids as inline code, comma separated.
func FormatCategoryList(ids []string) string {
	quoted := make([]string, 0, len(ids))
	for _, id := range ids {
		quoted = append(quoted, fmt.Sprintf("`%s`", id))
	}
	return strings.Join(quoted, ", ")
}

func levelColor(level entities.NoticeLevel) int {
	switch level {
	case entities.NoticeError:
		return colorError
	case entities.NoticeWarning:
		return colorWarning
	case entities.NoticeInfo:
		return colorInfo
	default:
		return embedColor
	}
}

func levelIcon(level entities.NoticeLevel) string {
	switch level {
	case entities.NoticeError:
		return "❌"
	case entities.NoticeWarning:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

// BuildExclusionsEmbed lists the excluded categories. All texts are already
// localized by the caller; an empty footer is omitted.
func BuildExclusionsEmbed(title, summary, footer string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "🌐 " + title,
		Description: summary,
		Color:       embedColor,
	}
	if footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	}
	return embed
}

// BuildNoticeEmbed builds the admin channel message for a raised notice.
func BuildNoticeEmbed(level entities.NoticeLevel, message string, raisedAt time.Time) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Description: levelIcon(level) + " " + message,
		Color:       levelColor(level),
	}
	if !raisedAt.IsZero() {
		embed.Timestamp = raisedAt.UTC().Format(time.RFC3339)
	}
	return embed
}
