// Package discord mirrors toasts into a Discord channel as embeds.
package discord

import (
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/firesafetykz/portal/internal/toast"
)

// MessageSender is the part of *discordgo.Session the notifier needs
type MessageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ toast.Sink = (*Notifier)(nil)

// Notifier is a toast.Sink posting each toast to one channel
type Notifier struct {
	sender    MessageSender
	channelID string
}

// NewNotifier creates a notifier. An empty channelID disables sending.
func NewNotifier(sender MessageSender, channelID string) *Notifier {
	return &Notifier{
		sender:    sender,
		channelID: channelID,
	}
}

func (n *Notifier) Show(t toast.Toast) error {
	if n.channelID == "" {
		return nil // No notification channel configured
	}

	_, err := n.sender.ChannelMessageSendEmbed(n.channelID, Embed(t))
	if err != nil {
		slog.Error(LogMsgNotificationError, "error", err, "kind", t.Kind)
		return fmt.Errorf("send embed: %w", err)
	}

	slog.Info(LogMsgNotificationSent, "kind", t.Kind, "channel_id", n.channelID)
	return nil
}

// Embed renders a toast as a Discord embed
func Embed(t toast.Toast) *discordgo.MessageEmbed {
	at := t.At
	if at.IsZero() {
		at = time.Now()
	}

	embed := &discordgo.MessageEmbed{
		Title:       truncate(t.Title, EmbedMaxTitleLen),
		Description: truncate(t.Body, EmbedMaxDescLen),
		Color:       levelColor(t.Level),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   EmbedFieldKind,
				Value:  string(t.Kind),
				Inline: true,
			},
		},
		Timestamp: at.UTC().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: EmbedFooterText,
		},
	}

	if t.Sound {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   EmbedFieldSound,
			Value:  "🔔",
			Inline: true,
		})
	}
	return embed
}

func levelColor(l toast.Level) int {
	switch l {
	case toast.LevelSuccess:
		return ColorSuccess
	case toast.LevelWarning:
		return ColorWarning
	case toast.LevelError:
		return ColorError
	default:
		return ColorInfo
	}
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-1]) + ellipsis
}
