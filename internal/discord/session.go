package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Open creates a bot session and connects it to the gateway
func Open(token string) (*discordgo.Session, error) {
	s, err := discordgo.New(BotTokenPrefix + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	if err := s.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}
	slog.Info(LogMsgSessionOpened)
	return s, nil
}

// Close disconnects the session
func Close(s *discordgo.Session) {
	if err := s.Close(); err != nil {
		slog.Warn(LogMsgNotificationError, "error", err)
		return
	}
	slog.Info(LogMsgSessionClosed)
}
