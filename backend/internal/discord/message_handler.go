package discord

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	"knowledge-agent/backend/internal/agent"
	"knowledge-agent/backend/internal/constants"
	apperrors "knowledge-agent/backend/pkg/errors"
	"knowledge-agent/backend/pkg/logger"
	"go.uber.org/zap"
)

// Processor runs a message through the knowledge graph pipeline
type Processor interface {
	ProcessWithSource(ctx context.Context, message, source string) (*agent.ChatResult, error)
}

// MessageSender is the part of *discordgo.Session used to reply
type MessageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Handler handles Discord message processing
type Handler struct {
	processor Processor
	logger    *zap.Logger
}

// NewHandler creates a new Discord message handler
func NewHandler(processor Processor, log *zap.Logger) *Handler {
	return &Handler{
		processor: processor,
		logger:    logger.OrNop(log),
	}
}

// HandleMessage processes a Discord message
func (h *Handler) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if s.State == nil || s.State.User == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DiscordProcessTimeout)
	defer cancel()

	h.handle(ctx, s, s.State.User.ID, m)
}

func (h *Handler) handle(ctx context.Context, sender MessageSender, botID string, m *discordgo.MessageCreate) {
	content, ok := messageContent(botID, m)
	if !ok {
		return
	}

	h.logger.Info("Processing Discord message",
		zap.String("user_id", m.Author.ID),
		zap.String("channel_id", m.ChannelID),
		zap.Bool("is_dm", m.GuildID == ""),
	)

	result, err := h.processor.ProcessWithSource(ctx, content, agent.SourceDiscord)
	if err != nil {
		h.logger.Error("Failed to process message",
			zap.Error(err),
			zap.Bool("graph_unavailable", apperrors.IsUnavailable(err)),
			zap.String("user_id", m.Author.ID),
		)

		reply := "Sorry, I encountered an error processing your message."
		if apperrors.IsUnavailable(err) {
			reply = "Sorry, the knowledge graph is unavailable right now. Please try again later."
		}
		_, _ = sender.ChannelMessageSend(m.ChannelID, reply)
		return
	}

	h.sendLongMessage(sender, m.ChannelID, result.Response)
}

// messageContent returns the text to process and whether the bot should
// respond at all. Only DMs and mentions are handled; the bot's own messages
// and empty messages are ignored.
func messageContent(botID string, m *discordgo.MessageCreate) (string, bool) {
	if m.Author == nil || m.Author.ID == botID || m.Author.Bot {
		return "", false
	}

	isDM := m.GuildID == ""
	isMentioned := false
	for _, mention := range m.Mentions {
		if mention.ID == botID {
			isMentioned = true
			break
		}
	}

	// Strip the mention wherever it appears so it is not extracted as text
	content := m.Content
	for _, tag := range []string{"<@" + botID + ">", "<@!" + botID + ">"} {
		if strings.Contains(content, tag) {
			isMentioned = true
			content = strings.ReplaceAll(content, tag, "")
		}
	}
	content = strings.TrimSpace(content)

	if !isDM && !isMentioned {
		return "", false
	}
	if content == "" {
		return "", false
	}
	return content, true
}
