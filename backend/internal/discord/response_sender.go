package discord

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"knowledge-agent/backend/internal/constants"
	"go.uber.org/zap"
)

// Part indicator format "*(Part X/Y)*" needs about 15 chars
const partIndicatorReserve = 20

// sendLongMessage sends content, splitting it into numbered parts when it
// exceeds Discord's message limit
func (h *Handler) sendLongMessage(sender MessageSender, channelID, content string) {
	for i, message := range formatChunks(content, constants.DiscordMaxMessageLength) {
		if i > 0 {
			time.Sleep(constants.DiscordChunkDelay)
		}

		_, err := sender.ChannelMessageSend(channelID, message)
		if err != nil {
			h.logger.Error("Failed to send message chunk",
				zap.Error(err),
				zap.String("channel_id", channelID),
				zap.Int("chunk", i+1),
			)
			// Stop sending if we hit an error
			return
		}
	}
}

// formatChunks splits content into messages of at most maxLength characters,
// labelling each one when there is more than one
func formatChunks(content string, maxLength int) []string {
	if utf8.RuneCountInString(content) <= maxLength {
		return []string{content}
	}

	chunks := splitMessage(content, maxLength-partIndicatorReserve)
	messages := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		messages = append(messages, fmt.Sprintf("%s\n*(Part %d/%d)*", chunk, i+1, len(chunks)))
	}
	return messages
}

// splitMessage splits content into chunks of at most maxLength characters.
// It breaks at the last newline or space that fits and hard-splits words
// longer than a whole chunk.
func splitMessage(content string, maxLength int) []string {
	runes := []rune(content)
	if len(runes) <= maxLength {
		return []string{content}
	}

	var chunks []string
	for len(runes) > maxLength {
		cut := lastBreak(runes[:maxLength+1])
		if cut <= 0 {
			cut = maxLength
		}

		chunk := strings.TrimRight(string(runes[:cut]), " \n")
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		runes = []rune(strings.TrimLeft(string(runes[cut:]), " \n"))
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}

// lastBreak returns the index of the last newline, or failing that the last
// space, in runes
func lastBreak(runes []rune) int {
	space := -1
	for i := len(runes) - 1; i >= 0; i-- {
		switch runes[i] {
		case '\n':
			return i
		case ' ':
			if space < 0 {
				space = i
			}
		}
	}
	return space
}
