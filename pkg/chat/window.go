package chat

import (
	"otakupal-be/internal/constant"
	"otakupal-be/internal/entity"
	"otakupal-be/pkg/llm"
)

// BuildWindow maps the most recent persisted turns onto role-tagged LLM
// messages. Input must already be in ascending chronological order; only
// the last limit messages are kept, older turns are dropped outright.
func BuildWindow(messages []*entity.ChatMessage, limit int) []llm.Message {
	if len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	turns := make([]llm.Message, 0, len(messages))
	for _, msg := range messages {
		role := constant.ChatRoleUser
		if msg.Sender == constant.ChatMessageSenderBot {
			role = constant.ChatRoleAssistant
		}
		turns = append(turns, llm.Message{
			Role:    role,
			Content: msg.Content,
		})
	}
	return turns
}

// DeriveTitle derives a session title from the first user message: the
// leading maxLen characters, with an ellipsis when the message is longer.
func DeriveTitle(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return text
}
