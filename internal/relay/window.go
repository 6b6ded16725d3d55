package relay

import "nutrisnap/internal/llm"

// perMessageOverhead служебные токены на одно сообщение в формате chat.
const perMessageOverhead = 4

// TokenCounter оценивает число токенов в тексте.
type TokenCounter interface {
	Count(text string) int
}

// Window ограничивает историю, отправляемую провайдеру, самыми свежими репликами.
// Нулевой Window пропускает историю без изменений.
type Window struct {
	MaxTurns  int
	MaxTokens int
	Counter   TokenCounter
}

// Apply возвращает хвост history, укладывающийся в лимиты.
// Последняя реплика сохраняется всегда, даже если одна превышает MaxTokens.
func (w Window) Apply(history []llm.Message) []llm.Message {
	if len(history) == 0 {
		return history
	}

	start := 0
	if w.MaxTurns > 0 && len(history) > w.MaxTurns {
		start = len(history) - w.MaxTurns
	}

	if w.MaxTokens > 0 && w.Counter != nil {
		total := 0
		for i := len(history) - 1; i >= start; i-- {
			total += w.Counter.Count(history[i].Content) + perMessageOverhead
			if total > w.MaxTokens && i < len(history)-1 {
				start = i + 1
				break
			}
		}
	}

	if start == 0 {
		return history
	}

	// Окно должно начинаться с реплики пользователя.
	trimmed := history[start:]
	for i, msg := range trimmed {
		if msg.Role == llm.RoleUser {
			return trimmed[i:]
		}
	}
	return trimmed
}
