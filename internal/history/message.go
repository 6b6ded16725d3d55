package history

import (
	"encoding/json"
	"fmt"
)

// Role автор реплики.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message одна реплика диалога. После создания не меняется.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
	// Synthetic помечает реплики, созданные клиентом локально (например, уведомление
	// об ошибке связи). Они показываются пользователю, но не отправляются в релей.
	Synthetic bool `json:"synthetic,omitempty"`
}

func UserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

func AssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Text: text}
}

// NoticeMessage реплика ассистента, сгенерированная клиентом.
func NoticeMessage(text string) Message {
	return Message{Role: RoleAssistant, Text: text, Synthetic: true}
}

// Encode сериализует историю целиком; пустая история кодируется как [].
func Encode(messages []Message) ([]byte, error) {
	if messages == nil {
		messages = []Message{}
	}
	data, err := json.Marshal(messages)
	if err != nil {
		return nil, fmt.Errorf("marshal history: %w", err)
	}
	return data, nil
}

func Decode(data []byte) ([]Message, error) {
	var messages []Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("unmarshal history: %w", err)
	}
	return messages, nil
}
