package history

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNoPendingReset     = errors.New("no reset was requested")
	ErrResetTokenMismatch = errors.New("reset token does not match the pending request")
)

// Manager владеет авторитетной копией истории и синхронизирует её со Store.
// Ошибки хранилища логируются и не возвращаются: диалог продолжается в памяти.
type Manager struct {
	mu           sync.Mutex
	store        Store
	logger       *slog.Logger
	messages     []Message
	pendingReset string
}

func NewManager(store Store, logger *slog.Logger) *Manager {
	return &Manager{
		store:  store,
		logger: logger,
	}
}

// Load инициализирует историю из хранилища. Отсутствие записи даёт пустую историю.
// Нечитаемая запись логируется и тоже даёт пустую историю; ошибка возвращается
// только для информации.
func (m *Manager) Load(ctx context.Context) error {
	messages, found, err := m.store.Load(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.messages = nil
		m.logger.Error("failed to load history", slog.String("error", err.Error()))
		return err
	}
	if !found {
		m.messages = nil
		return nil
	}
	m.messages = messages
	m.logger.Debug("history loaded", slog.Int("messages", len(messages)))
	return nil
}

// Append добавляет реплику в конец и сохраняет историю целиком.
func (m *Manager) Append(ctx context.Context, msg Message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, msg)
	m.persistLocked(ctx)
}

// Messages возвращает копию текущей истории.
func (m *Manager) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

// RequestReset первый шаг сброса: возвращает токен, который нужно подтвердить.
// Повторный запрос заменяет предыдущий токен.
func (m *Manager) RequestReset() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pendingReset = uuid.NewString()
	return m.pendingReset
}

// CancelReset отменяет запрошенный сброс; история не меняется.
func (m *Manager) CancelReset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingReset = ""
}

// ConfirmReset очищает историю в памяти и удаляет запись в хранилище.
// Без предварительного RequestReset или с чужим токеном история не меняется.
func (m *Manager) ConfirmReset(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pendingReset == "" {
		return ErrNoPendingReset
	}
	if token != m.pendingReset {
		return ErrResetTokenMismatch
	}
	m.pendingReset = ""
	m.messages = nil

	if err := m.store.Remove(ctx); err != nil {
		m.logger.Error("failed to remove history", slog.String("error", err.Error()))
	}
	return nil
}

// persistLocked пишет историю под m.mu, поэтому записи упорядочены
// и сохранённое значение всегда равно истории на момент записи.
func (m *Manager) persistLocked(ctx context.Context) {
	if err := m.store.Save(ctx, m.messages); err != nil {
		m.logger.Error("failed to save history",
			slog.Int("messages", len(m.messages)),
			slog.String("error", err.Error()))
	}
}
