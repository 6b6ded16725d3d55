package history

import "context"

// Store хранит сериализованную историю под одним ключом.
type Store interface {
	// Load возвращает сохранённую историю.
	// Второй параметр bool указывает, найдена ли запись.
	Load(ctx context.Context) ([]Message, bool, error)

	// Save заменяет сохранённую историю целиком.
	Save(ctx context.Context, messages []Message) error

	// Remove удаляет запись. Отсутствие записи не ошибка.
	Remove(ctx context.Context) error
}
