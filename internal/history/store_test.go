package history

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

var sampleHistory = []Message{
	UserMessage("What are good protein sources?"),
	AssistantMessage("### Protein\n- **Eggs**\n- **Lentils**"),
	UserMessage("  and for breakfast?  "),
	NoticeMessage("I'm having trouble connecting. Is the backend live?"),
}

// checkStoreContract проверяет общий контракт Store: round-trip, замена и удаление.
func checkStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, found, err := store.Load(ctx); err != nil || found {
		t.Fatalf("empty store: found=%v err=%v", found, err)
	}

	if err := store.Save(ctx, sampleHistory); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, found, err := store.Load(ctx)
	if err != nil || !found {
		t.Fatalf("Load after save: found=%v err=%v", found, err)
	}
	if !reflect.DeepEqual(loaded, sampleHistory) {
		t.Fatalf("round-trip mismatch:\n got %+v\nwant %+v", loaded, sampleHistory)
	}

	// Save заменяет значение целиком.
	shorter := sampleHistory[:1]
	if err := store.Save(ctx, shorter); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, _, _ = store.Load(ctx)
	if !reflect.DeepEqual(loaded, shorter) {
		t.Fatalf("Save must replace prior value, got %+v", loaded)
	}

	if err := store.Remove(ctx); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, found, err := store.Load(ctx); err != nil || found {
		t.Fatalf("after remove: found=%v err=%v", found, err)
	}
	if err := store.Remove(ctx); err != nil {
		t.Fatalf("Remove of absent record must succeed: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	checkStoreContract(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new filestore: %v", err)
	}
	checkStoreContract(t, store)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	ctx := context.Background()

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new filestore: %v", err)
	}
	if err := store.Save(ctx, sampleHistory); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Пересоздаем store, чтобы убедиться, что данные читаются с диска.
	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen filestore: %v", err)
	}
	loaded, found, err := reopened.Load(ctx)
	if err != nil || !found {
		t.Fatalf("Load after reopen: found=%v err=%v", found, err)
	}
	if !reflect.DeepEqual(loaded, sampleHistory) {
		t.Fatalf("round-trip mismatch after reopen")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files must not be left behind, got %d entries", len(entries))
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new filestore: %v", err)
	}
	if _, _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("expected decode error for corrupt file")
	}
}

func TestFileStoreEmptyPath(t *testing.T) {
	if _, err := NewFileStore(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nutrisnap.db"), "@nutrisnap_history")
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	defer store.Close()

	checkStoreContract(t, store)
}

func TestEncodeEmptyHistory(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected [], got %s", data)
	}
}

func TestEncodeOmitsSyntheticForRealTurns(t *testing.T) {
	data, err := Encode([]Message{UserMessage("hi")})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(data) != `[{"role":"user","text":"hi"}]` {
		t.Fatalf("unexpected encoding %s", data)
	}
}
