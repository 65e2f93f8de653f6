package backup

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dukerupert/listkeep/internal/database"
	"github.com/dukerupert/listkeep/internal/model"
	"github.com/dukerupert/listkeep/internal/store"
)

// mockS3Client implements s3Client for testing.
type mockS3Client struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newMockS3() *mockS3Client {
	return &mockS3Client{objects: make(map[string][]byte)}
}

func (m *mockS3Client) PutObject(_ context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, _ := io.ReadAll(input.Body)
	m.objects[*input.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func setupManager(t *testing.T) (*Manager, *store.DataStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ds := store.NewDataStore(db, slog.Default())
	cfg := Config{Dir: t.TempDir(), Passphrase: "test-passphrase"}
	return NewManager(cfg, ds, slog.Default()), ds
}

func TestManagerDisabledWithoutConfig(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	ds := store.NewDataStore(db, slog.Default())

	m := NewManager(Config{}, ds, slog.Default())
	if m.Enabled() {
		t.Error("manager without dir and passphrase should be disabled")
	}
	if m.Status().State != StateDisabled {
		t.Errorf("state = %q, want disabled", m.Status().State)
	}

	if _, err := m.RunNow(context.Background()); err == nil {
		t.Error("expected error running disabled manager")
	}
}

func TestRunNowWritesEncryptedSnapshot(t *testing.T) {
	m, ds := setupManager(t)

	if err := ds.SaveShoppingLists([]model.ShoppingList{{ID: "l1", Name: "Groceries"}}); err != nil {
		t.Fatalf("seed lists: %v", err)
	}

	info, err := m.RunNow(context.Background())
	if err != nil {
		t.Fatalf("run backup: %v", err)
	}
	if info.SizeBytes == 0 {
		t.Error("expected non-empty backup file")
	}

	data, err := os.ReadFile(filepath.Join(m.cfg.Dir, info.Filename))
	if err != nil {
		t.Fatalf("read backup file: %v", err)
	}

	plain, err := Decrypt(data, "test-passphrase")
	if err != nil {
		t.Fatalf("decrypt backup: %v", err)
	}

	var snap snapshot
	if err := json.Unmarshal(plain, &snap); err != nil {
		t.Fatalf("parse snapshot: %v", err)
	}
	if len(snap.Lists) != 1 || snap.Lists[0].Name != "Groceries" {
		t.Errorf("snapshot lists = %+v", snap.Lists)
	}
	// Reading categories seeds the defaults, so the snapshot carries them.
	if len(snap.Categories) != 10 {
		t.Errorf("snapshot categories = %d, want 10", len(snap.Categories))
	}

	status := m.Status()
	if status.State != StateIdle || status.LastBackup == nil {
		t.Errorf("status after run = %+v", status)
	}
}

func TestRunNowMirrorsToS3(t *testing.T) {
	m, _ := setupManager(t)
	mock := newMockS3()
	m.client = mock
	m.cfg.S3.Bucket = "backups"

	info, err := m.RunNow(context.Background())
	if err != nil {
		t.Fatalf("run backup: %v", err)
	}

	mock.mu.Lock()
	uploaded, ok := mock.objects[info.Filename]
	mock.mu.Unlock()
	if !ok {
		t.Fatal("expected object uploaded to s3")
	}
	if _, err := Decrypt(uploaded, "test-passphrase"); err != nil {
		t.Errorf("uploaded object should be the encrypted snapshot: %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	m, _ := setupManager(t)

	// Filenames carry second precision; write the files directly.
	for _, name := range []string{"backup-a.json.enc", "backup-b.json.enc"} {
		if err := os.WriteFile(filepath.Join(m.cfg.Dir, name), []byte("x"), 0600); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(m.cfg.Dir, "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	infos, err := m.List()
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 backups, got %d", len(infos))
	}
	for _, info := range infos {
		if info.Filename == "notes.txt" {
			t.Error("non-backup files should be excluded")
		}
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	m, ds := setupManager(t)

	if err := ds.SaveShoppingLists([]model.ShoppingList{{ID: "l1", Name: "Groceries"}}); err != nil {
		t.Fatalf("seed lists: %v", err)
	}

	info, err := m.RunNow(context.Background())
	if err != nil {
		t.Fatalf("run backup: %v", err)
	}

	// Wipe and restore.
	if err := ds.SaveShoppingLists([]model.ShoppingList{}); err != nil {
		t.Fatalf("wipe lists: %v", err)
	}
	if err := m.Restore(info.Filename); err != nil {
		t.Fatalf("restore: %v", err)
	}

	lists, err := ds.GetShoppingLists()
	if err != nil {
		t.Fatalf("get lists: %v", err)
	}
	if len(lists) != 1 || lists[0].Name != "Groceries" {
		t.Errorf("restored lists = %+v", lists)
	}
}

func TestRestoreRejectsPathTraversal(t *testing.T) {
	m, _ := setupManager(t)

	if err := m.Restore("../outside.json.enc"); err == nil {
		t.Error("expected error for path traversal filename")
	}
}
