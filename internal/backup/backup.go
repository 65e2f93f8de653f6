package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dukerupert/listkeep/internal/model"
	"github.com/dukerupert/listkeep/internal/store"
)

// s3Client is an interface for testability.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config holds S3-compatible storage configuration.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// Config holds backup manager configuration.
type Config struct {
	Dir        string
	Passphrase string
	S3         S3Config
}

// State represents the backup manager state.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateDisabled State = "disabled"
	StateError    State = "error"
)

// Status holds the current backup manager status.
type Status struct {
	State      State      `json:"state"`
	LastBackup *time.Time `json:"last_backup,omitempty"`
	Error      string     `json:"error,omitempty"`
	S3Enabled  bool       `json:"s3_enabled"`
}

// Info describes one backup file on disk.
type Info struct {
	Filename  string    `json:"filename"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// snapshot is the serialized form of all persisted collections.
type snapshot struct {
	Lists      []model.ShoppingList `json:"lists"`
	Categories []model.Category     `json:"categories"`
	CreatedAt  time.Time            `json:"created_at"`
}

// Manager writes encrypted snapshots of the persisted collections to a
// local directory and optionally mirrors them to S3-compatible storage.
type Manager struct {
	mu     sync.RWMutex
	cfg    Config
	status Status

	data   *store.DataStore
	client s3Client
	logger *slog.Logger
}

// NewManager creates a backup manager. A manager with no passphrase or
// no directory stays disabled; S3 mirroring needs a full credential set.
func NewManager(cfg Config, data *store.DataStore, logger *slog.Logger) *Manager {
	m := &Manager{
		cfg:    cfg,
		data:   data,
		logger: logger,
		status: Status{State: StateDisabled},
	}

	if cfg.Dir != "" && cfg.Passphrase != "" {
		m.status.State = StateIdle
	}
	if cfg.S3.Bucket != "" && cfg.S3.AccessKey != "" && cfg.S3.SecretKey != "" {
		m.client = newS3Client(cfg.S3)
		m.status.S3Enabled = true
	}

	return m
}

func newS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// Enabled reports whether backups can run.
func (m *Manager) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.State != StateDisabled
}

// Status returns the current backup status.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Manager) setStatus(s Status) {
	m.mu.Lock()
	s.S3Enabled = m.status.S3Enabled
	if s.LastBackup == nil {
		s.LastBackup = m.status.LastBackup
	}
	m.status = s
	m.mu.Unlock()
}

// RunNow snapshots both collections, encrypts the snapshot, and writes
// it to the backup directory. The encrypted file is also uploaded to S3
// when mirroring is configured.
func (m *Manager) RunNow(ctx context.Context) (*Info, error) {
	if !m.Enabled() {
		return nil, fmt.Errorf("backup not configured")
	}

	m.setStatus(Status{State: StateRunning})

	info, err := m.run(ctx)
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return nil, err
	}

	now := time.Now().UTC()
	m.setStatus(Status{State: StateIdle, LastBackup: &now})
	return info, nil
}

func (m *Manager) run(ctx context.Context) (*Info, error) {
	lists, err := m.data.GetShoppingLists()
	if err != nil {
		return nil, fmt.Errorf("read lists: %w", err)
	}
	categories, err := m.data.GetCategories()
	if err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}

	now := time.Now().UTC()
	plain, err := json.Marshal(snapshot{Lists: lists, Categories: categories, CreatedAt: now})
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	salt, err := GenerateSalt()
	if err != nil {
		return nil, err
	}
	encrypted, err := Encrypt(plain, m.cfg.Passphrase, salt)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(m.cfg.Dir, 0700); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	filename := fmt.Sprintf("backup-%s.json.enc", now.Format("2006-01-02T150405Z"))
	path := filepath.Join(m.cfg.Dir, filename)
	if err := os.WriteFile(path, encrypted, 0600); err != nil {
		return nil, fmt.Errorf("write backup file: %w", err)
	}

	if m.client != nil {
		_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(m.cfg.S3.Bucket),
			Key:           aws.String(filename),
			Body:          bytes.NewReader(encrypted),
			ContentLength: aws.Int64(int64(len(encrypted))),
		})
		if err != nil {
			// Local copy already exists, log and keep going
			m.logger.Error("upload backup to s3", "error", err, "key", filename)
		}
	}

	return &Info{Filename: filename, SizeBytes: int64(len(encrypted)), CreatedAt: now}, nil
}

// List returns the backups present in the backup directory, newest first.
func (m *Manager) List() ([]Info, error) {
	if !m.Enabled() {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.cfg.Dir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	infos := []Info{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json.enc") {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{
			Filename:  entry.Name(),
			SizeBytes: fi.Size(),
			CreatedAt: fi.ModTime().UTC(),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

// Restore decrypts a backup file and replaces both persisted collections
// with its contents.
func (m *Manager) Restore(filename string) error {
	if !m.Enabled() {
		return fmt.Errorf("backup not configured")
	}
	if filepath.Base(filename) != filename {
		return fmt.Errorf("invalid backup filename")
	}

	data, err := os.ReadFile(filepath.Join(m.cfg.Dir, filename))
	if err != nil {
		return fmt.Errorf("read backup file: %w", err)
	}

	plain, err := Decrypt(data, m.cfg.Passphrase)
	if err != nil {
		return fmt.Errorf("decrypt backup: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(plain, &snap); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}

	if err := m.data.SaveShoppingLists(snap.Lists); err != nil {
		return fmt.Errorf("restore lists: %w", err)
	}
	if err := m.data.SaveCategories(snap.Categories); err != nil {
		return fmt.Errorf("restore categories: %w", err)
	}

	m.logger.Info("backup restored", "filename", filename, "lists", len(snap.Lists))
	return nil
}
