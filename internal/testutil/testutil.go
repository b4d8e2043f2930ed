// Package testutil provides shared helpers for package tests: a migrated in-memory
// database, a silent logger, a stepping clock and row fixtures.
//
// All helpers call t.Fatalf on failure rather than returning errors, since test setup
// failures are not recoverable.
package testutil

import (
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/iyunix/go-mindster/internal/database"
	"github.com/iyunix/go-mindster/internal/domain"
)

// NewDB returns a fresh migrated in-memory SQLite database closed at test cleanup.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.OpenInMemory()
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Warn(string, ...interface{})  {}

// Clock hands out strictly increasing times, one step per call.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func NewClock() *Clock {
	return &Clock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), step: time.Second}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

// CreateUser inserts a user row directly, bypassing the registration state machine.
func CreateUser(t testing.TB, db *gorm.DB, email string) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, PasswordHash: "$argon2id$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

// CreateProvider inserts a provider row with an already-encrypted key.
func CreateProvider(t testing.TB, db *gorm.DB, owner *domain.User, name, encryptedKey, baseURL string) *domain.Provider {
	t.Helper()
	p := &domain.Provider{UserID: owner.ID, Name: name, APIKeyEncrypted: encryptedKey, BaseURL: baseURL, IsActive: true}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create provider %s: %v", name, err)
	}
	return p
}
