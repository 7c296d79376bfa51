package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hana/meditation-progress-api/internal/domain"
	"github.com/hana/meditation-progress-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	displayName string
	password    string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		displayName: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password:    "testpassword123",
	}
}

// WithDisplayName sets the display name
func (b *UserBuilder) WithDisplayName(name string) *UserBuilder {
	b.displayName = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the given store and returns it with the raw password
func (b *UserBuilder) Build(t *testing.T, users repository.UserRepository) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		DisplayName:  b.displayName,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate creates a user via API and returns the user and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"displayName": b.displayName,
		"password":    b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:          userID,
		DisplayName: authResp.User.DisplayName,
	}

	return user, authResp.AccessToken
}

// SessionBuilder creates stored practice sessions with a builder pattern.
// It writes directly to the store, bypassing the service, so tests can seed
// history with explicit completion times.
type SessionBuilder struct {
	userID          uuid.UUID
	durationSeconds int
	sessionType     string
	soundsUsed      []string
	wasCompleted    bool
	completedAt     time.Time
}

// NewSessionBuilder creates a new SessionBuilder with default values
func NewSessionBuilder(userID uuid.UUID) *SessionBuilder {
	return &SessionBuilder{
		userID:          userID,
		durationSeconds: 600,
		sessionType:     "timer",
		soundsUsed:      []string{"rain"},
		wasCompleted:    true,
		completedAt:     time.Now(),
	}
}

// WithDuration sets the duration in seconds
func (b *SessionBuilder) WithDuration(seconds int) *SessionBuilder {
	b.durationSeconds = seconds
	return b
}

// WithType sets the session type
func (b *SessionBuilder) WithType(sessionType string) *SessionBuilder {
	b.sessionType = sessionType
	return b
}

// WithSounds sets the sounds used
func (b *SessionBuilder) WithSounds(sounds ...string) *SessionBuilder {
	b.soundsUsed = sounds
	return b
}

// Incomplete marks the session as abandoned
func (b *SessionBuilder) Incomplete() *SessionBuilder {
	b.wasCompleted = false
	return b
}

// CompletedAt sets the completion timestamp
func (b *SessionBuilder) CompletedAt(at time.Time) *SessionBuilder {
	b.completedAt = at
	return b
}

// Build creates the session in the given store
func (b *SessionBuilder) Build(t *testing.T, sessions repository.PracticeSessionRepository) *domain.PracticeSession {
	t.Helper()

	soundsJSON, err := json.Marshal(b.soundsUsed)
	if err != nil {
		t.Fatalf("failed to marshal sounds: %v", err)
	}

	session := &domain.PracticeSession{
		ID:              uuid.New(),
		UserID:          b.userID,
		DurationSeconds: b.durationSeconds,
		SessionType:     b.sessionType,
		SoundsUsed:      datatypes.JSON(soundsJSON),
		WasCompleted:    b.wasCompleted,
		CompletedAt:     b.completedAt,
	}

	if err := sessions.Create(context.Background(), session); err != nil {
		t.Fatalf("failed to create practice session: %v", err)
	}

	return session
}
