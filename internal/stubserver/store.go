package stubserver

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/devpal/newbase/internal/models"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUnknownUser  = errors.New("unknown user")
	ErrBadPassword  = errors.New("invalid credentials")
	ErrUnknownNotif = errors.New("unknown notification")
)

type account struct {
	user         models.User
	passwordHash []byte
}

// Store keeps stub accounts and notifications in memory, guarded by one
// mutex. It exists for local development only.
type Store struct {
	mu            sync.RWMutex
	accounts      map[string]*account // keyed by user id
	byEmail       map[string]string   // email -> user id
	notifications map[string][]models.Notification
}

func NewStore() *Store {
	return &Store{
		accounts:      make(map[string]*account),
		byEmail:       make(map[string]string),
		notifications: make(map[string][]models.Notification),
	}
}

// CreateAccount registers a new user with a bcrypt-hashed password.
func (s *Store) CreateAccount(username, email, password, firstName, lastName string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, ErrEmailTaken
	}

	now := time.Now().Unix()
	user := models.User{
		ID:            uuid.NewString(),
		Username:      username,
		Email:         email,
		FirstName:     firstName,
		LastName:      lastName,
		AccountStatus: "active",
		Locale:        "en",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.accounts[user.ID] = &account{user: user, passwordHash: hash}
	s.byEmail[email] = user.ID
	return &user, nil
}

// Authenticate checks credentials and returns the user on success.
func (s *Store) Authenticate(email, password string) (*models.User, error) {
	s.mu.RLock()
	id, ok := s.byEmail[email]
	var acc *account
	if ok {
		acc = s.accounts[id]
	}
	s.mu.RUnlock()

	if acc == nil {
		return nil, ErrBadPassword
	}
	if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)) != nil {
		return nil, ErrBadPassword
	}

	s.mu.Lock()
	now := time.Now().Unix()
	acc.user.LastLoginAt = &now
	user := acc.user
	s.mu.Unlock()
	return &user, nil
}

func (s *Store) GetUser(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrUnknownUser
	}
	user := acc.user
	return &user, nil
}

// UpdateUser replaces the profile fields of an existing account.
func (s *Store) UpdateUser(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[user.ID]
	if !ok {
		return ErrUnknownUser
	}
	user.UpdatedAt = time.Now().Unix()
	user.Token = ""
	acc.user = user
	return nil
}

// HasEmail reports whether an account exists for the address.
func (s *Store) HasEmail(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byEmail[email]
	return ok
}

// Notifications returns the user's notifications, newest sent first.
func (s *Store) Notifications(userID string) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ns := make([]models.Notification, len(s.notifications[userID]))
	copy(ns, s.notifications[userID])
	sort.SliceStable(ns, func(i, j int) bool {
		var a, b int64
		if ns[i].SentAt != nil {
			a = *ns[i].SentAt
		}
		if ns[j].SentAt != nil {
			b = *ns[j].SentAt
		}
		return a > b
	})
	return ns
}

// AddNotification appends a notification for the user.
func (s *Store) AddNotification(n models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[n.UserID] = append(s.notifications[n.UserID], n)
}

// MarkRead flips a notification's read status.
func (s *Store) MarkRead(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns := s.notifications[userID]
	for i := range ns {
		if ns[i].ID == id {
			ns[i].ReadStatus = models.ReadStatusRead
			ns[i].UpdatedAt = time.Now().Unix()
			return nil
		}
	}
	return ErrUnknownNotif
}

// SeedDemo creates a demo account (demo@devpal.app / demo-password) with a
// handful of notifications so the CLI has something to show.
func (s *Store) SeedDemo() (*models.User, error) {
	user, err := s.CreateAccount("demo", "demo@devpal.app", "demo-password", "Demo", "User")
	if err != nil {
		return nil, err
	}

	base := time.Now().Add(-48 * time.Hour).Unix()
	titles := []string{"Welcome to devpal", "Profile incomplete", "Weekly digest"}
	for i, title := range titles {
		sent := base + int64(i)*3600
		s.AddNotification(models.Notification{
			ID:               uuid.NewString(),
			UserID:           user.ID,
			Type:             "general",
			Category:         "transactional",
			Priority:         "medium",
			DeliveryChannel:  "in_app",
			Title:            title,
			Body:             title,
			ShortDescription: title,
			ReadStatus:       models.ReadStatusUnread,
			SentAt:           &sent,
			CreatedAt:        sent,
			UpdatedAt:        sent,
		})
	}
	return user, nil
}
