// Package auth implements the portal login: a single configured credential pair
// guarded by an arithmetic captcha.
package auth

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/clippings/internal/domain"
)

// Credentials is the expected user id / password pair.
type Credentials struct {
	UserID   string
	Password string
}

// Captcha is a "a + b = ?" challenge with operands in 1..10.
type Captcha struct {
	A, B int
}

func (c Captcha) Question() string { return fmt.Sprintf("%d + %d = ?", c.A, c.B) }

func (c Captcha) Answer() int { return c.A + c.B }

// Session is the logged-in user.
type Session struct {
	ID        uuid.UUID
	UserID    string
	LoginTime time.Time
}

// Authenticator checks credentials and owns the current captcha.
type Authenticator struct {
	creds Credentials
	intn  func(n int) int
	now   func() time.Time

	mu      sync.Mutex
	captcha Captcha
}

// Option customises an Authenticator.
type Option func(*Authenticator)

// WithIntn replaces the random source used for captcha operands.
func WithIntn(fn func(n int) int) Option {
	return func(a *Authenticator) { a.intn = fn }
}

// WithClock replaces time.Now.
func WithClock(fn func() time.Time) Option {
	return func(a *Authenticator) { a.now = fn }
}

func New(creds Credentials, opts ...Option) *Authenticator {
	a := &Authenticator{
		creds: creds,
		intn:  rand.IntN,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.captcha = a.generate()
	return a
}

func (a *Authenticator) generate() Captcha {
	return Captcha{A: a.intn(10) + 1, B: a.intn(10) + 1}
}

// Captcha returns the current challenge.
func (a *Authenticator) Captcha() Captcha {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.captcha
}

// Refresh replaces the current challenge.
func (a *Authenticator) Refresh() Captcha {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.captcha = a.generate()
	return a.captcha
}

// Login checks user id, then password, then the captcha answer. Any failure
// returns an *domain.AuthError and rotates the captcha.
func (a *Authenticator) Login(userID, password, answer string) (Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var cause error
	switch {
	case userID != a.creds.UserID:
		cause = domain.ErrInvalidUser
	case password != a.creds.Password:
		cause = domain.ErrInvalidPassword
	default:
		got, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil || got != a.captcha.Answer() {
			cause = domain.ErrCaptchaMismatch
		}
	}

	if cause != nil {
		a.captcha = a.generate()
		return Session{}, &domain.AuthError{Err: cause}
	}

	return Session{
		ID:        uuid.New(),
		UserID:    userID,
		LoginTime: a.now().UTC(),
	}, nil
}
