// Package portal is the host application around the browser core: it loads
// the collection once, owns the current State, dispatches intents to the
// reducer and notifies subscribers. Every failure becomes a Notice.
package portal

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/MrSnakeDoc/clippings/internal/auth"
	"github.com/MrSnakeDoc/clippings/internal/browser"
	"github.com/MrSnakeDoc/clippings/internal/domain"
	"github.com/MrSnakeDoc/clippings/internal/logger"
)

// RecordStore is the remote surface the portal needs. Implemented by *client.Client.
type RecordStore interface {
	Fetch(ctx context.Context) (domain.Collection, error)
	Replace(ctx context.Context, c domain.Collection) (domain.StatusResponse, error)
	Upload(ctx context.Context, name string, content io.Reader) (domain.UploadResult, error)
	FileURL(filename string) string
}

// Listener receives every new State.
type Listener func(browser.State)

// Options tune a Portal. Zero values select the defaults.
type Options struct {
	PageSize     int
	Categories   domain.Categories
	MaxFileSize  int64
	ProgressStep time.Duration
	Now          func() time.Time
}

type Portal struct {
	store  RecordStore
	auth   *auth.Authenticator
	logger logger.Logger
	opts   Options

	mu        sync.Mutex
	state     browser.State
	session   *auth.Session
	notices   []Notice
	listeners map[int]Listener
	nextID    int
	uploading bool
}

// New builds a portal with an empty collection. Call Start to load it.
func New(store RecordStore, authenticator *auth.Authenticator, opts Options, log logger.Logger) *Portal {
	if opts.PageSize <= 0 {
		opts.PageSize = domain.PageSize
	}
	if len(opts.Categories) == 0 {
		opts.Categories = domain.Categories(domain.DefaultCategories)
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = domain.MaxUploadSize
	}
	if opts.ProgressStep < 0 {
		opts.ProgressStep = 0
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Portal{
		store:     store,
		auth:      authenticator,
		logger:    log,
		opts:      opts,
		state:     browser.New(opts.PageSize),
		listeners: make(map[int]Listener),
	}
}

// Start loads the collection once. On failure the portal stays usable with
// an empty collection and the error is also returned.
func (p *Portal) Start(ctx context.Context) error {
	c, err := p.store.Fetch(ctx)
	if err != nil {
		p.logger.Warn("initial load failed, starting with an empty collection", logger.Error(err))
		p.notify(LevelError, "Failed to load clippings data")
		p.Dispatch(browser.Load{Collection: domain.Collection{}})
		return err
	}
	p.logger.Debug("collection loaded", logger.Int("count", len(c)))
	p.Dispatch(browser.Load{Collection: c})
	return nil
}

// State returns the current snapshot.
func (p *Portal) State() browser.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Dispatch applies one intent and notifies subscribers when the state changed.
func (p *Portal) Dispatch(in browser.Intent) browser.State {
	p.mu.Lock()
	prev := p.state.Version
	p.state = browser.Reduce(p.state, in)
	next := p.state
	var ls []Listener
	if next.Version != prev {
		ls = make([]Listener, 0, len(p.listeners))
		for _, l := range p.listeners {
			ls = append(ls, l)
		}
	}
	p.mu.Unlock()

	for _, l := range ls {
		l(next)
	}
	return next
}

// Subscribe registers fn and returns its unsubscribe function.
func (p *Portal) Subscribe(fn Listener) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
	}
}

// Categories is the enumeration offered by the selectors.
func (p *Portal) Categories() domain.Categories {
	out := make(domain.Categories, len(p.opts.Categories))
	copy(out, p.opts.Categories)
	return out
}

// Dashboard computes the counters shown after login.
func (p *Portal) Dashboard() browser.Stats {
	return browser.ComputeStats(p.State().Collection, len(p.opts.Categories), p.opts.Now())
}

// Captcha returns the current security question.
func (p *Portal) Captcha() string {
	return p.auth.Captcha().Question()
}

// Login checks the credentials. A failure regenerates the captcha.
func (p *Portal) Login(userID, password, answer string) (auth.Session, error) {
	s, err := p.auth.Login(userID, password, answer)
	if err != nil {
		p.notify(LevelError, capitalize(err.Error()))
		return auth.Session{}, err
	}

	p.mu.Lock()
	p.session = &s
	p.mu.Unlock()

	p.logger.Info("user logged in", logger.String("user", s.UserID), logger.String("session", s.ID.String()))
	p.notify(LevelSuccess, "Login successful! Welcome to the Press Clippings Portal.")
	return s, nil
}

// Logout clears the session and resets the drill-down selection.
func (p *Portal) Logout() {
	p.mu.Lock()
	wasIn := p.session != nil
	p.session = nil
	p.mu.Unlock()

	if wasIn {
		p.Dispatch(browser.ResetBrowse{})
		p.notify(LevelSuccess, "Logged out successfully")
	}
}

// Session returns the current session, if any.
func (p *Portal) Session() (auth.Session, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return auth.Session{}, false
	}
	return *p.session, true
}

// Notices returns and clears the pending notices.
func (p *Portal) Notices() []Notice {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.notices
	p.notices = nil
	return out
}

func (p *Portal) notify(level Level, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notices = append(p.notices, Notice{Level: level, Text: text, At: p.opts.Now()})
}

// errorText is the notice shown for err.
func errorText(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return capitalize(ve.Err.Error())
	}
	return err.Error()
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
