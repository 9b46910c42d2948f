package service

import (
	"sync"
	"time"

	"github.com/hyukkyo/demon-tournament/internal/engine"
	"github.com/hyukkyo/demon-tournament/internal/game"
)

// MatchRepo is the storage the controller needs.
type MatchRepo interface {
	CreateMatch(m *game.Match) error
	GetMatchByCode(code string) (*game.Match, error)
	UpdateMatch(m *game.Match) error
	// SaveRound stores a resolved round together with the match.
	SaveRound(m *game.Match, l *game.RoundLog) error
	ListRoundLogs(matchID uint) ([]game.RoundLog, error)
	FindTimedOutMatches(now time.Time) ([]game.Match, error)
	// FinishMatch stores a finished match and counts its stats once.
	FinishMatch(m *game.Match, forfeitedBy string) error
	GetStats(playerID string) (*game.User, error)
	GetTopPlayers(limit int) ([]game.User, error)
}

// Publisher delivers realtime messages to everyone watching a match.
type Publisher interface {
	Publish(code, msgType string, payload any)
	// Close drops the match channel once nobody needs it anymore.
	Close(code string)
}

type Options struct {
	EnergyPolicy  engine.EnergyPolicy
	ActionTimeout time.Duration
	CleanupDelay  time.Duration
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// Controller owns every running match: it serialises access per match,
// runs the matchmaking queue and turns submitted selections into resolved
// rounds.
type Controller struct {
	repo MatchRepo
	pub  Publisher
	opts Options

	mu      sync.Mutex
	locks   map[string]*sync.Mutex
	queue   []queuedPlayer
	matched map[string]string // queued player -> match code, until polled
	playing map[string]string // player -> in-progress match code
	waiting map[string]string // creator -> match code waiting for an opponent
}

func NewController(repo MatchRepo, pub Publisher, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ActionTimeout <= 0 {
		opts.ActionTimeout = time.Minute
	}
	if opts.EnergyPolicy == "" {
		opts.EnergyPolicy = engine.EnergyStrict
	}
	return &Controller{
		repo:    repo,
		pub:     pub,
		opts:    opts,
		locks:   make(map[string]*sync.Mutex),
		matched: make(map[string]string),
		playing: make(map[string]string),
		waiting: make(map[string]string),
	}
}

// lockMatch serialises all mutations of one match and returns the unlock.
func (c *Controller) lockMatch(code string) func() {
	c.mu.Lock()
	l, ok := c.locks[code]
	if !ok {
		l = &sync.Mutex{}
		c.locks[code] = l
	}
	c.mu.Unlock()
	l.Lock()
	return l.Unlock
}

func (c *Controller) publish(code, msgType string, payload any) {
	if c.pub != nil {
		c.pub.Publish(code, msgType, payload)
	}
}

// scheduleCleanup forgets a finished match after the cleanup delay.
func (c *Controller) scheduleCleanup(code string) {
	forget := func() {
		c.mu.Lock()
		delete(c.locks, code)
		c.mu.Unlock()
		if c.pub != nil {
			c.pub.Close(code)
		}
	}
	if c.opts.CleanupDelay <= 0 {
		forget()
		return
	}
	time.AfterFunc(c.opts.CleanupDelay, forget)
}

func (c *Controller) trackPlaying(m *game.Match) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range m.Players {
		if c.waiting[p.PlayerID] == m.Code {
			delete(c.waiting, p.PlayerID)
		}
		if m.Status == game.StatusInProgress {
			c.playing[p.PlayerID] = m.Code
		} else if c.playing[p.PlayerID] == m.Code {
			delete(c.playing, p.PlayerID)
		}
	}
}

// busyLocked reports why playerID cannot take another seat. c.mu must be
// held.
func (c *Controller) busyLocked(playerID string) error {
	if _, ok := c.playing[playerID]; ok {
		return ErrAlreadyInMatch
	}
	if _, ok := c.waiting[playerID]; ok {
		return ErrAlreadyInMatch
	}
	for _, q := range c.queue {
		if q.id == playerID {
			return ErrAlreadyQueued
		}
	}
	return nil
}

// reserve claims a seat in code for playerID, recording it in seats. The
// claim is checked and taken under one lock so a player cannot end up in
// two matches at once.
func (c *Controller) reserve(seats map[string]string, playerID, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.busyLocked(playerID); err != nil {
		return err
	}
	seats[playerID] = code
	return nil
}

// release drops a claim taken by reserve.
func (c *Controller) release(playerID, code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing[playerID] == code {
		delete(c.playing, playerID)
	}
	if c.waiting[playerID] == code {
		delete(c.waiting, playerID)
	}
}
