package service

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/hyukkyo/demon-tournament/internal/game"
	"github.com/hyukkyo/demon-tournament/internal/storage"
)

// mockRepo keeps matches in memory. Matches are stored by value so callers
// never share state with the "database", as with the real repository.
// Setting failWrites makes that many following writes fail without storing
// anything.
type mockRepo struct {
	mu         sync.Mutex
	nextID     uint
	matches    map[string]game.Match
	logs       map[uint][]game.RoundLog
	stats      map[string]*game.User
	forfeits   []string
	statCalls  int
	failWrites int
}

var errWriteFailed = errors.New("write failed")

// failing consumes one injected failure. r.mu must be held.
func (r *mockRepo) failing() bool {
	if r.failWrites > 0 {
		r.failWrites--
		return true
	}
	return false
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		matches: map[string]game.Match{},
		logs:    map[uint][]game.RoundLog{},
		stats:   map[string]*game.User{},
	}
}

func cloneMatch(m game.Match) game.Match {
	players := make([]game.MatchPlayer, len(m.Players))
	for i, p := range m.Players {
		p.Deck = append(p.Deck[:0:0], p.Deck...)
		players[i] = p
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Seat < players[j].Seat })
	m.Players = players
	return m
}

func (r *mockRepo) CreateMatch(m *game.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing() {
		return errWriteFailed
	}
	r.nextID++
	m.ID = r.nextID
	r.matches[m.Code] = cloneMatch(*m)
	return nil
}

func (r *mockRepo) GetMatchByCode(code string) (*game.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[code]
	if !ok {
		return nil, storage.ErrNotFound
	}
	c := cloneMatch(m)
	return &c, nil
}

func (r *mockRepo) UpdateMatch(m *game.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing() {
		return errWriteFailed
	}
	r.matches[m.Code] = cloneMatch(*m)
	return nil
}

func (r *mockRepo) SaveRound(m *game.Match, l *game.RoundLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing() {
		return errWriteFailed
	}
	r.logs[l.MatchID] = append(r.logs[l.MatchID], *l)
	if m.Status == game.StatusFinished {
		r.countStats(m, "")
	}
	r.matches[m.Code] = cloneMatch(*m)
	return nil
}

func (r *mockRepo) FinishMatch(m *game.Match, forfeitedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing() {
		return errWriteFailed
	}
	r.countStats(m, forfeitedBy)
	r.matches[m.Code] = cloneMatch(*m)
	return nil
}

func (r *mockRepo) ListRoundLogs(matchID uint) ([]game.RoundLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]game.RoundLog(nil), r.logs[matchID]...), nil
}

func (r *mockRepo) FindTimedOutMatches(now time.Time) ([]game.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []game.Match
	for _, m := range r.matches {
		if m.Status == game.StatusInProgress && m.Phase == game.PhaseSelecting && !m.ActionDeadline.After(now) {
			out = append(out, cloneMatch(m))
		}
	}
	return out, nil
}

// countStats records m once. r.mu must be held.
func (r *mockRepo) countStats(m *game.Match, forfeitedBy string) {
	if m.StatsCounted {
		return
	}
	m.StatsCounted = true
	r.statCalls++
	if forfeitedBy != "" {
		r.forfeits = append(r.forfeits, forfeitedBy)
	}
	for _, p := range m.Players {
		u, ok := r.stats[p.PlayerID]
		if !ok {
			u = &game.User{PlayerID: p.PlayerID, PlayerName: p.PlayerName}
			r.stats[p.PlayerID] = u
		}
		u.GamesPlayed++
		if m.Result == game.WinFor(p.Seat) {
			u.Wins++
		}
	}
}

func (r *mockRepo) GetStats(playerID string) (*game.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.stats[playerID]; ok {
		c := *u
		return &c, nil
	}
	return &game.User{PlayerID: playerID}, nil
}

func (r *mockRepo) GetTopPlayers(limit int) ([]game.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]game.User, 0, len(r.stats))
	for _, u := range r.stats {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Wins > out[j].Wins })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type published struct {
	code    string
	msgType string
	payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	msgs   []published
	closed []string
}

func (p *recordingPublisher) Publish(code, msgType string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, published{code, msgType, payload})
}

func (p *recordingPublisher) Close(code string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = append(p.closed, code)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.msgs))
	for _, m := range p.msgs {
		out = append(out, m.msgType)
	}
	return out
}
