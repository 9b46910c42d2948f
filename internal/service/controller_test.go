package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hyukkyo/demon-tournament/internal/cards"
	"github.com/hyukkyo/demon-tournament/internal/constants"
	"github.com/hyukkyo/demon-tournament/internal/engine"
	"github.com/hyukkyo/demon-tournament/internal/game"
	"github.com/hyukkyo/demon-tournament/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	repo *mockRepo
	pub  *recordingPublisher
	ctl  *Controller
	now  time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo: newMockRepo(),
		pub:  &recordingPublisher{},
		now:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.ctl = NewController(f.repo, f.pub, Options{
		EnergyPolicy:  engine.EnergyStrict,
		ActionTimeout: time.Minute,
		Now:           func() time.Time { return f.now },
	})
	return f
}

// started returns the code of an in-progress match between p1 (seat A)
// and p2 (seat B).
func (f *fixture) started(t *testing.T) string {
	t.Helper()
	m, err := f.ctl.CreateMatch("p1", "Al", "")
	require.NoError(t, err)
	_, err = f.ctl.JoinMatch(m.Code, "p2", "Bo", "")
	require.NoError(t, err)
	return m.Code
}

// edit changes the stored match in place.
func (f *fixture) edit(t *testing.T, code string, fn func(*game.Match)) {
	t.Helper()
	m, err := f.repo.GetMatchByCode(code)
	require.NoError(t, err)
	fn(m)
	require.NoError(t, f.repo.UpdateMatch(m))
}

func TestCreateAndJoinMatch(t *testing.T) {
	f := newFixture(t)
	m, err := f.ctl.CreateMatch("p1", "Al", "")
	require.NoError(t, err)
	assert.Equal(t, game.StatusWaitingForPlayers, m.Status)
	assert.Len(t, m.Code, 6)

	joined, err := f.ctl.JoinMatch(m.Code, "p2", "Bo", "")
	require.NoError(t, err)
	assert.Equal(t, game.StatusInProgress, joined.Status)
	assert.Equal(t, game.PhaseSelecting, joined.Phase)
	assert.Equal(t, 1, joined.Round)
	assert.Equal(t, f.now.Add(time.Minute), joined.ActionDeadline)
	assert.Equal(t, grid.LeftAnchor, joined.Player(game.SeatA).Character().Position)
	assert.Equal(t, grid.RightAnchor, joined.Player(game.SeatB).Character().Position)
	assert.Equal(t, []string{constants.MessageMatchStarted, constants.MessageMatchState}, f.pub.types())
	assert.Equal(t, 1, f.ctl.QueueStats().ActiveMatches)
}

func TestJoinMatch_Errors(t *testing.T) {
	f := newFixture(t)
	m, err := f.ctl.CreateMatch("p1", "Al", "")
	require.NoError(t, err)

	_, err = f.ctl.JoinMatch(m.Code, "p1", "Al", "")
	assert.ErrorIs(t, err, ErrAlreadyInMatch)

	_, err = f.ctl.JoinMatch("NOPE00", "p2", "Bo", "")
	assert.ErrorIs(t, err, ErrMatchNotFound)

	_, err = f.ctl.JoinMatch(m.Code, "p2", "Bo", "")
	require.NoError(t, err)
	_, err = f.ctl.JoinMatch(m.Code, "p3", "Cy", "")
	assert.ErrorIs(t, err, ErrMatchFull)

	_, err = f.ctl.CreateMatch("p2", "Bo", "")
	assert.ErrorIs(t, err, ErrAlreadyInMatch)
}

func TestSubmitSelection_ResolvesRound(t *testing.T) {
	f := newFixture(t)
	code := f.started(t)

	_, resolved, err := f.ctl.SubmitSelection(code, "p1", game.Selection{cards.MoveRight, cards.AttackCross, cards.Defend})
	require.NoError(t, err)
	assert.False(t, resolved, "round should not be resolved after only one submission")

	f.now = f.now.Add(10 * time.Second)
	m, resolved, err := f.ctl.SubmitSelection(code, "p2", game.Selection{cards.MoveLeft, cards.Defend, cards.EnergyRecovery})
	require.NoError(t, err)
	require.True(t, resolved)

	assert.Equal(t, 2, m.Round)
	assert.Equal(t, game.PhaseSelecting, m.Phase)
	assert.Equal(t, f.now.Add(time.Minute), m.ActionDeadline)
	a, b := m.Player(game.SeatA), m.Player(game.SeatB)
	assert.False(t, a.HasSubmitted)
	assert.True(t, a.Selection.IsZero())
	assert.Equal(t, 85, b.HP)
	assert.Equal(t, 70, a.Energy)
	assert.Equal(t, 100, b.Energy)
	assert.Equal(t, grid.Position{X: 1, Y: 1}, a.Character().Position)
	assert.NotEmpty(t, m.LastRoundSummary)

	logs, err := f.ctl.Rounds(code)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 1, logs[0].Round)
	assert.Equal(t, game.EventCardReveal, logs[0].Events[0].Kind)

	types := f.pub.types()
	assert.Equal(t, []string{constants.MessageBattleEvents, constants.MessageMatchState}, types[len(types)-2:])
}

func TestSubmitSelection_Rejections(t *testing.T) {
	f := newFixture(t)
	waiting, err := f.ctl.CreateMatch("w1", "Wu", "")
	require.NoError(t, err)
	code := f.started(t)
	good := game.Selection{cards.MoveUp, cards.Defend, cards.AttackArea}

	_, _, err = f.ctl.SubmitSelection(waiting.Code, "w1", good)
	assert.ErrorIs(t, err, ErrMatchNotInProgress)

	_, _, err = f.ctl.SubmitSelection(code, "stranger", good)
	assert.ErrorIs(t, err, ErrPlayerNotInMatch)

	_, _, err = f.ctl.SubmitSelection(code, "p1", game.Selection{cards.Defend, cards.Defend, cards.MoveUp})
	var se *engine.SelectionError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, engine.CodeDuplicate, se.Code)

	_, _, err = f.ctl.SubmitSelection(code, "p1", good)
	require.NoError(t, err)
	_, _, err = f.ctl.SubmitSelection(code, "p1", good)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestSubmitSelection_KnockoutFinishesMatch(t *testing.T) {
	f := newFixture(t)
	code := f.started(t)
	f.edit(t, code, func(m *game.Match) {
		b := m.Player(game.SeatB)
		b.HP = 20
		b.PosX = 1
	})

	_, _, err := f.ctl.SubmitSelection(code, "p2", game.Selection{cards.MoveUp, cards.MoveDown, cards.Defend})
	require.NoError(t, err)
	m, resolved, err := f.ctl.SubmitSelection(code, "p1", game.Selection{cards.AttackCross, cards.Defend, cards.EnergyRecovery})
	require.NoError(t, err)
	require.True(t, resolved)

	// B steps up to (1,0) before the cross from (0,1) is checked: miss.
	// Slot 1 brings B back to (1,1) where nothing hits.
	assert.Equal(t, game.StatusInProgress, m.Status)

	_, _, err = f.ctl.SubmitSelection(code, "p2", game.Selection{cards.EnergyRecovery, cards.MoveDown, cards.MoveUp})
	require.NoError(t, err)
	m, _, err = f.ctl.SubmitSelection(code, "p1", game.Selection{cards.AttackCross, cards.Defend, cards.MoveUp})
	require.NoError(t, err)

	assert.Equal(t, game.StatusFinished, m.Status)
	assert.Equal(t, game.PhaseResolved, m.Phase)
	assert.Equal(t, game.ResultPlayerAWin, m.Result)
	assert.Equal(t, "Al", m.Winner)
	assert.True(t, m.StatsCounted)
	assert.Equal(t, 1, f.repo.statCalls)
	assert.Equal(t, []string{code}, f.pub.closed)
	assert.Equal(t, 0, f.ctl.QueueStats().ActiveMatches)

	_, _, err = f.ctl.SubmitSelection(code, "p1", game.Selection{cards.AttackCross, cards.Defend, cards.MoveUp})
	assert.ErrorIs(t, err, ErrMatchNotInProgress)

	top, err := f.ctl.Leaderboard(5)
	require.NoError(t, err)
	require.NotEmpty(t, top)
	assert.Equal(t, "p1", top[0].PlayerID)
}

func TestSubmitSelection_ConcurrentSubmitsResolveOnce(t *testing.T) {
	f := newFixture(t)
	code := f.started(t)

	var wg sync.WaitGroup
	results := make([]bool, 2)
	for i, id := range []string{"p1", "p2"} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, resolved, err := f.ctl.SubmitSelection(code, id, game.Selection{cards.MoveUp, cards.Defend, cards.EnergyRecovery})
			assert.NoError(t, err)
			results[i] = resolved
		}(i, id)
	}
	wg.Wait()

	assert.NotEqual(t, results[0], results[1], "exactly one submission resolves the round")
	logs, err := f.repo.ListRoundLogs(1)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestForfeit(t *testing.T) {
	f := newFixture(t)
	code := f.started(t)

	m, err := f.ctl.Forfeit(code, "p1", "disconnected")
	require.NoError(t, err)
	assert.Equal(t, game.StatusFinished, m.Status)
	assert.Equal(t, game.ResultPlayerBWin, m.Result)
	assert.Equal(t, "Bo", m.Winner)
	assert.Equal(t, "Al disconnected", m.Message)
	assert.Equal(t, []string{"p1"}, f.repo.forfeits)

	again, err := f.ctl.Forfeit(code, "p2", "")
	require.NoError(t, err)
	assert.Equal(t, game.ResultPlayerBWin, again.Result)
	assert.Equal(t, 1, f.repo.statCalls)

	_, err = f.ctl.Forfeit(code, "stranger", "")
	assert.ErrorIs(t, err, ErrPlayerNotInMatch)
}

func TestForfeit_WaitingMatchIsCancelled(t *testing.T) {
	f := newFixture(t)
	m, err := f.ctl.CreateMatch("p1", "Al", "")
	require.NoError(t, err)

	got, err := f.ctl.Forfeit(m.Code, "p1", "")
	require.NoError(t, err)
	assert.Equal(t, game.StatusFinished, got.Status)
	assert.Equal(t, game.ResultNone, got.Result)
	assert.Zero(t, f.repo.statCalls)
}

func TestHandleTimedOutMatch_BothMiss(t *testing.T) {
	f := newFixture(t)
	code := f.started(t)

	f.now = f.now.Add(2 * time.Minute)
	assert.Equal(t, 1, f.ctl.ScanTimedOut("test-worker"))

	m, err := f.ctl.GetMatch(code)
	require.NoError(t, err)
	assert.Equal(t, game.StatusFinished, m.Status)
	assert.Equal(t, game.ResultDraw, m.Result)
	assert.Empty(t, m.Winner)
	assert.Zero(t, f.repo.statCalls)
}

func TestHandleTimedOutMatch_OneMiss(t *testing.T) {
	f := newFixture(t)
	code := f.started(t)
	_, _, err := f.ctl.SubmitSelection(code, "p2", game.Selection{cards.MoveUp, cards.Defend, cards.EnergyRecovery})
	require.NoError(t, err)

	m, err := f.ctl.GetMatch(code)
	require.NoError(t, err)
	// deadline not reached yet
	require.NoError(t, f.ctl.HandleTimedOutMatch(m))
	m, _ = f.ctl.GetMatch(code)
	assert.Equal(t, game.StatusInProgress, m.Status)

	f.now = f.now.Add(61 * time.Second)
	require.NoError(t, f.ctl.HandleTimedOutMatch(m))
	m, _ = f.ctl.GetMatch(code)
	assert.Equal(t, game.StatusFinished, m.Status)
	assert.Equal(t, game.ResultPlayerBWin, m.Result)
	assert.Equal(t, []string{"p1"}, f.repo.forfeits)
}

func TestMatchmakingQueue(t *testing.T) {
	f := newFixture(t)

	m, err := f.ctl.JoinQueue("p1", "Al", "")
	require.NoError(t, err)
	assert.Nil(t, m)
	_, err = f.ctl.JoinQueue("p1", "Al", "")
	assert.ErrorIs(t, err, ErrAlreadyQueued)
	assert.Equal(t, QueueStatus{Queued: true, Waiting: 1}, f.ctl.QueueStatus("p1"))

	m, err = f.ctl.JoinQueue("p2", "Bo", "")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "p1", m.Player(game.SeatA).PlayerID)
	assert.Equal(t, "p2", m.Player(game.SeatB).PlayerID)
	assert.Equal(t, game.StatusInProgress, m.Status)

	st := f.ctl.QueueStatus("p1")
	assert.False(t, st.Queued)
	assert.Equal(t, m.Code, st.MatchCode)
	assert.Equal(t, QueueStats{WaitingPlayers: 0, ActiveMatches: 1}, f.ctl.QueueStats())

	_, err = f.ctl.JoinQueue("p1", "Al", "")
	assert.ErrorIs(t, err, ErrAlreadyInMatch)

	_, err = f.ctl.JoinQueue("p3", "Cy", "")
	require.NoError(t, err)
	assert.NoError(t, f.ctl.LeaveQueue("p3"))
	assert.ErrorIs(t, f.ctl.LeaveQueue("p3"), ErrNotQueued)
}

func TestCreateMatch_Characters(t *testing.T) {
	f := newFixture(t)
	_, err := f.ctl.CreateMatch("p1", "Al", "dragon")
	assert.ErrorIs(t, err, ErrUnknownCharacter)

	m, err := f.ctl.CreateMatch("p1", "Al", "Assassin")
	require.NoError(t, err)
	_, err = f.ctl.JoinMatch(m.Code, "p2", "Bo", "bard")
	assert.ErrorIs(t, err, ErrUnknownCharacter)

	joined, err := f.ctl.JoinMatch(m.Code, "p2", "Bo", "")
	require.NoError(t, err)
	a, b := joined.Player(game.SeatA), joined.Player(game.SeatB)
	assert.Equal(t, "assassin", a.CharacterID)
	assert.NotContains(t, a.Deck, cards.AttackArea)
	assert.Equal(t, cards.DefaultCharacterID, b.CharacterID)
	assert.Equal(t, cards.DefaultCharacter().Deck(), b.Deck)
}

func TestSubmitSelection_OffDeckAttack(t *testing.T) {
	f := newFixture(t)
	m, err := f.ctl.CreateMatch("p1", "Al", "assassin")
	require.NoError(t, err)
	_, err = f.ctl.JoinMatch(m.Code, "p2", "Bo", "warrior")
	require.NoError(t, err)

	_, _, err = f.ctl.SubmitSelection(m.Code, "p1", game.Selection{cards.MoveUp, cards.Defend, cards.AttackArea})
	var se *engine.SelectionError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, engine.CodeNotInDeck, se.Code)
	assert.Equal(t, 2, se.Slot)
	assert.Equal(t, cards.AttackArea, se.Card)

	_, _, err = f.ctl.SubmitSelection(m.Code, "p2", game.Selection{cards.AttackDiagonal, cards.Defend, cards.MoveUp})
	require.True(t, errors.As(err, &se))
	assert.Equal(t, engine.CodeNotInDeck, se.Code)

	_, _, err = f.ctl.SubmitSelection(m.Code, "p1", game.Selection{cards.AttackDiagonal, cards.Defend, cards.MoveUp})
	assert.NoError(t, err)
}

func TestForfeit_FailedWriteCountsStatsOnce(t *testing.T) {
	f := newFixture(t)
	code := f.started(t)

	f.repo.failWrites = 1
	_, err := f.ctl.Forfeit(code, "p1", "")
	require.ErrorIs(t, err, errWriteFailed)
	m, err := f.ctl.GetMatch(code)
	require.NoError(t, err)
	assert.Equal(t, game.StatusInProgress, m.Status)
	assert.False(t, m.StatsCounted)
	assert.Zero(t, f.repo.statCalls)
	assert.Equal(t, 1, f.ctl.QueueStats().ActiveMatches)

	m, err = f.ctl.Forfeit(code, "p1", "")
	require.NoError(t, err)
	assert.Equal(t, game.ResultPlayerBWin, m.Result)
	assert.Equal(t, 1, f.repo.statCalls)
	assert.Equal(t, []string{"p1"}, f.repo.forfeits)

	st, err := f.ctl.Stats("p1")
	require.NoError(t, err)
	assert.Equal(t, 1, st.GamesPlayed)
	assert.Equal(t, 0, f.ctl.QueueStats().ActiveMatches)
}

func TestSubmitSelection_FailedSaveKeepsRoundOpen(t *testing.T) {
	f := newFixture(t)
	code := f.started(t)
	sel := game.Selection{cards.MoveUp, cards.Defend, cards.EnergyRecovery}

	_, _, err := f.ctl.SubmitSelection(code, "p1", sel)
	require.NoError(t, err)

	f.repo.failWrites = 1
	_, resolved, err := f.ctl.SubmitSelection(code, "p2", sel)
	require.ErrorIs(t, err, errWriteFailed)
	assert.False(t, resolved)

	m, err := f.ctl.GetMatch(code)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Round)
	assert.Equal(t, game.PhaseSelecting, m.Phase)
	assert.True(t, m.Player(game.SeatA).HasSubmitted)
	assert.False(t, m.Player(game.SeatB).HasSubmitted)
	logs, err := f.ctl.Rounds(code)
	require.NoError(t, err)
	assert.Empty(t, logs)

	m, resolved, err = f.ctl.SubmitSelection(code, "p2", sel)
	require.NoError(t, err)
	assert.True(t, resolved)
	assert.Equal(t, 2, m.Round)
	logs, err = f.ctl.Rounds(code)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestSubmitSelection_FailedFinalSaveCountsStatsOnce(t *testing.T) {
	f := newFixture(t)
	code := f.started(t)
	f.edit(t, code, func(m *game.Match) {
		b := m.Player(game.SeatB)
		b.HP = 20
		b.PosX = 1
	})
	finisher := game.Selection{cards.AttackCross, cards.Defend, cards.MoveUp}

	_, _, err := f.ctl.SubmitSelection(code, "p2", game.Selection{cards.EnergyRecovery, cards.MoveDown, cards.MoveUp})
	require.NoError(t, err)

	f.repo.failWrites = 1
	_, _, err = f.ctl.SubmitSelection(code, "p1", finisher)
	require.ErrorIs(t, err, errWriteFailed)
	m, err := f.ctl.GetMatch(code)
	require.NoError(t, err)
	assert.Equal(t, game.StatusInProgress, m.Status)
	assert.Zero(t, f.repo.statCalls)

	m, resolved, err := f.ctl.SubmitSelection(code, "p1", finisher)
	require.NoError(t, err)
	require.True(t, resolved)
	assert.Equal(t, game.StatusFinished, m.Status)
	assert.Equal(t, game.ResultPlayerAWin, m.Result)
	assert.Equal(t, 1, f.repo.statCalls)
	logs, err := f.ctl.Rounds(code)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestCreateMatch_OneWaitingMatchPerPlayer(t *testing.T) {
	f := newFixture(t)
	m, err := f.ctl.CreateMatch("p1", "Al", "")
	require.NoError(t, err)

	_, err = f.ctl.CreateMatch("p1", "Al", "")
	assert.ErrorIs(t, err, ErrAlreadyInMatch)
	_, err = f.ctl.JoinQueue("p1", "Al", "")
	assert.ErrorIs(t, err, ErrAlreadyInMatch)

	_, err = f.ctl.Forfeit(m.Code, "p1", "")
	require.NoError(t, err)
	_, err = f.ctl.CreateMatch("p1", "Al", "")
	assert.NoError(t, err)

	_, err = f.ctl.JoinQueue("q1", "Qi", "")
	require.NoError(t, err)
	_, err = f.ctl.CreateMatch("q1", "Qi", "")
	assert.ErrorIs(t, err, ErrAlreadyQueued)
}

func TestCreateMatch_FailedWriteReleasesPlayer(t *testing.T) {
	f := newFixture(t)
	f.repo.failWrites = 1
	_, err := f.ctl.CreateMatch("p1", "Al", "")
	require.ErrorIs(t, err, errWriteFailed)

	_, err = f.ctl.CreateMatch("p1", "Al", "")
	assert.NoError(t, err)
}

func TestJoinMatch_FailedJoinReleasesPlayer(t *testing.T) {
	f := newFixture(t)
	m, err := f.ctl.CreateMatch("p1", "Al", "")
	require.NoError(t, err)

	_, err = f.ctl.JoinMatch("NOPE00", "p2", "Bo", "")
	require.ErrorIs(t, err, ErrMatchNotFound)

	f.repo.failWrites = 1
	_, err = f.ctl.JoinMatch(m.Code, "p2", "Bo", "")
	require.ErrorIs(t, err, errWriteFailed)
	assert.Equal(t, 0, f.ctl.QueueStats().ActiveMatches)

	joined, err := f.ctl.JoinMatch(m.Code, "p2", "Bo", "")
	require.NoError(t, err)
	assert.Equal(t, game.StatusInProgress, joined.Status)
}

func TestJoinMatch_ConcurrentJoinsTakeOneSeat(t *testing.T) {
	f := newFixture(t)
	var codes []string
	for _, id := range []string{"c1", "c2", "c3", "c4"} {
		m, err := f.ctl.CreateMatch(id, id, "")
		require.NoError(t, err)
		codes = append(codes, m.Code)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(codes))
	for i, code := range codes {
		wg.Add(1)
		go func(i int, code string) {
			defer wg.Done()
			_, errs[i] = f.ctl.JoinMatch(code, "p9", "Nine", "")
		}(i, code)
	}
	wg.Wait()

	joined := 0
	for _, err := range errs {
		if err == nil {
			joined++
			continue
		}
		assert.ErrorIs(t, err, ErrAlreadyInMatch)
	}
	assert.Equal(t, 1, joined)
	assert.Equal(t, 1, f.ctl.QueueStats().ActiveMatches)
}

func TestMatchmakingQueue_Characters(t *testing.T) {
	f := newFixture(t)
	_, err := f.ctl.JoinQueue("p1", "Al", "nobody")
	assert.ErrorIs(t, err, ErrUnknownCharacter)

	_, err = f.ctl.JoinQueue("p1", "Al", "mage")
	require.NoError(t, err)
	m, err := f.ctl.JoinQueue("p2", "Bo", "assassin")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "mage", m.Player(game.SeatA).CharacterID)
	assert.Equal(t, "assassin", m.Player(game.SeatB).CharacterID)
	assert.NotContains(t, m.Player(game.SeatA).Deck, cards.AttackForward)
}
