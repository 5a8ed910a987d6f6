package match

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatch(t *testing.T, overs int, wide, noBall Rule) Match {
	t.Helper()
	m, err := NewMatch(Config{
		TeamOneName: "Lions",
		TeamTwoName: "Tigers",
		TotalOvers:  overs,
		WideRule:    wide,
		NoBallRule:  noBall,
	})
	require.NoError(t, err)
	return m
}

func mustApply(t *testing.T, m Match, b Ball) Match {
	t.Helper()
	next, ok, err := ApplyBall(m, b)
	require.NoError(t, err)
	require.True(t, ok, "ball %+v rejected", b)
	return next
}

func TestNewMatch(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, 5, RuleRun, RuleReball)
	assert.Equal(t, 1, m.CurrentInnings)
	assert.Equal(t, StatusLive, m.Status)
	assert.Nil(t, m.InningsTwo)
	assert.Equal(t, "Lions", m.InningsOne.BattingTeam)
	assert.Equal(t, "Tigers", m.InningsOne.BowlingTeam)
	assert.Empty(t, m.InningsOne.History)
	assert.Equal(t, 30, m.Config.MaxBalls())
}

func TestNewMatch_DefaultsRules(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, 2, "", "")
	assert.Equal(t, RuleReball, m.Config.WideRule)
	assert.Equal(t, RuleReball, m.Config.NoBallRule)
}

func TestNewMatch_Invalid(t *testing.T) {
	t.Parallel()

	cases := map[string]Config{
		"missing team":   {TeamOneName: "Lions", TotalOvers: 5},
		"same teams":     {TeamOneName: "Lions", TeamTwoName: "lions", TotalOvers: 5},
		"zero overs":     {TeamOneName: "Lions", TeamTwoName: "Tigers"},
		"negative overs": {TeamOneName: "Lions", TeamTwoName: "Tigers", TotalOvers: -1},
		"bad wide rule":  {TeamOneName: "Lions", TeamTwoName: "Tigers", TotalOvers: 5, WideRule: "free-hit"},
		"bad nb rule":    {TeamOneName: "Lions", TeamTwoName: "Tigers", TotalOvers: 5, NoBallRule: "x"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewMatch(cfg)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestApplyBall_LegalRuns(t *testing.T) {
	t.Parallel()

	for _, r := range []int{0, 1, 2, 3, 4, 6} {
		m := newTestMatch(t, 5, RuleReball, RuleReball)
		next := mustApply(t, m, Ball{Kind: KindLegal, Runs: r})

		assert.Equal(t, 1, next.InningsOne.BallsBowled)
		assert.Equal(t, r, next.InningsOne.TotalRuns)
		assert.Equal(t, 0, next.InningsOne.Wickets)
		assert.Equal(t, []string{strconv.Itoa(r)}, next.InningsOne.History)
	}
}

func TestApplyBall_Wicket(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, 5, RuleReball, RuleReball)
	next := mustApply(t, m, Ball{Kind: KindWicket})

	assert.Equal(t, 1, next.InningsOne.Wickets)
	assert.Equal(t, 1, next.InningsOne.BallsBowled)
	assert.Equal(t, 0, next.InningsOne.TotalRuns)
	assert.Equal(t, []string{"W"}, next.InningsOne.History)
}

func TestApplyBall_RunOutOnLegalBall(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, 5, RuleReball, RuleReball)
	next := mustApply(t, m, Ball{Kind: KindLegal, Runs: 2, Wicket: true})

	assert.Equal(t, 2, next.InningsOne.TotalRuns)
	assert.Equal(t, 1, next.InningsOne.Wickets)
	assert.Equal(t, 1, next.InningsOne.BallsBowled)
	assert.Equal(t, []string{"W"}, next.InningsOne.History)
}

func TestApplyBall_WideReball(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, 5, RuleReball, RuleReball)
	next := mustApply(t, m, Ball{Kind: KindWide})

	assert.Equal(t, 1, next.InningsOne.TotalRuns)
	assert.Equal(t, 0, next.InningsOne.BallsBowled)
	assert.Equal(t, 1, next.InningsOne.Extras.Wides)
	assert.Equal(t, []string{"WD"}, next.InningsOne.History)
}

func TestApplyBall_WideRunWithWicket(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, 5, RuleRun, RuleReball)
	next := mustApply(t, m, Ball{Kind: KindWide, Runs: 2, Wicket: true})

	assert.Equal(t, 3, next.InningsOne.TotalRuns)
	assert.Equal(t, 1, next.InningsOne.BallsBowled)
	assert.Equal(t, 1, next.InningsOne.Wickets)
	assert.Equal(t, 1, next.InningsOne.Extras.Wides)
	assert.Equal(t, []string{"WD+2+W"}, next.InningsOne.History)
}

func TestApplyBall_NoBall(t *testing.T) {
	t.Parallel()

	reball := newTestMatch(t, 5, RuleReball, RuleReball)
	next := mustApply(t, reball, Ball{Kind: KindNoBall, Runs: 4})
	assert.Equal(t, 5, next.InningsOne.TotalRuns)
	assert.Equal(t, 0, next.InningsOne.BallsBowled)
	assert.Equal(t, 1, next.InningsOne.Extras.NoBalls)
	assert.Equal(t, []string{"NB+4"}, next.InningsOne.History)

	run := newTestMatch(t, 5, RuleReball, RuleRun)
	next = mustApply(t, run, Ball{Kind: KindNoBall})
	assert.Equal(t, 1, next.InningsOne.TotalRuns)
	assert.Equal(t, 1, next.InningsOne.BallsBowled)
	assert.Equal(t, []string{"NB"}, next.InningsOne.History)
}

func TestApplyBall_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, 5, RuleReball, RuleReball)
	m = mustApply(t, m, Ball{Kind: KindLegal, Runs: 1})
	before := m.Clone()

	_ = mustApply(t, m, Ball{Kind: KindLegal, Runs: 4})
	assert.Equal(t, before, m)
}

func TestApplyBall_OverLimitRejects(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, 1, RuleReball, RuleReball)
	for i := 0; i < BallsPerOver; i++ {
		m = mustApply(t, m, Ball{Kind: KindLegal, Runs: 1})
	}
	require.Equal(t, 6, m.InningsOne.BallsBowled)
	snapshot := m.Clone()

	for _, b := range []Ball{
		{Kind: KindLegal, Runs: 4},
		{Kind: KindWide},
		{Kind: KindNoBall, Runs: 1},
		{Kind: KindWicket},
	} {
		next, ok, err := ApplyBall(m, b)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, snapshot, next)
	}
}

func TestApplyBall_AllOutRejects(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, 20, RuleReball, RuleReball)
	for i := 0; i < MaxWickets; i++ {
		m = mustApply(t, m, Ball{Kind: KindWicket})
	}
	snapshot := m.Clone()

	next, ok, err := ApplyBall(m, Ball{Kind: KindLegal, Runs: 1})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, snapshot, next)
}

func TestApplyBall_TargetReachedRejects(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, 5, RuleReball, RuleReball)
	m = mustApply(t, m, Ball{Kind: KindLegal, Runs: 4})
	m = EndInnings(m)
	m = mustApply(t, m, Ball{Kind: KindLegal, Runs: 4})
	m = mustApply(t, m, Ball{Kind: KindLegal, Runs: 1})
	require.True(t, m.Chased())
	snapshot := m.Clone()

	next, ok, err := ApplyBall(m, Ball{Kind: KindWide})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, snapshot, next)
}

func TestApplyBall_InvalidInput(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, 5, RuleReball, RuleReball)
	for name, b := range map[string]Ball{
		"negative runs":    {Kind: KindLegal, Runs: -1},
		"too many runs":    {Kind: KindLegal, Runs: 7},
		"unknown kind":     {Kind: "bouncer"},
		"wicket with flag": {Kind: KindWicket, Wicket: true},
		"wicket with runs": {Kind: KindWicket, Runs: 1},
		"empty kind":       {},
	} {
		t.Run(name, func(t *testing.T) {
			next, ok, err := ApplyBall(m, b)
			require.ErrorIs(t, err, ErrInvalidBall)
			assert.False(t, ok)
			assert.Equal(t, m, next)
		})
	}
}

func TestEndInnings_FirstToSecond(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, 5, RuleReball, RuleReball)
	m = mustApply(t, m, Ball{Kind: KindLegal, Runs: 3})
	next := EndInnings(m)

	assert.Equal(t, 2, next.CurrentInnings)
	assert.Equal(t, StatusLive, next.Status)
	require.NotNil(t, next.InningsTwo)
	assert.Equal(t, "Tigers", next.InningsTwo.BattingTeam)
	assert.Equal(t, "Lions", next.InningsTwo.BowlingTeam)
	assert.Equal(t, 0, next.InningsTwo.TotalRuns)
	assert.Equal(t, 0, next.InningsTwo.Wickets)
	assert.Equal(t, 0, next.InningsTwo.BallsBowled)
	assert.Equal(t, []string{}, next.InningsTwo.History)
	assert.Equal(t, Extras{}, next.InningsTwo.Extras)
	assert.Nil(t, m.InningsTwo, "input must not be mutated")
}

func TestEndInnings_KeepsExistingSecondInnings(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, 5, RuleReball, RuleReball)
	m = EndInnings(m)
	m = mustApply(t, m, Ball{Kind: KindLegal, Runs: 2})
	m.CurrentInnings = 1

	next := EndInnings(m)
	require.NotNil(t, next.InningsTwo)
	assert.Equal(t, 2, next.InningsTwo.TotalRuns)
	assert.Equal(t, []string{"2"}, next.InningsTwo.History)
}

func TestEndInnings_Completes(t *testing.T) {
	t.Parallel()

	m := EndInnings(newTestMatch(t, 5, RuleReball, RuleReball))
	before := m.Clone()
	next := EndInnings(m)

	assert.Equal(t, StatusCompleted, next.Status)
	next.Status = before.Status
	assert.Equal(t, before, next, "only status changes")
}

func TestClone_Independent(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t, 5, RuleReball, RuleReball)
	m = mustApply(t, m, Ball{Kind: KindLegal, Runs: 1})
	m = EndInnings(m)
	m = mustApply(t, m, Ball{Kind: KindLegal, Runs: 1})

	c := m.Clone()
	c.InningsOne.History[0] = "6"
	c.InningsTwo.History[0] = "6"
	c.InningsTwo.TotalRuns = 99

	assert.Equal(t, "1", m.InningsOne.History[0])
	assert.Equal(t, "1", m.InningsTwo.History[0])
	assert.Equal(t, 1, m.InningsTwo.TotalRuns)
}
