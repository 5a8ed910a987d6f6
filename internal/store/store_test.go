package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/cricket-scorer/internal/match"
)

// playedMatch returns a match part-way through the second innings.
func playedMatch(t *testing.T) match.Match {
	t.Helper()
	m, err := match.NewMatch(match.Config{
		TeamOneName: "Lions",
		TeamTwoName: "Tigers",
		TotalOvers:  2,
		WideRule:    match.RuleRun,
		NoBallRule:  match.RuleReball,
	})
	require.NoError(t, err)
	for _, b := range []match.Ball{
		{Kind: match.KindLegal, Runs: 4},
		{Kind: match.KindWide, Runs: 1, Wicket: true},
		{Kind: match.KindNoBall},
	} {
		var ok bool
		m, ok, err = match.ApplyBall(m, b)
		require.NoError(t, err)
		require.True(t, ok)
	}
	m = match.EndInnings(m)
	m, _, err = match.ApplyBall(m, match.Ball{Kind: match.KindWicket})
	require.NoError(t, err)
	return m
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	m := playedMatch(t)
	b, err := Encode(m)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"teamOneName":"Lions"`)
	assert.Contains(t, string(b), `"noBalls":1`)

	got, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestDecode_FirstInningsOmitsSecond(t *testing.T) {
	t.Parallel()

	m, err := match.NewMatch(match.Config{TeamOneName: "A", TeamTwoName: "B", TotalOvers: 1})
	require.NoError(t, err)
	b, err := Encode(m)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "inningsTwo")

	got, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestDecode_Corrupt(t *testing.T) {
	t.Parallel()

	valid := `"config":{"teamOneName":"A","teamTwoName":"B","totalOvers":5,"wideRule":"run","noBallRule":"run"}`
	for name, raw := range map[string]string{
		"not json":        `{"config":`,
		"empty object":    `{}`,
		"bad status":      `{` + valid + `,"currentInnings":1,"status":"paused","inningsOne":{}}`,
		"bad innings":     `{` + valid + `,"currentInnings":3,"status":"live","inningsOne":{}}`,
		"missing second":  `{` + valid + `,"currentInnings":2,"status":"live","inningsOne":{}}`,
		"too many wicket": `{` + valid + `,"currentInnings":1,"status":"live","inningsOne":{"wickets":11}}`,
		"negative balls":  `{` + valid + `,"currentInnings":1,"status":"live","inningsOne":{"ballsBowled":-1}}`,
		"overs exceeded":  `{` + valid + `,"currentInnings":1,"status":"live","inningsOne":{"ballsBowled":31}}`,
		"negative wides":  `{` + valid + `,"currentInnings":1,"status":"live","inningsOne":{"extras":{"wides":-4}}}`,
		"negative nb":     `{` + valid + `,"currentInnings":1,"status":"live","inningsOne":{"extras":{"noBalls":-1}}}`,
		"second overs":    `{` + valid + `,"currentInnings":2,"status":"live","inningsOne":{},"inningsTwo":{"ballsBowled":99}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(raw))
			require.ErrorIs(t, err, ErrCorruptSnapshot)
		})
	}
}

func TestDecode_FullInningsLoads(t *testing.T) {
	t.Parallel()

	raw := `{"config":{"teamOneName":"A","teamTwoName":"B","totalOvers":1,"wideRule":"run","noBallRule":"run"},` +
		`"currentInnings":1,"status":"live","inningsOne":{"ballsBowled":6,"extras":{"wides":2}}}`
	m, err := Decode([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, 6, m.InningsOne.BallsBowled)
	assert.True(t, m.Locked())
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	m := playedMatch(t)
	require.NoError(t, s.Save(ctx, m))

	// The store keeps its own copy.
	m.InningsOne.History[0] = "6"
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "4", got.InningsOne.History[0])

	require.NoError(t, s.Clear(ctx))
	_, err = s.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)
}
