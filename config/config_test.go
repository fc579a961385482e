package config

import (
	"minimax/chess"
	"minimax/game"
	"minimax/predictor"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

/**
Tests the configuration file
- defaults: valid, white, priority ordering, standard book
- parse: overrides on top of defaults, unknown names -> error
- validate: depth, limit, end scores dominating the heuristic or the
  predictor output, predictor arity
- build:
	- engine for the configured side, every ordering including unordered
	- predictor scores stay below a mate, the book stays out of mid-game FENs
	- dataset sink only when configured
*/

func TestDefault(t *testing.T) {
	c := Default()

	require.NoError(t, c.Validate())
	require.Equal(t, "white", c.Side)
	require.Equal(t, 3, c.Depth)
	require.Equal(t, game.Unlimited, c.Limit)
	require.Equal(t, Priority, c.Ordering)
	require.Equal(t, chess.Openings, c.Openings)
	require.Equal(t, game.DefaultEndScores, c.EndScores)
}

func TestParse(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		c, err := Parse([]byte(`
side: black
depth: 2
limit: 5
evaluation: composite
ordering: lookahead-vector
seed: 11
jitter: 0
end_scores:
  win: 1000
weights:
  queen: 9
predictor:
  weights: [1, 0.5, 0.5, 0.5]
  bias: 0
`))

		require.NoError(t, err)
		require.Equal(t, "black", c.Side)
		require.Equal(t, 2, c.Depth)
		require.Equal(t, 5, c.Limit)
		require.Equal(t, "composite", c.Evaluation)
		require.Equal(t, LookaheadVector, c.Ordering)
		require.Equal(t, uint64(11), c.Seed)
		require.Equal(t, 0.0, c.Jitter)
		require.Equal(t, game.EndScores{Win: 1000, Lose: -100, Tie: 0}, c.EndScores, "Unset end scores should keep their defaults")
		require.Equal(t, 9.0, c.Weights["queen"])
		require.Equal(t, 4, c.Predictor.Arity())
		require.True(t, c.ClaimDraw, "Unset fields should keep their defaults")
	})

	t.Run("unordered", func(t *testing.T) {
		c, err := Parse([]byte("ordering: unordered\n"))

		require.NoError(t, err)
		require.Equal(t, Unordered, c.Ordering)
	})

	t.Run("invalid", func(t *testing.T) {
		cases := map[string]string{
			"yaml":                   "depth: [",
			"side":                   "side: red",
			"depth":                  "depth: 0",
			"limit":                  "limit: -2",
			"evaluation":             "evaluation: neural",
			"ordering":               "ordering: alphabetical",
			"piece":                  "weights: {archbishop: 3}",
			"end scores":             "end_scores: {win: 40}",
			"predictor":              "predictor: {weights: [1, 2]}",
			"predictor scalar bound": "predictor: {weights: [10]}",
			"predictor vector bound": "predictor: {weights: [1, 10, 1, 1]}",
			"predictor bias":         "predictor: {weights: [1], bias: 60}",
			"jitter":                 "jitter: -1",
			"max moves":              "max_moves: 0",
		}
		for name, data := range cases {
			_, err := Parse([]byte(data))
			require.Error(t, err, name)
		}
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("depth: 4\nverbose: true\n"), 0644))

	c, err := Load(path)

	require.NoError(t, err)
	require.Equal(t, 4, c.Depth)
	require.True(t, c.Verbose)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestBuild(t *testing.T) {
	t.Run("engine", func(t *testing.T) {
		for _, ordering := range []string{Unordered, Priority, Lookahead, LookaheadVector} {
			c := Default()
			c.Side = "black"
			c.Depth = 1
			c.Ordering = ordering
			c.Seed = 5

			setup, err := c.Build()

			require.NoError(t, err, ordering)
			require.Nil(t, setup.Sink)
			require.Equal(t, game.Second, setup.Engine.Side())

			s := chess.NewState()
			first, err := s.ParseMove("e2e4")
			require.NoError(t, err)
			move, err := setup.Engine.ChooseMove(s.Play(first))
			require.NoError(t, err, ordering)
			require.NotNil(t, move)
		}
	})

	t.Run("predictor", func(t *testing.T) {
		for _, weights := range [][]float64{{2}, {1, 1, 1, 1}} {
			c := Default()
			c.Depth = 1
			c.Openings = nil
			c.Predictor = &predictor.Linear{Weights: weights}

			setup, err := c.Build()
			require.NoError(t, err)

			_, err = setup.Engine.ChooseMove(chess.NewState())
			require.NoError(t, err)
		}
	})

	t.Run("predictor keeps mate", func(t *testing.T) {
		// a1a8 mates; the book would answer e2e4 if the FEN counted as ply 0.
		s, err := chess.FromFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 30")
		require.NoError(t, err)
		c := Default()
		c.Depth = 1
		c.Seed = 7
		c.Predictor = &predictor.Linear{Weights: []float64{2}}

		setup, err := c.Build()
		require.NoError(t, err)

		move, err := setup.Engine.ChooseMove(s)
		require.NoError(t, err)
		require.Equal(t, "a1a8", move.String())
		require.Equal(t, 100.0, setup.Engine.LastResult().Score)
		require.False(t, setup.Engine.LastResult().Book)
	})

	t.Run("dataset", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "observations.csv")
		c := Default()
		c.Depth = 1
		c.Openings = nil
		c.Dataset = path

		setup, err := c.Build()
		require.NoError(t, err)
		require.NotNil(t, setup.Sink)

		_, err = setup.Engine.ChooseMove(chess.NewState())
		require.NoError(t, err)
		require.NoError(t, setup.Sink.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), "signal_0,score,depth,move\n")
	})

	t.Run("invalid", func(t *testing.T) {
		c := Default()
		c.Depth = -1

		_, err := c.Build()

		require.Error(t, err)
	})
}
