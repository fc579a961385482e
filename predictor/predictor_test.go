package predictor

import (
	"math"
	"minimax/game"
	"testing"

	"github.com/stretchr/testify/require"
)

/**
Tests the predictor stage
- linear: arity, w·x + b, wrong input length -> panic
- bound: |b| + Σ|w|·bound, negative weights and bias count by magnitude
- check, scalar, vector: arity mismatch -> error
*/

type mockState struct {
	game.State
	value float64
}

func evaluate(state game.State, perspective game.Side) float64 {
	return state.(mockState).value
}

func components(state game.State, perspective game.Side) []float64 {
	v := state.(mockState).value
	return []float64{v, 2 * v, 1, 0}
}

func TestLinear(t *testing.T) {
	l := Linear{Weights: []float64{1, -2}, Bias: 0.5}

	require.Equal(t, 2, l.Arity())
	require.Equal(t, 0.5+3-8, l.Predict([]float64{3, 4}))
	require.Panics(t, func() { l.Predict([]float64{1}) })
}

func TestLinearBound(t *testing.T) {
	t.Run("scalar", func(t *testing.T) {
		require.Equal(t, 430.0, Linear{Weights: []float64{10}}.Bound([]float64{43}))
		require.Equal(t, 90.0, Linear{Weights: []float64{-2}, Bias: -4}.Bound([]float64{43}))
	})

	t.Run("vector", func(t *testing.T) {
		l := Linear{Weights: []float64{1, -0.5, 2, 0}, Bias: 1}

		require.Equal(t, 1+43+0.5*10+2*2.0, l.Bound([]float64{43, 10, 2, 2}))
	})

	t.Run("bounds every output", func(t *testing.T) {
		l := Linear{Weights: []float64{3, -1}, Bias: 2}
		bound := l.Bound([]float64{5, 4})

		for _, x := range [][]float64{{5, -4}, {-5, 4}, {0, 0}, {5, 4}} {
			require.LessOrEqual(t, math.Abs(l.Predict(x)), bound)
		}
		require.Equal(t, bound, l.Predict([]float64{5, -4}), "The bound should be reached")
	})

	t.Run("wrong length", func(t *testing.T) {
		require.Panics(t, func() { Linear{Weights: []float64{1}}.Bound([]float64{1, 2}) })
	})
}

func TestCheck(t *testing.T) {
	require.NoError(t, Check(Linear{Weights: []float64{1}}, 1))
	require.Error(t, Check(Linear{Weights: []float64{1, 1}}, 1))
	require.Error(t, Check(nil, 1))
}

func TestScalar(t *testing.T) {
	refined, err := Scalar(evaluate, Linear{Weights: []float64{2}, Bias: 1})
	require.NoError(t, err)
	require.Equal(t, 7.0, refined(mockState{value: 3}, game.First))

	_, err = Scalar(evaluate, Linear{Weights: []float64{1, 1, 1, 1}})
	require.Error(t, err, "A vector model cannot take a scalar")
}

func TestVector(t *testing.T) {
	refined, err := Vector(components, 4, Linear{Weights: []float64{1, 1, 10, 100}})
	require.NoError(t, err)
	require.Equal(t, 3.0+6+10, refined(mockState{value: 3}, game.First))

	_, err = Vector(components, 4, Linear{Weights: []float64{1}})
	require.Error(t, err)
}
