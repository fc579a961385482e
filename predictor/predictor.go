// Package predictor plugs an offline-trained model into evaluation as a
// second stage: heuristic scalar or vector in, refined score out.
package predictor

import (
	"fmt"
	"math"
	"minimax/game"
)

type Predictor interface {
	// Arity is the input length the model was trained on
	Arity() int
	Predict(x []float64) float64
}

// Linear is a linear model: w·x + b.
type Linear struct {
	Weights []float64 `yaml:"weights"`
	Bias    float64   `yaml:"bias"`
}

func (l Linear) Arity() int {
	return len(l.Weights)
}

func (l Linear) Predict(x []float64) float64 {
	if len(x) != len(l.Weights) {
		panic(fmt.Sprintf("predictor expects %d inputs, got %d", len(l.Weights), len(x)))
	}
	y := l.Bias
	for i, w := range l.Weights {
		y += w * x[i]
	}
	return y
}

// Bound is the largest absolute output for inputs bounded in absolute value
// by bounds, one per weight.
func (l Linear) Bound(bounds []float64) float64 {
	if len(bounds) != len(l.Weights) {
		panic(fmt.Sprintf("predictor expects %d input bounds, got %d", len(l.Weights), len(bounds)))
	}
	bound := math.Abs(l.Bias)
	for i, w := range l.Weights {
		bound += math.Abs(w) * math.Abs(bounds[i])
	}
	return bound
}

// Check fails when p cannot take inputs of the given arity.
func Check(p Predictor, arity int) error {
	if p == nil {
		return fmt.Errorf("predictor is not configured")
	}
	if p.Arity() != arity {
		return fmt.Errorf("predictor expects %d inputs, evaluator produces %d", p.Arity(), arity)
	}
	return nil
}

// Scalar feeds a single heuristic score to p.
func Scalar(evaluate game.Evaluate, p Predictor) (game.Evaluate, error) {
	if err := Check(p, 1); err != nil {
		return nil, err
	}
	return func(state game.State, perspective game.Side) float64 {
		return p.Predict([]float64{evaluate(state, perspective)})
	}, nil
}

// Vector feeds a heuristic vector of the given arity to p.
func Vector(components game.Components, arity int, p Predictor) (game.Evaluate, error) {
	if err := Check(p, arity); err != nil {
		return nil, err
	}
	return func(state game.State, perspective game.Side) float64 {
		return p.Predict(components(state, perspective))
	}, nil
}
