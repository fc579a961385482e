// Package config reads the engine settings from a YAML file and builds a
// ready to use search engine from them.
package config

import (
	"errors"
	"fmt"
	"minimax/chess"
	"minimax/experiments"
	"minimax/game"
	"minimax/meta"
	"minimax/predictor"
	"minimax/searcher"
	"os"
	"strings"
	"time"

	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"
)

const (
	Unordered       = "unordered"
	Priority        = "priority"
	Lookahead       = "lookahead"
	LookaheadVector = "lookahead-vector"
)

type Config struct {
	Side       string             `yaml:"side"`
	Depth      int                `yaml:"depth"`
	Limit      int                `yaml:"limit"`
	Evaluation string             `yaml:"evaluation"`
	Ordering   string             `yaml:"ordering"`
	Verbose    bool               `yaml:"verbose"`
	ClaimDraw  bool               `yaml:"claim_draw"`
	Seed       uint64             `yaml:"seed"` // 0 seeds from the clock
	Jitter     float64            `yaml:"jitter"`
	EndScores  game.EndScores     `yaml:"end_scores"`
	Weights    map[string]float64 `yaml:"weights"`
	Openings   []string           `yaml:"openings"`
	Predictor  *predictor.Linear  `yaml:"predictor"`
	Dataset    string             `yaml:"dataset"`
	MaxMoves   int                `yaml:"max_moves"`
}

// Setup is a configured engine. Sink is nil unless a dataset is configured
// and must be closed by the caller.
type Setup struct {
	Engine *searcher.Minimax
	Sink   *experiments.Writer
}

func Default() Config {
	return Config{
		Side:       "white",
		Depth:      meta.DEPTH,
		Limit:      meta.LIMIT,
		Evaluation: "material",
		Ordering:   Priority,
		ClaimDraw:  true,
		Jitter:     meta.JITTER,
		EndScores:  game.DefaultEndScores,
		Openings:   chess.Openings,
		MaxMoves:   meta.MAX_MOVES,
	}
}

// Parse reads a YAML document on top of the defaults.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("failed to read config '%s': %w", path, err)
	}
	return Parse(data)
}

func ParseSide(name string) (game.Side, error) {
	switch strings.ToLower(name) {
	case "white", "first":
		return game.First, nil
	case "black", "second":
		return game.Second, nil
	}
	return 0, fmt.Errorf("unknown side %q", name)
}

func (c Config) Validate() error {
	var errs []error
	if _, err := ParseSide(c.Side); err != nil {
		errs = append(errs, err)
	}
	if c.Depth <= 0 {
		errs = append(errs, fmt.Errorf("depth must be positive, got %d", c.Depth))
	}
	if c.Limit < game.Unlimited {
		errs = append(errs, fmt.Errorf("limit must be %d or more, got %d", game.Unlimited, c.Limit))
	}
	if c.MaxMoves <= 0 {
		errs = append(errs, fmt.Errorf("max_moves must be positive, got %d", c.MaxMoves))
	}
	switch c.Ordering {
	case Unordered, Priority, Lookahead, LookaheadVector:
	default:
		errs = append(errs, fmt.Errorf("unknown ordering %q", c.Ordering))
	}

	evaluator, err := c.evaluator()
	if err != nil {
		errs = append(errs, err)
	} else if bound, err := c.heuristicBound(evaluator); err != nil {
		errs = append(errs, err)
	} else if err := c.EndScores.Validate(bound); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Build validates the configuration and assembles the engine. It opens the
// dataset file when one is configured.
func (c Config) Build() (*Setup, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	side, _ := ParseSide(c.Side)
	evaluator, _ := c.evaluator()
	evaluator.SetRand(c.rand(1))

	evaluate := game.Evaluate(evaluator.Evaluate)
	if c.Predictor != nil {
		var err error
		if c.Predictor.Arity() == 1 {
			evaluate, err = predictor.Scalar(evaluator.Evaluate, c.Predictor)
		} else {
			evaluate, err = predictor.Vector(evaluator.Components, chess.NumComponents, c.Predictor)
		}
		if err != nil {
			return nil, err
		}
	}

	var orderer game.Orderer
	switch c.Ordering {
	case Unordered:
		orderer = game.Unordered{}
	case Priority:
		orderer = chess.PriorityOrderer{ClaimDraw: c.ClaimDraw}
	case Lookahead:
		orderer = game.Lookahead{End: c.EndScores, Evaluate: evaluate, ClaimDraw: c.ClaimDraw}
	case LookaheadVector:
		orderer = game.Lookahead{End: c.EndScores, Components: evaluator.Components, Arity: chess.NumComponents, ClaimDraw: c.ClaimDraw}
	}

	options := []searcher.Option{
		searcher.WithDepth(c.Depth),
		searcher.WithLimit(c.Limit),
		searcher.WithEvaluationFn(evaluate),
		searcher.WithOrderer(orderer),
		searcher.WithEndScores(c.EndScores),
		searcher.WithClaimDraw(c.ClaimDraw),
		searcher.WithOpenings(c.Openings),
		searcher.WithRand(c.rand(2)),
		searcher.WithMetrics(),
	}
	if c.Verbose {
		options = append(options, searcher.WithVerbose())
	}

	setup := &Setup{}
	if c.Dataset != "" {
		sink, err := experiments.Open(c.Dataset)
		if err != nil {
			return nil, err
		}
		setup.Sink = sink
		options = append(options, searcher.WithObserver(sink))
	}
	setup.Engine = searcher.NewMinimax(side, options...)
	return setup, nil
}

// heuristicBound is the largest absolute leaf score: the evaluator's bound,
// or the predictor's output bound over the evaluator's inputs.
func (c Config) heuristicBound(evaluator *chess.Evaluator) (float64, error) {
	if c.Predictor == nil {
		return evaluator.Bound(), nil
	}
	switch c.Predictor.Arity() {
	case 1:
		return c.Predictor.Bound([]float64{evaluator.Bound()}), nil
	case chess.NumComponents:
		return c.Predictor.Bound(evaluator.ComponentBounds()), nil
	}
	return 0, fmt.Errorf("predictor takes 1 or %d inputs, got %d", chess.NumComponents, c.Predictor.Arity())
}

func (c Config) evaluator() (*chess.Evaluator, error) {
	policy, err := chess.ParsePolicy(c.Evaluation)
	if err != nil {
		return nil, err
	}
	weights, err := chess.ParseWeights(c.Weights)
	if err != nil {
		return nil, err
	}
	if c.Jitter < 0 {
		return nil, fmt.Errorf("jitter must not be negative, got %v", c.Jitter)
	}
	evaluator := chess.NewEvaluator(policy, nil)
	evaluator.Weights = weights
	evaluator.Jitter = c.Jitter
	return evaluator, nil
}

// rand derives an independent source per consumer from the configured seed.
func (c Config) rand(stream uint64) *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed + stream))
}
