package searcher

import (
	"fmt"
	"math"
	"minimax/experiments"
	"minimax/game"
	"minimax/meta"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

type Option func(m *Minimax)

// Minimax searches a fixed depth with alpha-beta pruning, maximizing the score
// of one side. An instance owns its random source and metrics and must not be
// shared between goroutines.
type Minimax struct {
	side      game.Side
	depth     int
	limit     int
	end       game.EndScores
	claimDraw bool
	evaluate  game.Evaluate
	orderer   game.Orderer
	openings  []string
	rng       *rand.Rand
	verbose   bool
	observer  Observer
	metrics   MetricsCollector
	logger    zerolog.Logger
	last      Result
	stats     SearchMetric
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		m.depth = depth
	}
}

// WithLimit keeps at most limit ranked candidates per node; game.Unlimited
// keeps all of them.
func WithLimit(limit int) Option {
	return func(m *Minimax) {
		m.limit = limit
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithOrderer(orderer game.Orderer) Option {
	return func(m *Minimax) {
		if orderer != nil {
			m.orderer = orderer
		}
	}
}

func WithEndScores(end game.EndScores) Option {
	return func(m *Minimax) {
		m.end = end
	}
}

func WithClaimDraw(claimDraw bool) Option {
	return func(m *Minimax) {
		m.claimDraw = claimDraw
	}
}

// WithOpenings sets the moves played instead of searching on the first ply of a game.
func WithOpenings(openings []string) Option {
	return func(m *Minimax) {
		m.openings = openings
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *Minimax) {
		if rng != nil {
			m.rng = rng
		}
	}
}

// WithVerbose logs one trace line per explored candidate.
func WithVerbose() Option {
	return func(m *Minimax) {
		m.verbose = true
	}
}

func WithObserver(observer Observer) Option {
	return func(m *Minimax) {
		m.observer = observer
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = NewMetricsCollector()
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Minimax) {
		m.logger = logger
	}
}

func NewMinimax(side game.Side, options ...Option) *Minimax {
	m := &Minimax{ // Default values
		side:    side,
		depth:   meta.DEPTH,
		limit:   meta.LIMIT,
		end:     game.DefaultEndScores,
		orderer: game.Unordered{},
		rng:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics: NewNoMetricsCollector(),
		logger:  log.Logger,
	}
	for _, option := range options {
		option(m)
	}
	if m.depth <= 0 {
		panic("Must specify a positive search depth")
	}
	if m.limit < game.Unlimited {
		panic("Must specify a non-negative candidate limit or game.Unlimited")
	}
	if m.evaluate == nil {
		panic("Must specify an evaluation function")
	}
	return m
}

func (m *Minimax) Side() game.Side {
	return m.side
}

// ChooseMove searches state to the configured depth and returns the move of
// the best line for the engine's side.
func (m *Minimax) ChooseMove(state game.State) (game.Move, error) {
	if turn := state.SideToMove(); turn != m.side {
		return nil, fmt.Errorf("%w: %s to move, engine plays %s", ErrNotOurTurn, turn, m.side)
	}

	m.metrics.Start()
	result := m.Search(state, m.side, m.depth, math.Inf(-1), math.Inf(1))
	m.stats = m.metrics.Complete()
	m.last = result

	if result.Move == nil {
		return nil, ErrNoMove
	}
	m.logger.Debug().
		Str("move", result.Move.String()).
		Float64("score", result.Score).
		Bool("book", result.Book).
		Int("nodes", m.stats.Nodes).
		Msg("move chosen")
	return result.Move, nil
}

// LastResult is the full result of the latest ChooseMove.
func (m *Minimax) LastResult() Result {
	return m.last
}

// Stats of the latest ChooseMove. Empty unless created WithMetrics.
func (m *Minimax) Stats() SearchMetric {
	return m.stats
}

// Search returns the minimax value of state for the maximizing side and the
// move leading to it. Scores are always from the maximizing side's
// perspective; the first ply of a game is answered from the opening book.
func (m *Minimax) Search(state game.State, maximizing game.Side, depth int, alpha, beta float64) Result {
	result, _ := m.search(state, maximizing, depth, alpha, beta, true)
	return result
}

// search also reports whether the returned score is exact. After a cutoff it
// is only a bound on the true value, and such a score never wins a tie.
func (m *Minimax) search(state game.State, maximizing game.Side, depth int, alpha, beta float64, root bool) (Result, bool) {
	m.metrics.AddNode()

	if depth == 0 || state.IsTerminal(m.claimDraw) {
		m.metrics.AddLeaf()
		return Result{Score: game.Score(state, maximizing, m.end, m.evaluate, m.claimDraw)}, true
	}

	if state.Ply() == 0 {
		if !root {
			panic("opening position reached below the search root")
		}
		if move, ok := m.openingMove(state); ok {
			m.metrics.UsedBook()
			return Result{Move: move, Book: true}, true
		}
	}

	turn := state.SideToMove()
	candidates := m.orderer.Order(state, turn, m.limit)
	maximize := turn == maximizing

	best := Result{Score: math.Inf(1)}
	if maximize {
		best.Score = math.Inf(-1)
	}
	if len(candidates) == 0 {
		m.logger.Warn().Int("depth", depth).Str("side", turn.String()).Msg("no legal moves in a non-terminal state")
		return best, false
	}

	exact := false
	for _, candidate := range candidates {
		child := state.Play(candidate.Move)
		result, childExact := m.search(child, maximizing, depth-1, alpha, beta, false)

		m.trace(child, len(candidates), depth, candidate, result.Score)

		if maximize {
			if result.Score > best.Score || (result.Score == best.Score && (childExact || !exact)) {
				best = Result{Score: result.Score, Move: candidate.Move}
				exact = childExact
			}
			alpha = math.Max(alpha, result.Score)
		} else {
			if result.Score < best.Score || (result.Score == best.Score && (childExact || !exact)) {
				best = Result{Score: result.Score, Move: candidate.Move}
				exact = childExact
			}
			beta = math.Min(beta, result.Score)
		}

		if beta <= alpha {
			m.metrics.AddCutoff()
			return best, false
		}
	}
	return best, exact
}

// openingMove picks a random book move that is legal in state.
func (m *Minimax) openingMove(state game.State) (game.Move, bool) {
	if len(m.openings) == 0 {
		return nil, false
	}
	legal := state.LegalMoves()
	names := make([]string, len(legal))
	for i, move := range legal {
		names[i] = move.String()
	}

	var book []game.Move
	for _, opening := range m.openings {
		if i := slices.Index(names, opening); i >= 0 {
			book = append(book, legal[i])
		}
	}
	if len(book) == 0 {
		return nil, false
	}
	return book[m.rng.Intn(len(book))], true
}

func (m *Minimax) trace(child game.State, candidates, depth int, candidate game.Candidate, score float64) {
	if m.verbose {
		m.logger.Info().
			Str("side", child.SideToMove().String()).
			Int("moves", candidates).
			Int("depth", depth).
			Floats64("signal", candidate.Signal).
			Str("move", candidate.Move.String()).
			Float64("score", score).
			Msg("candidate")
	}
	if m.observer != nil {
		m.observer.Observe(experiments.Observation{
			Signal: candidate.Signal,
			Score:  score,
			Depth:  depth,
			Move:   candidate.Move.String(),
		})
	}
}
