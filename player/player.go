package player

import (
	"fmt"
	"minimax/experiments/metrics"
	"minimax/game"
	"minimax/searcher"

	"golang.org/x/exp/rand"
)

// Player picks a move for the side to move.
type Player interface {
	Name() string
	FindMove(state game.State) (game.Move, error)
}

// Random plays a uniformly random legal move.
type Random struct {
	side game.Side
	rng  *rand.Rand
}

func NewRandom(side game.Side, rng *rand.Rand) *Random {
	return &Random{side: side, rng: rng}
}

func (r *Random) Name() string {
	return "random"
}

func (r *Random) FindMove(state game.State) (game.Move, error) {
	if turn := state.SideToMove(); turn != r.side {
		return nil, fmt.Errorf("%w: %s to move, player plays %s", searcher.ErrNotOurTurn, turn, r.side)
	}
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, searcher.ErrNoMove
	}
	return moves[r.rng.Intn(len(moves))], nil
}

// Minimax adapts a search engine to the Player interface and keeps a record
// of every search it ran.
type Minimax struct {
	name    string
	engine  *searcher.Minimax
	records []metrics.MoveRecord
}

func NewMinimax(name string, engine *searcher.Minimax) *Minimax {
	return &Minimax{name: name, engine: engine}
}

func (m *Minimax) Name() string {
	return m.name
}

func (m *Minimax) FindMove(state game.State) (game.Move, error) {
	move, err := m.engine.ChooseMove(state)
	if err != nil {
		return nil, err
	}

	result, stats := m.engine.LastResult(), m.engine.Stats()
	m.records = append(m.records, metrics.MoveRecord{
		Ply:      state.Ply(),
		Player:   m.name,
		Move:     move.String(),
		Score:    result.Score,
		Book:     result.Book,
		Nodes:    stats.Nodes,
		Leaves:   stats.Leaves,
		Cutoffs:  stats.Cutoffs,
		Duration: stats.Duration,
	})
	return move, nil
}

func (m *Minimax) Engine() *searcher.Minimax {
	return m.engine
}

func (m *Minimax) Records() []metrics.MoveRecord {
	return m.records
}
