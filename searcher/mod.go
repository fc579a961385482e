package searcher

import (
	"errors"
	"minimax/experiments"
	"minimax/game"
)

var (
	ErrNotOurTurn = errors.New("not the engine's turn to move")
	ErrNoMove     = errors.New("search found no move")
)

type Searcher interface {
	ChooseMove(state game.State) (game.Move, error)
}

// Observer receives one (signal, score) row per explored candidate, for
// offline training. It must not influence the search.
type Observer interface {
	Observe(o experiments.Observation)
}

// Result of a search. A book move carries no score.
type Result struct {
	Score float64
	Move  game.Move
	Book  bool
}
