package engine

import "minimax/game"

type Engine interface {
	// Run plays a game till it is over or a max number of moves is reached
	Run() (Outcome, error)
}

// Outcome of a finished or abandoned game. Winner is nil for a tie or when
// the move limit stopped the game.
type Outcome struct {
	Winner  *game.Side
	Tie     bool
	Moves   []string
	Final   game.State
	Stopped bool // move limit reached
}
