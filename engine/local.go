package engine

import (
	"fmt"
	"minimax/game"
	"minimax/meta"
	"minimax/player"

	"github.com/rs/zerolog/log"
)

// Local runs a single game between two in-process players. Players[0]
// plays game.First.
type Local struct {
	State     game.State
	Players   [2]player.Player
	MaxMoves  int
	ClaimDraw bool
}

func LocalEngine(state game.State, first, second player.Player) *Local {
	return &Local{
		State:     state,
		Players:   [2]player.Player{first, second},
		MaxMoves:  meta.MAX_MOVES,
		ClaimDraw: true,
	}
}

// Run executes the game loop until the game is over.
func (e *Local) Run() (Outcome, error) {
	var outcome Outcome

	log.Info().
		Str("first", e.Players[0].Name()).
		Str("second", e.Players[1].Name()).
		Msg("game started")

	state := e.State
	for !state.IsTerminal(e.ClaimDraw) {
		if len(outcome.Moves) >= e.MaxMoves {
			outcome.Stopped = true
			break
		}

		turn := state.SideToMove()
		current := e.Players[turn]
		move, err := current.FindMove(state)
		if err != nil {
			return outcome, fmt.Errorf("player %s failed to move: %w", current.Name(), err)
		}
		if !isLegal(state, move) {
			return outcome, fmt.Errorf("player %s returned illegal move %s", current.Name(), move)
		}

		state = state.Play(move)
		outcome.Moves = append(outcome.Moves, move.String())
		log.Info().
			Int("ply", len(outcome.Moves)).
			Str("player", current.Name()).
			Str("move", move.String()).
			Msg("move played")
	}

	outcome.Final = state
	e.State = state
	switch {
	case outcome.Stopped:
	case state.IsTie(e.ClaimDraw):
		outcome.Tie = true
	case state.IsWin(game.First):
		winner := game.First
		outcome.Winner = &winner
	case state.IsWin(game.Second):
		winner := game.Second
		outcome.Winner = &winner
	}

	log.Info().
		Int("moves", len(outcome.Moves)).
		Bool("tie", outcome.Tie).
		Bool("stopped", outcome.Stopped).
		Msg("game over")
	return outcome, nil
}

func isLegal(state game.State, move game.Move) bool {
	for _, legal := range state.LegalMoves() {
		if legal == move {
			return true
		}
	}
	return false
}
