package game

import "fmt"

// Side identifies one of the two players.
type Side int8

const (
	First Side = iota
	Second
)

func (s Side) Other() Side {
	if s == First {
		return Second
	}
	return First
}

func (s Side) String() string {
	if s == First {
		return "first"
	}
	return "second"
}

// Move is a legal transition between two states. Concrete moves must be
// comparable with ==.
type Move interface {
	String() string
}

// State should be immutable - operations on State always return a new copy
type State interface {
	SideToMove() Side
	// Ply counts the moves already played in the whole game
	Ply() int
	LegalMoves() []Move
	Play(Move) State
	IsTerminal(claimDraw bool) bool
	IsWin(perspective Side) bool
	IsTie(claimDraw bool) bool
}

// Evaluate scores a non-terminal state from the perspective player's point of
// view. Opponent contributions are negative.
type Evaluate func(state State, perspective Side) float64

// Components scores a non-terminal state as a fixed-length heuristic vector.
type Components func(state State, perspective Side) []float64

// EndScores holds the sentinel scores of finished games.
type EndScores struct {
	Win  float64 `yaml:"win"`
	Lose float64 `yaml:"lose"`
	Tie  float64 `yaml:"tie"`
}

var DefaultEndScores = EndScores{Win: 100, Lose: -100, Tie: 0}

// Validate checks that Win dominates and Lose is dominated by every heuristic
// score within [-bound, bound].
func (e EndScores) Validate(bound float64) error {
	if !(e.Lose < e.Tie && e.Tie < e.Win) {
		return fmt.Errorf("end scores must satisfy lose < tie < win, got %+v", e)
	}
	if e.Win <= bound || e.Lose >= -bound {
		return fmt.Errorf("end scores %+v do not dominate heuristic bound %v", e, bound)
	}
	return nil
}

// Outcome returns the end score of a finished game from the perspective
// player's point of view. Ties are checked first.
func (e EndScores) Outcome(state State, perspective Side, claimDraw bool) (float64, bool) {
	switch {
	case state.IsTie(claimDraw):
		return e.Tie, true
	case state.IsWin(perspective):
		return e.Win, true
	case state.IsWin(perspective.Other()):
		return e.Lose, true
	}
	return 0, false
}

// Score returns the end score of a finished game, or the heuristic evaluation
// of an unfinished one.
func Score(state State, perspective Side, end EndScores, evaluate Evaluate, claimDraw bool) float64 {
	if score, over := end.Outcome(state, perspective, claimDraw); over {
		return score
	}
	return evaluate(state, perspective)
}
