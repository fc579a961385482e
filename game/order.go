package game

import (
	"cmp"

	"golang.org/x/exp/slices"
)

// Unlimited disables truncation of ordered move lists.
const Unlimited = -1

// Candidate pairs a legal move with the signal it was ranked by: a piece
// priority, a heuristic score, or a heuristic vector.
type Candidate struct {
	Move   Move
	Signal []float64
}

// Rank is the sum of the signal components.
func (c Candidate) Rank() float64 {
	sum := 0.0
	for _, v := range c.Signal {
		sum += v
	}
	return sum
}

// Orderer produces the moves to explore from a non-terminal state, best first.
type Orderer interface {
	Order(state State, perspective Side, limit int) []Candidate
}

// Sort ranks candidates in descending order and keeps at most limit of them.
// The sort is stable so equally ranked moves keep their generation order.
func Sort(candidates []Candidate, limit int) []Candidate {
	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		return cmp.Compare(b.Rank(), a.Rank())
	})
	if limit >= 0 && limit < len(candidates) {
		candidates = candidates[:limit]
	}
	return candidates
}

// Unordered returns every legal move in generation order, with no signal.
type Unordered struct{}

func (Unordered) Order(state State, perspective Side, limit int) []Candidate {
	moves := state.LegalMoves()
	if limit >= 0 && limit < len(moves) {
		moves = moves[:limit]
	}
	candidates := make([]Candidate, len(moves))
	for i, move := range moves {
		candidates[i] = Candidate{Move: move}
	}
	return candidates
}

// Lookahead ranks every move by scoring the position it leads to. Exactly one
// of Evaluate and Components is used; Components takes precedence. Arity is
// the length of a Components vector.
type Lookahead struct {
	End        EndScores
	Evaluate   Evaluate
	Components Components
	Arity      int
	ClaimDraw  bool
}

func (l Lookahead) Order(state State, perspective Side, limit int) []Candidate {
	if state.IsTerminal(l.ClaimDraw) {
		panic("cannot order moves of a terminal state")
	}

	moves := state.LegalMoves()
	candidates := make([]Candidate, len(moves))
	for i, move := range moves {
		candidates[i] = Candidate{Move: move, Signal: l.signal(state.Play(move), perspective)}
	}
	return Sort(candidates, limit)
}

// signal of a finished game is its end score and is built without evaluating
// the child. A vector signal keeps its arity with the end score in slot 0.
func (l Lookahead) signal(child State, perspective Side) []float64 {
	if child.IsTerminal(l.ClaimDraw) {
		if score, over := l.End.Outcome(child, perspective, l.ClaimDraw); over {
			if l.Components == nil {
				return []float64{score}
			}
			signal := make([]float64, max(l.Arity, 1))
			signal[0] = score
			return signal
		}
	}
	if l.Components != nil {
		return l.Components(child, perspective)
	}
	return []float64{l.Evaluate(child, perspective)}
}
