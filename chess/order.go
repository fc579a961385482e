package chess

import (
	"minimax/game"

	"github.com/notnil/chess"
)

// priority of capturing or promoting to each piece kind
var priority = map[chess.PieceType]float64{
	chess.Pawn:   1,
	chess.Knight: 2,
	chess.Bishop: 3,
	chess.Rook:   4,
	chess.Queen:  5,
	chess.King:   6,
}

// PriorityOrderer ranks moves by the kind of piece they capture, without
// looking at the resulting positions. Promotions add the priority of the new
// piece. Quiet moves keep their generation order behind the captures.
type PriorityOrderer struct {
	ClaimDraw bool
}

func (o PriorityOrderer) Order(s game.State, perspective game.Side, limit int) []game.Candidate {
	st := mustState(s)
	if st.IsTerminal(o.ClaimDraw) {
		panic("cannot order moves of a terminal state")
	}

	board := st.Position().Board()
	valid := st.game.ValidMoves()
	candidates := make([]game.Candidate, len(valid))
	for i, m := range valid {
		signal := priority[board.Piece(m.S2()).Type()]
		if m.HasTag(chess.EnPassant) {
			signal = priority[chess.Pawn]
		}
		signal += priority[m.Promo()]
		candidates[i] = game.Candidate{Move: newMove(m), Signal: []float64{signal}}
	}
	return game.Sort(candidates, limit)
}
