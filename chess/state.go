package chess

import (
	"fmt"
	"minimax/game"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

// Openings is the first-ply book for white.
var Openings = []string{"e2e4", "d2d4", "c2c4", "g1f3"}

// Move is a chess move in coordinate form. It is a comparable value, unlike
// the library's *chess.Move.
type Move struct {
	From  chess.Square
	To    chess.Square
	Promo chess.PieceType
}

func newMove(m *chess.Move) Move {
	return Move{From: m.S1(), To: m.S2(), Promo: m.Promo()}
}

// String renders the move in UCI notation, e.g. e2e4 or e7e8q.
func (m Move) String() string {
	return m.From.String() + m.To.String() + m.Promo.String()
}

// State is an immutable chess position together with its move history.
type State struct {
	game *chess.Game
	base int // plies played before the first position of game
}

// NewState returns the standard starting position.
func NewState() *State {
	return &State{game: chess.NewGame()}
}

// FromFEN returns a state starting from the given position with no history.
// Its ply is derived from the fullmove counter and the side to move, so a
// mid-game position does not count as the opening.
func FromFEN(fen string) (*State, error) {
	option, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FEN %q: %w", fen, err)
	}
	g := chess.NewGame(option)
	return &State{game: g, base: basePly(fen, g.Position().Turn())}, nil
}

// basePly counts the plies before a FEN position. A missing or malformed
// fullmove field counts as move 1.
func basePly(fen string, turn chess.Color) int {
	fullmove := 1
	if fields := strings.Fields(fen); len(fields) >= 6 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n > 1 {
			fullmove = n
		}
	}
	ply := 2 * (fullmove - 1)
	if turn == chess.Black {
		ply++
	}
	return ply
}

func mustState(s game.State) *State {
	st, ok := s.(*State)
	if !ok {
		panic("unexpected state type")
	}
	return st
}

// Position exposes the current library position (read only).
func (s *State) Position() *chess.Position {
	return s.game.Position()
}

// String returns the FEN of the current position.
func (s *State) String() string {
	return s.game.Position().String()
}

func (s *State) SideToMove() game.Side {
	return side(s.game.Position().Turn())
}

func (s *State) Ply() int {
	return s.base + len(s.game.Moves())
}

func (s *State) LegalMoves() []game.Move {
	valid := s.game.ValidMoves()
	moves := make([]game.Move, len(valid))
	for i, m := range valid {
		moves[i] = newMove(m)
	}
	return moves
}

// Play returns the state after move. The receiver is left untouched.
func (s *State) Play(move game.Move) game.State {
	m, ok := move.(Move)
	if !ok {
		panic("unexpected move type")
	}
	next := s.game.Clone()
	for _, valid := range next.ValidMoves() {
		if newMove(valid) == m {
			if err := next.Move(valid); err != nil {
				panic(fmt.Sprintf("failed to play %s: %v", m, err))
			}
			return &State{game: next, base: s.base}
		}
	}
	panic(fmt.Sprintf("illegal move %s in %s", m, s))
}

// ParseMove finds the legal move with the given UCI string.
func (s *State) ParseMove(uci string) (Move, error) {
	for _, m := range s.game.ValidMoves() {
		if move := newMove(m); move.String() == uci {
			return move, nil
		}
	}
	return Move{}, fmt.Errorf("illegal move %q in %s", uci, s)
}

func (s *State) IsTerminal(claimDraw bool) bool {
	if s.game.Outcome() != chess.NoOutcome {
		return true
	}
	return claimDraw && s.canClaimDraw()
}

// IsWin reports whether perspective has checkmated the opponent.
func (s *State) IsWin(perspective game.Side) bool {
	if s.game.Method() != chess.Checkmate {
		return false
	}
	switch s.game.Outcome() {
	case chess.WhiteWon:
		return perspective == game.First
	case chess.BlackWon:
		return perspective == game.Second
	}
	return false
}

// IsTie covers stalemate, fivefold repetition, the seventy-five move rule and
// insufficient material, plus threefold repetition and the fifty move rule
// when draws may be claimed.
func (s *State) IsTie(claimDraw bool) bool {
	if s.game.Outcome() == chess.Draw {
		return true
	}
	return claimDraw && s.canClaimDraw()
}

func (s *State) canClaimDraw() bool {
	for _, method := range s.game.EligibleDraws() {
		if method == chess.ThreefoldRepetition || method == chess.FiftyMoveRule {
			return true
		}
	}
	return false
}

func side(c chess.Color) game.Side {
	if c == chess.Black {
		return game.Second
	}
	return game.First
}

func color(s game.Side) chess.Color {
	if s == game.Second {
		return chess.Black
	}
	return chess.White
}
