package searcher

import (
	"fmt"
	"math"
	"minimax/game"

	"golang.org/x/exp/rand"
)

type mockMove struct {
	id int
}

func (m mockMove) String() string {
	return fmt.Sprintf("m%d", m.id)
}

// mockNode is a hand-built game tree. Heuristic scores are from game.First's
// point of view.
type mockNode struct {
	score    float64
	winner   *game.Side
	tie      bool
	opening  bool // reports ply 0
	children []*mockNode
}

type mockState struct {
	node *mockNode
	side game.Side
	ply  int
}

func newMockState(node *mockNode) mockState {
	return mockState{node: node, side: game.First, ply: 1}
}

func (m mockState) SideToMove() game.Side {
	return m.side
}

func (m mockState) Ply() int {
	if m.node.opening {
		return 0
	}
	return m.ply
}

func (m mockState) LegalMoves() []game.Move {
	moves := make([]game.Move, len(m.node.children))
	for i := range m.node.children {
		moves[i] = mockMove{id: i}
	}
	return moves
}

func (m mockState) Play(move game.Move) game.State {
	child := m.node.children[move.(mockMove).id]
	return mockState{node: child, side: m.side.Other(), ply: m.ply + 1}
}

func (m mockState) IsTerminal(claimDraw bool) bool {
	return m.node.winner != nil || m.node.tie
}

func (m mockState) IsWin(perspective game.Side) bool {
	return m.node.winner != nil && *m.node.winner == perspective
}

func (m mockState) IsTie(claimDraw bool) bool {
	return m.node.tie
}

func mockEvaluate(state game.State, perspective game.Side) float64 {
	score := state.(mockState).node.score
	if perspective == game.Second {
		return -score
	}
	return score
}

func leaf(score float64) *mockNode {
	return &mockNode{score: score}
}

func win(side game.Side) *mockNode {
	return &mockNode{winner: &side}
}

func tie() *mockNode {
	return &mockNode{tie: true}
}

func node(children ...*mockNode) *mockNode {
	return &mockNode{children: children}
}

// randomTree builds a tree of the given height with small integer scores so
// that equal scores are frequent. Finished games appear below the root.
func randomTree(rng *rand.Rand, height int, root bool) *mockNode {
	if height == 0 {
		return leaf(float64(rng.Intn(7) - 3))
	}
	if !root {
		switch rng.Intn(10) {
		case 0:
			return win(game.First)
		case 1:
			return win(game.Second)
		case 2:
			return tie()
		}
	}
	children := make([]*mockNode, 1+rng.Intn(3))
	for i := range children {
		children[i] = randomTree(rng, height-1, false)
	}
	return node(children...)
}

// plainMinimax is minimax without pruning or ordering.
func plainMinimax(state game.State, maximizing game.Side, depth int) float64 {
	if depth == 0 || state.IsTerminal(false) {
		return game.Score(state, maximizing, game.DefaultEndScores, mockEvaluate, false)
	}
	maximize := state.SideToMove() == maximizing
	best := math.Inf(1)
	if maximize {
		best = math.Inf(-1)
	}
	for _, move := range state.LegalMoves() {
		score := plainMinimax(state.Play(move), maximizing, depth-1)
		if maximize {
			best = math.Max(best, score)
		} else {
			best = math.Min(best, score)
		}
	}
	return best
}

// tttState is tic-tac-toe; game.First plays crosses.
type tttState struct {
	board [9]int8 // 0 empty, 1 first, 2 second
	side  game.Side
	ply   int
}

type tttMove int

func (m tttMove) String() string {
	return fmt.Sprintf("c%d", int(m))
}

var tttLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

func (s tttState) SideToMove() game.Side {
	return s.side
}

func (s tttState) Ply() int {
	return s.ply
}

func (s tttState) LegalMoves() []game.Move {
	if s.winner() != 0 {
		return nil
	}
	var moves []game.Move
	for i, cell := range s.board {
		if cell == 0 {
			moves = append(moves, tttMove(i))
		}
	}
	return moves
}

func (s tttState) Play(move game.Move) game.State {
	next := s
	next.board[move.(tttMove)] = int8(s.side) + 1
	next.side = s.side.Other()
	next.ply++
	return next
}

func (s tttState) winner() int8 {
	for _, line := range tttLines {
		a := s.board[line[0]]
		if a != 0 && a == s.board[line[1]] && a == s.board[line[2]] {
			return a
		}
	}
	return 0
}

func (s tttState) full() bool {
	for _, cell := range s.board {
		if cell == 0 {
			return false
		}
	}
	return true
}

func (s tttState) IsTerminal(claimDraw bool) bool {
	return s.winner() != 0 || s.full()
}

func (s tttState) IsWin(perspective game.Side) bool {
	return s.winner() == int8(perspective)+1
}

func (s tttState) IsTie(claimDraw bool) bool {
	return s.winner() == 0 && s.full()
}

func tttEvaluate(state game.State, perspective game.Side) float64 {
	return 0
}
