package chess

import (
	"fmt"
	"minimax/game"
	"strings"

	"github.com/notnil/chess"
	"golang.org/x/exp/rand"
)

type Policy int

const (
	Material Policy = iota
	CenterControl
	Position
	Mobility
	Composite
)

var policyNames = map[string]Policy{
	"material":  Material,
	"center":    CenterControl,
	"position":  Position,
	"mobility":  Mobility,
	"composite": Composite,
}

func ParsePolicy(name string) (Policy, error) {
	policy, ok := policyNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown evaluation policy %q", name)
	}
	return policy, nil
}

// Length of the heuristic vector returned by Components
const NumComponents = 4

// Weights maps piece kinds to material values.
type Weights map[chess.PieceType]float64

// DefaultWeights keeps the start position material at 42 per side.
var DefaultWeights = Weights{
	chess.Pawn:   1,
	chess.Knight: 5,
	chess.Bishop: 4,
	chess.Rook:   3,
	chess.Queen:  10,
	chess.King:   0,
}

var pieceNames = map[string]chess.PieceType{
	"pawn":   chess.Pawn,
	"knight": chess.Knight,
	"bishop": chess.Bishop,
	"rook":   chess.Rook,
	"queen":  chess.Queen,
	"king":   chess.King,
}

// ParseWeights overrides DefaultWeights with weights keyed by piece name.
func ParseWeights(named map[string]float64) (Weights, error) {
	weights := Weights{}
	for piece, weight := range DefaultWeights {
		weights[piece] = weight
	}
	for name, weight := range named {
		piece, ok := pieceNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown piece %q", name)
		}
		weights[piece] = weight
	}
	return weights, nil
}

var center = []chess.Square{chess.D4, chess.E4, chess.D5, chess.E5}

// Upper bound on the number of legal moves in a chess position
const maxMobility = 218

// Evaluator scores chess states with one of the scoring policies. Every
// policy starts from the material balance plus a random jitter in
// [0, Jitter) drawn once per evaluation.
type Evaluator struct {
	Policy         Policy
	Weights        Weights
	Jitter         float64
	CenterBonus    float64
	PawnAdvance    float64
	MinorCenter    float64
	MobilityWeight float64
	rng            *rand.Rand
}

func NewEvaluator(policy Policy, rng *rand.Rand) *Evaluator {
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}
	return &Evaluator{
		Policy:         policy,
		Weights:        DefaultWeights,
		Jitter:         1,
		CenterBonus:    0.5,
		PawnAdvance:    0.1,
		MinorCenter:    0.3,
		MobilityWeight: 0.05,
		rng:            rng,
	}
}

// SetRand replaces the source of the jitter.
func (e *Evaluator) SetRand(rng *rand.Rand) {
	if rng != nil {
		e.rng = rng
	}
}

// Evaluate is a game.Evaluate for the configured policy.
func (e *Evaluator) Evaluate(s game.State, perspective game.Side) float64 {
	pos := mustState(s).Position()
	c := color(perspective)

	score := e.calculateMaterialScore(pos, c) + e.jitter()
	switch e.Policy {
	case CenterControl:
		score += e.calculateCenterScore(pos, c)
	case Position:
		score += e.calculatePositionScore(pos, c)
	case Mobility:
		score += e.calculateMobilityScore(pos, c)
	case Composite:
		score += e.calculateMobilityScore(pos, c) + e.calculatePositionScore(pos, c) + e.calculateCenterScore(pos, c)
	}
	return score
}

// Components is a game.Components returning material, mobility, position and
// center control in that order. The jitter goes to the material slot.
func (e *Evaluator) Components(s game.State, perspective game.Side) []float64 {
	pos := mustState(s).Position()
	c := color(perspective)

	return []float64{
		e.calculateMaterialScore(pos, c) + e.jitter(),
		e.calculateMobilityScore(pos, c),
		e.calculatePositionScore(pos, c),
		e.calculateCenterScore(pos, c),
	}
}

// Bound is the largest absolute score the policy can produce from positions
// reachable without promotions. A promoted piece can push a score past it.
func (e *Evaluator) Bound() float64 {
	bounds := e.ComponentBounds()
	bound := bounds[0]
	switch e.Policy {
	case CenterControl:
		bound += bounds[3]
	case Position:
		bound += bounds[2]
	case Mobility:
		bound += bounds[1]
	case Composite:
		bound += bounds[1] + bounds[2] + bounds[3]
	}
	return bound
}

// ComponentBounds is the largest absolute value of each Components slot, with
// the same promotion caveat as Bound.
func (e *Evaluator) ComponentBounds() []float64 {
	counts := map[chess.PieceType]float64{
		chess.Pawn: 8, chess.Knight: 2, chess.Bishop: 2, chess.Rook: 2, chess.Queen: 1, chess.King: 1,
	}
	material := e.Jitter
	for piece, count := range counts {
		material += count * abs(e.Weights[piece])
	}

	return []float64{
		material,
		e.MobilityWeight * maxMobility,
		8*e.PawnAdvance + 4*e.MinorCenter,
		float64(len(center)) * e.CenterBonus,
	}
}

func (e *Evaluator) jitter() float64 {
	if e.Jitter <= 0 {
		return 0
	}
	return e.rng.Float64() * e.Jitter
}

func (e *Evaluator) calculateMaterialScore(pos *chess.Position, c chess.Color) float64 {
	score := 0.0
	for _, piece := range pos.Board().SquareMap() {
		weight := e.Weights[piece.Type()]
		if piece.Color() == c {
			score += weight
		} else {
			score -= weight
		}
	}
	return score
}

func (e *Evaluator) calculateMobilityScore(pos *chess.Position, c chess.Color) float64 {
	mine := len(movesFor(pos, c))
	theirs := len(movesFor(pos, c.Other()))
	return e.MobilityWeight * float64(mine-theirs)
}

func (e *Evaluator) calculatePositionScore(pos *chess.Position, c chess.Color) float64 {
	score := 0.0
	for sq, piece := range pos.Board().SquareMap() {
		bonus := 0.0
		switch piece.Type() {
		case chess.Pawn:
			bonus = e.PawnAdvance * float64(advancement(sq, piece.Color())) / 6
		case chess.Knight, chess.Bishop:
			if extendedCenter(sq) {
				bonus = e.MinorCenter
			}
		}
		if piece.Color() == c {
			score += bonus
		} else {
			score -= bonus
		}
	}
	return score
}

func (e *Evaluator) calculateCenterScore(pos *chess.Position, c chess.Color) float64 {
	mine := controlled(pos, c)
	theirs := controlled(pos, c.Other())
	return e.CenterBonus * float64(mine-theirs)
}

// controlled counts the central squares c occupies or can move to.
func controlled(pos *chess.Position, c chess.Color) int {
	reach := map[chess.Square]bool{}
	for _, m := range movesFor(pos, c) {
		reach[m.S2()] = true
	}
	count := 0
	board := pos.Board()
	for _, sq := range center {
		if board.Piece(sq).Color() == c || reach[sq] {
			count++
		}
	}
	return count
}

// movesFor returns the legal moves of c. For the side not to move they are
// generated on a snapshot with the turn swapped, so pos is never modified.
func movesFor(pos *chess.Position, c chess.Color) []*chess.Move {
	if pos.Turn() == c {
		return pos.ValidMoves()
	}
	snapshot, err := swapTurn(pos)
	if err != nil {
		panic(err)
	}
	return snapshot.ValidMoves()
}

func swapTurn(pos *chess.Position) (*chess.Position, error) {
	fields := strings.Fields(pos.String())
	if len(fields) < 4 {
		return nil, fmt.Errorf("malformed FEN %q", pos.String())
	}
	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	fields[3] = "-" // en passant belongs to the original side to move
	option, err := chess.FEN(strings.Join(fields, " "))
	if err != nil {
		return nil, fmt.Errorf("failed to swap turn: %w", err)
	}
	return chess.NewGame(option).Position(), nil
}

// advancement is the number of ranks a pawn has moved up from its start rank.
func advancement(sq chess.Square, c chess.Color) int {
	rank := int(sq.Rank())
	if c == chess.White {
		return rank - int(chess.Rank2)
	}
	return int(chess.Rank7) - rank
}

func extendedCenter(sq chess.Square) bool {
	file, rank := sq.File(), sq.Rank()
	return file >= chess.FileC && file <= chess.FileF && rank >= chess.Rank3 && rank <= chess.Rank6
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
