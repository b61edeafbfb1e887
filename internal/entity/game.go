package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/neelrr1/TicTacToeMinimax/internal/apperror"
)

// Cell is the content of one square of the board.
type Cell uint8

const (
	EmptyCell Cell = iota
	PlayerX
	PlayerO
)

const BoardSize = 9

var (
	ErrInvalidBoard = errors.New("invalid board")

	// WinCombos lists the winning triples: rows, then columns, then diagonals.
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

func (that Cell) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return "_"
	}
}

// Opposite returns the other player's piece.
func Opposite(piece Cell) Cell {
	if piece == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Outcome is the result of a winner check. The zero value means no winner.
type Outcome struct {
	piece Cell
}

var NoWinner = Outcome{}

// Winner returns the winning piece and whether there is one.
func (that Outcome) Winner() (Cell, bool) {
	return that.piece, that.piece != EmptyCell
}

func (that Outcome) HasWinner() bool {
	return that.piece != EmptyCell
}

// GameState is a 3x3 board plus the player to move. It is a plain value:
// copying it copies the whole position. The zero value is the empty board
// with X to move.
type GameState struct {
	board   [BoardSize]Cell
	oToMove bool
}

// NewGameState returns the empty board with X to move.
func NewGameState() GameState {
	return GameState{}
}

// ParseGameState reads nine cell symbols (X, O and one of _ . - for empty).
// Whitespace and '/' separators are ignored. The player to move is derived
// from the piece counts. Boards that legal play cannot reach are rejected.
func ParseGameState(text string) (GameState, error) {
	var state GameState

	n := 0
	for _, r := range text {
		var cell Cell
		switch r {
		case ' ', '\t', '\n', '\r', '/':
			continue
		case 'X', 'x':
			cell = PlayerX
		case 'O', 'o':
			cell = PlayerO
		case '_', '.', '-':
			cell = EmptyCell
		default:
			return GameState{}, fmt.Errorf("%w: unexpected symbol %q", ErrInvalidBoard, r)
		}

		if n == BoardSize {
			return GameState{}, fmt.Errorf("%w: more than %d cells", ErrInvalidBoard, BoardSize)
		}
		state.board[n] = cell
		n++
	}

	if n != BoardSize {
		return GameState{}, fmt.Errorf("%w: got %d cells, want %d", ErrInvalidBoard, n, BoardSize)
	}

	switch state.count(PlayerX) - state.count(PlayerO) {
	case 0:
	case 1:
		state.oToMove = true
	default:
		return GameState{}, fmt.Errorf("%w: X and O counts are out of balance", ErrInvalidBoard)
	}

	if err := state.checkReachable(); err != nil {
		return GameState{}, err
	}

	return state, nil
}

// checkReachable rejects boards where both sides have a line or where the
// winner is not the side that moved last.
func (that GameState) checkReachable() error {
	xWon, oWon := that.hasLine(PlayerX), that.hasLine(PlayerO)

	var winner Cell
	switch {
	case xWon && oWon:
		return fmt.Errorf("%w: both X and O have a line", ErrInvalidBoard)
	case xWon:
		winner = PlayerX
	case oWon:
		winner = PlayerO
	default:
		return nil
	}

	if lastMover := Opposite(that.Turn()); winner != lastMover {
		return fmt.Errorf("%w: %s won but %s moved last", ErrInvalidBoard, winner, lastMover)
	}

	return nil
}

func (that GameState) Turn() Cell {
	if that.oToMove {
		return PlayerO
	}
	return PlayerX
}

func (that GameState) Square(index int) Cell {
	return that.board[index]
}

// Board returns a copy of the cells.
func (that GameState) Board() [BoardSize]Cell {
	return that.board
}

// Validate reports why index cannot be played in this state, or nil.
func (that GameState) Validate(index int) error {
	if that.IsOver() {
		return apperror.ErrGameFinished
	}

	if index < 0 || index >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, index)
	}

	if that.board[index] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, index)
	}

	return nil
}

// ApplyMove returns the state after the player to move takes index.
// Calling it with a move Validate rejects is a programming error and panics.
func (that GameState) ApplyMove(index int) GameState {
	if err := that.Validate(index); err != nil {
		panic(fmt.Errorf("apply move: %w", err))
	}

	that.board[index] = that.Turn()
	that.oToMove = !that.oToMove

	return that
}

// ValidMoves returns the empty cells in ascending order.
func (that GameState) ValidMoves() []int {
	moves := make([]int, 0, BoardSize)
	for i, cell := range that.board {
		if cell == EmptyCell {
			moves = append(moves, i)
		}
	}
	return moves
}

func (that GameState) IsValid(index int) bool {
	return index >= 0 && index < BoardSize && that.board[index] == EmptyCell
}

func (that GameState) IsFull() bool {
	for _, cell := range that.board {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

func (that GameState) Winner() Outcome {
	for _, combo := range WinCombos {
		a, b, c := that.board[combo[0]], that.board[combo[1]], that.board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Outcome{piece: a}
		}
	}
	return NoWinner
}

func (that GameState) HasWinner() bool {
	return that.Winner().HasWinner()
}

func (that GameState) IsOver() bool {
	return that.IsFull() || that.HasWinner()
}

// OutcomeString is "X Won!", "O Won!" or "Draw!". It is empty while the game
// is still running.
func (that GameState) OutcomeString() string {
	if piece, ok := that.Winner().Winner(); ok {
		return piece.String() + " Won!"
	}

	if that.IsFull() {
		return "Draw!"
	}

	return ""
}

// Key is the nine cell symbols in index order, e.g. "XX_OO____".
func (that GameState) Key() string {
	var sb strings.Builder
	sb.Grow(BoardSize)
	for _, cell := range that.board {
		sb.WriteString(cell.String())
	}
	return sb.String()
}

func (that GameState) String() string {
	var sb strings.Builder
	for i := 0; i < BoardSize; i += 3 {
		fmt.Fprintf(&sb, "%s %s %s\n", that.board[i], that.board[i+1], that.board[i+2])
	}
	return sb.String()
}

func (that GameState) hasLine(piece Cell) bool {
	for _, combo := range WinCombos {
		if that.board[combo[0]] == piece && that.board[combo[1]] == piece && that.board[combo[2]] == piece {
			return true
		}
	}
	return false
}

func (that GameState) count(piece Cell) int {
	n := 0
	for _, cell := range that.board {
		if cell == piece {
			n++
		}
	}
	return n
}
