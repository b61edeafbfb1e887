package entity

// Evaluation is a solved position: the game-theoretic score (+1 X wins,
// -1 O wins, 0 draw) and the move that achieves it, -1 when the position is
// already terminal.
type Evaluation struct {
	Key   string `json:"key"`
	Score int    `json:"score"`
	Move  int    `json:"move"`
}
