package xiangqi

// LegalTargets 返回 from 上的子在当前局面下所有可走的落点（行优先）。
// 逐格调用 IsLegal，规则只有一份实现。
func LegalTargets(b Board, from Coord, turn Color) []Coord {
	pc, ok := b.At(from)
	if !ok || pc.Color != turn {
		return nil
	}
	var out []Coord
	for y := 0; y < Ranks; y++ {
		for x := 0; x < Files; x++ {
			to := Coord{X: x, Y: y}
			if IsLegal(b, from, to, turn) {
				out = append(out, to)
			}
		}
	}
	return out
}

// LegalMoves 生成 turn 一方的全部合法走法
func LegalMoves(b Board, turn Color) []Move {
	var moves []Move
	for _, from := range b.Coords() {
		if b[from].Color != turn {
			continue
		}
		for _, to := range LegalTargets(b, from, turn) {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}
