package xiangqi

// 8 种“日”字：终点偏移 + 马腿偏移（长边方向紧邻的一格）
var horseLegMoves = [8]struct {
	Dx, Dy int // 终点
	Lx, Ly int // 马腿
}{
	{-1, -2, 0, -1},
	{+1, -2, 0, -1},
	{-2, -1, -1, 0},
	{+2, -1, +1, 0},
	{-2, +1, -1, 0},
	{+2, +1, +1, 0},
	{-1, +2, 0, +1},
	{+1, +2, 0, +1},
}

func legalHorse(b Board, from, to Coord) bool {
	dx, dy := to.X-from.X, to.Y-from.Y
	for _, m := range horseLegMoves {
		if m.Dx != dx || m.Dy != dy {
			continue
		}
		leg := Coord{X: from.X + m.Lx, Y: from.Y + m.Ly}
		return !b.occupied(leg) // 憋马腿
	}
	return false
}
