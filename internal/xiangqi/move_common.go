package xiangqi

// 将：九宫内上下左右一格（暂不处理“对将”规则）
func legalGeneral(pc Piece, from, to Coord) bool {
	dx, dy := abs(to.X-from.X), abs(to.Y-from.Y)
	if dx+dy != 1 {
		return false
	}
	return inPalace(pc.Color, to)
}

// 士：九宫内斜走一格
func legalAdvisor(pc Piece, from, to Coord) bool {
	if abs(to.X-from.X) != 1 || abs(to.Y-from.Y) != 1 {
		return false
	}
	return inPalace(pc.Color, to)
}

// 相：田字 + 不过河 + 塞象眼
func legalElephant(b Board, pc Piece, from, to Coord) bool {
	dx, dy := to.X-from.X, to.Y-from.Y
	if abs(dx) != 2 || abs(dy) != 2 {
		return false
	}
	if !onOwnSide(pc.Color, to.Y) {
		return false
	}
	eye := Coord{X: from.X + dx/2, Y: from.Y + dy/2}
	return !b.occupied(eye)
}

// 车：横竖走，中间不能有子
func legalChariot(b Board, from, to Coord) bool {
	if from.X != to.X && from.Y != to.Y {
		return false
	}
	return countBetween(b, from, to) == 0
}

// 炮：走子时中间无子；吃子时中间恰好一个炮架
func legalCannon(b Board, from, to Coord) bool {
	if from.X != to.X && from.Y != to.Y {
		return false
	}
	n := countBetween(b, from, to)
	if b.occupied(to) {
		return n == 1
	}
	return n == 0
}

// countBetween 统计 from 与 to 之间（不含两端）的棋子数，二者须在同一直线上。
func countBetween(b Board, from, to Coord) int {
	dx, dy := sign(to.X-from.X), sign(to.Y-from.Y)
	n := 0
	for c := (Coord{X: from.X + dx, Y: from.Y + dy}); c != to; c = (Coord{X: c.X + dx, Y: c.Y + dy}) {
		if b.occupied(c) {
			n++
		}
	}
	return n
}
