package xiangqi

// 兵：未过河只能向前一格；过河后可向前或左右一格；永远不能后退。
func legalSoldier(pc Piece, from, to Coord) bool {
	dx, dy := to.X-from.X, to.Y-from.Y
	fwd := forward(pc.Color)

	if !crossedRiver(pc.Color, from.Y) {
		return dx == 0 && dy == fwd
	}

	if dx == 0 && dy == fwd {
		return true
	}
	return dy == 0 && abs(dx) == 1
}
