package xiangqi

// IsLegal 判断 turn 一方把 from 上的子走到 to 是否合法。
// 纯函数；人类走子和外部代理给出的走子都必须经过这里。
// 不处理“对将”（飞将）以及将军/将死，只有吃掉对方将帅才分胜负。
func IsLegal(b Board, from, to Coord, turn Color) bool {
	pc, ok := b.At(from)
	if !ok || pc.Color != turn {
		return false
	}
	if dst, ok := b.At(to); ok && dst.Color == turn {
		return false // 不能吃己方子
	}
	if !InBounds(to) || from == to {
		return false
	}

	switch pc.Type {
	case PieceGeneral:
		return legalGeneral(pc, from, to)
	case PieceAdvisor:
		return legalAdvisor(pc, from, to)
	case PieceElephant:
		return legalElephant(b, pc, from, to)
	case PieceHorse:
		return legalHorse(b, from, to)
	case PieceChariot:
		return legalChariot(b, from, to)
	case PieceCannon:
		return legalCannon(b, from, to)
	case PieceSoldier:
		return legalSoldier(pc, from, to)
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
