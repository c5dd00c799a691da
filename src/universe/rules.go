package universe

//nextValue applies the life rules to the cell with the given count of live neighbours
//2 neighbours keep the state, 3 neighbours keep a live cell or give birth, anything else is death
func nextValue(neighbours int, cell uint8) uint8 {
	switch neighbours {
	case 2:
		if cell != CellDead {
			return CellSurvived
		}
		return CellDead
	case 3:
		if cell != CellDead {
			return CellSurvived
		}
		return CellBorn
	default:
		return CellDead
	}
}
