package surface

// IsResource reports whether px is an ore or fluid resource.
func (px Pixel) IsResource() bool {
	switch px {
	case IronOre, CopperOre, Stone, Coal, UraniumOre, CrudeOil:
		return true
	}
	return false
}

// IsBuildable reports whether rail may be placed on px.
// Highlighter is a debug overlay on empty ground.
func (px Pixel) IsBuildable() bool { return px == Empty || px == Highlighter }

// String returns the pixel name.
func (px Pixel) String() string {
	switch px {
	case Empty:
		return "Empty"
	case IronOre:
		return "IronOre"
	case CopperOre:
		return "CopperOre"
	case Stone:
		return "Stone"
	case Coal:
		return "Coal"
	case UraniumOre:
		return "UraniumOre"
	case CrudeOil:
		return "CrudeOil"
	case Water:
		return "Water"
	case Rail:
		return "Rail"
	case EdgeWall:
		return "EdgeWall"
	case Highlighter:
		return "Highlighter"
	}
	return "Pixel(?)"
}
