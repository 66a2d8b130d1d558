package scoring

// CalculateBHI blends the three sub-scores into the Building Health Index.
func CalculateBHI(financial, structural, people float64) float64 {
	bhi := financial*weightFinancial +
		structural*weightStructural +
		people*weightPeople
	return clamp(bhi)
}

// BHIColor maps a BHI value to its health tier color.
func BHIColor(bhi float64) string {
	switch {
	case bhi >= greenThreshold:
		return ColorGreen
	case bhi >= orangeThreshold:
		return ColorOrange
	default:
		return ColorRed
	}
}
