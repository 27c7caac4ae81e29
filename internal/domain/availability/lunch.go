package availability

// SplitByLunch splits the opening window around the lunch break.
// The lunch window itself is never returned.
func SplitByLunch(window Block, lunch *Block) []Block {
	if window.Len() <= 0 {
		return nil
	}
	if lunch == nil || lunch.Len() <= 0 || !window.Overlaps(*lunch) {
		return []Block{window}
	}
	return SubtractOne(window, *lunch)
}
