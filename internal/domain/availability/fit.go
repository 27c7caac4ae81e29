package availability

// Fit places one slot of the given duration at the start of every free
// block long enough to host it (earliest-fit).
func Fit(frees []Block, durationMinutes int) []Block {
	if durationMinutes <= 0 {
		return nil
	}

	slots := make([]Block, 0, len(frees))
	for _, free := range frees {
		if free.Len() >= durationMinutes {
			slots = append(slots, Block{
				Start: free.Start,
				End:   free.Start + durationMinutes,
			})
		}
	}
	return slots
}

// FitsAt reports whether [start, start+duration) lies entirely inside one
// free block. Used when a caller asks for a specific start time.
func FitsAt(frees []Block, start, durationMinutes int) bool {
	if durationMinutes <= 0 {
		return false
	}

	want := Block{Start: start, End: start + durationMinutes}
	for _, free := range frees {
		if free.Contains(want) {
			return true
		}
	}
	return false
}
