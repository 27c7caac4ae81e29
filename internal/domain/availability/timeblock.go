package availability

// MinutesPerDay marca o fim do dia em minutos desde meia-noite.
const MinutesPerDay = 24 * 60

// Block is a half-open interval [Start, End) in minutes since midnight.
type Block struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (b Block) Len() int {
	return b.End - b.Start
}

func (b Block) Overlaps(o Block) bool {
	return b.Start < o.End && o.Start < b.End
}

func (b Block) Contains(o Block) bool {
	return b.Start <= o.Start && o.End <= b.End
}

// IsFullDay reports whether the block covers the whole day.
func IsFullDay(b Block) bool {
	return b.Start <= 0 && b.End >= MinutesPerDay
}

// SubtractOne removes blocker from free and returns what is left:
// zero, one or two blocks.
func SubtractOne(free, blocker Block) []Block {
	switch {
	// sem sobreposição
	case blocker.End <= free.Start || blocker.Start >= free.End:
		return []Block{free}

	// bloqueio cobre tudo
	case blocker.Start <= free.Start && blocker.End >= free.End:
		return nil

	// bloqueio estritamente dentro
	case blocker.Start > free.Start && blocker.End < free.End:
		return []Block{
			{Start: free.Start, End: blocker.Start},
			{Start: blocker.End, End: free.End},
		}

	// borda esquerda
	case blocker.Start <= free.Start:
		return []Block{{Start: blocker.End, End: free.End}}

	// borda direita
	default:
		return []Block{{Start: free.Start, End: blocker.Start}}
	}
}

// SubtractAll folds every blocker over the current free list.
func SubtractAll(frees, blockers []Block) []Block {
	current := frees
	for _, blocker := range blockers {
		if len(current) == 0 {
			return nil
		}

		next := make([]Block, 0, len(current)+1)
		for _, free := range current {
			next = append(next, SubtractOne(free, blocker)...)
		}
		current = next
	}

	if len(current) == 0 {
		return nil
	}
	return current
}
