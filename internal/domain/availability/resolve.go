package availability

import "time"

type ResolveInput struct {
	// dia de referência, já no fuso da organização
	Date time.Time
	Now  time.Time

	// nil = fechado neste dia da semana
	Window *Block
	Lunch  *Block

	Rules  []Rule
	Booked []Block
}

// Resolve returns the free blocks of a day before slot fitting.
func Resolve(in ResolveInput) []Block {
	if in.Window == nil {
		return nil
	}

	frees := SplitByLunch(*in.Window, in.Lunch)
	if len(frees) == 0 {
		return nil
	}

	var blocked []Block
	for _, rule := range in.Rules {
		for _, b := range BlockedIntervals(rule, in.Date, in.Now) {
			if IsFullDay(b) {
				return nil
			}
			blocked = append(blocked, b)
		}
	}

	frees = SubtractAll(frees, blocked)
	if len(frees) == 0 {
		return nil
	}

	return SubtractAll(frees, in.Booked)
}

// BookedBlock converts an appointment start and duration into a block of
// its day.
func BookedBlock(start time.Time, durationMinutes int) Block {
	m := MinuteOfDay(start)
	return Block{Start: m, End: m + durationMinutes}
}
