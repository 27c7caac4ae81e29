package dto

import "github.com/BruksfildServices01/delivery-scheduler/internal/domain/availability"

// SlotDTO é o horário formatado "HH:MM" para exibição
type SlotDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func FromSlots(slots []availability.Block) []SlotDTO {
	out := make([]SlotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotDTO{
			Start: availability.FormatHM(s.Start),
			End:   availability.FormatHM(s.End),
		})
	}
	return out
}
