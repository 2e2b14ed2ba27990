package get_available_slots

import (
	"github.com/dkoval/barbershop-booking/internal/domain"
	"github.com/dkoval/barbershop-booking/pkg/types"
)

// filterFreeSlots возвращает слоты сетки, не занятые активными бронированиями.
// Порядок слотов сетки сохраняется; занятость определяется точным совпадением
// времени начала.
func filterFreeSlots(catalog *domain.SlotCatalog, taken []types.TimeString) []types.TimeString {
	takenSet := make(map[types.TimeString]struct{}, len(taken))
	for _, t := range taken {
		takenSet[t] = struct{}{}
	}

	free := make([]types.TimeString, 0, catalog.Len())
	for _, slot := range catalog.Times() {
		if _, ok := takenSet[slot]; ok {
			continue
		}
		free = append(free, slot)
	}

	return free
}
