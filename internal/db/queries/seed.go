package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cargo-service/internal/models"
)

// SampleCargo возвращает демонстрационные отправки со сроками,
// отсчитанными от now
func SampleCargo(now time.Time) []models.Cargo {
	inOneHour := now.Add(time.Hour)
	inTwoHours := now.Add(2 * time.Hour)

	return []models.Cargo{
		{
			AWBNumber:       "160-12345678",
			Origin:          "HKG",
			Destination:     "LAX",
			Weight:          "245.5 KG",
			Pieces:          3,
			Shipper:         "ABC Electronics Ltd",
			Consignee:       "XYZ Trading Co",
			SpecialHandling: []string{"PER", "VUN"},
			Status:          models.StatusAwaiting,
			Description:     "Electronic Components",
			Deadline:        &inOneHour,
		},
		{
			AWBNumber:       "160-87654321",
			Origin:          "PVG",
			Destination:     "SIN",
			Weight:          "1,240 KG",
			Pieces:          8,
			Shipper:         "Global Tech Manufacturing",
			Consignee:       "Singapore Electronics",
			SpecialHandling: []string{"DGR", "CAO"},
			Status:          models.StatusInProgress,
			Description:     "Industrial Equipment",
			Deadline:        &inTwoHours,
		},
	}
}

// SeedSampleCargo заполняет пустую коллекцию демонстрационными отправками.
// Возвращает количество вставленных записей; непустая коллекция не изменяется.
func SeedSampleCargo(ctx context.Context, q CargoQueriesInterface, now time.Time) (int, error) {
	total, err := q.CountCargo(ctx)
	if err != nil {
		return 0, err
	}
	if total > 0 {
		return 0, nil
	}

	inserted := 0
	for _, sample := range SampleCargo(now) {
		sample := sample
		if _, err := q.CreateCargo(ctx, &sample); err != nil {
			// Другой экземпляр сервиса мог успеть заполнить таблицу
			if errors.Is(err, ErrDuplicateAWB) {
				continue
			}
			return inserted, fmt.Errorf("failed to seed cargo %s: %w", sample.AWBNumber, err)
		}
		inserted++
	}

	return inserted, nil
}
