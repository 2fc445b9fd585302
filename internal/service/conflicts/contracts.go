package conflicts

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// OccupancyRepository источник занятых окон
type OccupancyRepository interface {
	ListOccupancies(ctx context.Context, filter domain.OccupancyFilter) ([]domain.Occupancy, error)
}
