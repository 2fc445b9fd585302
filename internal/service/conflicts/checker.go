package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Candidate окно, которое запрос хочет занять
type Candidate struct {
	// Index позиция строки в запросе
	Index      int
	ServiceID  int64
	EmployeeID int64
	Start      types.TimeString
	End        types.TimeString
}

// Checker ищет пересечения окон на одном ресурсе в одну дату.
// Ресурс (услуга или сотрудник) задаётся политикой key и не влияет на сам алгоритм.
type Checker struct {
	repo OccupancyRepository
	key  domain.ResourceKey
}

// NewChecker создает проверку конфликтов с заданным ключом ресурса
func NewChecker(repo OccupancyRepository, key domain.ResourceKey) *Checker {
	return &Checker{repo: repo, key: key}
}

// Key ключ ресурса, по которому работает проверка
func (c *Checker) Key() domain.ResourceKey {
	return c.key
}

// WithKey возвращает проверку с другим ключом ресурса над тем же хранилищем
func (c *Checker) WithKey(key domain.ResourceKey) *Checker {
	return &Checker{repo: c.repo, key: key}
}

// Check возвращает все занятые окна, пересекающиеся с кандидатом.
// exclude убирает из выборки строки, которые сейчас редактируются.
func (c *Checker) Check(ctx context.Context, date time.Time, cand Candidate, exclude []int64) ([]domain.Occupancy, error) {
	conflicts, err := c.CheckBatch(ctx, date, []Candidate{cand}, exclude)
	if err != nil {
		return nil, err
	}
	if len(conflicts) == 0 {
		return nil, nil
	}
	return conflicts[0].Conflicts, nil
}

// CheckBatch проверяет набор кандидатов одной даты одним запросом к хранилищу.
// Кандидаты сверяются и с сохранёнными окнами, и между собой: более поздний по Index
// кандидат конфликтует с более ранним. Возвращает по одной записи на конфликтующую строку.
func (c *Checker) CheckBatch(ctx context.Context, date time.Time, cands []Candidate, exclude []int64) ([]domain.LineConflict, error) {
	if len(cands) == 0 {
		return nil, nil
	}

	for _, cand := range cands {
		if !cand.Start.IsBefore(cand.End) {
			return nil, fmt.Errorf("%w: line %d: end %s must be after start %s",
				domain.ErrValidation, cand.Index, cand.End, cand.Start)
		}
	}

	stored, err := c.repo.ListOccupancies(ctx, c.filter(date, cands, exclude))
	if err != nil {
		return nil, fmt.Errorf("%w: CheckBatch - list occupancies: %w", ErrInternal, err)
	}

	result := make([]domain.LineConflict, 0)
	for i, cand := range cands {
		resource := c.key.ResourceOf(cand.ServiceID, cand.EmployeeID)
		collisions := make([]domain.Occupancy, 0)

		for _, o := range stored {
			if c.key.ResourceOf(o.ServiceID, o.EmployeeID) != resource {
				continue
			}
			if o.OverlapsWindow(cand.Start, cand.End) {
				collisions = append(collisions, o)
			}
		}

		// Более ранние строки того же запроса ещё не сохранены
		for _, prev := range cands[:i] {
			if c.key.ResourceOf(prev.ServiceID, prev.EmployeeID) != resource {
				continue
			}
			if domain.Overlaps(prev.Start, prev.End, cand.Start, cand.End) {
				collisions = append(collisions, domain.Occupancy{
					ServiceID:  prev.ServiceID,
					EmployeeID: prev.EmployeeID,
					Date:       domain.DateOnly(date),
					Start:      prev.Start,
					End:        prev.End,
				})
			}
		}

		if len(collisions) > 0 {
			result = append(result, domain.LineConflict{
				Index:      cand.Index,
				ServiceID:  cand.ServiceID,
				EmployeeID: cand.EmployeeID,
				Start:      cand.Start,
				End:        cand.End,
				Reason:     domain.ReasonOverlap,
				Conflicts:  collisions,
			})
		}
	}

	return result, nil
}

// BusyResources возвращает для каждого ресурса из ids занятые окна, пересекающие [start, end)
func (c *Checker) BusyResources(
	ctx context.Context,
	date time.Time,
	ids []int64,
	start, end types.TimeString,
) (map[int64][]domain.Occupancy, error) {
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: end %s must be after start %s", domain.ErrValidation, end, start)
	}

	filter := domain.OccupancyFilter{Date: date}
	if c.key == domain.ResourceEmployee {
		filter.EmployeeIDs = ids
	} else {
		filter.ServiceIDs = ids
	}

	stored, err := c.repo.ListOccupancies(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: BusyResources - list occupancies: %w", ErrInternal, err)
	}

	busy := make(map[int64][]domain.Occupancy)
	for _, o := range stored {
		if o.OverlapsWindow(start, end) {
			resource := c.key.ResourceOf(o.ServiceID, o.EmployeeID)
			busy[resource] = append(busy[resource], o)
		}
	}

	return busy, nil
}

func (c *Checker) filter(date time.Time, cands []Candidate, exclude []int64) domain.OccupancyFilter {
	filter := domain.OccupancyFilter{
		Date:           date,
		ExcludeLineIDs: exclude,
	}

	seen := make(map[int64]struct{}, len(cands))
	ids := make([]int64, 0, len(cands))
	for _, cand := range cands {
		id := c.key.ResourceOf(cand.ServiceID, cand.EmployeeID)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if c.key == domain.ResourceEmployee {
		filter.EmployeeIDs = ids
	} else {
		filter.ServiceIDs = ids
	}

	return filter
}
