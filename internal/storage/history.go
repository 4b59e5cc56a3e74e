package storage

import (
	"context"
	"slices"

	"github.com/misterclayt0n/weekplan/internal/models"
)

// ArchiveWeek copies every completed workout of the week, across all people,
// into a new history entry. Without completed workouts it is a no-op.
func (s *Store) ArchiveWeek(ctx context.Context, expectedRev *int64, weekStart string) (*models.State, error) {
	key, err := weekKey(weekStart)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, "archive_week", expectedRev, func(st *models.State) (bool, error) {
		var archived []models.HistoryWorkout
		for _, p := range st.People {
			plan, ok := st.Plan(p.ID, key)
			if !ok {
				continue
			}
			for _, w := range plan.SortedWorkouts() {
				if !w.Completed {
					continue
				}
				archived = append(archived, models.HistoryWorkout{
					PersonID:    p.ID,
					PersonName:  p.Name,
					PersonColor: p.Color,
					Date:        w.Date,
					Workout:     w,
				})
			}
		}
		if len(archived) == 0 {
			return false, nil
		}

		entry := models.HistoryEntry{
			WeekStart:  key,
			ArchivedAt: s.clock.Now().UTC(),
			Workouts:   archived,
		}
		st.History = trimHistory(slices.Insert(st.History, 0, entry))
		s.log.Info("week archived", "week_start", key, "workouts", len(archived))
		return true, nil
	})
}
