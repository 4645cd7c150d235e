package service

import (
	"github.com/noah-isme/guardia-api/internal/models"
)

// selectLeastLoaded picks the candidate with the lowest counter for the given
// duty type. Ties break by ascending teacher email so the outcome never
// depends on roster iteration order. The second return is false when the
// candidate set is empty; callers decide how to report that.
func selectLeastLoaded(candidates []models.DutyTeacher, counters map[string]models.DutyCounter, duty models.DutyType) (models.DutyTeacher, bool) {
	if len(candidates) == 0 {
		return models.DutyTeacher{}, false
	}

	best := candidates[0]
	bestCount := counters[best.Email].CountFor(duty)
	for _, candidate := range candidates[1:] {
		count := counters[candidate.Email].CountFor(duty)
		if count < bestCount || (count == bestCount && candidate.Email < best.Email) {
			best = candidate
			bestCount = count
		}
	}
	return best, true
}

// removeCandidate drops one teacher from the pool. Each selection removes its
// pick so no teacher is double-booked within a slot.
func removeCandidate(candidates []models.DutyTeacher, email string) []models.DutyTeacher {
	out := candidates[:0]
	for _, candidate := range candidates {
		if candidate.Email != email {
			out = append(out, candidate)
		}
	}
	return out
}

// counterMap indexes counter rows by teacher email. Teachers without a row
// fall back to the zero value, matching the lazily materialized store.
func counterMap(counters []models.DutyCounter) map[string]models.DutyCounter {
	out := make(map[string]models.DutyCounter, len(counters))
	for _, counter := range counters {
		out[counter.TeacherEmail] = counter
	}
	return out
}
