// Package ranking orders and summarizes scored applications for the
// review view. Pure projections: nothing here mutates stored state.
package ranking

import (
	"math"
	"sort"

	"wadhifa/models"
)

// Sort keys accepted by the review endpoint.
const (
	SortByScore = "score"
	SortByDate  = "date"
)

// Sort orders apps in place by the given key. Unknown keys fall back to
// score ordering.
func Sort(apps []models.Application, sortBy string) {
	if sortBy == SortByDate {
		sortByDate(apps)
		return
	}
	sortByScore(apps)
}

// sortByScore orders by score descending with unscored applications
// last; ties (including between two unscored applications) break by
// created_at descending. The order is total, so re-sorting an already
// sorted slice changes nothing.
func sortByScore(apps []models.Application) {
	sort.SliceStable(apps, func(i, j int) bool {
		si, sj := apps[i].AIMatchScore, apps[j].AIMatchScore
		switch {
		case si != nil && sj == nil:
			return true
		case si == nil && sj != nil:
			return false
		case si != nil && sj != nil && *si != *sj:
			return *si > *sj
		}
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
}

func sortByDate(apps []models.Application) {
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
}

// Summary aggregates the score bands the dashboard renders. Bands are
// inclusive at the lower bound and exclusive at the upper: 80 is high,
// 79 is medium, 59 is low.
type Summary struct {
	Total        int `json:"total"`
	HighMatch    int `json:"highMatch"`
	MediumMatch  int `json:"mediumMatch"`
	AverageScore int `json:"averageScore"`
}

// Summarize computes band counts and the average score. The average is
// taken over present scores only and rounded half away from zero; with
// no scores present it is 0. Unscored applications count toward Total
// but no band.
func Summarize(apps []models.Application) Summary {
	s := Summary{Total: len(apps)}

	sum, scored := 0, 0
	for _, a := range apps {
		if a.AIMatchScore == nil {
			continue
		}
		scored++
		sum += *a.AIMatchScore
		switch {
		case *a.AIMatchScore >= 80:
			s.HighMatch++
		case *a.AIMatchScore >= 60:
			s.MediumMatch++
		}
	}
	if scored > 0 {
		s.AverageScore = int(math.Round(float64(sum) / float64(scored)))
	}
	return s
}
