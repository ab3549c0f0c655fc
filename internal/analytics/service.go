package analytics

import (
	"context"
	"math"
	"time"
)

// dropThresholdPercent triggers the alert when last month's usage sits
// this far below the trailing average of the three preceding months.
const dropThresholdPercent = 20.0

const seriesMonths = 12

type Service interface {
	MonthlyReport(ctx context.Context) (*Report, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// MonthlyReport recomputes the trailing-12-month series on every call.
// It reads current state directly, so there is nothing to cache or
// invalidate.
func (s *service) MonthlyReport(ctx context.Context) (*Report, error) {
	now := time.Now()
	labels := monthLabels(now, seriesMonths)
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(seriesMonths - 1), 0)

	memberCounts, err := s.repo.MonthlyMemberCounts(ctx, since)
	if err != nil {
		return nil, err
	}

	sessionCounts, err := s.repo.MonthlySessionCounts(ctx, since)
	if err != nil {
		return nil, err
	}

	sessions := make([]int, len(labels))
	for i, label := range labels {
		sessions[i] = sessionCounts[label]
	}
	averages := trailingAverage(sessions, 3)

	months := make([]MonthPoint, len(labels))
	for i, label := range labels {
		months[i] = MonthPoint{
			Label:        label,
			NewMembers:   memberCounts[label],
			SessionsUsed: sessions[i],
			SessionsAvg3: averages[i],
		}
	}

	return &Report{
		Months:    months,
		DropAlert: detectDrop(sessions),
	}, nil
}

// monthLabels returns the last n calendar months ending at now,
// chronologically ascending, formatted MM/YYYY.
func monthLabels(now time.Time, n int) []string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	labels := make([]string, n)
	for i := 0; i < n; i++ {
		labels[i] = first.AddDate(0, i-(n-1), 0).Format("01/2006")
	}

	return labels
}

// trailingAverage averages the window of up to `window` points ending at
// each index; early indices average over what exists. Rounded to 2
// decimal places.
func trailingAverage(series []int, window int) []float64 {
	averages := make([]float64, len(series))
	for i := range series {
		start := i - window + 1
		if start < 0 {
			start = 0
		}

		sum := 0
		for j := start; j <= i; j++ {
			sum += series[j]
		}

		averages[i] = round2(float64(sum) / float64(i-start+1))
	}

	return averages
}

// detectDrop compares the last month against the average of the up-to-3
// months immediately before it. Nil means no alert.
func detectDrop(series []int) *DropAlert {
	if len(series) < 2 {
		return nil
	}

	current := series[len(series)-1]
	prev := series[:len(series)-1]
	if len(prev) > 3 {
		prev = prev[len(prev)-3:]
	}

	sum := 0
	for _, v := range prev {
		sum += v
	}
	avgPrev := round2(float64(sum) / float64(len(prev)))
	if avgPrev <= 0 {
		return nil
	}

	dropPercent := (avgPrev - float64(current)) / avgPrev * 100
	if dropPercent < dropThresholdPercent {
		return nil
	}

	return &DropAlert{
		DropPercent: round1(dropPercent),
		Current:     current,
		AvgPrev3:    avgPrev,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
