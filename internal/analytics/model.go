package analytics

// MonthPoint is one month in the trailing-12 series. Labels are MM/YYYY.
type MonthPoint struct {
	Label        string  `json:"label"`
	NewMembers   int     `json:"new_members"`
	SessionsUsed int     `json:"sessions_used"`
	SessionsAvg3 float64 `json:"sessions_avg3"`
}

// DropAlert is a heuristic signal: last month's session usage fell at
// least 20% below the average of the three preceding months. It is a
// threshold check, not a statistical test.
type DropAlert struct {
	DropPercent float64 `json:"drop_percent"`
	Current     int     `json:"current"`
	AvgPrev3    float64 `json:"avg_prev3"`
}

type Report struct {
	Months    []MonthPoint `json:"months"`
	DropAlert *DropAlert   `json:"drop_alert,omitempty"`
}
