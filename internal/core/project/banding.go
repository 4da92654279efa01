package project

// AverageCompletion is the mean completion percentage across steps.
// Returns 0 for an empty slice.
func AverageCompletion(pcts []int) float64 {
	if len(pcts) == 0 {
		return 0
	}
	sum := 0
	for _, p := range pcts {
		sum += p
	}
	return float64(sum) / float64(len(pcts))
}

// BandForAverage maps a workflow completion average onto the derived
// project status bands.
func BandForAverage(avg float64) Status {
	switch {
	case avg <= 0:
		return StatusPlanning
	case avg < 25:
		return StatusAnalysis
	case avg < 50:
		return StatusDrafting
	case avg < 75:
		return StatusInternalReview
	case avg < 100:
		return StatusFinalization
	default:
		return StatusDelivered
	}
}

// Reproject decides the project status for a workflow completion
// average. Manual statuses are sticky: while the project is on hold or
// cancelled the derived band does not apply. The second return reports
// whether the status actually changes.
func Reproject(current Status, avg float64) (Status, bool) {
	if IsManualStatus(current) {
		return current, false
	}
	band := BandForAverage(avg)
	return band, band != current
}
