package calculator

import (
	"math"
	"time"

	"SP500Insight/internal/model"
)

// Observation pairs a date with a single price value.
type Observation struct {
	Date  time.Time
	Price float64
}

// NormalizedTrajectory rebases a price series so the first valid observation
// equals exactly 100. Observations with a missing price are dropped.
func NormalizedTrajectory(obs []Observation) []model.TrajectoryPoint {
	points := make([]model.TrajectoryPoint, 0, len(obs))
	base := math.NaN()
	for _, o := range obs {
		if math.IsNaN(o.Price) {
			continue
		}
		if math.IsNaN(base) {
			if o.Price <= 0 {
				continue
			}
			base = o.Price
		}
		points = append(points, model.TrajectoryPoint{
			Date:       o.Date,
			Price:      o.Price,
			Normalized: o.Price / base * 100,
		})
	}
	return points
}

// ResampleMonthlyFirst keeps the first valid observation of each calendar month.
func ResampleMonthlyFirst(obs []Observation) []Observation {
	var out []Observation
	var haveMonth bool
	var curYear int
	var curMonth time.Month
	for _, o := range obs {
		if math.IsNaN(o.Price) {
			continue
		}
		y, m, _ := o.Date.Date()
		if !haveMonth || y != curYear || m != curMonth {
			out = append(out, o)
			curYear, curMonth, haveMonth = y, m, true
		}
	}
	return out
}

// ResampleYearlyLast keeps the last valid observation of each calendar year.
func ResampleYearlyLast(obs []Observation) []Observation {
	var out []Observation
	var haveYear bool
	var curYear int
	for _, o := range obs {
		if math.IsNaN(o.Price) {
			continue
		}
		y := o.Date.Year()
		if haveYear && y == curYear {
			out[len(out)-1] = o
			continue
		}
		out = append(out, o)
		curYear, haveYear = y, true
	}
	return out
}
