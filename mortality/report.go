package mortality

import (
	"fmt"
	"io"

	"lifespan/mortality/pkg/plot"
)

const weeksPerYear = 52

// writeReport prints the user-facing percentile summary, one line per
// percentile in ascending order.
func writeReport(w io.Writer, minAge int, marks []plot.PercentileMark) error {
	if _, err := fmt.Fprintf(w,
		"Based on the given data and assumptions, someone at age %d has a\n", minAge); err != nil {
		return err
	}
	for _, m := range marks {
		remainingYears := m.Age - float64(minAge)
		remainingWeeks := remainingYears * weeksPerYear
		if _, err := fmt.Fprintf(w,
			"%g%% chance of dying before %.1f years old. That's %.0f weeks after age %d\n",
			m.Percentile, m.Age, remainingWeeks, minAge); err != nil {
			return err
		}
	}
	return nil
}
