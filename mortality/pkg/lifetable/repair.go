package lifetable

import (
	"fmt"

	"go.uber.org/zap"
)

// redistributionHorizon is how many years past the terminal bucket the
// repair will synthesize new buckets before giving up. Any deaths still
// unassigned at that point are silently discarded.
const redistributionHorizon = 10

type RepairConfig struct {
	// TerminalAge is the age of the open-ended final bucket. Zero means
	// DefaultTerminalAge.
	TerminalAge int
}

// Repair spreads an inflated open-ended terminal bucket forward across
// synthetic yearly buckets. The terminal bucket in the source data
// aggregates every death at or above its age, so when its count exceeds
// the second-to-last bucket's we treat it as truncated and redistribute
// using a geometric decay rate estimated from the last two known
// buckets.
//
// Repair is a no-op when the tail is not inflated. It mutates the table
// in place and conserves the total death count, except that anything
// left past TerminalAge+10 is dropped.
func (t *Table) Repair(cfg RepairConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	terminal := cfg.TerminalAge
	if terminal == 0 {
		terminal = DefaultTerminalAge
	}

	ages := t.Ages()
	if len(ages) < 3 {
		return ErrInsufficientData
	}
	last := t.counts[ages[len(ages)-1]]
	secondLast := t.counts[ages[len(ages)-2]]
	thirdLast := t.counts[ages[len(ages)-3]]

	if last <= secondLast {
		return nil
	}

	age := ages[len(ages)-1]
	if age != terminal {
		return &AssumptionError{
			Reason: fmt.Sprintf("expected the oldest age to be %d, got %d", terminal, age),
		}
	}
	if thirdLast == 0 {
		return &AssumptionError{
			Reason: fmt.Sprintf("no deaths at age %d, cannot estimate a decay rate", ages[len(ages)-3]),
		}
	}

	// The decay probably isn't constant, but between ages 90 and 100 it
	// is a reasonable approximation.
	rate := float64(secondLast) / float64(thirdLast)
	logger.Debug("estimated year-over-year decay rate",
		zap.Float64("rate", rate),
		zap.Int("secondLast", secondLast),
		zap.Int("thirdLast", thirdLast),
	)

	remaining := last
	prev := secondLast
	for remaining > 0 {
		deaths := int(float64(prev) * rate)
		if deaths < 0 {
			deaths = 0
		}
		if deaths > remaining {
			deaths = remaining
		}
		t.Set(age, deaths)
		remaining -= deaths
		logger.Debug("redistributed deaths",
			zap.Int("age", age),
			zap.Int("deaths", deaths),
			zap.Int("remaining", remaining),
		)

		prev = deaths
		age++
		if age > terminal+redistributionHorizon {
			if remaining > 0 {
				logger.Debug("discarding undistributed deaths", zap.Int("remaining", remaining))
			}
			break
		}
	}
	return nil
}
