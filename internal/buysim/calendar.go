package buysim

import "time"

// Day offsets for the pre-flight phases, relative to flight start. The
// values reproduce the reference buy timeline: planning in early June for
// an August 1 launch, the buy ten days later, creatives five days after
// that.
const (
	planningLeadDays = 57
	buyLeadDays      = 47
	creativeLeadDays = 42
	preFlightLead    = 2
)

// approvalCheckDays is how many daily status checks follow the creative
// submission.
const approvalCheckDays = 3

// monitoringOffsets are the in-flight read days, as offsets from flight
// start: launch day, +2, +5 and +8.
var monitoringOffsets = []int{0, 2, 5, 8}

const (
	optimizationOffset = 7
	completionLag      = 1
)

// Calendar holds every simulated date a run touches, precomputed from the
// flight dates so phases never consult a clock.
type Calendar struct {
	Planning       time.Time
	Buy            time.Time
	CreativeSubmit time.Time
	ApprovalChecks []time.Time
	PreFlight      time.Time
	Monitoring     []time.Time
	Optimization   time.Time
	Completion     time.Time
}

// NewCalendar derives the full phase schedule from a flight window.
func NewCalendar(flightStart, flightEnd time.Time) Calendar {
	cal := Calendar{
		Planning:       flightStart.AddDate(0, 0, -planningLeadDays),
		Buy:            flightStart.AddDate(0, 0, -buyLeadDays),
		CreativeSubmit: flightStart.AddDate(0, 0, -creativeLeadDays),
		PreFlight:      flightStart.AddDate(0, 0, -preFlightLead),
		Optimization:   flightStart.AddDate(0, 0, optimizationOffset),
		Completion:     flightEnd.AddDate(0, 0, completionLag),
	}
	for day := 1; day <= approvalCheckDays; day++ {
		cal.ApprovalChecks = append(cal.ApprovalChecks, cal.CreativeSubmit.AddDate(0, 0, day))
	}
	for _, offset := range monitoringOffsets {
		cal.Monitoring = append(cal.Monitoring, flightStart.AddDate(0, 0, offset))
	}
	return cal
}
