package attendance

import "hrconnect/internal/shared/timeutil"

// Work-duration thresholds in hours. Below four hours the day counts
// for nothing on its own; six or more is a full day.
const (
	halfDayThresholdHours = 4.0
	fullDayThresholdHours = 6.0
)

// HalfDayLeaveType is the reserved leave type whose approval credits
// half a day; every other approved type credits a full day.
const HalfDayLeaveType = "HALF_DAY"

// ApprovedLeave is the slice of leave context the classifier needs.
type ApprovedLeave struct {
	Type    string
	Session string
}

// classifyWorkDuration maps worked hours to a work-only status.
func classifyWorkDuration(hours float64) Status {
	switch {
	case hours >= fullDayThresholdHours:
		return StatusPresent
	case hours >= halfDayThresholdHours:
		return StatusHalfDay
	default:
		return StatusAbsent
	}
}

// mergeWithLeave combines the work-only status with any approved leave
// covering the same day:
//   - no leave: the work status stands
//   - half-day leave: 0.5 leave credit, plus 0.5 work credit when the
//     employee worked at least four hours
//   - any other approved leave: a full day, capped regardless of how
//     much incidental work was detected
func mergeWithLeave(work Status, leave *ApprovedLeave) Status {
	if leave == nil {
		return work
	}

	if leave.Type == HalfDayLeaveType {
		switch work {
		case StatusPresent, StatusHalfDay:
			return StatusPresent
		case StatusAbsent:
			return StatusHalfDay
		}
		return StatusHalfDay
	}

	return StatusPresent
}

// ClassifyCheckOut computes the final status for a completed day from
// the raw check-in/check-out pair and the day's leave context.
func ClassifyCheckOut(checkIn, checkOut string, leave *ApprovedLeave) (Status, error) {
	hours, err := timeutil.DurationHours(checkIn, checkOut)
	if err != nil {
		return "", err
	}
	return mergeWithLeave(classifyWorkDuration(hours), leave), nil
}

// manualMarkTimes returns the fixed check-in/check-out pair recorded by
// an administrative mark; nil means no time is recorded.
func manualMarkTimes(status Status) (checkIn, checkOut *string) {
	in := "09:00:00"
	switch status {
	case StatusPresent:
		out := "18:00:00"
		return &in, &out
	case StatusHalfDay:
		out := "13:00:00"
		return &in, &out
	case StatusAbsent:
		return nil, nil
	}
	return nil, nil
}
