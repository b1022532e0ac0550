package kernel

import (
	"fmt"

	"roodi/internal/pkg/errs"
)

// Urgency is the delivery urgency tier selected by the commerce.
// It selects one of the urgency addon rows of the active pricing rule.
type Urgency string

const (
	UrgencyStandard  Urgency = "standard"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyScheduled Urgency = "scheduled"
)

// Urgencies returns all valid urgency tiers, one per pricing urgency addon row.
func Urgencies() []Urgency {
	return []Urgency{UrgencyStandard, UrgencyUrgent, UrgencyScheduled}
}

// Validate checks that the urgency is one of the defined tiers.
func (u Urgency) Validate() error {
	switch u {
	case UrgencyStandard, UrgencyUrgent, UrgencyScheduled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"urgency",
			fmt.Errorf("%q is not a valid urgency", string(u)),
		)
	}
}

func (u Urgency) String() string {
	return string(u)
}
