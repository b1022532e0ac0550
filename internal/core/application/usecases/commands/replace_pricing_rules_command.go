package commands

import (
	"errors"
	"time"

	"roodi/internal/core/domain/model/pricing"
	"roodi/internal/pkg/guard"
)

var ErrReplacePricingRulesCommandIsNotConstructed = errors.New(
	"ReplacePricingRulesCommand must be created via NewReplacePricingRulesCommand constructor",
)

// ReplacePricingRulesCommand represents a request to install a new pricing
// rule version. When the payload carries no peak windows, the active version's
// windows are copied forward.
type ReplacePricingRulesCommand struct { //nolint:recvcheck //using for validation
	params pricing.RuleVersionParams
	now    time.Time

	guard guard.ConstructorGuard
}

// NewReplacePricingRulesCommand creates a command to replace the active
// pricing rule version. Full payload validation happens when the version
// aggregate is constructed in the handler.
func NewReplacePricingRulesCommand(params pricing.RuleVersionParams, now time.Time) (ReplacePricingRulesCommand, error) {
	cmd := ReplacePricingRulesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := params.ID.Validate(); err != nil {
		return ReplacePricingRulesCommand{}, err
	}

	cmd.params = params
	cmd.now = now
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReplacePricingRulesCommand) Validate() error {
	return c.guard.Validate(ErrReplacePricingRulesCommandIsNotConstructed)
}

// Params returns the new version's configuration payload.
func (c ReplacePricingRulesCommand) Params() pricing.RuleVersionParams { return c.params }

// Now returns the replacement instant.
func (c ReplacePricingRulesCommand) Now() time.Time { return c.now }
