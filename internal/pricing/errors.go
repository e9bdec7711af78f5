package pricing

import "errors"

var (
	// ErrNoApplicableRule is returned when the full resolution cascade finds
	// no fare rule. This is a configuration error (missing default rule for a
	// vehicle class), not a recoverable runtime condition: a fare can never
	// be computed without a rule.
	ErrNoApplicableRule = errors.New("no applicable fare rule")

	// ErrInvalidInput is returned for precondition violations such as
	// negative distance or duration, or a rule with negative rates. Wrapped
	// errors carry the offending field.
	ErrInvalidInput = errors.New("invalid fare input")
)
