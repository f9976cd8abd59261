package bridge

import "errors"

// Sentinel errors returned by the bridge core. Each carries a stable
// machine-parseable prefix (see Code) so host-side clients can key off the
// failure reason without string-matching the full message, mirroring the
// teacher's domain-prefixed error conventions (native/loyalty/errors.go,
// services/lending/engine/errors.go).
var (
	ErrSwapLimitsInconsistent = errors.New("bridge: swap limits inconsistent")
	ErrSwapLimitsViolated     = errors.New("bridge: swap limits violated")
	ErrCapExceeded            = errors.New("bridge: cap exceeded")
	ErrSupplyExceeded         = errors.New("bridge: supply exceeded")
	ErrAllowanceExceeded      = errors.New("bridge: reverse aggregated allowance exceeded")
	ErrContractPaused         = errors.New("bridge: contract paused")
	ErrRelayEon               = errors.New("bridge: relay eon mismatch")
	ErrInvalidSwapId          = errors.New("bridge: invalid swap id")
	ErrAlreadyRefunded        = errors.New("bridge: already refunded")
	ErrUnrecognizedDenom      = errors.New("bridge: unrecognized denom")
	ErrOnlyAdmin              = errors.New("bridge: only admin")
	ErrOnlyRelayer            = errors.New("bridge: only relayer")
	ErrAlreadyHasRole         = errors.New("bridge: already has role")
	ErrDoesntHaveRole         = errors.New("bridge: doesn't have role")
	ErrUnknownRole            = errors.New("bridge: unknown role")
	ErrNotConfigured          = errors.New("bridge: contract not instantiated")
)

// Code maps a sentinel error (or any error wrapping one) to its stable wire
// taxonomy prefix, for embedding in responses or metrics labels that must not
// leak the free-form message text. Unknown errors map to "Internal".
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSwapLimitsInconsistent):
		return "SwapLimitsInconsistent"
	case errors.Is(err, ErrSwapLimitsViolated):
		return "SwapLimitsViolated"
	case errors.Is(err, ErrCapExceeded):
		return "CapExceeded"
	case errors.Is(err, ErrSupplyExceeded):
		return "SupplyExceeded"
	case errors.Is(err, ErrAllowanceExceeded):
		return "AllowanceExceeded"
	case errors.Is(err, ErrContractPaused):
		return "ContractPaused"
	case errors.Is(err, ErrRelayEon):
		return "RelayEon"
	case errors.Is(err, ErrInvalidSwapId):
		return "InvalidSwapId"
	case errors.Is(err, ErrAlreadyRefunded):
		return "AlreadyRefunded"
	case errors.Is(err, ErrUnrecognizedDenom):
		return "UnrecognizedDenom"
	case errors.Is(err, ErrOnlyAdmin):
		return "OnlyAdmin"
	case errors.Is(err, ErrOnlyRelayer):
		return "OnlyRelayer"
	case errors.Is(err, ErrAlreadyHasRole):
		return "AlreadyHasRole"
	case errors.Is(err, ErrDoesntHaveRole):
		return "DoesntHaveRole"
	case errors.Is(err, ErrUnknownRole):
		return "UnknownRole"
	case errors.Is(err, ErrNotConfigured):
		return "NotConfigured"
	default:
		return "Internal"
	}
}
