package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation forbidden")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("operation conflicts with current state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrOutOfRangeWordCount indicates a word count above the pricing table's highest
// band, with no unbounded terminal band configured to catch it.
var ErrOutOfRangeWordCount = errors.New("word count exceeds pricing table range")

// ErrPricingConfigMissing indicates an agent has no custom pricing table configured.
// Callers recover by substituting the documented default table and logging a warning.
var ErrPricingConfigMissing = errors.New("agent pricing configuration missing")

// ErrHierarchyUnassigned indicates a party's recruitment chain does not bottom out
// at a super agent or super worker. Quoting is blocked until the chain is repaired.
var ErrHierarchyUnassigned = errors.New("no resolvable hierarchy assignment")

// ErrStaleVersion indicates an optimistic write lost a race: the stored assignment
// version no longer matches the version the caller read. Callers re-fetch and retry.
var ErrStaleVersion = errors.New("stale assignment version")

// ErrRateUnavailable indicates no exchange rate could be resolved from any source.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrSettlementInconsistent indicates the settlement conservation invariant was
// violated. Always fatal: no records are written and the case is logged for audit.
var ErrSettlementInconsistent = errors.New("settlement amounts do not reconcile")
