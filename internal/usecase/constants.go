package usecase

import "time"

const (
	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// Error kinds reported to ScheduleRecorder.
	errorKindInvalidTerm       = "invalid_term"
	errorKindInvalidParameters = "invalid_parameters"
	errorKindOutOfRange        = "out_of_range"
	errorKindInternal          = "internal"
)

// IdempotencyPending marks an idempotency key whose request is still running.
const IdempotencyPending = "processing"
