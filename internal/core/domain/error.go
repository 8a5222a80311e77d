package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInternal = errors.New("internal error")

	// * Error kinds. Every specific error below wraps exactly one of them.
	ErrValidation          = errors.New("validation error")
	ErrEligibility         = errors.New("not eligible")
	ErrExternalDelivery    = errors.New("external delivery failed")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	ErrPersistence         = errors.New("persistence failure")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrNoUpdatedData   = errors.New("no data to update")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")
	ErrPaidBatchIDUsed = fmt.Errorf("%w: paid batch id already used", ErrConflictingData)

	// * Communication errors.
	ErrBadRequest = fmt.Errorf("%w: error parsing request", ErrValidation)

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("caller is unauthorized to access the resource")
	ErrSignatureMismatch          = errors.New("webhook signature mismatch")

	// * Validation errors.
	ErrBatchIDRequired        = fmt.Errorf("%w: batch id is required", ErrValidation)
	ErrMerchantIDRequired     = fmt.Errorf("%w: merchant id is required", ErrValidation)
	ErrOrderIDRequired        = fmt.Errorf("%w: order id is required", ErrValidation)
	ErrNotificationIDRequired = fmt.Errorf("%w: notification id is required", ErrValidation)
	ErrEventTypeRequired      = fmt.Errorf("%w: event type is required", ErrValidation)
	ErrUnknownEventType       = fmt.Errorf("%w: unknown event type", ErrValidation)
	ErrTargetRequired         = fmt.Errorf("%w: notification target is required", ErrValidation)
	ErrLineageIDRequired      = fmt.Errorf("%w: lineage anchor id is required", ErrValidation)
	ErrUnknownLineageType     = fmt.Errorf("%w: unknown lineage type", ErrValidation)
	ErrInvalidPage            = fmt.Errorf("%w: page must be positive", ErrValidation)
	ErrInvalidLimit           = fmt.Errorf("%w: limit must be positive", ErrValidation)
	ErrInvalidPaidBatchID     = fmt.Errorf("%w: paid batch id is malformed", ErrValidation)
	ErrTransferIDRequired     = fmt.Errorf("%w: transfer id is required", ErrValidation)

	// * Eligibility errors.
	ErrBatchNotDraft       = fmt.Errorf("%w: batch is not a draft", ErrEligibility)
	ErrBatchNotApproved    = fmt.Errorf("%w: batch is not approved", ErrEligibility)
	ErrBatchNotDiscardable = fmt.Errorf("%w: batch can no longer be discarded", ErrEligibility)
	ErrBatchNotPromoted    = fmt.Errorf("%w: batch has not been promoted", ErrEligibility)
	ErrNothingToPrepare    = fmt.Errorf("%w: no eligible wallets", ErrEligibility)
	ErrNoEndpoint          = fmt.Errorf("%w: target has no registered webhook endpoint", ErrEligibility)
	ErrInvalidTransition   = fmt.Errorf("%w: status transition is not allowed", ErrEligibility)

	// * Concurrency errors.
	ErrBatchAlreadyPromoted = fmt.Errorf("%w: batch already promoted", ErrConcurrencyConflict)
	ErrLockHeld             = fmt.Errorf("%w: operation already in progress", ErrConcurrencyConflict)
	ErrStatusChanged        = fmt.Errorf("%w: row already moved past the expected status", ErrConcurrencyConflict)

	// ErrEventDeferred is returned by order update functions that changed the order
	// but must not mark the broker event as applied.
	ErrEventDeferred = errors.New("event deferred")
)

// Persistence wraps a storage failure so callers can match ErrPersistence.
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
