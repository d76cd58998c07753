package subscription

import "errors"

var (
	ErrNotFound      = errors.New("subscription.errors.not_found")
	ErrAlreadyExists = errors.New("subscription.errors.already_exists")
	ErrInvalidUserID = errors.New("subscription.errors.invalid_user_id")
	ErrStoreFailure  = errors.New("subscription.errors.store_failure")
)
