package avito

import "fmt"

// AuthError means the token exchange failed; the request it belongs to
// cannot proceed.
type AuthError struct {
	Status int
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("avito auth: %v", e.Err)
	}
	return fmt.Sprintf("avito auth: token endpoint returned %d", e.Status)
}

func (e *AuthError) Unwrap() error { return e.Err }

// ItemsError means the primary item-stats source failed.
type ItemsError struct {
	Status int
	Err    error
}

func (e *ItemsError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("avito item stats: %v", e.Err)
	}
	return fmt.Sprintf("avito item stats: upstream returned %d", e.Status)
}

func (e *ItemsError) Unwrap() error { return e.Err }

// CallsError means the secondary call-stats source failed. Callers are
// expected to treat it as recoverable.
type CallsError struct {
	Status int
	Err    error
}

func (e *CallsError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("avito call stats: %v", e.Err)
	}
	return fmt.Sprintf("avito call stats: upstream returned %d", e.Status)
}

func (e *CallsError) Unwrap() error { return e.Err }
