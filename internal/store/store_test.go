package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestInsufficientPointsError_MatchesSentinel(t *testing.T) {
	var err error = &InsufficientPointsError{Required: 500, Confirmed: 100, Unconfirmed: 350}

	if !errors.Is(err, ErrInsufficientPoints) {
		t.Error("Expected errors.Is to match ErrInsufficientPoints")
	}

	wrapped := fmt.Errorf("purchase rejected: %w", err)
	if !errors.Is(wrapped, ErrInsufficientPoints) {
		t.Error("Expected match through wrapping")
	}

	var target *InsufficientPointsError
	if !errors.As(wrapped, &target) {
		t.Fatal("Expected errors.As to recover the typed error")
	}
	if target.Required != 500 || target.Confirmed != 100 || target.Unconfirmed != 350 {
		t.Errorf("Unexpected balances: %+v", target)
	}
}

func TestInsufficientPointsError_Message(t *testing.T) {
	err := &InsufficientPointsError{Required: 500, Confirmed: 100, Unconfirmed: 350}
	expected := "insufficient confirmed points: required 500, confirmed 100, unconfirmed 350"
	if err.Error() != expected {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrUserNotFound,
		ErrProductNotFound,
		ErrItemNotFound,
		ErrItemUnavailable,
		ErrAlreadyPurchased,
		ErrInsufficientPoints,
		ErrConcurrentModification,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("Sentinel %v unexpectedly matches %v", a, b)
			}
		}
	}
}
