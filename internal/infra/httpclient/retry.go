package httpclient

import (
	"context"
	"time"
)

// Outcome is the verdict on a single attempt.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeRetry
	OutcomeTerminal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRetry:
		return "retry"
	case OutcomeTerminal:
		return "terminal"
	}
	return "unknown"
}

// Classify decides what to do after one attempt. status is ignored when err
// is non-nil; budgetLeft reports whether another attempt is allowed.
func Classify(status int, err error, budgetLeft bool) Outcome {
	if err != nil {
		if budgetLeft {
			return OutcomeRetry
		}
		return OutcomeTerminal
	}

	if isSuccess(status) {
		return OutcomeSuccess
	}

	// Only 5xx is worth another try; 4xx and friends will not change.
	if isServerError(status) && budgetLeft {
		return OutcomeRetry
	}
	return OutcomeTerminal
}

// Sleeper waits between attempts.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to Sleeper.
type SleeperFunc func(ctx context.Context, d time.Duration) error

func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

type timerSleeper struct{}

func (timerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
