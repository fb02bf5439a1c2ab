// Package codegen mints human-readable codes for teachers and positions.
//
// Two policies are supported: Random (10-digit numeric string) and
// Sequential (prefix + zero-padded counter). Both probe the store through
// a Checker before returning a candidate, and both bound their retry loop
// so a pathological store state cannot spin forever. The store-level
// unique index on the code field remains the second line of defense
// against two requests minting the same code concurrently.
package codegen

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
)

// Checker reports whether a candidate code is already held by a live
// (non-deleted) record.
type Checker func(ctx context.Context, code string) (bool, error)

// maxAttempts bounds the retry loop for both policies.
const maxAttempts = 50

// ErrExhausted is returned when no unused code was found within the
// attempt bound.
var ErrExhausted = errors.New("codegen: no unused code found")

// Policy names accepted by configuration.
const (
	PolicyRandom     = "random"
	PolicySequential = "sequential"
)

// ValidPolicy reports whether name is a known generation policy.
func ValidPolicy(name string) bool {
	return name == PolicyRandom || name == PolicySequential
}

// Random returns a 10-digit numeric code (first digit nonzero) that the
// checker reports as unused. A checker failure aborts immediately; no
// tentative code is ever returned alongside an error.
func Random(ctx context.Context, check Checker) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code := fmt.Sprintf("%d", 1_000_000_000+rand.Int64N(9_000_000_000))
		inUse, err := check(ctx, code)
		if err != nil {
			return "", fmt.Errorf("codegen: checking code: %w", err)
		}
		if !inUse {
			return code, nil
		}
	}
	return "", ErrExhausted
}

// Sequential returns prefix + zero-padded(count+1), advancing the counter
// past codes the checker reports as taken. count is typically the live
// record count, so after deletions the first candidates may collide; the
// probe loop walks forward until a free slot is found.
func Sequential(ctx context.Context, prefix string, width int, count int64, check Checker) (string, error) {
	next := count + 1
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code := fmt.Sprintf("%s%0*d", prefix, width, next)
		inUse, err := check(ctx, code)
		if err != nil {
			return "", fmt.Errorf("codegen: checking code: %w", err)
		}
		if !inUse {
			return code, nil
		}
		next++
	}
	return "", ErrExhausted
}
