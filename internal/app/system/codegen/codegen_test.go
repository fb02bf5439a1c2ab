package codegen

import (
	"context"
	"errors"
	"regexp"
	"testing"
)

func neverTaken(ctx context.Context, code string) (bool, error) {
	return false, nil
}

func TestRandom_Format(t *testing.T) {
	ctx := context.Background()
	tenDigits := regexp.MustCompile(`^[1-9][0-9]{9}$`)

	for i := 0; i < 100; i++ {
		code, err := Random(ctx, neverTaken)
		if err != nil {
			t.Fatalf("Random: %v", err)
		}
		if !tenDigits.MatchString(code) {
			t.Fatalf("Random produced %q, want 10-digit numeric string", code)
		}
	}
}

func TestRandom_RetriesOnCollision(t *testing.T) {
	ctx := context.Background()
	calls := 0
	check := func(ctx context.Context, code string) (bool, error) {
		calls++
		return calls <= 3, nil // first three candidates are taken
	}

	code, err := Random(ctx, check)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	if code == "" {
		t.Fatal("Random returned empty code")
	}
	if calls != 4 {
		t.Errorf("checker called %d times, want 4", calls)
	}
}

func TestRandom_CheckerFailureAborts(t *testing.T) {
	ctx := context.Background()
	probeErr := errors.New("connection reset")
	check := func(ctx context.Context, code string) (bool, error) {
		return false, probeErr
	}

	code, err := Random(ctx, check)
	if err == nil {
		t.Fatal("expected error when checker fails")
	}
	if !errors.Is(err, probeErr) {
		t.Errorf("error = %v, want wrapped %v", err, probeErr)
	}
	if code != "" {
		t.Errorf("got tentative code %q alongside error", code)
	}
}

func TestRandom_Exhaustion(t *testing.T) {
	ctx := context.Background()
	alwaysTaken := func(ctx context.Context, code string) (bool, error) {
		return true, nil
	}

	_, err := Random(ctx, alwaysTaken)
	if !errors.Is(err, ErrExhausted) {
		t.Errorf("error = %v, want ErrExhausted", err)
	}
}

func TestSequential(t *testing.T) {
	ctx := context.Background()

	code, err := Sequential(ctx, "POS", 3, 0, neverTaken)
	if err != nil {
		t.Fatalf("Sequential: %v", err)
	}
	if code != "POS001" {
		t.Errorf("code = %q, want POS001", code)
	}

	code, err = Sequential(ctx, "POS", 3, 41, neverTaken)
	if err != nil {
		t.Fatalf("Sequential: %v", err)
	}
	if code != "POS042" {
		t.Errorf("code = %q, want POS042", code)
	}
}

func TestSequential_WalksPastTakenCodes(t *testing.T) {
	ctx := context.Background()
	taken := map[string]bool{"POS003": true, "POS004": true}
	check := func(ctx context.Context, code string) (bool, error) {
		return taken[code], nil
	}

	// Live count 2 suggests POS003, but POS003 and POS004 are taken
	// (records were deleted and recreated); expect POS005.
	code, err := Sequential(ctx, "POS", 3, 2, check)
	if err != nil {
		t.Fatalf("Sequential: %v", err)
	}
	if code != "POS005" {
		t.Errorf("code = %q, want POS005", code)
	}
}

func TestSequential_WidthOverflow(t *testing.T) {
	ctx := context.Background()

	// Counts beyond the padded width keep growing rather than wrapping.
	code, err := Sequential(ctx, "POS", 3, 999, neverTaken)
	if err != nil {
		t.Fatalf("Sequential: %v", err)
	}
	if code != "POS1000" {
		t.Errorf("code = %q, want POS1000", code)
	}
}

func TestValidPolicy(t *testing.T) {
	if !ValidPolicy(PolicyRandom) || !ValidPolicy(PolicySequential) {
		t.Error("known policies should be valid")
	}
	if ValidPolicy("counter") {
		t.Error("unknown policy should be invalid")
	}
}
