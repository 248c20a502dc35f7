package circuit

import (
	"errors"
	"testing"
	"time"
)

var errFail = errors.New("fail")

func TestBreakerTripsAfterThreshold(t *testing.T) {
	b := NewBreaker(Config{FailureThreshold: 3, CooldownDuration: time.Hour, HalfOpenSuccesses: 1})

	for i := 0; i < 3; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("call %d refused early: %v", i, err)
		}
		b.Record(errFail)
	}

	if b.GetState() != StateOpen {
		t.Errorf("state = %s, want open", b.GetState())
	}
	if err := b.Allow(); !errors.Is(err, ErrOpen) {
		t.Errorf("err = %v, want ErrOpen", err)
	}
}

func TestBreakerSuccessResetsFailures(t *testing.T) {
	b := NewBreaker(Config{FailureThreshold: 2, CooldownDuration: time.Hour, HalfOpenSuccesses: 1})

	b.Record(errFail)
	b.Record(nil)
	b.Record(errFail)

	if b.GetState() != StateClosed {
		t.Errorf("state = %s, want closed (failures not consecutive)", b.GetState())
	}
}

func TestBreakerRecovery(t *testing.T) {
	b := NewBreaker(Config{FailureThreshold: 1, CooldownDuration: 10 * time.Millisecond, HalfOpenSuccesses: 2})

	b.Record(errFail)
	if b.GetState() != StateOpen {
		t.Fatalf("state = %s, want open", b.GetState())
	}

	time.Sleep(20 * time.Millisecond)

	if err := b.Allow(); err != nil {
		t.Fatalf("probe refused after cooldown: %v", err)
	}
	if b.GetState() != StateHalfOpen {
		t.Fatalf("state = %s, want half_open", b.GetState())
	}

	b.Record(nil)
	b.Record(nil)
	if b.GetState() != StateClosed {
		t.Errorf("state = %s, want closed after recovery", b.GetState())
	}
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	b := NewBreaker(Config{FailureThreshold: 1, CooldownDuration: 10 * time.Millisecond, HalfOpenSuccesses: 2})

	b.Record(errFail)
	time.Sleep(20 * time.Millisecond)
	if err := b.Allow(); err != nil {
		t.Fatal(err)
	}
	b.Record(errFail)

	if b.GetState() != StateOpen {
		t.Errorf("state = %s, want open after failed probe", b.GetState())
	}
}

func TestManagerPerModel(t *testing.T) {
	m := NewManager(Config{FailureThreshold: 1, CooldownDuration: time.Hour, HalfOpenSuccesses: 1})

	m.Get("model-a").Record(errFail)

	if m.Get("model-a").GetState() != StateOpen {
		t.Error("model-a should be open")
	}
	if m.Get("model-b").GetState() != StateClosed {
		t.Error("model-b should be unaffected")
	}
}
