package countdown

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/robalobadob/wordle/apps/go-client/internal/store"
)

func TestRemainingClampsAtZero(t *testing.T) {
	anchor := time.Unix(1_700_000_000, 0)
	cases := []struct {
		after time.Duration
		want  time.Duration
		shown string
	}{
		{0, 300 * time.Second, "5:00"},
		{1 * time.Second, 299 * time.Second, "4:59"},
		{250 * time.Second, 50 * time.Second, "0:50"},
		{300 * time.Second, 0, "0:00"},
		{301 * time.Second, 0, "0:00"},
		{time.Hour, 0, "0:00"},
	}
	for _, c := range cases {
		got := Remaining(anchor, anchor.Add(c.after), 5*time.Minute)
		if got != c.want {
			t.Errorf("after %v: remaining = %v, want %v", c.after, got, c.want)
		}
		if s := Format(got); s != c.shown {
			t.Errorf("after %v: shown %q, want %q", c.after, s, c.shown)
		}
	}
}

func TestFormatNegative(t *testing.T) {
	if got := Format(-3 * time.Second); got != "0:00" {
		t.Errorf("Format(-3s) = %q", got)
	}
}

func TestAnchorRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	if _, ok, err := LoadAnchor(ctx, st); ok || err != nil {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}
	at := time.Unix(1_700_000_123, 0)
	if err := SaveAnchor(ctx, st, at); err != nil {
		t.Fatal(err)
	}
	got, ok, err := LoadAnchor(ctx, st)
	if err != nil || !ok || !got.Equal(at) {
		t.Fatalf("LoadAnchor = %v ok=%v err=%v", got, ok, err)
	}

	_ = st.Set(ctx, store.KeyStartTime, "not-a-number")
	if _, ok, err := LoadAnchor(ctx, st); ok || err != nil {
		t.Fatalf("garbage anchor: ok=%v err=%v", ok, err)
	}
}

func TestTickerFiresEverySecond(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticks := make(chan time.Time, 4)
	done := make(chan struct{})
	go func() {
		NewTicker(clock).Run(ctx, func(now time.Time) { ticks <- now })
		close(done)
	}()

	waitCtx, waitCancel := context.WithTimeout(ctx, 2*time.Second)
	defer waitCancel()
	if err := clock.BlockUntilContext(waitCtx, 1); err != nil {
		t.Fatalf("ticker never registered: %v", err)
	}

	clock.Advance(time.Second)
	select {
	case <-ticks:
	case <-time.After(2 * time.Second):
		t.Fatal("no tick after advancing one second")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ticker did not stop on cancel")
	}
}
