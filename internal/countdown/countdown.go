// Package countdown derives the advisory "next word in m:ss" display from a
// stored round-start anchor. Nothing here changes round state; reaching zero
// only means the display reads 0:00.
package countdown

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/robalobadob/wordle/apps/go-client/internal/store"
)

// Remaining returns interval minus the whole seconds elapsed since anchor,
// clamped at zero.
func Remaining(anchor, now time.Time, interval time.Duration) time.Duration {
	elapsed := now.Unix() - anchor.Unix()
	left := int64(interval/time.Second) - elapsed
	if left < 0 {
		left = 0
	}
	return time.Duration(left) * time.Second
}

// Format renders d as m:ss. Negative durations render as 0:00.
func Format(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// SaveAnchor records t (as Unix seconds) as the start of the current round.
func SaveAnchor(ctx context.Context, st store.Store, t time.Time) error {
	return st.Set(ctx, store.KeyStartTime, strconv.FormatInt(t.Unix(), 10))
}

// LoadAnchor reads the stored round start. ok is false when none is stored
// or the stored value is not a Unix timestamp.
func LoadAnchor(ctx context.Context, st store.Store) (anchor time.Time, ok bool, err error) {
	v, found, err := st.Get(ctx, store.KeyStartTime)
	if err != nil || !found {
		return time.Time{}, false, err
	}
	secs, perr := strconv.ParseInt(v, 10, 64)
	if perr != nil {
		return time.Time{}, false, nil
	}
	return time.Unix(secs, 0), true, nil
}

// Ticker calls fn once per second until ctx is done.
type Ticker struct {
	clock clockwork.Clock
}

// NewTicker returns a Ticker driven by clock; nil means the real clock.
func NewTicker(clock clockwork.Clock) *Ticker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Ticker{clock: clock}
}

// Run blocks, invoking fn on every tick, and returns when ctx is cancelled.
func (t *Ticker) Run(ctx context.Context, fn func(now time.Time)) {
	tk := t.clock.NewTicker(time.Second)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tk.Chan():
			fn(now)
		}
	}
}
