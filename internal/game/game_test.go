package game

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFeedbackOfIsTotal(t *testing.T) {
	want := map[int]Feedback{1: Correct, 2: Misplaced, 3: Absent}
	for v := -5; v <= 10; v++ {
		got := FeedbackOf(v)
		exp, ok := want[v]
		if !ok {
			exp = Unattempted
		}
		if got != exp {
			t.Errorf("FeedbackOf(%d) = %v, want %v", v, got, exp)
		}
	}
}

func TestCellDecodesBothShapes(t *testing.T) {
	var row Row
	body := `[1, {"letter":"b","value":2}, {"letter":"c"}, null, 9]`
	if err := json.Unmarshal([]byte(body), &row); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := Row{
		{Feedback: Correct},
		{Letter: "b", Feedback: Misplaced},
		{Letter: "c", Feedback: Unattempted},
		{Feedback: Unattempted},
		{Feedback: Unattempted},
	}
	if diff := cmp.Diff(want, row); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestCellOddValuesAreUnattempted(t *testing.T) {
	cases := map[string]Cell{
		`"x"`:                         {},
		`true`:                        {},
		`[1]`:                         {},
		`1.5`:                         {},
		`1e40`:                        {},
		`1.0`:                         {Feedback: Correct},
		`{"letter":"a","value":"1"}`:  {Letter: "a"},
		`{"letter":7,"value":3}`:      {Feedback: Absent},
		`{"letter":"b","value":null}`: {Letter: "b"},
		`{"letter":"c","value":2.0}`:  {Letter: "c", Feedback: Misplaced},
	}
	for body, want := range cases {
		var c Cell
		if err := json.Unmarshal([]byte(body), &c); err != nil {
			t.Errorf("Unmarshal(%s): %v", body, err)
			continue
		}
		if c != want {
			t.Errorf("Unmarshal(%s) = %+v, want %+v", body, c, want)
		}
	}
}

func TestWithLettersFillsFromGuess(t *testing.T) {
	row := WithLetters(Row{{Feedback: Correct}, {Letter: "x", Feedback: Absent}}, "ab")
	want := Row{{Letter: "A", Feedback: Correct}, {Letter: "X", Feedback: Absent}}
	if diff := cmp.Diff(want, row); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestGridIsAlwaysFiveByFive(t *testing.T) {
	g := Grid([]Row{{{Letter: "A", Feedback: Correct}}})
	if len(g) != MaxAttempts {
		t.Fatalf("rows = %d", len(g))
	}
	for _, r := range g {
		if len(r) != WordLength {
			t.Fatalf("cols = %d", len(r))
		}
	}
	if g[0][0].Feedback != Correct || g[0][1].Feedback != Unattempted || g[4][4].Feedback != Unattempted {
		t.Errorf("unexpected grid %+v", g)
	}
}

func TestNormalizeInput(t *testing.T) {
	cases := map[string]string{
		"crane":    "CRANE",
		"cr4ne!":   "CRNE",
		"abcdefgh": "ABCDE",
		" a b c ":  "ABC",
		"ñandu":    "ANDU",
		"":         "",
	}
	for in, want := range cases {
		if got := NormalizeInput(in); got != want {
			t.Errorf("NormalizeInput(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateGuessLength(t *testing.T) {
	for _, g := range []string{"", "A", "ABCD", "ABCDEF", "AB1DE"} {
		if err := ValidateGuess(g); !errors.Is(err, ErrInvalidGuess) {
			t.Errorf("ValidateGuess(%q) = %v, want ErrInvalidGuess", g, err)
		}
	}
	if err := ValidateGuess("ABCDE"); err != nil {
		t.Errorf("ValidateGuess(ABCDE) = %v", err)
	}
}

func TestRoundResetState(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	r := NewRound()
	_ = r.Apply(Row{}, false)
	r.Reset(now, DefaultInterval)

	if r.Remaining != MaxAttempts || r.Won || len(r.History) != 0 {
		t.Fatalf("unexpected state after reset: %+v", r)
	}
	if !r.Deadline.Equal(now.Add(300 * time.Second)) {
		t.Errorf("deadline = %v, want now+300s", r.Deadline)
	}
	if r.Status() != StatusInProgress {
		t.Errorf("status = %s", r.Status())
	}
}

func TestRoundApplyAppendsInOrder(t *testing.T) {
	r := NewRound()
	first := Row{{Letter: "A", Feedback: Absent}}
	second := Row{{Letter: "B", Feedback: Misplaced}}

	if err := r.Apply(first, false); err != nil {
		t.Fatal(err)
	}
	if err := r.Apply(second, false); err != nil {
		t.Fatal(err)
	}
	if r.Remaining != MaxAttempts-2 {
		t.Errorf("remaining = %d", r.Remaining)
	}
	if diff := cmp.Diff([]Row{first, second}, r.History); diff != "" {
		t.Errorf("history (-want +got):\n%s", diff)
	}
}

func TestRoundWinIsTerminal(t *testing.T) {
	r := NewRound()
	if err := r.Apply(Row{}, true); err != nil {
		t.Fatal(err)
	}
	if r.Status() != StatusWon || !r.Over() {
		t.Fatalf("status = %s", r.Status())
	}
	if err := r.Apply(Row{}, false); !errors.Is(err, ErrRoundOver) {
		t.Fatalf("apply after win = %v", err)
	}
	if len(r.History) != 1 || r.Remaining != MaxAttempts-1 {
		t.Errorf("state mutated after terminal: %+v", r)
	}
}

func TestRoundExhaustsAfterLastAttempt(t *testing.T) {
	r := NewRound()
	for i := 0; i < MaxAttempts; i++ {
		if err := r.Apply(Row{}, false); err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}
	if r.Remaining != 0 || r.Status() != StatusExhausted || !r.Over() {
		t.Fatalf("unexpected: %+v status=%s", r, r.Status())
	}
	if err := r.Apply(Row{}, false); !errors.Is(err, ErrRoundOver) {
		t.Errorf("apply on exhausted = %v", err)
	}
}
