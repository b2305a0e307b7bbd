package delivery

import "testing"

func TestValidTransitions(t *testing.T) {
	valid := []struct{ from, to Status }{
		{Queued, Sending},
		{Sending, Sent},
		{Sent, Delivered},
		{Delivered, Read},
		{Queued, Failed},
		{Sending, Failed},
		{Sent, Failed},
		{Failed, Queued},
	}
	for _, tt := range valid {
		if !Valid(tt.from, tt.to) {
			t.Errorf("Valid(%s, %s) = false, want true", tt.from, tt.to)
		}
	}
}

func TestInvalidTransitions(t *testing.T) {
	invalid := []struct{ from, to Status }{
		{Queued, Delivered}, // must pass through sending and sent
		{Queued, Read},
		{Sending, Read},
		{Read, Delivered}, // read is terminal
		{Read, Failed},
		{Delivered, Failed}, // a delivered message cannot fail
	}
	for _, tt := range invalid {
		if Valid(tt.from, tt.to) {
			t.Errorf("Valid(%s, %s) = true, want false", tt.from, tt.to)
		}
	}
}

func TestAdvanceProgression(t *testing.T) {
	// queued -> sending -> sent -> delivered, and then done.
	s := Queued
	var walked []Status
	for {
		to, done := Advance(s)
		if done {
			break
		}
		walked = append(walked, to)
		s = to
	}
	want := []Status{Sending, Sent, Delivered}
	if len(walked) != len(want) {
		t.Fatalf("walked %v, want %v", walked, want)
	}
	for i := range want {
		if walked[i] != want[i] {
			t.Errorf("step %d = %s, want %s", i, walked[i], want[i])
		}
	}
}

func TestAdvanceRetriesFailed(t *testing.T) {
	to, done := Advance(Failed)
	if done || to != Queued {
		t.Errorf("Advance(Failed) = (%s, %v), want re-queue", to, done)
	}
}

func TestAdvanceNeverReachesRead(t *testing.T) {
	if to, done := Advance(Delivered); !done {
		t.Errorf("Advance(Delivered) = %s, want done (read requires the recipient view)", to)
	}
}

func TestParse(t *testing.T) {
	for _, s := range []Status{Queued, Sending, Sent, Delivered, Read, Failed} {
		got, err := Parse(string(s))
		if err != nil || got != s {
			t.Errorf("Parse(%q) = (%s, %v)", s, got, err)
		}
	}
	if _, err := Parse("bogus"); err == nil {
		t.Error("Parse(bogus) should fail")
	}
}
