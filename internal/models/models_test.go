package models

import "testing"

func TestToneFromChoice(t *testing.T) {
	for i, want := range AllTones {
		choice := string(rune('1' + i))
		got, ok := ToneFromChoice(choice)
		if !ok || got != want {
			t.Errorf("ToneFromChoice(%q) = (%s, %v), want (%s, true)", choice, got, ok, want)
		}
	}
	for _, choice := range []string{"0", "7", "", "一", "gentle_female"} {
		if _, ok := ToneFromChoice(choice); ok {
			t.Errorf("ToneFromChoice(%q) succeeded, want failure", choice)
		}
	}
}

func TestIsValidTone(t *testing.T) {
	for _, tone := range AllTones {
		if !IsValidTone(tone) {
			t.Errorf("IsValidTone(%s) = false, want true", tone)
		}
	}
	if IsValidTone(Tone("robot")) {
		t.Error("IsValidTone(robot) = true, want false")
	}
	if !IsValidTone(DefaultTone) {
		t.Error("DefaultTone is not a valid tone")
	}
}

func TestAnswerSetSlice(t *testing.T) {
	a := AnswerSet{PlayTime: "p", Condition: "c", Sleep: "s", Mood: "m"}
	got := a.Slice()
	want := [4]string{"p", "c", "s", "m"}
	if got != want {
		t.Errorf("Slice() = %v, want %v", got, want)
	}
}
