package engine

import (
	"testing"

	"github.com/harulab/AibouCheck/internal/models"
)

func TestClassifyCondition(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.ConditionTag
	}{
		{"pain outranks positive", "肩が痛いけど元気", models.ConditionPain},
		{"eye", "目がしょぼしょぼする", models.ConditionEye},
		{"posture", "猫背になってた気がする", models.ConditionPosture},
		{"fatigue", "ちょっとだるい", models.ConditionFatigue},
		{"positive", "今日は元気！", models.ConditionPositive},
		{"neutral", "特になし", models.ConditionNeutral},
		{"empty", "", models.ConditionNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyCondition(tt.text); got != tt.want {
				t.Errorf("ClassifyCondition(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifySleep(t *testing.T) {
	tests := []struct {
		text string
		want models.SleepTag
	}{
		{"あまり寝れてない", models.SleepNegative},
		{"寝つきが悪かった", models.SleepNegative},
		{"ぐっすり寝た", models.SleepPositive},
		{"まあまあかな", models.SleepNeutral},
		{"", models.SleepNeutral},
	}
	for _, tt := range tests {
		if got := ClassifySleep(tt.text); got != tt.want {
			t.Errorf("ClassifySleep(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestClassifyMood(t *testing.T) {
	tests := []struct {
		text string
		want models.MoodTag
	}{
		{"イライラする", models.MoodNegative},
		{"TILT気味だった", models.MoodNegative},
		{"楽しい気分", models.MoodPositive},
		{"とくに何も", models.MoodNeutral},
		{"", models.MoodNeutral},
	}
	for _, tt := range tests {
		if got := ClassifyMood(tt.text); got != tt.want {
			t.Errorf("ClassifyMood(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

// Under the pooled policy a keyword in the mood answer can set the
// condition tag; the per-axis policy keeps answers separate.
func TestClassifyAnswersPolicies(t *testing.T) {
	answers := models.AnswerSet{
		Condition: "特になし",
		Sleep:     "ぐっすり寝た",
		Mood:      "肩が痛くてつらい",
	}

	cond, sleep, mood := ClassifyAnswers(answers, PolicyPooled)
	if cond != models.ConditionPain {
		t.Errorf("pooled condition = %s, want %s", cond, models.ConditionPain)
	}
	if sleep != models.SleepPositive {
		t.Errorf("pooled sleep = %s, want %s", sleep, models.SleepPositive)
	}
	if mood != models.MoodNegative {
		t.Errorf("pooled mood = %s, want %s", mood, models.MoodNegative)
	}

	cond, sleep, mood = ClassifyAnswers(answers, PolicyPerAxis)
	if cond != models.ConditionNeutral {
		t.Errorf("per-axis condition = %s, want %s", cond, models.ConditionNeutral)
	}
	if sleep != models.SleepPositive {
		t.Errorf("per-axis sleep = %s, want %s", sleep, models.SleepPositive)
	}
	if mood != models.MoodNegative {
		t.Errorf("per-axis mood = %s, want %s", mood, models.MoodNegative)
	}
}

func TestDetectAmbiguity(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		want     models.AmbiguityTag
		wantFlag bool
	}{
		{"neutral hedge", "普通かな", models.AmbiguityNeutral, true},
		{"neutral beats uncertain", "普通かも", models.AmbiguityNeutral, true},
		{"uncertain beats mild", "ちょっと微妙かも", models.AmbiguityUncertain, true},
		{"mild negative", "ちょっとだけ", models.AmbiguityMildNeg, true},
		{"strong negative", "すごくしんどい", models.AmbiguityStrongNeg, true},
		{"no hedge", "頭痛がする", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, flagged := DetectAmbiguity(tt.text)
			if got != tt.want || flagged != tt.wantFlag {
				t.Errorf("DetectAmbiguity(%q) = (%s, %v), want (%s, %v)", tt.text, got, flagged, tt.want, tt.wantFlag)
			}
		})
	}
}
