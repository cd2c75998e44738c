package engine

import (
	"strings"
	"testing"

	"github.com/harulab/AibouCheck/internal/models"
)

func countBullets(reply string) int {
	return strings.Count(reply, "● ")
}

// Two complex predicates can hold at once; only the higher-priority
// remark may appear.
func TestComposeComplexRemarkExclusive(t *testing.T) {
	tags := Tags{
		PlayTime:  models.PlayTimeLong,
		Condition: models.ConditionPain,
		Sleep:     models.SleepNegative,
		Mood:      models.MoodNeutral,
	}
	b := bundles[models.ToneGentleFemale]
	reply := Compose(models.ToneGentleFemale, tags, nil)

	if !strings.Contains(reply, b.Complex[ComplexLongSleepNegative]) {
		t.Errorf("reply missing the long+sleep remark:\n%s", reply)
	}
	if strings.Contains(reply, b.Complex[ComplexLongPain]) {
		t.Errorf("reply contains a second remark, want at most one:\n%s", reply)
	}
}

// very_long has no dedicated phrase or rules of its own; it reuses the
// long phrasing and keeps triggering the long rules.
func TestComposeVeryLongFallsBackToLong(t *testing.T) {
	tags := Tags{
		PlayTime: models.PlayTimeVeryLong,
		Sleep:    models.SleepNegative,
	}
	b := bundles[models.ToneGentleFemale]
	reply := Compose(models.ToneGentleFemale, tags, nil)

	if !strings.Contains(reply, b.PlayTime[models.PlayTimeLong]) {
		t.Errorf("reply missing long play-time phrasing:\n%s", reply)
	}
	if !strings.Contains(reply, b.Complex[ComplexLongSleepNegative]) {
		t.Errorf("very_long did not trigger the long+sleep remark:\n%s", reply)
	}
}

// Tags without a dedicated phrase (eye, posture) use the neutral line
// instead of dropping the bullet.
func TestComposeEyeTagUsesNeutralLine(t *testing.T) {
	tags := Tags{Condition: models.ConditionEye}
	b := bundles[models.ToneGentleFemale]
	reply := Compose(models.ToneGentleFemale, tags, nil)

	if !strings.Contains(reply, b.Condition[models.ConditionNeutral]) {
		t.Errorf("reply missing neutral condition line:\n%s", reply)
	}
	if countBullets(reply) != 4 {
		t.Errorf("bullet count = %d, want 4:\n%s", countBullets(reply), reply)
	}
}

func TestComposeUnknownToneUsesDefault(t *testing.T) {
	tags := Tags{
		PlayTime:  models.PlayTimeNormal,
		Condition: models.ConditionNeutral,
		Sleep:     models.SleepNeutral,
		Mood:      models.MoodNeutral,
	}
	got := Compose(models.Tone("robot"), tags, nil)
	want := Compose(models.DefaultTone, tags, nil)
	if got != want {
		t.Errorf("unknown tone reply differs from default persona reply")
	}
}

// Zero-value tags must still yield a full reply: header, four bullets,
// no remark, no supplement section.
func TestComposeZeroTags(t *testing.T) {
	reply := Compose(models.ToneCoolGirl, Tags{}, nil)
	if !strings.Contains(reply, sectionHeader) {
		t.Errorf("reply missing section header:\n%s", reply)
	}
	if countBullets(reply) != 4 {
		t.Errorf("bullet count = %d, want 4:\n%s", countBullets(reply), reply)
	}
	if strings.Contains(reply, "💬") {
		t.Errorf("reply has a supplement section without supplements:\n%s", reply)
	}
}

func TestComposeSupplements(t *testing.T) {
	reply := Compose(models.ToneGentleFemale, Tags{}, []string{"ひとつめ", "ふたつめ"})
	if !strings.Contains(reply, "💬 ひとことメモ") {
		t.Errorf("reply missing supplement header:\n%s", reply)
	}
	if !strings.Contains(reply, "・ひとつめ") || !strings.Contains(reply, "・ふたつめ") {
		t.Errorf("reply missing supplement lines:\n%s", reply)
	}
	idx1 := strings.Index(reply, "・ひとつめ")
	idx2 := strings.Index(reply, "・ふたつめ")
	if idx1 > idx2 {
		t.Errorf("supplements out of order:\n%s", reply)
	}
}
