package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/harulab/AibouCheck/internal/models"
)

// fakeGenerator scripts the generative client for supplement tests.
type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func TestGenerateHealthReplyNormalDay(t *testing.T) {
	eng := New()
	answers := models.AnswerSet{
		PlayTime:  "90分くらい",
		Condition: "特になし",
		Sleep:     "ぐっすり寝た",
		Mood:      "楽しい気分",
	}
	reply := eng.GenerateHealthReply(context.Background(), models.ToneGentleFemale, answers)

	b := bundles[models.ToneGentleFemale]
	for _, want := range []string{
		b.Intro,
		sectionHeader,
		b.PlayTime[models.PlayTimeNormal],
		b.Condition[models.ConditionNeutral],
		b.Sleep[models.SleepPositive],
		b.Mood[models.MoodPositive],
		b.Outro,
	} {
		if !strings.Contains(reply, want) {
			t.Errorf("reply missing %q:\n%s", want, reply)
		}
	}
}

func TestGenerateHealthReplyLongSessionWithPain(t *testing.T) {
	eng := New()
	answers := models.AnswerSet{
		PlayTime:  "300分",
		Condition: "頭痛がする",
		Sleep:     "まあまあ",
		Mood:      "イライラする",
	}
	reply := eng.GenerateHealthReply(context.Background(), models.ToneCoolGirl, answers)

	b := bundles[models.ToneCoolGirl]
	for _, want := range []string{
		b.PlayTime[models.PlayTimeLong],
		b.Condition[models.ConditionPain],
		b.Mood[models.MoodNegative],
		b.Complex[ComplexLongPain],
	} {
		if !strings.Contains(reply, want) {
			t.Errorf("reply missing %q:\n%s", want, reply)
		}
	}
	if strings.Contains(reply, b.Complex[ComplexPainMoodNegative]) {
		t.Errorf("reply contains a second remark:\n%s", reply)
	}
}

// A parse miss lands in the shortest tier rather than failing.
func TestGenerateHealthReplyParseMiss(t *testing.T) {
	eng := New()
	answers := models.AnswerSet{PlayTime: "けっこう遊んだ"}
	reply := eng.GenerateHealthReply(context.Background(), models.ToneBrightGirl, answers)

	b := bundles[models.ToneBrightGirl]
	if !strings.Contains(reply, b.PlayTime[models.PlayTimeShort]) {
		t.Errorf("reply missing short play-time phrasing:\n%s", reply)
	}
}

// Empty answers must still produce a complete reply.
func TestGenerateHealthReplyEmptyAnswers(t *testing.T) {
	eng := New()
	reply := eng.GenerateHealthReply(context.Background(), models.ToneCalmMale, models.AnswerSet{})
	if reply == "" {
		t.Fatal("reply is empty")
	}
	if countBullets(reply) != 4 {
		t.Errorf("bullet count = %d, want 4:\n%s", countBullets(reply), reply)
	}
}

func TestGenerateHealthReplyWithSupplements(t *testing.T) {
	gen := &fakeGenerator{reply: "ゆっくり休んでね。"}
	eng := New(WithSupplements(NewSupplementGenerator(gen, 0)))
	answers := models.AnswerSet{
		PlayTime:  "60分",
		Condition: "普通",
		Sleep:     "ちょっと微妙かも",
		Mood:      "楽しい気分",
	}
	reply := eng.GenerateHealthReply(context.Background(), models.ToneGentleFemale, answers)

	if !strings.Contains(reply, "💬 ひとことメモ") {
		t.Errorf("reply missing supplement section:\n%s", reply)
	}
	if strings.Count(reply, "・ゆっくり休んでね。") != 2 {
		t.Errorf("want one remark per flagged answer (condition, sleep):\n%s", reply)
	}
	if gen.calls != 2 {
		t.Errorf("generator calls = %d, want 2", gen.calls)
	}
}

// A failing generative backend must not change the deterministic part
// of the reply.
func TestGenerateHealthReplySupplementFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("backend down")}
	withSupplements := New(WithSupplements(NewSupplementGenerator(gen, 0)))
	plain := New()
	answers := models.AnswerSet{
		PlayTime:  "60分",
		Condition: "普通",
		Sleep:     "ぐっすり寝た",
		Mood:      "楽しい気分",
	}

	got := withSupplements.GenerateHealthReply(context.Background(), models.ToneStrictFemale, answers)
	want := plain.GenerateHealthReply(context.Background(), models.ToneStrictFemale, answers)
	if got != want {
		t.Errorf("supplement failure altered the reply:\ngot:\n%s\nwant:\n%s", got, want)
	}
	if gen.calls == 0 {
		t.Error("generator was never invoked")
	}
}

func TestEngineFourTierOption(t *testing.T) {
	eng := New(WithTierScheme(FourTier))
	answers := models.AnswerSet{PlayTime: "300分"}
	reply := eng.GenerateHealthReply(context.Background(), models.ToneGentleFemale, answers)

	// 300 minutes is very_long under four tiers, which reuses the long
	// phrasing in personas without a dedicated entry.
	b := bundles[models.ToneGentleFemale]
	if !strings.Contains(reply, b.PlayTime[models.PlayTimeLong]) {
		t.Errorf("reply missing long play-time phrasing:\n%s", reply)
	}
}
