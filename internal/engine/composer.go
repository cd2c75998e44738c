package engine

import (
	"log/slog"
	"strings"

	"github.com/harulab/AibouCheck/internal/models"
)

// sectionHeader labels the bullet block in every reply.
const sectionHeader = "📊 今日の状態まとめ"

// complexRule pairs a remark key with its tag predicate. Rules are
// evaluated in order and at most one remark is emitted: the first
// rule whose predicate holds and whose template exists for the tone.
type complexRule struct {
	key  ComplexKey
	when func(t Tags) bool
}

// timeLong treats very_long as long so the four-tier scheme keeps
// triggering the long_* rules.
func timeLong(tag models.PlayTimeTag) bool {
	return tag == models.PlayTimeLong || tag == models.PlayTimeVeryLong
}

var complexRules = []complexRule{
	{ComplexLongSleepNegative, func(t Tags) bool { return timeLong(t.PlayTime) && t.Sleep == models.SleepNegative }},
	{ComplexLongPain, func(t Tags) bool { return timeLong(t.PlayTime) && t.Condition == models.ConditionPain }},
	{ComplexLongFatigue, func(t Tags) bool { return timeLong(t.PlayTime) && t.Condition == models.ConditionFatigue }},
	{ComplexShortMoodPositive, func(t Tags) bool { return t.PlayTime == models.PlayTimeShort && t.Mood == models.MoodPositive }},
	{ComplexPainMoodNegative, func(t Tags) bool { return t.Condition == models.ConditionPain && t.Mood == models.MoodNegative }},
	{ComplexFatigueMoodNegative, func(t Tags) bool { return t.Condition == models.ConditionFatigue && t.Mood == models.MoodNegative }},
	{ComplexGoodConditionSleepNegative, func(t Tags) bool { return t.Condition == models.ConditionPositive && t.Sleep == models.SleepNegative }},
}

// selectComplexRemark returns the remark text for the first satisfied
// rule that has a template in the bundle, or "" when none applies.
// A missing template entry is not an error; the rule is skipped.
func selectComplexRemark(b *Bundle, tags Tags) string {
	for _, rule := range complexRules {
		if !rule.when(tags) {
			continue
		}
		if text, ok := b.Complex[rule.key]; ok && text != "" {
			return text
		}
		slog.Debug("complex rule matched but template missing, skipping", "key", rule.key)
	}
	return ""
}

// playTimeLine resolves the play-time bullet. The phrase tables
// predate the very_long tier, so very_long falls back to the long
// phrasing when no dedicated entry exists.
func playTimeLine(b *Bundle, tag models.PlayTimeTag) string {
	if text, ok := b.PlayTime[tag]; ok {
		return text
	}
	if tag == models.PlayTimeVeryLong {
		if text, ok := b.PlayTime[models.PlayTimeLong]; ok {
			return text
		}
	}
	return b.PlayTime[models.PlayTimeNormal]
}

// conditionLine resolves the condition bullet. The phrase tables carry
// no dedicated eye/posture phrasing, so those tags fall back to the
// neutral line rather than failing.
func conditionLine(b *Bundle, tag models.ConditionTag) string {
	if text, ok := b.Condition[tag]; ok {
		return text
	}
	slog.Debug("no condition phrase for tag, using neutral", "tag", tag)
	return b.Condition[models.ConditionNeutral]
}

func sleepLine(b *Bundle, tag models.SleepTag) string {
	if text, ok := b.Sleep[tag]; ok {
		return text
	}
	return b.Sleep[models.SleepNeutral]
}

func moodLine(b *Bundle, tag models.MoodTag) string {
	if text, ok := b.Mood[tag]; ok {
		return text
	}
	return b.Mood[models.MoodNeutral]
}

// Compose assembles the reply body for the given tone and resolved
// tags: intro, section header, four bullets, at most one complex
// remark, outro. Supplements, when present, are appended as a trailing
// section. Compose is total: it returns usable text for any input.
func Compose(tone models.Tone, tags Tags, supplements []string) string {
	b := bundleFor(tone)

	bullets := strings.Join([]string{
		"● プレイ時間：" + playTimeLine(b, tags.PlayTime),
		"● 体調：" + conditionLine(b, tags.Condition),
		"● 睡眠：" + sleepLine(b, tags.Sleep),
		"● 気分：" + moodLine(b, tags.Mood),
	}, "\n")

	var lines []string
	if b.Intro != "" {
		lines = append(lines, b.Intro, "")
	}
	lines = append(lines, sectionHeader, "", bullets)
	if remark := selectComplexRemark(b, tags); remark != "" {
		lines = append(lines, "", remark)
	}
	if len(supplements) > 0 {
		lines = append(lines, "", "💬 ひとことメモ")
		for _, s := range supplements {
			lines = append(lines, "・"+s)
		}
	}
	if b.Outro != "" {
		lines = append(lines, "", b.Outro)
	}
	return strings.Join(lines, "\n")
}
