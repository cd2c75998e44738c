// Package engine implements the health-check reply engine: play-time
// parsing, keyword tag classification, ambiguity detection, template
// composition, and optional GenAI supplements.
//
// Classification is deliberately a plain substring scan over fixed
// keyword lists. No stemming, no tokenization. The keyword groups and
// their priority order are a compatibility contract and must not be
// "improved".
package engine

import (
	"strings"

	"github.com/harulab/AibouCheck/internal/models"
)

// conditionGroup pairs a condition tag with its keyword list. Groups
// are evaluated top-to-bottom; the first match wins.
type conditionGroup struct {
	tag   models.ConditionTag
	words []string
}

// conditionGroups in priority order: pain > eye > posture > fatigue >
// positive. Anything unmatched is neutral.
var conditionGroups = []conditionGroup{
	{models.ConditionPain, []string{"痛", "肩", "腰", "頭痛", "しびれ", "指", "腕", "関節", "手", "腱鞘炎", "バネ指", "固まる", "力入る"}},
	{models.ConditionEye, []string{"目", "眼", "視", "かすみ", "しょぼしょぼ", "見", "霞む", "見え", "にじむ"}},
	{models.ConditionPosture, []string{"姿勢", "猫背", "首", "コリ", "凝り", "張り", "背中", "肩甲骨", "体勢", "反り"}},
	{models.ConditionFatigue, []string{"だる", "疲れ", "倦怠", "しんどい", "熱", "ヘトヘト"}},
	{models.ConditionPositive, []string{"元気", "好調", "絶好調", "調子いい"}},
}

// Sleep keyword groups, negative checked before positive.
var (
	sleepNegativeWords = []string{"寝れ", "眠れ", "不足", "寝つき", "悪", "途中", "短", "中断", "夜更かし", "朝方", "眠気", "ボーッ", "ぼんやり"}
	sleepPositiveWords = []string{"よく寝", "ぐっすり", "良", "ちゃんと", "深く眠れ"}
)

// Mood keyword groups, negative checked before positive. Latin hedges
// ("tilt") are matched against a lowercased copy of the text.
var (
	moodNegativeWords = []string{
		"つら", "不安", "イライラ", "落ち込", "悲し", "ストレス", "死", "むかつく", "うつ",
		"腹が立つ", "最悪", "ティルト", "無理ゲー", "心折れ", "ブチギレ", "萎え",
	}
	moodNegativeLatin = []string{"tilt"}
	moodPositiveWords = []string{"嬉しい", "楽しい", "順調", "最高", "充実", "ワクワク"}
)

// ambiguityGroup pairs an ambiguity tag with its hedge phrases.
type ambiguityGroup struct {
	tag   models.AmbiguityTag
	words []string
}

// ambiguityGroups in fixed order: neutral hedge > uncertain >
// mild negative > strong negative. First match wins; no match means
// the answer is unambiguous and no supplement is requested.
var ambiguityGroups = []ambiguityGroup{
	{models.AmbiguityNeutral, []string{"普通", "ふつう", "まあまあ", "ぼちぼち", "いつも通り", "変わらない"}},
	{models.AmbiguityUncertain, []string{"かも", "わからない", "わかんない", "微妙", "たぶん", "どうだろ", "気がする"}},
	{models.AmbiguityMildNeg, []string{"ちょっと", "少し", "やや", "あんまり", "いまいち", "そこそこ"}},
	{models.AmbiguityStrongNeg, []string{"すごく", "かなり", "めっちゃ", "全然", "限界", "もうだめ", "ほんとに無理"}},
}

// containsAny reports whether text contains any of the given words.
func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
