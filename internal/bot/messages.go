package bot

import (
	"strconv"
	"strings"

	"github.com/harulab/AibouCheck/internal/models"
)

// Trigger phrases. Matching is whole-message after trimming, so a
// trigger inside a longer sentence does not start a check-in.
var (
	checkTriggers      = []string{"体調チェック", "たいちょう", "check"}
	toneChangeTriggers = []string{"トーン変更", "性格変更", "キャラ変更"}
	cancelTriggers     = []string{"キャンセル", "やめる", "cancel"}
)

// guideText is sent exactly once, before the first check-in of a user
// who has never seen it.
const guideText = "はじめまして！AibouCheckだよ🎮\n" +
	"ゲームのあとに「体調チェック」と送ってくれたら、4つの質問であなたの状態をいっしょに振り返るね。\n" +
	"「トーン変更」でわたしの話し方を変えられるよ。\n" +
	"途中でやめたくなったら「キャンセル」と送ってね。"

// questionTexts holds the four survey questions in canonical order:
// play time, condition, sleep, mood.
var questionTexts = [4]string{
	"Q1. 今日はどれくらいゲームをプレイした？（例：90分くらい）",
	"Q2. 体の調子はどう？気になるところがあれば教えてね。",
	"Q3. 昨日の睡眠はどうだった？",
	"Q4. 今の気分はどんな感じ？",
}

const cancelledText = "わかった、今回はここまでにするね。また「体調チェック」と送ってくれたら続けよう！"

// toneMenuText renders the numbered persona menu.
func toneMenuText() string {
	var b strings.Builder
	b.WriteString("どの話し方がいい？番号で選んでね。\n")
	for i, tone := range models.AllTones {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(models.ToneLabels[tone])
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func toneChosenText(tone models.Tone) string {
	return "これからは「" + models.ToneLabels[tone] + "」で話すね！"
}

func matchesAny(body string, triggers []string) bool {
	trimmed := strings.TrimSpace(body)
	for _, t := range triggers {
		if strings.EqualFold(trimmed, t) {
			return true
		}
	}
	return false
}
