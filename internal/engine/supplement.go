package engine

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/harulab/AibouCheck/internal/genai"
	"github.com/harulab/AibouCheck/internal/models"
)

// DefaultSupplementTimeout bounds each generative request so a slow
// model never blocks reply delivery.
const DefaultSupplementTimeout = 5 * time.Second

// personaPrompts are the per-tone style instructions sent as the
// system prompt of a supplement request.
var personaPrompts = map[models.Tone]string{
	models.ToneGentleFemale:   "あなたは穏やかでやさしい女性の相棒です。包み込むような丁寧な口調で話します。",
	models.ToneBrightGirl:     "あなたは明るく元気な女の子の相棒です。テンション高めのフランクな口調で話します。",
	models.ToneCheerfulFriend: "あなたは気さくで快活な女子の相棒です。親しみやすい友達口調で話します。",
	models.ToneCoolGirl:       "あなたはクールで理知的な女性の相棒です。簡潔で無駄のない口調で話します。",
	models.ToneStrictFemale:   "あなたは厳しめだが面倒見のよい女性の相棒です。きっぱりとした口調で話します。",
	models.ToneCalmMale:       "あなたは落ち着いた男性の相棒です。静かで思慮深い口調で話します。",
}

// ambiguityGuidance maps each hedge category to the instruction that
// steers the supplemental remark.
var ambiguityGuidance = map[models.AmbiguityTag]string{
	models.AmbiguityNeutral:   "回答が当たり障りのない内容でした。軽くねぎらいつつ、一言だけ様子を気にかけてください。",
	models.AmbiguityUncertain: "回答に迷いや不確かさがにじんでいます。断定せず、そっと寄り添う一言を添えてください。",
	models.AmbiguityMildNeg:   "回答に軽い不調のニュアンスがあります。深刻にしすぎず、やさしく気づかう一言を添えてください。",
	models.AmbiguityStrongNeg: "回答に強い不調のニュアンスがあります。責めずに休息をすすめる一言を添えてください。",
}

const supplementConstraints = "1〜2文の短いコメントのみを返してください。診断や医学的な助言はしないでください。"

// SupplementGenerator produces optional persona-styled remarks for
// answers the ambiguity detector flagged. It degrades silently: any
// request failure drops that one remark and never surfaces to the
// reply path.
type SupplementGenerator struct {
	gen     genai.Generator
	timeout time.Duration
}

// NewSupplementGenerator wraps a generative client. A zero timeout
// falls back to DefaultSupplementTimeout.
func NewSupplementGenerator(gen genai.Generator, timeout time.Duration) *SupplementGenerator {
	if timeout <= 0 {
		timeout = DefaultSupplementTimeout
	}
	return &SupplementGenerator{gen: gen, timeout: timeout}
}

// Generate runs the ambiguity detector over the four answers and
// requests one remark per flagged answer. Requests run concurrently,
// each under its own timeout; results keep Q1→Q4 order and failed or
// empty remarks are simply omitted.
func (sg *SupplementGenerator) Generate(ctx context.Context, tone models.Tone, answers models.AnswerSet) []string {
	if sg == nil || sg.gen == nil {
		return nil
	}

	persona, ok := personaPrompts[tone]
	if !ok {
		persona = personaPrompts[models.DefaultTone]
	}

	texts := answers.Slice()
	results := make([]string, len(texts))
	var wg sync.WaitGroup
	for i, answer := range texts {
		category, flagged := DetectAmbiguity(answer)
		if !flagged {
			continue
		}
		wg.Add(1)
		go func(i int, answer string, category models.AmbiguityTag) {
			defer wg.Done()
			results[i] = sg.requestRemark(ctx, persona, category, answer)
		}(i, answer, category)
	}
	wg.Wait()

	var supplements []string
	for _, r := range results {
		if r != "" {
			supplements = append(supplements, r)
		}
	}
	return supplements
}

// requestRemark performs one bounded generative request. Every failure
// mode (timeout, transport error, empty completion) returns "".
func (sg *SupplementGenerator) requestRemark(ctx context.Context, persona string, category models.AmbiguityTag, answer string) string {
	reqCtx, cancel := context.WithTimeout(ctx, sg.timeout)
	defer cancel()

	systemPrompt := persona + "\n" + supplementConstraints
	userPrompt := ambiguityGuidance[category] + "\nユーザーの回答: " + answer

	remark, err := sg.gen.Generate(reqCtx, systemPrompt, userPrompt)
	if err != nil {
		slog.Warn("supplement request failed, omitting remark", "category", category, "error", err)
		return ""
	}
	remark = strings.TrimSpace(strings.ReplaceAll(remark, "\n", " "))
	if remark == "" {
		slog.Warn("supplement request returned empty completion, omitting remark", "category", category)
	}
	return remark
}
