package engine

import "github.com/harulab/AibouCheck/internal/models"

// ComplexKey identifies a combined-condition remark template.
type ComplexKey string

const (
	ComplexLongSleepNegative          ComplexKey = "long_sleep_negative"
	ComplexLongPain                   ComplexKey = "long_pain"
	ComplexLongFatigue                ComplexKey = "long_fatigue"
	ComplexShortMoodPositive          ComplexKey = "short_mood_positive"
	ComplexPainMoodNegative           ComplexKey = "pain_mood_negative"
	ComplexFatigueMoodNegative        ComplexKey = "fatigue_mood_negative"
	ComplexGoodConditionSleepNegative ComplexKey = "good_condition_sleep_negative"
)

// Bundle is one persona's static phrase table. Bundles are loaded at
// startup and never mutated.
type Bundle struct {
	Intro     string
	Outro     string
	PlayTime  map[models.PlayTimeTag]string
	Condition map[models.ConditionTag]string
	Sleep     map[models.SleepTag]string
	Mood      map[models.MoodTag]string
	Complex   map[ComplexKey]string
}

// bundleFor looks up the phrase bundle for a tone, falling back to the
// default persona for unknown ids. It never fails.
func bundleFor(tone models.Tone) *Bundle {
	if b, ok := bundles[tone]; ok {
		return b
	}
	return bundles[models.DefaultTone]
}

var bundles = map[models.Tone]*Bundle{
	models.ToneGentleFemale: {
		Intro: "今日のあなたの状態をみていきましょうか。",
		Outro: "無理は禁物よ。今日はあなた自身を労わってあげて。私との約束よ。\n危ないことしてないかみてあげるから、また明日もいらっしゃい。",
		PlayTime: map[models.PlayTimeTag]string{
			models.PlayTimeShort:  "短時間で良い楽しみ方ができたようね。",
			models.PlayTimeNormal: "無理のないプレイ時間だったみたいね。",
			models.PlayTimeLong:   "少し長いプレイになっていたようね。身体のことも気にかけてね。",
		},
		Condition: map[models.ConditionTag]string{
			models.ConditionPositive: "体調は整っているようね。",
			models.ConditionPain:     "どこか痛みが出ているみたいね。少し心配だわ。",
			models.ConditionFatigue:  "疲れが強く出ているみたいね。無理しすぎないで。",
			models.ConditionNeutral:  "体調は大きく崩れていないようね。",
		},
		Sleep: map[models.SleepTag]string{
			models.SleepPositive: "しっかり眠れているのはとても良い兆候よ。",
			models.SleepNegative: "睡眠が足りていないのが気になるわ。心も身体も休息が必要よ。",
			models.SleepNeutral:  "睡眠は大きな問題は無さそうね。",
		},
		Mood: map[models.MoodTag]string{
			models.MoodPositive: "前向きな気分で過ごせているのは本当に素敵ね。",
			models.MoodNegative: "気持ちが揺れていたみたいね。そんな日もあるわ。",
			models.MoodNeutral:  "気分の波は比較的落ち着いているみたいね。",
		},
		Complex: map[ComplexKey]string{
			ComplexLongSleepNegative:          "長くプレイしたうえに睡眠も不足しているようね。心も身体も負担が大きいわ。今日はしっかり休むことを優先しましょう。",
			ComplexLongPain:                   "長く遊んだうえに痛みまで出ているのね。身体がかなり負担を感じているサインよ。",
			ComplexLongFatigue:                "長時間のプレイで疲れが強く出ているようね。今日は無理をしないで。",
			ComplexShortMoodPositive:          "短い時間で楽しめて、気分も良さそうね。本当に素敵な状態よ。",
			ComplexPainMoodNegative:           "痛みがあるうえに気持ちも沈んでいるようね…。まずは身体を楽にしてあげて、少し心を落ち着けましょう。",
			ComplexFatigueMoodNegative:        "疲れが強く気持ちも落ち込み気味のようね。しっかり休息を取る時間を作ってね。",
			ComplexGoodConditionSleepNegative: "体調は良いみたいだけれど、睡眠が足りていないのが気になるわ。コンディションを維持するためにも休息を大切にしてね。",
		},
	},
	models.ToneBrightGirl: {
		Intro: "よしっ！今日のコンディション、一緒にチェックしてこ〜！",
		Outro: "じゃあ今日はここまで！無理せずゆっくりしてね〜！\nまた明日ね～！",
		PlayTime: map[models.PlayTimeTag]string{
			models.PlayTimeShort:  "短い時間で遊んだんだね！いい感じに楽しめたみたいじゃん！",
			models.PlayTimeNormal: "ほどよい時間で遊べてるね〜！バランスいいよ！",
			models.PlayTimeLong:   "けっこう長く遊んだね！？ちょっと疲れ出てない？",
		},
		Condition: map[models.ConditionTag]string{
			models.ConditionPositive: "体調バッチリって感じだね！いいじゃんいいじゃん！",
			models.ConditionPain:     "体つらそうだね？それは休憩がほしいサインじゃない？ちょっとストレッチしよしよ！",
			models.ConditionFatigue:  "疲れてるみたいだね…ちょっと休んだほうが絶対いいよ〜！",
			models.ConditionNeutral:  "体調は大きな問題なさそうだね！",
		},
		Sleep: map[models.SleepTag]string{
			models.SleepPositive: "ちゃんと寝れてるんだ！睡眠とれてるの最強じゃん！",
			models.SleepNegative: "寝不足！？それはヤバいよ〜！今日はちゃんと寝よ寝よ！",
			models.SleepNeutral:  "睡眠はまあまあって感じかな〜？",
		},
		Mood: map[models.MoodTag]string{
			models.MoodPositive: "テンション上がってるね～！やる気も上がって無敵モードだね！",
			models.MoodNegative: "なんかモヤっとしてる？あるある〜！話してくれてありがとね！",
			models.MoodNeutral:  "気分は落ち着いてる感じだね〜！",
		},
		Complex: map[ComplexKey]string{
			ComplexLongSleepNegative:          "うわっ、いっぱい遊んでしかも寝不足！？それはヤバいよ〜！今日はもうお休みタイムだね、絶対！",
			ComplexLongPain:                   "長時間やって身体痛いの！？それ絶対ムリしすぎだよ〜！今日はケア優先ね、ほんとに！",
			ComplexLongFatigue:                "いっぱい遊んで疲れちゃった？そりゃそうだよ〜！今日はもう休憩ってことでいこ！",
			ComplexShortMoodPositive:          "短い時間で楽しめてテンションいい感じ！？それ最高じゃん！",
			ComplexPainMoodNegative:           "痛いし気分もモヤるって…つらかったね。今日は無理しないで、ほんと休も！",
			ComplexFatigueMoodNegative:        "つかれてる上にモヤっとしてるって…めちゃくちゃしんどいよね。今日はまず休むの優先ね！",
			ComplexGoodConditionSleepNegative: "体調バッチリなのに寝不足！？それはもったいないよ〜！今日はちゃんと寝てパワー全開にしよ！",
		},
	},
	models.ToneCheerfulFriend: {
		Intro: "答えてくれてありがとう！じゃあ、わたしと一緒に確かめようか！",
		Outro: "今日はしっかりケアしてまた一緒にがんばろう！\nまた明日も会いに来てね！",
		PlayTime: map[models.PlayTimeTag]string{
			models.PlayTimeShort:  "短く遊んでスッキリできたならいい感じだね！",
			models.PlayTimeNormal: "ちょうどいいプレイ時間だったね！いいバランスだよ！",
			models.PlayTimeLong:   "結構長く遊んだね！楽しかった分、体もちゃんと休めよう！",
		},
		Condition: map[models.ConditionTag]string{
			models.ConditionPositive: "体調は悪くなさそうだね！その調子でいこ！",
			models.ConditionPain:     "痛いところあるんだね…ちょっと心配だよ。今日は無理しないでね！",
			models.ConditionFatigue:  "かなり疲れてるみたいだね…。休憩挟んでちゃんと回復しよ！",
			models.ConditionNeutral:  "体調は大きく崩れてないみたいだね！",
		},
		Sleep: map[models.SleepTag]string{
			models.SleepPositive: "ちゃんと眠れてるなら安心だよ！その調子その調子！",
			models.SleepNegative: "眠れてないんだね…わかるよ。でも今日は無理しないでね！",
			models.SleepNeutral:  "睡眠はそこそこって感じかな？",
		},
		Mood: map[models.MoodTag]string{
			models.MoodPositive: "気分も前向きでいい感じだね！一緒にこの調子でいこ！",
			models.MoodNegative: "気分落ちちゃってるんだね…今日はゆっくり休んでいいからね。",
			models.MoodNeutral:  "気持ちは割と落ち着いてるみたいだね。",
		},
		Complex: map[ComplexKey]string{
			ComplexLongSleepNegative:          "長くプレイしたうえに寝不足なのはキツかったね…！今日は無理しないでしっかり休もう！",
			ComplexLongPain:                   "がっつり遊んだうえに痛みも出たんだ…！それは流石にしんどいよね。今日はちゃんと休んで回復しよ！",
			ComplexLongFatigue:                "たくさんやって疲れちゃったんだ…！今日はムリせず、少し休んで戻そうよ！",
			ComplexShortMoodPositive:          "短く遊んで気分もいいなんて、かなりいい日だね！",
			ComplexPainMoodNegative:           "痛いし気分も落ちてるなんて…それはほんとしんどかったね。今日は無理せずゆっくり休もう！",
			ComplexFatigueMoodNegative:        "疲れてるし気分も落ちてたんだね…そりゃツラいよ。今日は休んでリセットしよ、一緒にゆっくりでいいからね！",
			ComplexGoodConditionSleepNegative: "元気はあるんだね！でも寝不足なのは気になるなぁ。今日は早めに寝て、いい状態キープしよ！",
		},
	},
	models.ToneCoolGirl: {
		Intro: "今日の状態を確認した。それぞれみていってくれ。",
		Outro: "無駄を省きたいなら、今は休息を優先しろ。\n明日もみてやるから必ず来い。…寂しいわけじゃないからな？",
		PlayTime: map[models.PlayTimeTag]string{
			models.PlayTimeShort:  "短時間で区切れたのは悪くない判断だ。",
			models.PlayTimeNormal: "適度なプレイ時間だ。効率的だな。",
			models.PlayTimeLong:   "長時間だな。集中力の低下が懸念される。",
		},
		Condition: map[models.ConditionTag]string{
			models.ConditionPositive: "体調は良好のようだ。問題ない。",
			models.ConditionPain:     "痛みが出ているようだ。無理は効率を落とす。",
			models.ConditionFatigue:  "疲労が見られる。休息を取るべきだ。",
			models.ConditionNeutral:  "体調は特に問題ないようだ。",
		},
		Sleep: map[models.SleepTag]string{
			models.SleepPositive: "睡眠は十分のようだ。良い状態だ。",
			models.SleepNegative: "睡眠不足は判断の精度を落とす。注意しろ。",
			models.SleepNeutral:  "睡眠は可もなく不可もなく、といったところだ。",
		},
		Mood: map[models.MoodTag]string{
			models.MoodPositive: "気分が良いようだな。その状態をうまく活かせ。",
			models.MoodNegative: "気分の揺らぎは判断を鈍らせる。深呼吸しろ。",
			models.MoodNeutral:  "気分は安定しているな。問題ない。",
		},
		Complex: map[ComplexKey]string{
			ComplexLongSleepNegative:          "長時間のプレイに加え睡眠不足か。効率もパフォーマンスも落ちているはずだ。まず休め。",
			ComplexLongPain:                   "長時間に痛みを伴うのは明らかに負担が大きい。効率以前の問題だ。休息が必要だ。",
			ComplexLongFatigue:                "疲労が蓄積している。長時間のプレイは悪手だ。今は休むべきだ。",
			ComplexShortMoodPositive:          "短時間で気分良く遊べたのは良い判断だ。効率も調子も悪くない。",
			ComplexPainMoodNegative:           "痛みと気分の落ち込みが重なっている。悪循環になる前に休息を取れ。",
			ComplexFatigueMoodNegative:        "疲労と気分の不調が同時に出ている。今の状態で続けるのは賢明ではない。中断しろ。",
			ComplexGoodConditionSleepNegative: "体調は悪くないようだが、睡眠不足は見逃せない。パフォーマンスを維持したいなら睡眠を優先しろ。",
		},
	},
	models.ToneStrictFemale: {
		Intro: "よし、今日の状態を報告したようだな。確認しよう。",
		Outro: "今日はこれで十分だ。明日に向けて休んで整えておけ。いいな？\n明日もまた来るといい。",
		PlayTime: map[models.PlayTimeTag]string{
			models.PlayTimeShort:  "短い時間で切り上げたな。判断としては悪くない。",
			models.PlayTimeNormal: "適度な時間で済ませたようだな。続けるにはちょうどいい。",
			models.PlayTimeLong:   "長くやりすぎだ。集中力も落ちているはずだ。",
		},
		Condition: map[models.ConditionTag]string{
			models.ConditionPositive: "体調は問題なさそうだ。いい状態だな。",
			models.ConditionPain:     "痛みが出ているようだな。放置して悪化させるな。",
			models.ConditionFatigue:  "疲れが濃いな。これ以上の無茶はするな。",
			models.ConditionNeutral:  "体調は大崩れしていないようだ。だが油断はするな。",
		},
		Sleep: map[models.SleepTag]string{
			models.SleepPositive: "ちゃんと眠れているようだな。基礎はできている。",
			models.SleepNegative: "睡眠不足か。そんな状態で無理を重ねるな。",
			models.SleepNeutral:  "睡眠は最低限は取れているようだな。だが質は意識しろ。",
		},
		Mood: map[models.MoodTag]string{
			models.MoodPositive: "気分が良いなら、その勢いをうまく活かせ。",
			models.MoodNegative: "気持ちが不安定なようだな。無理に踏ん張るな、まず整えろ。",
			models.MoodNeutral:  "気分は大きく崩れていないようだな。冷静さを保て。",
		},
		Complex: map[ComplexKey]string{
			ComplexLongSleepNegative:          "長時間のプレイに加え、睡眠不足とはな。そんな状態で続ければ崩れるのは当然だ。すぐに休め。",
			ComplexLongPain:                   "長時間のプレイで痛みが出ているな。限界を超えている証拠だ。すぐにやめて休め。",
			ComplexLongFatigue:                "疲労が濃い状態で長く続けるのは愚かだ。今は撤退して整えるべきだ。",
			ComplexShortMoodPositive:          "短時間で楽しめて気分も良い。理想的なコンディションだな。",
			ComplexPainMoodNegative:           "痛みがあって気持ちも沈んでいるようだな。その状態で続ける価値はない。休息を最優先しろ。",
			ComplexFatigueMoodNegative:        "疲れと気分の不安定さが重なっているな。まずは体勢を整えろ。",
			ComplexGoodConditionSleepNegative: "体調は悪くないが、睡眠不足は後から響く。今のうちにしっかり休んでおけ。",
		},
	},
	models.ToneCalmMale: {
		Intro: "さあ、あなたの心身の調律を整えていこうじゃないか。",
		Outro: "自分を慈しむ時間を持とう。きっと明日へ繋がっていくはずだよ。\n明日もまた会いに来てほしい。楽しみしているよ。",
		PlayTime: map[models.PlayTimeTag]string{
			models.PlayTimeShort:  "短い時間で区切れたようだね。上手な付き合い方じゃないか。",
			models.PlayTimeNormal: "ちょうど良いくらいの時間で楽しめたようだね。バランスが取れているよ。",
			models.PlayTimeLong:   "随分と長く遊んでいたようだね…心も体も少し休ませてあげよう。",
		},
		Condition: map[models.ConditionTag]string{
			models.ConditionPositive: "体調は良さそうだね。その調子で自分を大事にしていこう。",
			models.ConditionPain:     "どこかに痛みを感じているようだね…無理を重ねると大きな負担になるよ。",
			models.ConditionFatigue:  "疲れが出てきているみたいだね。少しペースを落として休む時間を作ろう。",
			models.ConditionNeutral:  "大きな不調はなさそうだね。ただ、油断せず自分の感覚に耳を傾けてみよう。",
		},
		Sleep: map[models.SleepTag]string{
			models.SleepPositive: "よく眠れているようで安心したよ。睡眠は心と体の土台だからね。",
			models.SleepNegative: "あまり眠れていないようだね…心身のバランスが心配だ。今日はゆっくり休もう。",
			models.SleepNeutral:  "睡眠は大崩れしていないようだね。ただ、もう少し丁寧に休むことを意識してもいいかもしれない。",
		},
		Mood: map[models.MoodTag]string{
			models.MoodPositive: "気持ちも前向きで、とてもいい状態だね。その心地よさを大切にしていこう。",
			models.MoodNegative: "心が少し重たくなっているようだね…。そんな時こそ、自分を責めずに優しくしてあげよう。",
			models.MoodNeutral:  "気持ちは比較的落ち着いているようだね。静かな状態も、とても大事な時間だよ。",
		},
		Complex: map[ComplexKey]string{
			ComplexLongSleepNegative:          "たくさん遊んだうえに眠りも浅かったようだね…これは心と体が負荷を抱えている状態だよ。今日はゆっくり整えようじゃないか。",
			ComplexLongPain:                   "たくさん遊んで痛みが出てしまったのか…体の調子が崩れているね。今日はしっかり一度リセットしようじゃないか。",
			ComplexLongFatigue:                "たっぷり遊んで疲れも出てきたようだね…心身のバランスが乱れているよ。今日は整える時間を大切にしようじゃないか。",
			ComplexShortMoodPositive:          "短い時間でも気持ちよく楽しめたようだね。それはとても良い付き合い方だよ。",
			ComplexPainMoodNegative:           "痛みと気分の重たさが一緒にのしかかっているようだね…。まずは一度立ち止まって、自分を休ませてあげよう。",
			ComplexFatigueMoodNegative:        "疲れも出ていて、気持ちにも負荷がかかっているようだね…こういう時こそ自分に優しくしよう。今日は整える日だ。",
			ComplexGoodConditionSleepNegative: "体調は悪くないのに眠れていないのは惜しいところだね。今のうちに休む時間を確保して、良い状態を長く保とう。",
		},
	},
}
