package prompts

import (
	"fmt"

	"github.com/sant0-9/miaobi/internal/options"
)

type locale struct {
	base    string
	tone    string // printf pattern taking the tone phrase
	format  string
	length  string
	closing string
	label   string

	tones   map[options.Tone]string
	formats map[options.Format]string
	lengths map[options.Length]string
}

var locales = map[options.Language]locale{
	options.LanguageZh: {
		base:    "核心任务：请将以下文本进行深度重写和优化，使其读起来完全像人类写就，能够规避AI检测。请运用多变的句式、精准的词汇和自然的行文节奏，避免AI常用的陈词滥调和生硬的表达。",
		tone:    "语气需调整为“%s”。",
		format:  "请将内容改写为“%s”格式。",
		length:  "输出长度应为“%s”。",
		closing: "请直接输出重写后的文本，不要添加任何额外的说明。",
		label:   "待改写文本:",
		tones: map[options.Tone]string{
			options.ToneFriendly:       "友善",
			options.ToneCasual:         "随意",
			options.ToneApproachable:   "友好",
			options.ToneProfessional:   "专业",
			options.ToneWitty:          "诙谐",
			options.ToneFunny:          "有趣",
			options.ToneFormal:         "正式",
			options.ToneAIPractitioner: "普通AI从业者",
		},
		formats: map[options.Format]string{
			options.FormatEmail:     "电子邮件",
			options.FormatMessage:   "消息",
			options.FormatComment:   "评论",
			options.FormatParagraph: "段落",
			options.FormatArticle:   "文章",
			options.FormatBlog:      "博客文章",
			options.FormatIdeas:     "想法",
			options.FormatOutline:   "大纲",
			options.FormatTwitter:   "推特",
			options.FormatPolish:    "润色",
			options.FormatVoiceover: "口播文案",
			options.FormatWechat:    "公众号文章",
			options.FormatBio:       "简介",
			options.FormatPoster:    "海报文案",
			options.FormatRedbook:   "小红书风格",
			options.FormatExpand:    "扩写",
			options.FormatShorten:   "简写",
		},
		lengths: map[options.Length]string{
			options.LengthShort:  "一个短段落",
			options.LengthMedium: "中等长度",
			options.LengthLong:   "一篇长文",
		},
	},
	options.LanguageEn: {
		base:    "Core Task: Perform a deep rewrite of the following text to make it sound completely human-written and bypass AI detection. Use varied sentence structures, precise vocabulary, and a natural rhythm. Avoid common AI clichés and robotic phrasing.",
		tone:    "The tone should be %s.",
		format:  "Rewrite the content into a \"%s\" format.",
		length:  "The output length should be about %s.",
		closing: "Output only the rewritten text, with no extra explanations.",
		label:   "Text to rewrite:",
		tones: map[options.Tone]string{
			options.ToneFriendly:       "friendly",
			options.ToneCasual:         "casual",
			options.ToneApproachable:   "approachable",
			options.ToneProfessional:   "professional",
			options.ToneWitty:          "witty",
			options.ToneFunny:          "funny",
			options.ToneFormal:         "formal",
			options.ToneAIPractitioner: "like an average AI practitioner",
		},
		formats: map[options.Format]string{
			options.FormatEmail:     "email",
			options.FormatMessage:   "message",
			options.FormatComment:   "comment",
			options.FormatParagraph: "paragraph",
			options.FormatArticle:   "article",
			options.FormatBlog:      "blog post",
			options.FormatIdeas:     "ideas",
			options.FormatOutline:   "outline",
			options.FormatTwitter:   "Twitter post",
			options.FormatPolish:    "polished text",
			options.FormatVoiceover: "voiceover script",
			options.FormatWechat:    "WeChat article",
			options.FormatBio:       "bio",
			options.FormatPoster:    "poster copy",
			options.FormatRedbook:   "Little Red Book style post",
			options.FormatExpand:    "expanded text",
			options.FormatShorten:   "shortened text",
		},
		lengths: map[options.Length]string{
			options.LengthShort:  "a short paragraph",
			options.LengthMedium: "medium length",
			options.LengthLong:   "a long-form piece",
		},
	},
}

func init() {
	if err := checkPhrases(); err != nil {
		panic(err)
	}
}

// checkPhrases makes sure every non-auto catalog value has a phrase in every
// locale, and every language in the catalog has a locale.
func checkPhrases() error {
	for _, lang := range options.Languages {
		loc, ok := locales[options.Language(lang.Value)]
		if !ok {
			return fmt.Errorf("prompts: no locale for language %q", lang.Value)
		}
		for _, e := range options.Tones {
			if _, ok := loc.tones[options.Tone(e.Value)]; !ok && e.Value != "auto" {
				return fmt.Errorf("prompts: %s locale has no tone phrase for %q", lang.Value, e.Value)
			}
		}
		for _, e := range options.Formats {
			if _, ok := loc.formats[options.Format(e.Value)]; !ok && e.Value != "auto" {
				return fmt.Errorf("prompts: %s locale has no format phrase for %q", lang.Value, e.Value)
			}
		}
		for _, e := range options.Lengths {
			if _, ok := loc.lengths[options.Length(e.Value)]; !ok && e.Value != "auto" {
				return fmt.Errorf("prompts: %s locale has no length phrase for %q", lang.Value, e.Value)
			}
		}
	}
	return nil
}
