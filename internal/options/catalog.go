package options

// Entry is one selectable value and its display label.
type Entry struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Labels are UI chrome and stay Chinese whatever the output language is.
var (
	Lengths = []Entry{
		{string(LengthAuto), "自动"},
		{string(LengthShort), "短"},
		{string(LengthMedium), "中等"},
		{string(LengthLong), "长"},
	}

	Formats = []Entry{
		{string(FormatAuto), "自动"},
		{string(FormatEmail), "电子邮件"},
		{string(FormatMessage), "消息"},
		{string(FormatComment), "评论"},
		{string(FormatParagraph), "段落"},
		{string(FormatArticle), "文章"},
		{string(FormatBlog), "博客文章"},
		{string(FormatIdeas), "想法"},
		{string(FormatOutline), "大纲"},
		{string(FormatTwitter), "推特"},
		{string(FormatPolish), "润色"},
		{string(FormatVoiceover), "口播文案"},
		{string(FormatWechat), "公众号文章"},
		{string(FormatBio), "简介"},
		{string(FormatPoster), "海报文案"},
		{string(FormatRedbook), "小红书风格"},
		{string(FormatExpand), "扩写"},
		{string(FormatShorten), "简写"},
	}

	Tones = []Entry{
		{string(ToneAuto), "自动"},
		{string(ToneFriendly), "友善"},
		{string(ToneCasual), "随意"},
		{string(ToneApproachable), "友好"},
		{string(ToneProfessional), "专业"},
		{string(ToneWitty), "诙谐"},
		{string(ToneFunny), "有趣"},
		{string(ToneFormal), "正式"},
		{string(ToneAIPractitioner), "普通AI从业者"},
	}

	Languages = []Entry{
		{string(LanguageZh), "中文 (简体)"},
		{string(LanguageEn), "English"},
	}
)

// Catalog returns the entries for d.
func Catalog(d Dimension) []Entry {
	switch d {
	case DimLength:
		return Lengths
	case DimFormat:
		return Formats
	case DimTone:
		return Tones
	case DimLanguage:
		return Languages
	default:
		return nil
	}
}

// Valid reports whether value is in d's catalog.
func Valid(d Dimension, value string) bool {
	return indexOf(d, value) >= 0
}

// LabelOf returns the display label for value, or value itself if unknown.
func LabelOf(d Dimension, value string) string {
	entries := Catalog(d)
	if i := indexOf(d, value); i >= 0 {
		return entries[i].Label
	}
	return value
}

// Next returns the value after the current one on d, wrapping around.
func Next(d Dimension, value string) string {
	return step(d, value, 1)
}

// Prev returns the value before the current one on d, wrapping around.
func Prev(d Dimension, value string) string {
	return step(d, value, -1)
}

func step(d Dimension, value string, delta int) string {
	entries := Catalog(d)
	if len(entries) == 0 {
		return value
	}
	i := indexOf(d, value)
	if i < 0 {
		return entries[0].Value
	}
	i = (i + delta + len(entries)) % len(entries)
	return entries[i].Value
}

func indexOf(d Dimension, value string) int {
	for i, e := range Catalog(d) {
		if e.Value == value {
			return i
		}
	}
	return -1
}
