// Package options defines the style axes a user can pick for a rewrite and
// the catalog the front-ends render them from.
package options

import "fmt"

type Length string

const (
	LengthAuto   Length = "auto"
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

type Format string

const (
	FormatAuto      Format = "auto"
	FormatEmail     Format = "email"
	FormatMessage   Format = "message"
	FormatComment   Format = "comment"
	FormatParagraph Format = "paragraph"
	FormatArticle   Format = "article"
	FormatBlog      Format = "blog"
	FormatIdeas     Format = "ideas"
	FormatOutline   Format = "outline"
	FormatTwitter   Format = "twitter"
	FormatPolish    Format = "polish"
	FormatVoiceover Format = "voiceover"
	FormatWechat    Format = "wechat"
	FormatBio       Format = "bio"
	FormatPoster    Format = "poster"
	FormatRedbook   Format = "redbook"
	FormatExpand    Format = "expand"
	FormatShorten   Format = "shorten"
)

type Tone string

const (
	ToneAuto           Tone = "auto"
	ToneFriendly       Tone = "friendly"
	ToneCasual         Tone = "casual"
	ToneApproachable   Tone = "approachable"
	ToneProfessional   Tone = "professional"
	ToneWitty          Tone = "witty"
	ToneFunny          Tone = "funny"
	ToneFormal         Tone = "formal"
	ToneAIPractitioner Tone = "ai_practitioner"
)

// Language is the output language. It also selects the language the
// instructions themselves are written in.
type Language string

const (
	LanguageZh Language = "zh"
	LanguageEn Language = "en"
)

// Dimension names one of the four option axes.
type Dimension int

const (
	DimLength Dimension = iota
	DimFormat
	DimTone
	DimLanguage
)

// Dimensions lists the axes in the order the front-ends show them.
var Dimensions = []Dimension{DimLength, DimFormat, DimTone, DimLanguage}

func (d Dimension) String() string {
	switch d {
	case DimLength:
		return "length"
	case DimFormat:
		return "format"
	case DimTone:
		return "tone"
	case DimLanguage:
		return "outputLanguage"
	default:
		return "unknown"
	}
}

// Label returns the section heading shown above the dimension.
func (d Dimension) Label() string {
	switch d {
	case DimLength:
		return "长度"
	case DimFormat:
		return "格式"
	case DimTone:
		return "语气"
	case DimLanguage:
		return "输出语言"
	default:
		return ""
	}
}

// Options is an immutable selection. Replace it wholesale or use With.
type Options struct {
	Length   Length   `json:"length" yaml:"length"`
	Format   Format   `json:"format" yaml:"format"`
	Tone     Tone     `json:"tone" yaml:"tone"`
	Language Language `json:"outputLanguage" yaml:"output_language"`
}

// Default returns auto for every style axis and Chinese output.
func Default() Options {
	return Options{
		Length:   LengthAuto,
		Format:   FormatAuto,
		Tone:     ToneAuto,
		Language: LanguageZh,
	}
}

// Value returns the raw value currently selected on d.
func (o Options) Value(d Dimension) string {
	switch d {
	case DimLength:
		return string(o.Length)
	case DimFormat:
		return string(o.Format)
	case DimTone:
		return string(o.Tone)
	case DimLanguage:
		return string(o.Language)
	default:
		return ""
	}
}

// With returns a copy of o with dimension d set to value. Unknown values are
// rejected so an option can never hold something the prompt builder can't
// render.
func (o Options) With(d Dimension, value string) (Options, error) {
	if !Valid(d, value) {
		return o, fmt.Errorf("invalid %s %q", d, value)
	}
	switch d {
	case DimLength:
		o.Length = Length(value)
	case DimFormat:
		o.Format = Format(value)
	case DimTone:
		o.Tone = Tone(value)
	case DimLanguage:
		o.Language = Language(value)
	}
	return o, nil
}

// Validate reports the first field holding a value outside the catalog.
func (o Options) Validate() error {
	for _, d := range Dimensions {
		if v := o.Value(d); !Valid(d, v) {
			return fmt.Errorf("invalid %s %q", d, v)
		}
	}
	return nil
}

// ParseDimension accepts the names used on the wire ("length", "format",
// "tone", "outputLanguage"); "language" is accepted as an alias.
func ParseDimension(name string) (Dimension, error) {
	for _, d := range Dimensions {
		if d.String() == name {
			return d, nil
		}
	}
	if name == "language" {
		return DimLanguage, nil
	}
	return 0, fmt.Errorf("unknown option %q", name)
}
