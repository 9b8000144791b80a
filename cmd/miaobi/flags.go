package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sant0-9/miaobi/internal/options"
)

type optionFlags struct {
	length   string
	format   string
	tone     string
	language string
}

func (f *optionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.length, "length", "", "output length (auto, short, medium, long)")
	cmd.Flags().StringVar(&f.format, "format", "", "output format, e.g. email, wechat, redbook")
	cmd.Flags().StringVar(&f.tone, "tone", "", "tone, e.g. friendly, professional, witty")
	cmd.Flags().StringVar(&f.language, "lang", "", "output language (zh, en)")
}

// apply overlays the flags that were given onto base.
func (f *optionFlags) apply(base options.Options) (options.Options, error) {
	given := map[options.Dimension]string{
		options.DimLength:   f.length,
		options.DimFormat:   f.format,
		options.DimTone:     f.tone,
		options.DimLanguage: f.language,
	}

	out := base
	for _, d := range options.Dimensions {
		v := given[d]
		if v == "" {
			continue
		}
		next, err := out.With(d, v)
		if err != nil {
			return base, fmt.Errorf("--%s: %w", flagName(d), err)
		}
		out = next
	}
	return out, nil
}

func flagName(d options.Dimension) string {
	if d == options.DimLanguage {
		return "lang"
	}
	return d.String()
}
