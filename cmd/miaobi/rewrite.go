package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sant0-9/miaobi/internal/options"
	"github.com/sant0-9/miaobi/internal/session"
)

func newRewriteCmd(configPath *string) *cobra.Command {
	var (
		opts    optionFlags
		analyze bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "rewrite [text]",
		Short: "Rewrite text once and print the result",
		Long:  "Rewrite the given text, or standard input when no text is given, and print the result.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if text == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(data)
			}

			selected, err := opts.apply(options.Default())
			if err != nil {
				return err
			}

			rt, err := setup(cmd.Context(), *configPath, false)
			if err != nil {
				return err
			}
			defer rt.sync()

			sess := session.New(rt.client, session.WithLogger(rt.log))
			sess.SetInputText(text)
			if err := sess.SetOptions(selected); err != nil {
				return err
			}

			mode := session.ModeRewrite
			if analyze {
				mode = session.ModeAnalyze
			}
			st, err := sess.Submit(cmd.Context(), mode)
			if err != nil {
				return err
			}
			if st.LastError != "" {
				return errors.New(st.LastError)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}
			if st.LastAnalysis != nil {
				a := st.LastAnalysis
				fmt.Fprintf(out, "AI 生成: %t (%d%%)\n", a.IsAI, int(math.Round(a.Confidence*100)))
				if a.Reasoning != "" {
					fmt.Fprintf(out, "分析依据: %s\n", a.Reasoning)
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, st.LastResult.Text)
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&analyze, "analyze", false, "also run AI-detection analysis")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full session state as JSON")
	return cmd
}
