package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/trainy/internal/config"
	"github.com/abhisek/trainy/internal/course"
	"github.com/abhisek/trainy/internal/ui/components"
)

var generateCmd = &cobra.Command{
	Use:   "generate <request>",
	Short: "Generate one course and print it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		request := strings.Join(args, " ")

		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		logger, err := newLogger(settings, "")
		if err != nil {
			return err
		}
		defer logger.Sync()

		if !settings.Configured() {
			return fmt.Errorf("%s: set %s", course.ReasonNotConfigured,
				config.CredentialEnv(settings.LLM.Provider))
		}

		st, err := openStore(settings)
		if err != nil {
			return err
		}
		defer st.Close()

		gen, err := buildGenerator(cmd.Context(), settings, st.EventRepo(), logger)
		if err != nil {
			return fmt.Errorf("build generator: %w", err)
		}

		c, err := gen.Generate(cmd.Context(), request)
		if err != nil {
			if reason := course.ReasonOf(err); reason != "" {
				return fmt.Errorf("%s: %s", reason, reason.Message())
			}
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(c)
		}
		printCourse(out, c)
		return nil
	},
}

// printCourse writes a plain-text rendering of c.
func printCourse(w io.Writer, c *course.Content) {
	rule := strings.Repeat("─", 60)

	fmt.Fprintln(w, c.Title)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, c.Description)

	for _, s := range c.Content {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%d. %s\n", s.Step, s.Title)
		fmt.Fprintln(w, s.Content)
	}

	if !c.HasQuiz() {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Quiz")
	fmt.Fprintln(w, rule)
	for i, q := range c.Quiz {
		fmt.Fprintf(w, "Q%d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			mark := " "
			if j == q.CorrectAnswer {
				mark = "*"
			}
			fmt.Fprintf(w, "  %s %s. %s\n", mark, components.OptionLabels[j], opt)
		}
		fmt.Fprintf(w, "  %s\n\n", q.Explanation)
	}
}

func init() {
	generateCmd.Flags().Bool("json", false, "Print the course as JSON")
}
