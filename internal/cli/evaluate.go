package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/wakachi"
	"github.com/happyhackingspace/wakachi/internal/baseline"
)

func (c *CLI) newEvaluateCommand() *cobra.Command {
	var dictPath string
	var reportPath string

	cmd := &cobra.Command{
		Use:     "evaluate <corpus>",
		Short:   "Evaluate a model against a gold-segmented corpus",
		Args:    cobra.ExactArgs(1),
		Example: `  wakachi evaluate test.txt --model model.txt
  wakachi evaluate test.txt --model model.txt --baseline-dict dict.txt --report eval.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := normalizeKeys(map[string]string{
				keyModel:    "model",
				keyPoolSize: "workers",
				keyDedupe:   "dedupe",
			})
			if err := c.bindFlags(cmd, keys); err != nil {
				return err
			}

			sentences, err := c.readCorpus(args[0])
			if err != nil {
				return err
			}
			s, err := c.loadSegmenter()
			if err != nil {
				return err
			}

			slog.Info("Evaluating", "corpus", args[0], "sentences", len(sentences))
			start := time.Now()
			result, err := s.Evaluate(cmd.Context(), sentences)
			if err != nil {
				return err
			}
			slog.Debug("Evaluation completed", "duration", time.Since(start))

			out := cmd.OutOrStdout()
			printEvalResult(out, result)
			report := &evalReport{Corpus: args[0], Model: newEvalScores(result)}

			if dictPath != "" {
				dict, err := baseline.NewDictSegmenter(dictPath)
				if err != nil {
					return err
				}
				base, err := wakachi.EvaluateFunc(cmd.Context(), dict.Segment, sentences)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nDictionary baseline (%s):\n", dictPath)
				printEvalResult(out, base)
				scores := newEvalScores(base)
				report.Baseline = &scores
			}

			if reportPath != "" {
				if err := writeReport(reportPath, report); err != nil {
					return err
				}
				slog.Info("Report saved", "path", reportPath)
			}
			return nil
		},
	}

	cmd.Flags().String("model", "", "Path to model file (default: search for "+wakachi.DefaultModelName+")")
	cmd.Flags().Int("workers", 0, "Sentences segmented concurrently (default: number of CPUs)")
	cmd.Flags().Bool("dedupe", false, "Drop duplicate corpus sentences")
	cmd.Flags().StringVar(&dictPath, "baseline-dict", "", "Also score a dictionary segmenter using this gse dictionary")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a YAML evaluation report to this file")
	addNormalizeFlags(cmd)
	return cmd
}

func printEvalResult(out io.Writer, result *wakachi.EvalResult) {
	fmt.Fprintf(out, "Word precision: %.2f%% (%d/%d)\n",
		result.Precision*100, result.WordsCorrect, result.WordsPredicted)
	fmt.Fprintf(out, "Word recall: %.2f%% (%d/%d)\n",
		result.Recall*100, result.WordsCorrect, result.WordsGold)
	fmt.Fprintf(out, "Word F1: %.2f%%\n", result.F1*100)
	fmt.Fprintf(out, "Boundary accuracy: %.2f%% (%d/%d)\n",
		result.BoundaryAccuracy*100, result.BoundariesCorrect, result.BoundariesTotal)
	fmt.Fprintf(out, "Sentence accuracy: %.2f%% (%d/%d)\n",
		result.SentenceAccuracy*100, result.SentencesCorrect, result.SentencesTotal)
}
