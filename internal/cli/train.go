package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/wakachi"
	"github.com/happyhackingspace/wakachi/adaboost"
)

func (c *CLI) newTrainCommand() *cobra.Command {
	var corpusPath string
	var featuresPath string
	var reportPath string

	cmd := &cobra.Command{
		Use:   "train <modelfile>",
		Short: "Train a segmentation model on a corpus or a feature file",
		Args:  cobra.ExactArgs(1),
		Example: `  wakachi train model.txt --corpus corpus.txt
  wakachi train model.txt --features features.txt --iterations 10000
  wakachi train model.txt --corpus data/ --load-model old.txt -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := normalizeKeys(map[string]string{
				keyThreshold:  "threshold",
				keyIterations: "iterations",
				keyWorkers:    "workers",
				keyDedupe:     "dedupe",
			})
			if err := c.bindFlags(cmd, keys); err != nil {
				return err
			}
			if (corpusPath == "") == (featuresPath == "") {
				return fmt.Errorf("exactly one of --corpus or --features is required")
			}

			config, err := c.trainConfig()
			if err != nil {
				return err
			}
			config.InitModel, _ = cmd.Flags().GetString("load-model")

			ctx, stop := interruptContext(cmd.Context())
			defer stop()

			modelPath := args[0]
			slog.Info("Training segmenter", "threshold", config.Trainer.Threshold,
				"iterations", config.Trainer.Iterations, "workers", config.Trainer.Workers, "output", modelPath)
			start := time.Now()

			var s *wakachi.Segmenter
			var report *wakachi.TrainReport
			if featuresPath != "" {
				s, report, err = c.trainFeatures(ctx, featuresPath, config)
			} else {
				var sentences []string
				sentences, err = c.readCorpus(corpusPath)
				if err != nil {
					return err
				}
				s, report, err = wakachi.Train(ctx, sentences, config)
			}
			if err != nil {
				return err
			}
			slog.Info("Training completed", "reason", report.Result.Reason, "iterations", report.Result.Iterations,
				"instances", report.Instances, "features", report.Features, "duration", time.Since(start))

			printTrainMetrics(cmd.OutOrStdout(), report.Metrics)
			if err := s.Save(modelPath); err != nil {
				return err
			}
			slog.Info("Model saved", "path", modelPath)

			if reportPath != "" {
				if err := writeReport(reportPath, newTrainReport(modelPath, report, time.Since(start))); err != nil {
					return err
				}
				slog.Info("Report saved", "path", reportPath)
			}
			return nil
		},
	}

	defaults := adaboost.DefaultTrainerConfig()
	cmd.Flags().StringVar(&corpusPath, "corpus", "", "Gold-segmented corpus file or folder of *.txt files")
	cmd.Flags().StringVar(&featuresPath, "features", "", "Feature file written by extract")
	cmd.Flags().String("load-model", "", "Continue training from this model")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a YAML training report to this file")
	cmd.Flags().Float64("threshold", defaults.Threshold, "Stop once the best stump margin drops below this")
	cmd.Flags().Int("iterations", defaults.Iterations, "Maximum number of boosting rounds")
	cmd.Flags().Int("workers", defaults.Workers, "Goroutines per boosting round")
	cmd.Flags().Bool("dedupe", false, "Drop duplicate corpus sentences")
	addNormalizeFlags(cmd)
	return cmd
}

func (c *CLI) trainFeatures(ctx context.Context, path string, config wakachi.TrainConfig) (*wakachi.Segmenter, *wakachi.TrainReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open feature file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return wakachi.TrainFeatures(ctx, f, config)
}

// interruptContext cancels the returned context on the first interrupt so
// training stops after the current round. A second interrupt exits.
func interruptContext(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, os.Interrupt)
	done := make(chan struct{})

	go func() {
		select {
		case <-sigs:
		case <-done:
			return
		}
		slog.Warn("Interrupted, stopping after the current round (press Ctrl-C again to exit)")
		cancel()
		select {
		case <-sigs:
			os.Exit(130)
		case <-done:
		}
	}()

	return ctx, func() {
		signal.Stop(sigs)
		close(done)
		cancel()
	}
}

func printTrainMetrics(w io.Writer, m adaboost.Metrics) {
	fmt.Fprintf(w, "Accuracy:  %.2f%% (%d/%d)\n", m.Accuracy*100, m.TruePositives+m.TrueNegatives, m.Total())
	fmt.Fprintf(w, "Precision: %.2f%% (%d/%d)\n", m.Precision*100, m.TruePositives, m.TruePositives+m.FalsePositives)
	fmt.Fprintf(w, "Recall:    %.2f%% (%d/%d)\n", m.Recall*100, m.TruePositives, m.TruePositives+m.FalseNegatives)
	fmt.Fprintf(w, "Confusion matrix:\n  TP: %d  FN: %d\n  FP: %d  TN: %d\n",
		m.TruePositives, m.FalseNegatives, m.FalsePositives, m.TrueNegatives)
}
