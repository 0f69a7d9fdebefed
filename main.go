// usage-normalize cleans CHAT-annotated clinical transcripts, extracting
// discourse markers (pauses, interjections, expressions, incomplete words
// and phrases, errors, repetitions, retracings) and exporting their
// per-transcript distribution for downstream analysis.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/LiNCS-lab/usAge/config"
	"github.com/LiNCS-lab/usAge/features"
	"github.com/LiNCS-lab/usAge/orchestrator"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage-normalize <corpus-dir>",
		Short: "Normalize a transcript corpus and extract discourse-marker measures",
		Long: "usage-normalize rewrites CHAT-style annotated transcripts into clean\n" +
			"sentences, extracting pauses, interjections, expressions, incomplete\n" +
			"words and phrases, errors, repetitions and retracings along the way.\n" +
			"Cleaned dialogs are written per speaker; marker counts are exported\n" +
			"as a per-transcript CSV table.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	f := cmd.Flags()
	f.StringP("synonyms", "s", "", "path to the synonym-reduction lexicon")
	f.StringP("interjections", "i", "", "path to the interjection lexicon")
	f.StringP("expressions", "e", "", "path to the expression lexicon")
	f.StringP("features-out", "f", "", "path for the extracted-measures CSV")
	f.StringP("out-dir", "o", "", "output root for cleaned dialogs (default \"out\")")
	f.IntP("workers", "w", 0, "transcript worker pool size (default: number of CPUs)")
	f.String("config", "", "path to a YAML run config")
	f.BoolP("verbose", "v", false, "stream per-stage extraction counts")

	viper.SetEnvPrefix("USAGE")
	viper.AutomaticEnv()
	_ = viper.BindPFlags(f)

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(cfg)

	log := newLogger(cfg, viper.GetBool("verbose"))

	corpusDir := args[0]
	if fi, err := os.Stat(corpusDir); err != nil || !fi.IsDir() {
		log.WithField("path", corpusDir).Error("corpus path is not a directory")
		return fmt.Errorf("corpus path %q is not a directory", corpusDir)
	}

	// Lexicon problems are the only fatal error class: nothing is processed
	// until all three parse.
	lex, err := config.LoadLexicon(cfg.Lexicons)
	if err != nil {
		log.WithError(err).Error("lexicon loading failed")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := orchestrator.NewRunner(cfg, lex, log)
	summary, err := runner.Run(ctx, corpusDir)
	if err != nil {
		log.WithError(err).Error("corpus run failed")
		return err
	}

	featuresPath := cfg.Paths.Features
	if featuresPath == "" {
		featuresPath = orchestrator.DefaultFeaturesPath(cfg.Paths.Outputs)
	}
	if err := features.ExportCSV(summary.Table, featuresPath); err != nil {
		log.WithError(err).Error("feature export failed")
		return err
	}

	logSummary(log, summary, featuresPath)

	if !summary.OK() {
		for _, f := range summary.Failures {
			log.WithField("transcript", f.TranscriptID).WithError(f.Err).Error("transcript failed")
		}
		return fmt.Errorf("%d transcript(s) failed", len(summary.Failures))
	}
	return nil
}

// applyOverrides lets flags and USAGE_* environment variables win over the
// run-config file.
func applyOverrides(cfg *config.Root) {
	if v := viper.GetString("synonyms"); v != "" {
		cfg.Lexicons.Synonyms = v
	}
	if v := viper.GetString("interjections"); v != "" {
		cfg.Lexicons.Interjections = v
	}
	if v := viper.GetString("expressions"); v != "" {
		cfg.Lexicons.Expressions = v
	}
	if v := viper.GetString("features-out"); v != "" {
		cfg.Paths.Features = v
	}
	if v := viper.GetString("out-dir"); v != "" {
		cfg.Paths.Outputs = v
	}
	if v := viper.GetInt("workers"); v > 0 {
		cfg.Workers = v
	}
}

func newLogger(cfg *config.Root, verbose bool) *logrus.Entry {
	l := logrus.New()
	lvl, err := logrus.ParseLevel(cfg.Pipeline.LogLvl)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if verbose {
		lvl = logrus.DebugLevel
	}
	l.SetLevel(lvl)
	return l.WithField("app", cfg.Pipeline.Name)
}

func logSummary(log *logrus.Entry, s *orchestrator.Summary, featuresPath string) {
	log.WithFields(logrus.Fields{
		"processed": s.Processed,
		"failed":    len(s.Failures),
		"features":  featuresPath,
	}).Info("corpus run finished")
	for name, mean := range s.Table.Means() {
		log.WithFields(logrus.Fields{"measure": name, "meanPerTranscript": mean}).Info("measure summary")
	}
}
