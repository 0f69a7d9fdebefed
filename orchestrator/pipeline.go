// Package orchestrator drives a corpus run: it discovers transcript files,
// fans them out to a bounded worker pool, threads each through the
// normalization pipeline, writes the cleaned dialogs, and rolls the
// extraction measures up into the feature aggregator.
//
// Transcripts are independent computations; a failed transcript is logged
// and skipped, never aborting its siblings. Cancelling the context stops
// dispatch of new transcripts while in-flight ones run to completion.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/LiNCS-lab/usAge/config"
	"github.com/LiNCS-lab/usAge/features"
	"github.com/LiNCS-lab/usAge/normalize"
	"github.com/LiNCS-lab/usAge/transcript"
)

type Runner struct {
	cfg  *config.Root
	pipe *normalize.Pipeline
	agg  *features.Aggregator
	log  *logrus.Entry
}

func NewRunner(cfg *config.Root, lex *config.Lexicon, log *logrus.Entry) *Runner {
	return &Runner{
		cfg:  cfg,
		pipe: normalize.NewPipeline(lex, log),
		agg:  features.NewAggregator(),
		log:  log,
	}
}

// Run processes every transcript file in corpusDir and returns the run
// summary. Only an unreadable corpus directory is an error; per-transcript
// failures are collected in the summary.
func (r *Runner) Run(ctx context.Context, corpusDir string) (*Summary, error) {
	entries, err := os.ReadDir(corpusDir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}

	var (
		mu        sync.Mutex
		failures  []Failure
		processed int
	)

	g := &errgroup.Group{}
	g.SetLimit(r.cfg.Workers)
	for _, e := range entries {
		if ctx.Err() != nil {
			break // shutdown: stop dispatching, let in-flight tasks finish
		}
		if e.IsDir() || !transcript.IsTranscript(e.Name()) {
			continue
		}
		path := filepath.Join(corpusDir, e.Name())
		id := e.Name()
		g.Go(func() error {
			if err := r.processOne(path); err != nil {
				r.log.WithField("transcript", id).WithError(err).Warn("transcript skipped")
				mu.Lock()
				failures = append(failures, Failure{TranscriptID: id, Err: err})
				mu.Unlock()
				return nil
			}
			mu.Lock()
			processed++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return &Summary{
		Processed: processed,
		Failures:  failures,
		Table:     r.agg.Finalize(),
	}, nil
}

// processOne runs the twelve-stage pipeline over a single transcript and
// persists its cleaned dialogs. The transcript's source is fully read and
// closed before any stage runs; outputs are written before the worker
// reports completion.
func (r *Runner) processOne(path string) error {
	tr, err := transcript.Read(path, r.cfg.Speakers)
	if err != nil {
		return err
	}
	r.log.WithField("transcript", tr.ID).Debug("processing")

	var counts features.Counts
	sentences := map[transcript.Speaker][]string{}
	reduced := map[transcript.Speaker][]string{}
	hasSynonyms := false

	for _, ut := range tr.Utterances {
		res := r.pipe.CleanUtterance(ut.Text)
		sentences[ut.Speaker] = append(sentences[ut.Speaker], res.Plain...)
		reduced[ut.Speaker] = append(reduced[ut.Speaker], res.Sentences...)
		if res.Synonyms > 0 {
			hasSynonyms = true
		}
		// Measures track participant speech only; the investigator's side is
		// cleaned and written but does not enter the feature table.
		if ut.Speaker == transcript.SpeakerParticipant {
			counts.CountResult(res)
		}
	}

	speakers := []transcript.Speaker{transcript.SpeakerParticipant}
	if len(sentences[transcript.SpeakerInvestigator]) > 0 {
		speakers = append(speakers, transcript.SpeakerInvestigator)
	}
	for _, sp := range speakers {
		if err := transcript.WriteDialog(dialogPath(r.cfg.Paths.Outputs, sp, false, tr.ID), sentences[sp]); err != nil {
			return err
		}
		if hasSynonyms || r.synonymConfigured() {
			if err := transcript.WriteDialog(dialogPath(r.cfg.Paths.Outputs, sp, true, tr.ID), reduced[sp]); err != nil {
				return err
			}
		}
	}

	r.agg.Record(features.Row{
		TranscriptID:    tr.ID,
		Status:          tr.Info.Status,
		ParticipantID:   tr.Info.ParticipantID,
		InterviewNumber: tr.Info.InterviewNumber,
		Counts:          counts,
	})
	return nil
}

func (r *Runner) synonymConfigured() bool {
	return r.cfg.Lexicons.Synonyms != ""
}
