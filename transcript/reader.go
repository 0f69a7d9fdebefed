package transcript

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LiNCS-lab/usAge/config"
)

// IsTranscript reports whether name looks like a supported transcript file.
// Hidden files and unknown extensions are skipped, never errors.
func IsTranscript(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".cha", ".txt":
		return true
	}
	return false
}

// Read parses the transcript file at path. The speaker codes identify the
// participant and investigator turn prefixes of CHAT files; plain text
// files are attributed entirely to the participant.
func Read(path string, speakers config.Speakers) (*Transcript, error) {
	name := filepath.Base(path)
	tr := &Transcript{
		ID:   strings.TrimSuffix(name, filepath.Ext(name)),
		Path: path,
	}
	tr.Info, _ = ParseInfo(name)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript %s: %w", name, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(name), ".cha") {
		err = readCHAT(f, speakers, tr)
	} else {
		err = readText(f, tr)
	}
	if err != nil {
		return nil, fmt.Errorf("read transcript %s: %w", name, err)
	}
	return tr, nil
}

// readCHAT splits a CHAT dialog into utterances. A line starting with a
// speaker code opens a turn; tab-indented lines continue it; %-prefixed
// dependent tiers (morphology, comments) and @-prefixed headers are
// skipped. Turns of speakers other than the two configured codes are
// dropped.
func readCHAT(f *os.File, speakers config.Speakers, tr *Transcript) error {
	var (
		cur  *Utterance
		seq  int
		open bool // current turn belongs to a tracked speaker
	)
	flush := func() {
		if open && cur != nil && strings.TrimSpace(cur.Text) != "" {
			cur.Text = strings.TrimSpace(cur.Text)
			tr.Utterances = append(tr.Utterances, *cur)
		}
		cur, open = nil, false
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		switch {
		case strings.HasPrefix(line, "\t"):
			if open && cur != nil {
				cur.Text += " " + strings.TrimSpace(line)
			}
		case strings.HasPrefix(line, speakers.Participant):
			flush()
			seq++
			cur = &Utterance{Speaker: SpeakerParticipant, Text: strings.TrimSpace(line[len(speakers.Participant):]), Seq: seq}
			open = true
		case strings.HasPrefix(line, speakers.Investigator):
			flush()
			seq++
			cur = &Utterance{Speaker: SpeakerInvestigator, Text: strings.TrimSpace(line[len(speakers.Investigator):]), Seq: seq}
			open = true
		default:
			// dependent tiers, headers, untracked speakers
			flush()
		}
	}
	flush()
	return sc.Err()
}

// readText attributes the whole file to the participant, one utterance per
// sentence-like segment.
func readText(f *os.File, tr *Transcript) error {
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	seq := 0
	for sc.Scan() {
		for _, seg := range splitProse(sc.Text()) {
			seq++
			tr.Utterances = append(tr.Utterances, Utterance{
				Speaker: SpeakerParticipant, Text: seg, Seq: seq,
			})
		}
	}
	return sc.Err()
}

// splitProse cuts a prose line after each terminal punctuation mark.
func splitProse(line string) []string {
	var segs []string
	start := 0
	for i, r := range line {
		switch r {
		case '.', '!', '?':
			if seg := strings.TrimSpace(line[start : i+1]); seg != "" {
				segs = append(segs, seg)
			}
			start = i + 1
		}
	}
	if seg := strings.TrimSpace(line[start:]); seg != "" {
		segs = append(segs, seg)
	}
	return segs
}
