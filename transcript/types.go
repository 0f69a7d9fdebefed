// Package transcript reads corpus transcript files into speaker-tagged
// utterances and writes cleaned dialogs back out. Two source formats are
// supported: CHAT files (.cha) holding a two-speaker dialog and plain text
// files (.txt) holding participant speech only.
package transcript

import "regexp"

// Speaker distinguishes the two dialog roles of a clinical interview.
type Speaker string

const (
	SpeakerParticipant  Speaker = "PAR"
	SpeakerInvestigator Speaker = "INV"
)

// Utterance is one speaker turn: the raw annotated text as read from the
// source, in dialog order.
type Utterance struct {
	Speaker Speaker
	Text    string
	Seq     int
}

// Info is the metadata encoded in a transcript file name, following the
// status_participant-interview convention (e.g. AD_101-1.cha).
type Info struct {
	Status          string
	ParticipantID   string
	InterviewNumber string
}

// Transcript is one corpus file split into ordered utterances.
type Transcript struct {
	ID         string // file stem, unique within a corpus
	Path       string
	Info       Info
	Utterances []Utterance
}

var infoRe = regexp.MustCompile(`^([A-Za-z]+)_([0-9]+)-([0-9a-z]+)`)

// ParseInfo extracts participant metadata from a transcript file name.
// ok is false when the name does not follow the corpus convention.
func ParseInfo(fileName string) (info Info, ok bool) {
	m := infoRe.FindStringSubmatch(fileName)
	if m == nil {
		return Info{}, false
	}
	return Info{Status: m[1], ParticipantID: m[2], InterviewNumber: m[3]}, true
}
