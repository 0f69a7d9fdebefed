package orchestrator

import (
	"path/filepath"

	"github.com/LiNCS-lab/usAge/transcript"
)

// Cleaned dialogs are laid out per speaker and per reduction mode under the
// output root, the directory boundary the downstream tagging collaborator
// consumes:
//
//	<out>/CleanedDialogs/PAR/Original/<id>.txt
//	<out>/CleanedDialogs/PAR/SynonymReduced/<id>.txt
//	<out>/CleanedDialogs/INV/Original/<id>.txt
//	<out>/CleanedDialogs/INV/SynonymReduced/<id>.txt
const (
	cleanedDialogsDir  = "CleanedDialogs"
	originalDir        = "Original"
	synonymReducedDir  = "SynonymReduced"
	extractedFeaturDir = "ExtractedFeatures"
	featuresFileName   = "discursive_markers_distribution.csv"
)

// dialogPath builds the output file path for one transcript's cleaned
// dialog of one speaker, reduced or not.
func dialogPath(outRoot string, sp transcript.Speaker, reduced bool, id string) string {
	mode := originalDir
	if reduced {
		mode = synonymReducedDir
	}
	return filepath.Join(outRoot, cleanedDialogsDir, string(sp), mode, id+".txt")
}

// DefaultFeaturesPath is where the feature table lands when no explicit
// export path is given.
func DefaultFeaturesPath(outRoot string) string {
	return filepath.Join(outRoot, extractedFeaturDir, featuresFileName)
}
