package config

import (
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

type Speakers struct {
	Participant  string `yaml:"participant"`
	Investigator string `yaml:"investigator"`
}

type Paths struct {
	Outputs  string `yaml:"outputs"`
	Features string `yaml:"features"`
}

type LexiconPaths struct {
	Synonyms      string `yaml:"synonyms"`
	Interjections string `yaml:"interjections"`
	Expressions   string `yaml:"expressions"`
}

type Root struct {
	Pipeline struct {
		Name   string `yaml:"name"`
		LogLvl string `yaml:"log_level"`
	} `yaml:"pipeline"`
	Speakers Speakers     `yaml:"speakers"`
	Workers  int          `yaml:"workers"`
	Paths    Paths        `yaml:"paths"`
	Lexicons LexiconPaths `yaml:"lexicons"`
}

// Default returns the configuration used when no config file is given.
func Default() *Root {
	var cfg Root
	cfg.Pipeline.Name = "usage-normalize"
	cfg.Pipeline.LogLvl = "info"
	cfg.Speakers = Speakers{Participant: "*PAR:", Investigator: "*INV:"}
	cfg.Workers = runtime.NumCPU()
	cfg.Paths.Outputs = "out"
	return &cfg
}

// Load reads a YAML run config from path, or from the first conventional
// location found when path is empty. Unset fields fall back to Default.
func Load(path string) (*Root, error) {
	guess := []string{path}
	if path == "" {
		guess = []string{
			filepath.Join("config", "usage.yaml"),
			"usage.yaml",
		}
	}

	var f *os.File
	var err error
	for _, p := range guess {
		f, err = os.Open(p)
		if err == nil {
			defer f.Close()
			cfg := Default()
			if err = yaml.NewDecoder(f).Decode(cfg); err != nil {
				return nil, err
			}
			cfg.fill()
			return cfg, nil
		}
	}
	if path == "" {
		return Default(), nil
	}
	return nil, err
}

func (c *Root) fill() {
	def := Default()
	if c.Pipeline.Name == "" {
		c.Pipeline.Name = def.Pipeline.Name
	}
	if c.Pipeline.LogLvl == "" {
		c.Pipeline.LogLvl = def.Pipeline.LogLvl
	}
	if c.Speakers.Participant == "" {
		c.Speakers.Participant = def.Speakers.Participant
	}
	if c.Speakers.Investigator == "" {
		c.Speakers.Investigator = def.Speakers.Investigator
	}
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if c.Paths.Outputs == "" {
		c.Paths.Outputs = def.Paths.Outputs
	}
}
