package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/carbocation/pfx"
	"github.com/carbocation/rnacompete"
)

// Config holds every setting of a run. Input paths that are relative are
// interpreted against DatasetDir.
type Config struct {
	ConfigPath string `json:"-"`

	DatasetDir string `json:"dataset_dir"`
	OutputDir  string `json:"output_dir"`
	FigureDir  string `json:"figure_dir"`

	SetANPY        string `json:"setA_npy"`
	SetBNPY        string `json:"setB_npy"`
	SetAAnnotation string `json:"setA_annotation"`
	SetBAnnotation string `json:"setB_annotation"`

	Pattern   string `json:"pattern"`
	Delimiter string `json:"delimiter"`
	NKmers    int    `json:"nkmers"`
	Seed      uint64 `json:"seed"`
	Label     string `json:"label"`
}

// DefaultConfig mirrors the file layout of the RNAcompete (Ray 2013) set A /
// set B replicate data.
func DefaultConfig() Config {
	return Config{
		OutputDir:      ".",
		FigureDir:      ".",
		SetANPY:        "setA_binary_ST.npy",
		SetBNPY:        "setB_binary.npy",
		SetAAnnotation: "norm_setA_processed_ST.tsv",
		SetBAnnotation: "norm_setB_processed_ST.tsv",
		Pattern:        "RNCMPT",
		Seed:           13,
		Label:          "SetA",
	}
}

// ParseJSONConfig decodes a JSON config over base, so keys absent from the
// file keep their base values.
func ParseJSONConfig(r io.Reader, base Config) (Config, error) {
	out := base

	if err := json.NewDecoder(r).Decode(&out); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}
		return base, pfx.Err(err)
	}

	return out, nil
}

// ParseJSONConfigFromPath reads the config file at path over base.
func ParseJSONConfigFromPath(path string, base Config) (Config, error) {
	f, err := os.Open(rnacompete.ExpandHome(path))
	if err != nil {
		return base, pfx.Err(err)
	}
	defer f.Close()

	out, err := ParseJSONConfig(f, base)
	if err != nil {
		return base, err
	}
	out.ConfigPath = path

	return out, nil
}

// Resolved returns a copy with ~ expanded in every path and relative input
// paths joined to DatasetDir.
func (c Config) Resolved() Config {
	c.DatasetDir = rnacompete.ExpandHome(c.DatasetDir)
	c.OutputDir = rnacompete.ExpandHome(c.OutputDir)
	c.FigureDir = rnacompete.ExpandHome(c.FigureDir)

	c.SetANPY = rnacompete.ResolvePath(c.DatasetDir, c.SetANPY)
	c.SetBNPY = rnacompete.ResolvePath(c.DatasetDir, c.SetBNPY)
	c.SetAAnnotation = rnacompete.ResolvePath(c.DatasetDir, c.SetAAnnotation)
	c.SetBAnnotation = rnacompete.ResolvePath(c.DatasetDir, c.SetBAnnotation)

	return c
}

// Validate reports settings that would make the run meaningless.
func (c Config) Validate() error {
	switch {
	case c.SetANPY == "" || c.SetBNPY == "":
		return fmt.Errorf("both presence/absence matrices are required")
	case c.SetAAnnotation == "" || c.SetBAnnotation == "":
		return fmt.Errorf("both annotation tables are required")
	case c.Pattern == "":
		return fmt.Errorf("a target column pattern is required")
	case c.Label == "":
		return fmt.Errorf("a model label is required")
	case c.NKmers < 0:
		return fmt.Errorf("nkmers must be 0 (all) or positive, got %d", c.NKmers)
	case len([]rune(c.Delimiter)) > 1:
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}

	return nil
}

// DelimiterRune returns the configured delimiter, or 0 for auto-detection.
// The literal `\t` is accepted for tab.
func (c Config) DelimiterRune() rune {
	switch c.Delimiter {
	case "":
		return 0
	case `\t`:
		return '\t'
	}

	return []rune(c.Delimiter)[0]
}

// registerFlags binds every setting to fs, with defaults from c.
func (c *Config) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", "", "(Optional) Path to a JSON config file. Flags given on the command line override its values.")
	fs.StringVar(&c.DatasetDir, "dataset", c.DatasetDir, "Directory against which relative input paths are resolved. May be a gs:// prefix.")
	fs.StringVar(&c.OutputDir, "out", c.OutputDir, "Directory for the correlation tables.")
	fs.StringVar(&c.FigureDir, "figures", c.FigureDir, "Directory for the boxplot SVG.")
	fs.StringVar(&c.SetANPY, "a-npy", c.SetANPY, "Set A k-mer presence/absence matrix (.npy, k-mers x probes).")
	fs.StringVar(&c.SetBNPY, "b-npy", c.SetBNPY, "Set B k-mer presence/absence matrix (.npy, k-mers x probes).")
	fs.StringVar(&c.SetAAnnotation, "a-annot", c.SetAAnnotation, "Set A probe annotation table with one intensity column per target.")
	fs.StringVar(&c.SetBAnnotation, "b-annot", c.SetBAnnotation, "Set B probe annotation table with one intensity column per target.")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "Substring identifying target columns in the set B annotation table.")
	fs.StringVar(&c.Delimiter, "delimiter", c.Delimiter, "(Optional) Annotation table delimiter. If empty, it is detected.")
	fs.IntVar(&c.NKmers, "nkmers", c.NKmers, "(Optional) Number of k-mers to subsample before filtering. 0 uses every k-mer.")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "Random seed for --nkmers subsampling.")
	fs.StringVar(&c.Label, "label", c.Label, "Model label written to every output row and embedded in file names.")
}

// overlayFlags copies the value of every flag explicitly set on fs from
// flagged into base.
func overlayFlags(fs *flag.FlagSet, base, flagged Config) Config {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dataset":
			base.DatasetDir = flagged.DatasetDir
		case "out":
			base.OutputDir = flagged.OutputDir
		case "figures":
			base.FigureDir = flagged.FigureDir
		case "a-npy":
			base.SetANPY = flagged.SetANPY
		case "b-npy":
			base.SetBNPY = flagged.SetBNPY
		case "a-annot":
			base.SetAAnnotation = flagged.SetAAnnotation
		case "b-annot":
			base.SetBAnnotation = flagged.SetBAnnotation
		case "pattern":
			base.Pattern = flagged.Pattern
		case "delimiter":
			base.Delimiter = flagged.Delimiter
		case "nkmers":
			base.NKmers = flagged.NKmers
		case "seed":
			base.Seed = flagged.Seed
		case "label":
			base.Label = flagged.Label
		}
	})

	return base
}

// ParseConfig builds the run configuration from command line arguments: the
// defaults, then the JSON config (if --config is given), then explicit flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	flagged := DefaultConfig()
	flagged.registerFlags(fs)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if flagged.ConfigPath == "" {
		return flagged, nil
	}

	fromFile, err := ParseJSONConfigFromPath(flagged.ConfigPath, DefaultConfig())
	if err != nil {
		return Config{}, err
	}

	return overlayFlags(fs, fromFile, flagged), nil
}
