// Package config parses the CLI surface: a pflag.FlagSet bound into a
// viper instance so every flag also has an environment-variable equivalent
// (see DESIGN.md). No config file is read.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sweeptui/sweep/internal/candidate"
	"github.com/sweeptui/sweep/internal/preview"
	"github.com/sweeptui/sweep/internal/scorer"
	"github.com/sweeptui/sweep/tools/utils/shlex"
)

// NoMatchPolicy mirrors controller.NoMatchPolicy without importing the
// controller package, keeping config free of the render-loop dependency.
type NoMatchPolicy string

const (
	NoMatchEmpty NoMatchPolicy = "empty"
	NoMatchInput NoMatchPolicy = "input"
)

// Config is the fully parsed and validated CLI/environment surface.
type Config struct {
	Height       int
	Prompt       string
	PromptIcon   string
	InitialQuery string
	Theme        string // raw spec string; resolved to a *theme.Theme by the caller
	FieldSelect  string
	Delimiter    rune
	KeepOrder    bool
	Scorer       string // "fuzzy" | "substr"
	RPCMode      bool
	TTYPath      string
	NoMatch      NoMatchPolicy
	AltScreen    bool
	JSONInput    bool
	IOSocket     string // alternate I/O socket path, or "fd:N"
	LogPath      string
	BorderWidth  int
	ShowPreview  bool
	PreviewCmd   string

	FieldSelector *candidate.FieldSelector
	PreviewArgv   []*preview.Template
}

// RegisterFlags defines sweep's CLI surface on fs. Callers that drive the
// binary through a cobra.Command bind these directly onto cmd.Flags()
// instead of building a standalone FlagSet, the way tools/cli's
// infrastructure wraps cobra commands in the teacher repo this is grounded
// on.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int("height", 0, "list height in rows (0 uses the terminal's full height)")
	fs.String("prompt", "> ", "prompt text shown before the input line")
	fs.String("prompt-icon", "", "glyph name shown alongside the prompt")
	fs.String("query", "", "initial query text")
	fs.String("theme", "", "theme spec, e.g. \"dark,accent=#89b4fa\" (falls back to $SWEEP_THEME)")
	fs.String("field-select", "", "field selector, e.g. \"0\", \"1..\", \"..-1\"")
	fs.String("delimiter", " ", "field delimiter (single character)")
	fs.Bool("keep-order", false, "keep matches in haystack order instead of sorting by score")
	fs.String("scorer", "fuzzy", "scorer to use: fuzzy or substr")
	fs.Bool("rpc", false, "serve the JSON RPC binding instead of reading a line-oriented candidate stream")
	fs.String("tty", "", "TTY device path to use instead of the controlling terminal")
	fs.String("no-match", "empty", "what Select returns with no match: empty or input")
	fs.Bool("altscreen", true, "use the terminal's alternate screen buffer")
	fs.Bool("json-input", false, "parse the candidate stream as JSON candidates instead of plain lines")
	fs.String("io-socket", "", "alternate I/O socket path, or \"fd:N\" to use an inherited file descriptor")
	fs.String("log", "", "path to write diagnostic logs to (disabled if empty)")
	fs.Int("border", 1, "border width in cells around the list/preview split")
	fs.Bool("preview", true, "show the preview pane")
	fs.String("preview-cmd", "", "shell command line run to fill the preview pane, e.g. \"bat --color=always {}\"")
}

// Load parses args (typically os.Args[1:]) against both CLI flags and the
// environment, returning a validated Config. It is a convenience wrapper
// around RegisterFlags/FromFlags for callers that don't need a
// cobra.Command of their own.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("sweep", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return FromFlags(fs)
}

// FromFlags validates an already-parsed FlagSet (one RegisterFlags has been
// applied to) against the environment, returning a validated Config.
func FromFlags(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("sweep")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	delimRunes := []rune(v.GetString("delimiter"))
	if len(delimRunes) != 1 {
		return nil, fmt.Errorf("config: --delimiter must be exactly one character, got %q", v.GetString("delimiter"))
	}

	scorerVal := v.GetString("scorer")
	if _, ok := scorer.Builders[scorerVal]; !ok {
		return nil, fmt.Errorf("config: --scorer must be one of fuzzy, substr, got %q", scorerVal)
	}

	noMatchVal := NoMatchPolicy(strings.ToLower(v.GetString("no-match")))
	if noMatchVal != NoMatchEmpty && noMatchVal != NoMatchInput {
		return nil, fmt.Errorf("config: --no-match must be empty or input, got %q", v.GetString("no-match"))
	}

	var selector *candidate.FieldSelector
	if s := v.GetString("field-select"); s != "" {
		var err error
		selector, err = candidate.ParseFieldSelector(s)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	previewCmd := v.GetString("preview-cmd")
	var argv []*preview.Template
	if previewCmd != "" {
		words, err := shlex.Split(previewCmd)
		if err != nil {
			return nil, fmt.Errorf("config: --preview-cmd: %w", err)
		}
		argv = make([]*preview.Template, len(words))
		for i, w := range words {
			t, err := preview.ParseTemplate(w)
			if err != nil {
				return nil, fmt.Errorf("config: --preview-cmd: %w", err)
			}
			argv[i] = t
		}
	}

	cfg := &Config{
		Height:        v.GetInt("height"),
		Prompt:        v.GetString("prompt"),
		PromptIcon:    v.GetString("prompt-icon"),
		InitialQuery:  v.GetString("query"),
		Theme:         v.GetString("theme"),
		FieldSelect:   v.GetString("field-select"),
		Delimiter:     delimRunes[0],
		KeepOrder:     v.GetBool("keep-order"),
		Scorer:        scorerVal,
		RPCMode:       v.GetBool("rpc"),
		TTYPath:       v.GetString("tty"),
		NoMatch:       noMatchVal,
		AltScreen:     v.GetBool("altscreen"),
		JSONInput:     v.GetBool("json-input"),
		IOSocket:      v.GetString("io-socket"),
		LogPath:       v.GetString("log"),
		BorderWidth:   v.GetInt("border"),
		ShowPreview:   v.GetBool("preview"),
		PreviewCmd:    previewCmd,
		FieldSelector: selector,
		PreviewArgv:   argv,
	}

	return cfg, nil
}
