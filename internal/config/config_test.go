package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scorer != "fuzzy" {
		t.Fatalf("got default scorer %q, want fuzzy", cfg.Scorer)
	}
	if cfg.Delimiter != ' ' {
		t.Fatalf("got default delimiter %q, want space", cfg.Delimiter)
	}
	if cfg.NoMatch != NoMatchEmpty {
		t.Fatalf("got default no-match %q, want empty", cfg.NoMatch)
	}
	if !cfg.AltScreen || !cfg.ShowPreview {
		t.Fatalf("altscreen and preview should default to true")
	}
}

func TestLoadOverridesAndFieldSelector(t *testing.T) {
	cfg, err := Load([]string{"--scorer=substr", "--delimiter=,", "--field-select=1..", "--no-match=input", "--height=20"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scorer != "substr" {
		t.Fatalf("got scorer %q, want substr", cfg.Scorer)
	}
	if cfg.Delimiter != ',' {
		t.Fatalf("got delimiter %q, want comma", cfg.Delimiter)
	}
	if cfg.NoMatch != NoMatchInput {
		t.Fatalf("got no-match %q, want input", cfg.NoMatch)
	}
	if cfg.Height != 20 {
		t.Fatalf("got height %d, want 20", cfg.Height)
	}
	if cfg.FieldSelector == nil {
		t.Fatal("expected a parsed field selector")
	}
	if !cfg.FieldSelector.Matches(1, 3) || cfg.FieldSelector.Matches(0, 3) {
		t.Fatalf("field selector \"1..\" should select index 1+ only")
	}
}

func TestLoadRejectsUnknownScorer(t *testing.T) {
	if _, err := Load([]string{"--scorer=nope"}); err == nil {
		t.Fatal("expected an error for an unknown scorer")
	}
}

func TestLoadRejectsMultiCharDelimiter(t *testing.T) {
	if _, err := Load([]string{"--delimiter=ab"}); err == nil {
		t.Fatal("expected an error for a multi-character delimiter")
	}
}

func TestLoadRejectsUnknownNoMatchPolicy(t *testing.T) {
	if _, err := Load([]string{"--no-match=bogus"}); err == nil {
		t.Fatal("expected an error for an unknown no-match policy")
	}
}

func TestLoadParsesPreviewCmdIntoArgvTemplates(t *testing.T) {
	cfg, err := Load([]string{"--preview-cmd=bat --color=always {}"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.PreviewArgv) != 3 {
		t.Fatalf("got %d argv templates, want 3 (bat, --color=always, {})", len(cfg.PreviewArgv))
	}
}

func TestLoadWithoutPreviewCmdHasNoArgv(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PreviewArgv != nil {
		t.Fatalf("got %d argv templates, want none", len(cfg.PreviewArgv))
	}
}
