package config

import (
    "os"
    "path/filepath"
    "runtime"
    "testing"
)

// chdirToRepoRoot ensures relative paths like "definitions/..." resolve during tests
func chdirToRepoRoot(t *testing.T) {
    t.Helper()
    _, file, _, _ := runtime.Caller(0)
    // internal/config/config_test.go -> repo root is two levels up
    root := filepath.Clean(filepath.Join(filepath.Dir(file), "../.."))
    if err := os.Chdir(root); err != nil {
        t.Fatalf("chdir to repo root: %v", err)
    }
}

func TestLoadFromDir_Success(t *testing.T) {
    chdirToRepoRoot(t)
    cfg, err := LoadFromDir("definitions")
    if err != nil {
        t.Fatalf("LoadFromDir returned error: %v", err)
    }

    // Basic presence
    if len(cfg.Categories) == 0 || len(cfg.Ladders) == 0 || len(cfg.Seeds) == 0 {
        t.Fatalf("expected non-empty categories/ladders/seeds, got: %d/%d/%d", len(cfg.Categories), len(cfg.Ladders), len(cfg.Seeds))
    }

    // Known category
    tech := cfg.Category("technical")
    if tech == nil {
        t.Fatalf("expected technical category to be loaded")
    }
    if tech.Label != "Technical" || len(tech.Keywords) < 5 {
        t.Fatalf("unexpected category fields: %+v", tech)
    }

    // Known ladder
    lad, ok := cfg.Ladders["software_engineer"]
    if !ok {
        t.Fatalf("expected software_engineer ladder to be loaded")
    }
    if lad.Field != "technology" || len(lad.Rungs) != 5 {
        t.Fatalf("unexpected ladder fields: %+v", lad)
    }
    if lad.Rungs[0] != "Junior Developer" || lad.Rungs[4] != "Engineering Manager" {
        t.Fatalf("ladder rungs out of order: %+v", lad.Rungs)
    }

    // Known seed listing
    found := false
    for _, s := range cfg.Seeds {
        if s.Title == "Senior Data Scientist" && s.Company == "TechCorp Inc." {
            found = true
            if len(s.Requirements) != 5 {
                t.Fatalf("unexpected requirements: %+v", s.Requirements)
            }
        }
    }
    if !found {
        t.Fatalf("seed catalog missing Senior Data Scientist listing")
    }

    // Fill data for synthetic listings
    if len(cfg.Fill.Companies) == 0 || len(cfg.Fill.DefaultSkills) == 0 {
        t.Fatalf("fill data not loaded: %+v", cfg.Fill)
    }
    if _, ok := cfg.Fill.Skills["data scientist"]; !ok {
        t.Fatalf("fill skills missing data scientist entry")
    }

    // Model table
    m, ok := cfg.Models["nova-micro"]
    if !ok {
        t.Fatalf("model table missing nova-micro")
    }
    if m.Format != "nova" || m.ID == "" {
        t.Fatalf("unexpected model entry: %+v", m)
    }
    if _, ok := cfg.Models["claude-sonnet-35"]; !ok {
        t.Fatalf("model table missing claude-sonnet-35")
    }
}

func TestLoadModelsDir_MissingDirIsFine(t *testing.T) {
    cfg := &Config{Models: make(map[string]ModelDef)}
    if err := loadModelsDir(filepath.Join(t.TempDir(), "models"), cfg); err != nil {
        t.Fatalf("missing models dir should not error: %v", err)
    }
    if len(cfg.Models) != 0 {
        t.Fatalf("expected empty model table, got %+v", cfg.Models)
    }
}

func TestLoadModelsDir_RejectsBadEntries(t *testing.T) {
    dir := t.TempDir()
    bad := []byte("models:\n  - name: titan\n    id: amazon.titan-text-express-v1\n    format: titan\n")
    if err := os.WriteFile(filepath.Join(dir, "catalog.yaml"), bad, 0o644); err != nil {
        t.Fatalf("writing fixture: %v", err)
    }

    cfg := &Config{Models: make(map[string]ModelDef)}
    err := loadModelsDir(dir, cfg)
    if err == nil {
        t.Fatalf("expected error for unknown format")
    }

    missing := []byte("models:\n  - name: nova-micro\n    format: nova\n")
    if err := os.WriteFile(filepath.Join(dir, "catalog.yaml"), missing, 0o644); err != nil {
        t.Fatalf("writing fixture: %v", err)
    }
    if err := loadModelsDir(dir, cfg); err == nil {
        t.Fatalf("expected error for entry without id")
    }
}

func TestLoadFromDir_NotFound(t *testing.T) {
    chdirToRepoRoot(t)
    if _, err := LoadFromDir("non-existent-dir-12345"); err == nil {
        t.Fatalf("expected error when loading from non-existent dir")
    }
}

func TestProviderChain(t *testing.T) {
    v := &EnvVars{LLMProviders: "bedrock, ollama ,gemini"}
    got := v.ProviderChain()
    if len(got) != 3 || got[0] != "bedrock" || got[1] != "ollama" || got[2] != "gemini" {
        t.Fatalf("unexpected chain: %v", got)
    }
}

func TestBedrockModels_PrimaryFirst(t *testing.T) {
    v := &EnvVars{BedrockModelID: "nova-micro", BedrockFallbackModels: "claude-haiku,claude-sonnet"}
    got := v.BedrockModels()
    if len(got) != 3 || got[0] != "nova-micro" || got[2] != "claude-sonnet" {
        t.Fatalf("unexpected models: %v", got)
    }
}
