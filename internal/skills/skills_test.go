package skills

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/launchpad-ai/launchpad/internal/config"
	"github.com/launchpad-ai/launchpad/internal/llm"
)

type fakeClient struct {
	reply string
	err   error
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.err }
func (f *fakeClient) Chat(ctx context.Context, req llm.Request) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Categories: []config.SkillCategory{
			{Name: "technical", Label: "Technical", Keywords: []string{"python", "sql", "machine learning"}},
			{Name: "soft_skills", Label: "Soft Skills", Keywords: []string{"leadership", "communication"}},
			{Name: "industry", Label: "Industry", Keywords: []string{"finance"}},
			{Name: "tools", Label: "Tools", Keywords: []string{"excel", "git"}},
		},
	}
}

func TestExtract_KeywordsOnlyWhenLLMFails(t *testing.T) {
	cfg := testConfig()
	client := &fakeClient{err: errors.New("model down")}

	got := Extract(context.Background(), client, cfg, "I know Python and SQL, strong leadership in finance.")

	if len(got["technical"]) != 2 || got["technical"][0] != "Python" || got["technical"][1] != "Sql" {
		t.Fatalf("unexpected technical skills: %v", got["technical"])
	}
	if len(got["soft_skills"]) != 1 || got["soft_skills"][0] != "Leadership" {
		t.Fatalf("unexpected soft skills: %v", got["soft_skills"])
	}
	if len(got["industry"]) != 1 || got["industry"][0] != "Finance" {
		t.Fatalf("unexpected industry: %v", got["industry"])
	}
	if len(got["tools"]) != 0 {
		t.Fatalf("expected no tools, got %v", got["tools"])
	}
}

func TestExtract_MergesLLMResultsWithoutDuplicates(t *testing.T) {
	cfg := testConfig()
	client := &fakeClient{reply: `{
		"Technical Skills": ["Go", "python"],
		"Soft Skills": [],
		"Industry Knowledge": ["Healthcare"],
		"Tools & Software": ["Docker"]
	}`}

	got := Extract(context.Background(), client, cfg, "I write python scripts")

	// "python" por keyword y por LLM colapsan en una sola entrada
	tech := got["technical"]
	if len(tech) != 2 || tech[0] != "Go" || tech[1] != "Python" {
		t.Fatalf("unexpected technical merge: %v", tech)
	}
	if len(got["industry"]) != 1 || got["industry"][0] != "Healthcare" {
		t.Fatalf("unexpected industry: %v", got["industry"])
	}
	if len(got["tools"]) != 1 || got["tools"][0] != "Docker" {
		t.Fatalf("unexpected tools: %v", got["tools"])
	}
}

func TestExtract_IgnoresUnknownLLMCategories(t *testing.T) {
	cfg := &config.Config{
		Categories: []config.SkillCategory{
			{Name: "technical", Label: "Technical", Keywords: []string{"python"}},
		},
	}
	// soft_skills no existe en esta taxonomía reducida
	client := &fakeClient{reply: `{"Technical Skills": ["Rust"], "Soft Skills": ["Empathy"]}`}

	got := Extract(context.Background(), client, cfg, "")

	if len(got) != 1 {
		t.Fatalf("expected only configured categories, got %v", got)
	}
	if len(got["technical"]) != 1 || got["technical"][0] != "Rust" {
		t.Fatalf("unexpected technical: %v", got["technical"])
	}
}

func TestExtract_FencedJSONFromModel(t *testing.T) {
	cfg := testConfig()
	client := &fakeClient{reply: "```json\n{\"Technical Skills\": [\"Scala\"]}\n```"}

	got := Extract(context.Background(), client, cfg, "")
	if len(got["technical"]) != 1 || got["technical"][0] != "Scala" {
		t.Fatalf("fenced json not parsed: %v", got["technical"])
	}
}

func TestGapAnalysis_FallbackOnError(t *testing.T) {
	cfg := testConfig()
	client := &fakeClient{err: errors.New("down")}

	got := GapAnalysis(context.Background(), client, cfg, map[string][]string{}, "become a data scientist")
	if got != "Unable to analyze skill gaps at this time." {
		t.Fatalf("unexpected fallback: %q", got)
	}
}

func TestReport_SectionsAndLabels(t *testing.T) {
	cfg := testConfig()
	extracted := map[string][]string{
		"technical":   {"Python", "Sql"},
		"soft_skills": {"Leadership"},
		"industry":    nil,
		"tools":       nil,
	}

	out := Report(cfg, extracted, "gap text", "rec text")

	for _, want := range []string{
		"## 🎯 Skill Analysis Results",
		"### 💪 Your Current Skills",
		"**Technical:** Python, Sql",
		"**Soft Skills:** Leadership",
		"### 📊 Skill Gap Analysis",
		"gap text",
		"### 🎓 Learning Recommendations",
		"rec text",
		"### ✅ Next Steps",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
	// categorías vacías no aparecen
	if strings.Contains(out, "**Industry:**") {
		t.Fatalf("empty category rendered:\n%s", out)
	}
}

func TestSummary_FlattensInCategoryOrder(t *testing.T) {
	cfg := testConfig()
	extracted := map[string][]string{
		"technical":   {"Python"},
		"soft_skills": {"Leadership"},
		"tools":       {"Git"},
	}
	got := Summary(cfg, extracted)
	if got != "Python, Leadership, Git" {
		t.Fatalf("unexpected summary: %q", got)
	}
}
