package career

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/launchpad-ai/launchpad/internal/config"
	"github.com/launchpad-ai/launchpad/internal/llm"
)

// scriptedClient devuelve respuestas en orden, una por llamada.
type scriptedClient struct {
	replies []string
	calls   int
	err     error
}

func (s *scriptedClient) Ping(ctx context.Context) error { return s.err }
func (s *scriptedClient) Chat(ctx context.Context, req llm.Request) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.calls >= len(s.replies) {
		return "out of script", nil
	}
	out := s.replies[s.calls]
	s.calls++
	return out, nil
}

func TestParseSuggestions_StructuredBlocks(t *testing.T) {
	text := `Career Path 1: Data Scientist
Industry: Technology and analytics-heavy companies
Why it fits: strong quantitative background
Salary range: $120,000 - $160,000
Timeline: 18-24 months

Career Path 2: Product Manager
Industry: SaaS startups
Salary expectations: $110,000+`

	got := ParseSuggestions(text)

	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d: %+v", len(got), got)
	}
	if got[0].Title != "Data Scientist" {
		t.Fatalf("unexpected title: %q", got[0].Title)
	}
	if !strings.Contains(got[0].Industry, "Technology") {
		t.Fatalf("industry not captured: %q", got[0].Industry)
	}
	if !strings.Contains(got[0].FitReason, "quantitative") {
		t.Fatalf("fit reason not captured: %q", got[0].FitReason)
	}
	if !strings.Contains(got[0].Salary, "$120,000") {
		t.Fatalf("salary not captured: %q", got[0].Salary)
	}
	if !strings.Contains(got[0].Timeline, "18-24") {
		t.Fatalf("timeline not captured: %q", got[0].Timeline)
	}
	if got[1].Title != "Product Manager" {
		t.Fatalf("unexpected second title: %q", got[1].Title)
	}
}

func TestParseSuggestions_FallbackToCustomPath(t *testing.T) {
	got := ParseSuggestions("just some prose with no structure at all")

	if len(got) != 1 {
		t.Fatalf("expected single fallback suggestion, got %d", len(got))
	}
	if got[0].Title != "Custom Career Path" {
		t.Fatalf("unexpected fallback title: %q", got[0].Title)
	}
	if got[0].Description == "" {
		t.Fatalf("fallback should carry the raw text")
	}
}

func TestSuggest_ErrorPath(t *testing.T) {
	client := &scriptedClient{err: errors.New("down")}
	got := Suggest(context.Background(), client, "analysis")

	if len(got) != 1 || got[0].Title != "Error" {
		t.Fatalf("unexpected error suggestion: %+v", got)
	}
}

func TestMatchLadder(t *testing.T) {
	cfg := &config.Config{Ladders: map[string]config.Ladder{
		"data_scientist": {Name: "data_scientist", Field: "technology", Rungs: []string{"Data Analyst", "Data Scientist"}},
	}}

	if l := matchLadder(cfg, "Senior Data Scientist"); l == nil || l.Name != "data_scientist" {
		t.Fatalf("expected data_scientist ladder, got %+v", l)
	}
	if l := matchLadder(cfg, "Marketing Manager"); l != nil {
		t.Fatalf("expected no ladder, got %+v", l)
	}
}

func TestReport_TopThreeWithRoadmaps(t *testing.T) {
	suggestions := []Suggestion{
		{Title: "Data Scientist", Industry: "Industry: Tech", Salary: "Salary: $120k"},
		{Title: "ML Engineer"},
		{Title: "Analyst"},
		{Title: "Fourth Path Should Not Render"},
	}
	roadmaps := map[string]string{
		"Data Scientist": "Month 1: learn statistics",
	}

	out := Report(suggestions, roadmaps)

	for _, want := range []string{
		"## 🚀 Personalized Career Path Suggestions",
		"### 1. Data Scientist",
		"**Industry:** Industry: Tech",
		"#### 📋 12-Month Roadmap for Data Scientist",
		"Month 1: learn statistics",
		"### 2. ML Engineer",
		"### 3. Analyst",
		"## 💡 Next Steps",
		"Remember: Career paths are flexible.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Fourth Path") {
		t.Fatalf("more than three suggestions rendered:\n%s", out)
	}
}

func TestPlan_FullPipeline(t *testing.T) {
	client := &scriptedClient{replies: []string{
		"profile analysis text",
		"Career Path 1: Data Scientist\nIndustry: Tech\n\nCareer Path 2: Product Manager\nIndustry: SaaS",
		"roadmap one",
		"roadmap two",
	}}
	cfg := &config.Config{Ladders: map[string]config.Ladder{}}

	report, suggestions := Plan(context.Background(), client, cfg, "python", "data", "Mid Level")

	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}
	if !strings.Contains(report, "### 1. Data Scientist") {
		t.Fatalf("report missing first path:\n%s", report)
	}
	if !strings.Contains(report, "roadmap one") {
		t.Fatalf("report missing roadmap:\n%s", report)
	}
	// análisis + sugerencias + 2 roadmaps
	if client.calls != 4 {
		t.Fatalf("expected 4 llm calls, got %d", client.calls)
	}
}
