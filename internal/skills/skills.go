package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/launchpad-ai/launchpad/internal/config"
	"github.com/launchpad-ai/launchpad/internal/llm"
	"github.com/launchpad-ai/launchpad/internal/logx"
)

// llmSkills is the shape we ask the model to answer in.
type llmSkills struct {
	Technical []string `json:"Technical Skills"`
	Soft      []string `json:"Soft Skills"`
	Industry  []string `json:"Industry Knowledge"`
	Tools     []string `json:"Tools & Software"`
}

// Analyze runs the full pipeline: extraction, gap analysis vs the stated
// goals, learning recommendations, and the markdown report. The extracted
// skills are returned too so callers can persist them.
func Analyze(ctx context.Context, client llm.LLMClient, cfg *config.Config, userInput, resumeText string) (string, map[string][]string) {
	combined := strings.TrimSpace(userInput + "\n\n" + resumeText)

	extracted := Extract(ctx, client, cfg, combined)
	gap := GapAnalysis(ctx, client, cfg, extracted, userInput)
	recs := Recommendations(ctx, client, extracted, gap)

	return Report(cfg, extracted, gap, recs), extracted
}

// Extract combina el matching por keywords de la taxonomía con la extracción
// LLM. Si el modelo falla nos quedamos solo con las keywords.
func Extract(ctx context.Context, client llm.LLMClient, cfg *config.Config, text string) map[string][]string {
	textLower := strings.ToLower(text)
	extracted := make(map[string][]string, len(cfg.Categories))

	for _, cat := range cfg.Categories {
		var found []string
		for _, kw := range cat.Keywords {
			if strings.Contains(textLower, kw) {
				found = append(found, titleCase(kw))
			}
		}
		extracted[cat.Name] = found
	}

	fromLLM, err := llmExtract(ctx, client, text)
	if err != nil {
		logx.Warn("Skills", "llm skill extraction failed: %v", err)
	} else {
		for name, skills := range fromLLM {
			if _, ok := extracted[name]; !ok {
				// categoría desconocida, se ignora
				continue
			}
			extracted[name] = append(extracted[name], skills...)
		}
	}

	// dedup + Title Case + orden estable
	for name, list := range extracted {
		extracted[name] = dedupTitleSorted(list)
	}
	return extracted
}

func llmExtract(ctx context.Context, client llm.LLMClient, text string) (map[string][]string, error) {
	prompt := fmt.Sprintf(`Analyze the following text and extract skills in these categories:
- Technical Skills (programming languages, frameworks, technologies)
- Soft Skills (communication, leadership, etc.)
- Industry Knowledge (domain expertise)
- Tools & Software (applications, platforms)

Text: %s

Return the skills in JSON format with categories as keys and lists of skills as values.
The JSON must match this schema:
%s`, text, llm.GenerateSchema[llmSkills]())

	out, err := client.Chat(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   500,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, err
	}

	var parsed llmSkills
	if err := json.Unmarshal([]byte(llm.CleanOutput(out)), &parsed); err != nil {
		return nil, fmt.Errorf("parsing skill json: %w", err)
	}

	return map[string][]string{
		"technical":   parsed.Technical,
		"soft_skills": parsed.Soft,
		"industry":    parsed.Industry,
		"tools":       parsed.Tools,
	}, nil
}

// GapAnalysis pide los huecos entre lo que hay y lo que piden los objetivos.
func GapAnalysis(ctx context.Context, client llm.LLMClient, cfg *config.Config, extracted map[string][]string, goals string) string {
	prompt := fmt.Sprintf(`Based on these extracted skills and user goals, identify skill gaps and areas for improvement:

Current Skills:
- Technical: %s
- Soft Skills: %s
- Industry: %s
- Tools: %s

User Goals: %s

Provide:
1. Missing critical skills for their goals
2. Skills that need improvement
3. Emerging skills they should consider
4. Priority level for each gap (High/Medium/Low)

Format as structured text.`,
		strings.Join(extracted["technical"], ", "),
		strings.Join(extracted["soft_skills"], ", "),
		strings.Join(extracted["industry"], ", "),
		strings.Join(extracted["tools"], ", "),
		goals)

	out, err := client.Chat(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   800,
		Temperature: 0.4,
	})
	if err != nil {
		logx.Error("Skills", "gap analysis failed: %v", err)
		return "Unable to analyze skill gaps at this time."
	}
	return strings.TrimSpace(llm.StripFences(out))
}

// Recommendations convierte el gap analysis en recursos de aprendizaje.
func Recommendations(ctx context.Context, client llm.LLMClient, extracted map[string][]string, gap string) string {
	var current []string
	for name, list := range extracted {
		if len(list) > 0 {
			current = append(current, name+": "+strings.Join(list, ", "))
		}
	}
	sort.Strings(current)

	prompt := fmt.Sprintf(`Based on this skill analysis, provide specific learning recommendations:

Current Skills: %s
Gap Analysis: %s

Provide:
1. Top 5 recommended courses/certifications
2. Practical projects to build portfolio
3. Timeline for skill development
4. Free and paid learning resources

Make recommendations specific and actionable.`,
		strings.Join(current, "; "), gap)

	out, err := client.Chat(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   800,
		Temperature: 0.5,
	})
	if err != nil {
		logx.Error("Skills", "recommendations failed: %v", err)
		return "Unable to generate recommendations at this time."
	}
	return strings.TrimSpace(llm.StripFences(out))
}

// Report arma el informe markdown con las secciones del análisis.
func Report(cfg *config.Config, extracted map[string][]string, gap, recommendations string) string {
	var b strings.Builder

	b.WriteString("## 🎯 Skill Analysis Results\n\n")

	b.WriteString("### 💪 Your Current Skills\n\n")
	for _, cat := range cfg.Categories {
		list := extracted[cat.Name]
		if len(list) == 0 {
			continue
		}
		fmt.Fprintf(&b, "**%s:** %s\n\n", cat.Label, strings.Join(list, ", "))
	}

	b.WriteString("### 📊 Skill Gap Analysis\n\n")
	if gap == "" {
		gap = "No gap analysis available."
	}
	b.WriteString(gap + "\n\n")

	b.WriteString("### 🎓 Learning Recommendations\n\n")
	b.WriteString(recommendations + "\n\n")

	b.WriteString("### ✅ Next Steps\n\n")
	b.WriteString("1. Review the skill gaps and prioritize based on your career goals\n")
	b.WriteString("2. Start with high-priority skills that have immediate impact\n")
	b.WriteString("3. Create a learning schedule and track your progress\n")
	b.WriteString("4. Build portfolio projects to demonstrate new skills\n")
	b.WriteString("5. Update your resume and LinkedIn profile as you develop new skills\n")

	return b.String()
}

// Summary lists every extracted skill on one line, for persisting to the
// profile row.
func Summary(cfg *config.Config, extracted map[string][]string) string {
	var all []string
	for _, cat := range cfg.Categories {
		all = append(all, extracted[cat.Name]...)
	}
	return strings.Join(all, ", ")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func dedupTitleSorted(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		s = titleCase(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
