package career

import (
	"context"
	"fmt"
	"strings"

	"github.com/launchpad-ai/launchpad/internal/config"
	"github.com/launchpad-ai/launchpad/internal/llm"
	"github.com/launchpad-ai/launchpad/internal/logx"
)

// Suggestion es una sugerencia de carrera parseada del texto del modelo.
type Suggestion struct {
	Title       string `json:"title"`
	Industry    string `json:"industry,omitempty"`
	FitReason   string `json:"fit_reason,omitempty"`
	Salary      string `json:"salary,omitempty"`
	Timeline    string `json:"timeline,omitempty"`
	Description string `json:"description,omitempty"`
}

// Plan corre el pipeline completo: análisis de perfil, sugerencias, roadmaps
// para las 3 primeras y el informe markdown. Devuelve también las sugerencias
// para que el caller titule el plan persistido.
func Plan(ctx context.Context, client llm.LLMClient, cfg *config.Config, skills, interests, experience string) (string, []Suggestion) {
	analysis := AnalyzeProfile(ctx, client, skills, interests, experience)
	suggestions := Suggest(ctx, client, analysis)

	roadmaps := make(map[string]string, 3)
	for i, s := range suggestions {
		if i == 3 {
			break
		}
		title := s.Title
		if title == "" {
			title = fmt.Sprintf("Career Path %d", i+1)
		}
		roadmaps[title] = Roadmap(ctx, client, cfg, title, skills, experience, s.Description)
	}

	return Report(suggestions, roadmaps), suggestions
}

// AnalyzeProfile resume fortalezas, encaje de industria y potencial.
func AnalyzeProfile(ctx context.Context, client llm.LLMClient, skills, interests, experience string) string {
	prompt := fmt.Sprintf(`Analyze this user profile for career planning:

Skills: %s
Interests: %s
Experience Level: %s

Provide analysis in these areas:
1. Strengths and unique value proposition
2. Industry alignment based on interests
3. Career stage and progression potential
4. Growth areas and development needs
5. Personality and work style indicators

Be specific and actionable in your analysis.`, skills, interests, experience)

	out, err := client.Chat(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   1000,
		Temperature: 0.4,
	})
	if err != nil {
		logx.Error("Career", "profile analysis failed: %v", err)
		return "Unable to analyze profile at this time."
	}
	return strings.TrimSpace(llm.StripFences(out))
}

// Suggest pide 3-5 caminos de carrera y los parsea.
func Suggest(ctx context.Context, client llm.LLMClient, analysis string) []Suggestion {
	prompt := fmt.Sprintf(`Based on this profile analysis, suggest 3-5 specific career paths:

Profile Analysis: %s

For each career path, provide:
1. Job title/role name
2. Industry and company types
3. Why it's a good fit (2-3 reasons)
4. Salary range expectations
5. Growth potential and trajectory
6. Key requirements and qualifications
7. Timeline to reach this role

Make suggestions realistic and achievable while being aspirational.
Format as structured text with clear sections for each career path.`, analysis)

	out, err := client.Chat(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   1200,
		Temperature: 0.5,
	})
	if err != nil {
		logx.Error("Career", "career suggestions failed: %v", err)
		return []Suggestion{{Title: "Error", Description: "Unable to generate suggestions."}}
	}
	return ParseSuggestions(llm.StripFences(out))
}

// ParseSuggestions separa bloques por línea en blanco y captura las líneas
// con clave conocida. Con texto sin estructura devuelve un único path custom.
func ParseSuggestions(text string) []Suggestion {
	var suggestions []Suggestion
	var current Suggestion
	seen := false

	flush := func() {
		if seen {
			suggestions = append(suggestions, current)
			current = Suggestion{}
			seen = false
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case hasAny(lower, "path", "career", "role") && strings.Contains(line, ":"):
			parts := strings.Split(line, ":")
			current.Title = strings.TrimSpace(parts[len(parts)-1])
			seen = true
		case strings.Contains(lower, "industry"):
			current.Industry = line
			seen = true
		case strings.Contains(lower, "fit") || strings.Contains(lower, "why"):
			current.FitReason = line
			seen = true
		case strings.Contains(lower, "salary"):
			current.Salary = line
			seen = true
		case strings.Contains(lower, "timeline"):
			current.Timeline = line
			seen = true
		}
	}
	flush()

	if len(suggestions) == 0 {
		return []Suggestion{{Title: "Custom Career Path", Description: text}}
	}
	return suggestions
}

func hasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Roadmap genera el plan a 12 meses para un camino concreto. Si la taxonomía
// de ladders tiene una escalera que encaja con el título, su progresión entra
// en el prompt.
func Roadmap(ctx context.Context, client llm.LLMClient, cfg *config.Config, title, skills, experience, goal string) string {
	if goal == "" {
		goal = title
	}

	ladderHint := ""
	if l := matchLadder(cfg, title); l != nil {
		ladderHint = fmt.Sprintf("\nTypical progression for this track: %s\n", strings.Join(l.Rungs, " → "))
	}

	prompt := fmt.Sprintf(`Create a detailed 12-month career roadmap for: %s

Current Skills: %s
Experience Level: %s
Career Goal: %s
%s
Provide a month-by-month plan including:
- Skills to develop each quarter
- Certifications or courses to complete
- Networking and professional development activities
- Portfolio projects or experience to gain
- Job search and application timeline
- Milestones and success metrics

Make it specific and actionable.`, title, skills, experience, goal, ladderHint)

	out, err := client.Chat(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   1000,
		Temperature: 0.4,
	})
	if err != nil {
		logx.Error("Career", "roadmap generation failed for %q: %v", title, err)
		return "Roadmap temporarily unavailable."
	}
	return strings.TrimSpace(llm.StripFences(out))
}

// matchLadder busca la escalera cuyo nombre aparece en el título ("Senior
// Data Scientist" → data_scientist). nil si ninguna encaja.
func matchLadder(cfg *config.Config, title string) *config.Ladder {
	if cfg == nil {
		return nil
	}
	lower := strings.ToLower(title)
	for name, l := range cfg.Ladders {
		plain := strings.ReplaceAll(name, "_", " ")
		if strings.Contains(lower, plain) {
			ladder := l
			return &ladder
		}
	}
	return nil
}

// Report arma las sugerencias y sus roadmaps en el markdown final.
func Report(suggestions []Suggestion, roadmaps map[string]string) string {
	var b strings.Builder

	b.WriteString("## 🚀 Personalized Career Path Suggestions\n\n")

	for i, s := range suggestions {
		if i == 3 {
			break
		}
		title := s.Title
		if title == "" {
			title = fmt.Sprintf("Career Path %d", i+1)
		}
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, title)

		writeField(&b, "Industry", s.Industry)
		writeField(&b, "Fit Reason", s.FitReason)
		writeField(&b, "Salary", s.Salary)
		writeField(&b, "Timeline", s.Timeline)
		writeField(&b, "Description", s.Description)

		if roadmap, ok := roadmaps[title]; ok {
			fmt.Fprintf(&b, "#### 📋 12-Month Roadmap for %s\n\n", title)
			b.WriteString(roadmap + "\n\n")
		}

		b.WriteString("---\n\n")
	}

	b.WriteString("## 💡 Next Steps\n\n")
	b.WriteString("1. **Choose Your Path**: Review the suggestions and select the one that resonates most with your goals\n")
	b.WriteString("2. **Start Learning**: Begin with the first quarter's skill development recommendations\n")
	b.WriteString("3. **Build Your Network**: Connect with professionals in your chosen field\n")
	b.WriteString("4. **Create a Portfolio**: Start working on projects that demonstrate your growing skills\n")
	b.WriteString("5. **Track Progress**: Set monthly check-ins to review your progress and adjust the plan\n\n")

	b.WriteString("Remember: Career paths are flexible. You can pivot and adjust as you learn and grow! 🌟")

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "**%s:** %s\n\n", label, value)
}
