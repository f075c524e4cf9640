package jobs

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/launchpad-ai/launchpad/internal/config"
	"github.com/launchpad-ai/launchpad/internal/llm"
	"github.com/launchpad-ai/launchpad/internal/logx"
)

// Job es una oferta del catálogo enriquecida con su análisis de encaje.
type Job struct {
	Title        string
	Company      string
	Location     string
	Salary       string
	Description  string
	Requirements []string
	Posted       string
	CompanySize  string
	Industry     string
	MatchScore   int
	Analysis     string
}

var scorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)score[:\s]+(\d+)`),
	regexp.MustCompile(`(?i)(\d+)(?:/100|%)`),
	regexp.MustCompile(`(?i)match[:\s]+(\d+)`),
}

// Search ejecuta el pipeline completo: filtrar, puntuar cada oferta con el
// modelo y montar el informe. Devuelve también las ofertas ya ordenadas.
func Search(ctx context.Context, client llm.LLMClient, cfg *config.Config, role, location, experienceLevel string) (string, []Job) {
	jobs := Filter(cfg, role, location)

	for i := range jobs {
		score, analysis := Analyze(ctx, client, jobs[i], role, experienceLevel)
		jobs[i].MatchScore = score
		jobs[i].Analysis = analysis
	}

	sort.SliceStable(jobs, func(i, j int) bool { return jobs[i].MatchScore > jobs[j].MatchScore })

	return Report(jobs, role, location), jobs
}

// Filter criba el catálogo por rol y ubicación. Si quedan menos de 3
// resultados rellena con ofertas sintéticas hasta un máximo de 10.
func Filter(cfg *config.Config, role, location string) []Job {
	roleKeywords := strings.Fields(strings.ToLower(role))
	locLower := strings.ToLower(location)

	var filtered []Job
	for _, seed := range cfg.Seeds {
		titleLower := strings.ToLower(seed.Title)
		titleMatch := false
		for _, kw := range roleKeywords {
			if strings.Contains(titleLower, kw) {
				titleMatch = true
				break
			}
		}

		locationMatch := locLower == "remote" ||
			strings.Contains(strings.ToLower(seed.Location), locLower) ||
			seed.Location == "Remote"

		if titleMatch && locationMatch {
			filtered = append(filtered, fromSeed(seed))
		}
	}

	if len(filtered) < 3 {
		filtered = append(filtered, Fill(cfg, role, location, 5-len(filtered))...)
	}
	if len(filtered) > 10 {
		filtered = filtered[:10]
	}
	return filtered
}

func fromSeed(s config.JobSeed) Job {
	return Job{
		Title:        s.Title,
		Company:      s.Company,
		Location:     s.Location,
		Salary:       s.Salary,
		Description:  s.Description,
		Requirements: append([]string(nil), s.Requirements...),
		Posted:       s.Posted,
		CompanySize:  s.CompanySize,
		Industry:     s.Industry,
	}
}

// Fill genera ofertas sintéticas para que la búsqueda nunca vuelva vacía.
func Fill(cfg *config.Config, role, location string, count int) []Job {
	levels := []string{"Senior", "Mid-level", "Junior"}
	sizes := []string{"50-200 employees", "200-1000 employees", "1000+ employees"}

	loc := location
	if loc == "remote" {
		loc = "Remote"
	}

	jobs := make([]Job, 0, count)
	for i := 0; i < count; i++ {
		jobs = append(jobs, Job{
			Title:        fmt.Sprintf("%s - %s", role, pick(levels)),
			Company:      pick(cfg.Fill.Companies),
			Location:     loc,
			Salary:       fmt.Sprintf("$%d,000 - $%d,000", 60+rand.Intn(91), 80+rand.Intn(121)),
			Description:  fmt.Sprintf("Exciting opportunity for a %s to join our growing team. Work on innovative projects with cutting-edge technology.", role),
			Requirements: fillRequirements(cfg, role),
			Posted:       time.Now().AddDate(0, 0, -(1 + rand.Intn(30))).Format("2006-01-02"),
			CompanySize:  pick(sizes),
			Industry:     "Technology",
		})
	}
	return jobs
}

func fillRequirements(cfg *config.Config, role string) []string {
	roleLower := strings.ToLower(role)
	for key, skills := range cfg.Fill.Skills {
		if strings.Contains(roleLower, key) {
			out := append([]string(nil), skills...)
			rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
			if len(out) > 5 {
				out = out[:5]
			}
			return out
		}
	}
	return append([]string(nil), cfg.Fill.DefaultSkills...)
}

func pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[rand.Intn(len(options))]
}

// Analyze pide al modelo una valoración honesta del encaje y extrae la nota.
func Analyze(ctx context.Context, client llm.LLMClient, job Job, targetRole, experienceLevel string) (int, string) {
	companySize := job.CompanySize
	if companySize == "" {
		companySize = "Unknown"
	}

	prompt := fmt.Sprintf(`Analyze this job opportunity for a candidate seeking: %s at %s level

Job Details:
Title: %s
Company: %s
Location: %s
Description: %s
Requirements: %s
Company Size: %s

Provide analysis including:
1. Match score (0-100) - be realistic
2. Why this is a good/poor match
3. Skill alignment assessment
4. Growth potential
5. Any red flags or concerns

Be honest and specific in your assessment.`,
		targetRole, experienceLevel,
		job.Title, job.Company, job.Location, job.Description,
		strings.Join(job.Requirements, ", "), companySize)

	out, err := client.Chat(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   600,
		Temperature: 0.3,
	})
	if err != nil {
		logx.Error("Jobs", "match analysis failed for %q: %v", job.Title, err)
		return 60 + rand.Intn(26), "This position offers good opportunities for growth and skill development. Consider applying if the role aligns with your career goals."
	}

	analysis := strings.TrimSpace(llm.StripFences(out))
	return ExtractScore(analysis), analysis
}

// ExtractScore busca la nota numérica en el texto; si no hay, estima por tono.
func ExtractScore(analysis string) int {
	for _, re := range scorePatterns {
		if m := re.FindStringSubmatch(analysis); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				if n > 100 {
					n = 100
				}
				if n < 0 {
					n = 0
				}
				return n
			}
		}
	}

	lower := strings.ToLower(analysis)
	switch {
	case strings.Contains(lower, "excellent") || strings.Contains(lower, "perfect"):
		return 85 + rand.Intn(11)
	case strings.Contains(lower, "good") || strings.Contains(lower, "strong"):
		return 70 + rand.Intn(15)
	case strings.Contains(lower, "fair") || strings.Contains(lower, "adequate"):
		return 55 + rand.Intn(15)
	default:
		return 40 + rand.Intn(31)
	}
}

// Report formatea el top 5 con semáforo de nota y los consejos de búsqueda.
func Report(jobs []Job, role, location string) string {
	if len(jobs) == 0 {
		return fmt.Sprintf("## 💼 No Jobs Found\n\nNo jobs found for **%s** in **%s**.\n\n### 💡 Try:\n- Broadening your search terms\n- Considering remote positions\n- Looking at related roles", role, location)
	}

	var b strings.Builder
	b.WriteString("## 💼 Job Search Results\n\n")
	fmt.Fprintf(&b, "**Role:** %s\n**Location:** %s\n**Found:** %d opportunities\n\n", role, location, len(jobs))

	top := jobs
	if len(top) > 5 {
		top = top[:5]
	}
	for i, job := range top {
		emoji := "🔴"
		if job.MatchScore >= 80 {
			emoji = "🟢"
		} else if job.MatchScore >= 60 {
			emoji = "🟡"
		}

		fmt.Fprintf(&b, "### %d. %s %s\n\n", i+1, job.Title, emoji)

		size := job.CompanySize
		if size == "" {
			size = "Size unknown"
		}
		fmt.Fprintf(&b, "**🏢 Company:** %s (%s)\n", job.Company, size)
		fmt.Fprintf(&b, "**📍 Location:** %s\n", job.Location)
		fmt.Fprintf(&b, "**💰 Salary:** %s\n", job.Salary)
		fmt.Fprintf(&b, "**📊 Match Score:** %d/100\n", job.MatchScore)
		fmt.Fprintf(&b, "**📅 Posted:** %s\n\n", job.Posted)

		description := job.Description
		if len(description) > 200 {
			description = description[:200] + "..."
		}
		fmt.Fprintf(&b, "**📝 Description:** %s\n\n", description)

		if len(job.Requirements) > 0 {
			fmt.Fprintf(&b, "**🔧 Key Requirements:** %s\n\n", strings.Join(job.Requirements, ", "))
		}

		if job.Analysis != "" {
			summary := strings.SplitN(job.Analysis, ".", 2)[0] + "."
			fmt.Fprintf(&b, "**🤖 AI Analysis:** %s\n\n", summary)
		}

		b.WriteString("---\n\n")
	}

	b.WriteString("## 💡 Job Search Success Tips\n\n")
	b.WriteString("1. **📄 Tailor Your Resume**: Customize for each application using keywords from job descriptions\n")
	b.WriteString("2. **🤝 Network**: Leverage LinkedIn and professional connections\n")
	b.WriteString("3. **🔍 Research**: Study company culture, values, and recent news\n")
	b.WriteString("4. **📞 Follow Up**: Send personalized messages after applying\n")
	b.WriteString("5. **🎯 Practice**: Prepare for common interview questions in your field\n\n")

	if len(jobs) > 5 {
		fmt.Fprintf(&b, "*Showing top 5 results. %d more opportunities in your search.*\n", len(jobs)-5)
	}

	return b.String()
}

// Tips devuelve consejos de candidatura específicos para un puesto.
func Tips(ctx context.Context, client llm.LLMClient, jobTitle string) string {
	prompt := fmt.Sprintf(`Provide specific application tips for someone applying to a %s position.

Include:
1. Key skills to highlight
2. Resume optimization tips
3. Interview preparation advice
4. Common questions to expect
5. What employers look for

Make it actionable and specific to this role.`, jobTitle)

	out, err := client.Chat(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   800,
		Temperature: 0.4,
	})
	if err != nil {
		logx.Error("Jobs", "application tips failed for %q: %v", jobTitle, err)
		return "Focus on relevant experience, quantify achievements, and research the company thoroughly."
	}
	return strings.TrimSpace(llm.StripFences(out))
}
