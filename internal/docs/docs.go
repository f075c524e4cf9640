package docs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/launchpad-ai/launchpad/internal/llm"
	"github.com/launchpad-ai/launchpad/internal/logx"
)

// Tipos de documento aceptados por /v1/documents/generate.
const (
	TypeResume          = "resume"
	TypeCoverLetter     = "cover_letter"
	TypeLinkedInSummary = "linkedin_summary"
)

// ProfileInfo son los campos de perfil que alimentan las plantillas.
type ProfileInfo struct {
	Skills       string
	Experience   string
	Achievements string
	Goals        string
	Industry     string
}

// ResumeContent son las secciones parseadas de la respuesta del modelo.
type ResumeContent struct {
	Name        string
	ContactInfo string
	Summary     string
	Skills      string
	Experience  string
	Education   string
	Projects    string
	Date        string
}

// Resume genera el currículum completo. Si el modelo falla cae al contenido
// básico con los datos tal cual llegaron.
func Resume(ctx context.Context, client llm.LLMClient, personalInfo, experience, skills string) string {
	content := generateResumeContent(ctx, client, personalInfo, experience, skills)
	return renderResume(content)
}

func generateResumeContent(ctx context.Context, client llm.LLMClient, personalInfo, experience, skills string) ResumeContent {
	prompt := fmt.Sprintf(`Create a professional resume based on this information:

Personal Information: %s
Experience: %s
Skills: %s

Generate content for each section:
1. Professional Summary (3-4 sentences highlighting key strengths)
2. Skills (organized by category: Technical, Soft Skills, Tools)
3. Experience (formatted with achievements and metrics)
4. Education (if mentioned)
5. Notable Projects (if applicable)

Make it ATS-friendly and professionally written. Use action verbs and quantify achievements where possible.

Format the response as structured sections I can parse.`, personalInfo, experience, skills)

	out, err := client.Chat(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   1200,
		Temperature: 0.3,
	})
	if err != nil {
		logx.Error("Docs", "resume content generation failed: %v", err)
		return basicResumeContent(personalInfo, experience, skills)
	}
	return ParseResumeContent(llm.StripFences(out), personalInfo)
}

// ParseResumeContent rutea cada línea a la sección activa. Las cabeceras se
// detectan por substring, igual que los títulos markdown del modelo.
func ParseResumeContent(content, personalInfo string) ResumeContent {
	rc := ResumeContent{
		Name:        ExtractName(personalInfo),
		ContactInfo: ExtractContact(personalInfo),
	}

	sections := map[string]*string{
		"summary":    &rc.Summary,
		"skills":     &rc.Skills,
		"experience": &rc.Experience,
		"education":  &rc.Education,
		"projects":   &rc.Projects,
	}

	var current *string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "summary"):
			current = sections["summary"]
		case strings.Contains(lower, "skill"):
			current = sections["skills"]
		case strings.Contains(lower, "experience"):
			current = sections["experience"]
		case strings.Contains(lower, "education"):
			current = sections["education"]
		case strings.Contains(lower, "project"):
			current = sections["projects"]
		case current != nil && !strings.HasPrefix(line, "#"):
			*current += line + "\n"
		}
	}
	return rc
}

// ExtractName saca el nombre de una línea "Name: ..." del bloque personal.
func ExtractName(personalInfo string) string {
	for _, line := range strings.Split(personalInfo, "\n") {
		if strings.Contains(strings.ToLower(line), "name") && strings.Contains(line, ":") {
			parts := strings.SplitN(line, ":", 3)
			return strings.TrimSpace(parts[1])
		}
	}
	return "Your Name"
}

// ExtractContact junta las líneas con pinta de contacto (email, phone...).
func ExtractContact(personalInfo string) string {
	var contact []string
	for _, line := range strings.Split(personalInfo, "\n") {
		lower := strings.ToLower(line)
		for _, kw := range []string{"email", "phone", "linkedin", "address"} {
			if strings.Contains(lower, kw) {
				contact = append(contact, strings.TrimSpace(line))
				break
			}
		}
	}
	if len(contact) == 0 {
		return "Contact Information"
	}
	return strings.Join(contact, "\n")
}

func basicResumeContent(personalInfo, experience, skills string) ResumeContent {
	return ResumeContent{
		Name:        ExtractName(personalInfo),
		ContactInfo: ExtractContact(personalInfo),
		Summary:     "Motivated professional with strong skills and experience seeking new opportunities.",
		Skills:      skills,
		Experience:  experience,
		Education:   "Education details to be added",
		Projects:    "Notable projects to be highlighted",
	}
}

func renderResume(content ResumeContent) string {
	content.Date = time.Now().Format("January 02, 2006")
	out, err := render(resumeTemplate, content)
	if err != nil {
		logx.Error("Docs", "resume template render failed: %v", err)
		return fmt.Sprintf("# %s\n\n%s", content.Name, content.Summary)
	}
	return out
}

// CoverLetter escribe la carta y añade el bloque de tips.
func CoverLetter(ctx context.Context, client llm.LLMClient, jobDescription string, profile ProfileInfo) string {
	prompt := fmt.Sprintf(`Write a compelling cover letter for this job:

Job Description: %s

Candidate Profile:
- Skills: %s
- Experience: %s
- Achievements: %s

Structure:
1. Opening paragraph: Hook and position interest
2. Body paragraphs: Match qualifications to job requirements
3. Closing: Call to action and next steps

Make it professional, enthusiastic, and specific to the role.`,
		jobDescription, profile.Skills, profile.Experience, profile.Achievements)

	out, err := client.Chat(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   800,
		Temperature: 0.4,
	})
	if err != nil {
		logx.Error("Docs", "cover letter generation failed: %v", err)
		return "Unable to generate cover letter at this time."
	}

	rendered, err := render(coverLetterTemplate, map[string]string{
		"Content": strings.TrimSpace(llm.StripFences(out)),
		"Date":    time.Now().Format("January 02, 2006"),
	})
	if err != nil {
		logx.Error("Docs", "cover letter template render failed: %v", err)
		return out
	}
	return rendered
}

// LinkedInSummary genera el resumen de perfil con su bloque de optimización.
func LinkedInSummary(ctx context.Context, client llm.LLMClient, profile ProfileInfo) string {
	prompt := fmt.Sprintf(`Create an engaging LinkedIn summary for:

Skills: %s
Experience: %s
Goals: %s
Industry: %s

Requirements:
- 2-3 paragraphs, conversational tone
- Include relevant keywords for searchability
- Highlight unique value proposition
- End with a call to action
- Be authentic and professional

Write in first person and make it engaging.`,
		profile.Skills, profile.Experience, profile.Goals, profile.Industry)

	out, err := client.Chat(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   600,
		Temperature: 0.5,
	})
	if err != nil {
		logx.Error("Docs", "linkedin summary generation failed: %v", err)
		return "Unable to generate LinkedIn summary at this time."
	}

	rendered, err := render(linkedinTemplate, map[string]string{
		"Content": strings.TrimSpace(llm.StripFences(out)),
		"Date":    time.Now().Format("January 02, 2006"),
	})
	if err != nil {
		logx.Error("Docs", "linkedin template render failed: %v", err)
		return out
	}
	return rendered
}
