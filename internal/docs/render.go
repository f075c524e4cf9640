package docs

import (
	"bytes"
	"text/template"
)

const resumeTemplate = `# 📄 Professional Resume

## {{.Name}}
{{.ContactInfo}}

---

## 🎯 Professional Summary
{{.Summary}}

---

## 💪 Skills
{{.Skills}}

---

## 💼 Professional Experience
{{.Experience}}

---

## 🎓 Education
{{.Education}}

---

## 🚀 Projects
{{.Projects}}

---

*Resume generated by LaunchPad.AI on {{.Date}}*
`

const coverLetterTemplate = `# 📝 Cover Letter

{{.Content}}

---

*Cover letter generated by LaunchPad.AI on {{.Date}}*

## 💡 Tips for Success:
- Customize the company name and specific role details
- Add specific examples from your experience
- Proofread for grammar and spelling
- Keep it to one page when printed
- Save as PDF for applications
`

const linkedinTemplate = `# 💼 LinkedIn Profile Summary

{{.Content}}

---

*Summary generated by LaunchPad.AI on {{.Date}}*

## 📝 Optimization Tips:
- Add relevant keywords for your industry
- Include a professional headshot
- Keep it under 2,000 characters
- Update regularly as you grow
- Engage with your network's content
`

func render(tpl string, data any) (string, error) {
	t, err := template.New("doc").Parse(tpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
