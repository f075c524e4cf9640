package textx

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reSpaces    = regexp.MustCompile(`\s+`)
	reUnsafe    = regexp.MustCompile(`[<>"'&]`)
	reDigits    = regexp.MustCompile(`\d+`)
	reEmail     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	reSentences = regexp.MustCompile(`[.!?]+`)
	reMarkup    = regexp.MustCompile(`[<>{}\[\]]`)
	reMoney     = regexp.MustCompile(`\$\d+`)
	reURL       = regexp.MustCompile(`(?i)https?://`)
	reSalary    = regexp.MustCompile(`\$?\d+`)
)

// palabras demasiado comunes para contar como keyword
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true, "not": true,
	"you": true, "all": true, "can": true, "had": true, "her": true, "was": true,
	"one": true, "our": true, "out": true, "day": true, "get": true, "has": true,
	"him": true, "his": true, "how": true, "its": true, "may": true, "new": true,
	"now": true, "old": true, "see": true, "two": true, "who": true, "boy": true,
	"did": true, "use": true, "way": true, "she": true, "many": true, "oil": true,
	"sit": true, "set": true, "big": true, "end": true,
}

// Sanitize collapses whitespace and strips characters we never want to feed
// into prompts or store verbatim.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	text = reSpaces.ReplaceAllString(strings.TrimSpace(text), " ")
	return reUnsafe.ReplaceAllString(text, "")
}

// Keywords returns up to 20 lowercased words of at least minLength letters,
// stop words removed, first occurrence order preserved.
func Keywords(text string, minLength int) []string {
	if minLength < 1 {
		minLength = 3
	}
	re := regexp.MustCompile(fmt.Sprintf(`\b[a-zA-Z]{%d,}\b`, minLength))
	words := re.FindAllString(strings.ToLower(text), -1)

	seen := make(map[string]bool)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if stopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
		if len(out) == 20 {
			break
		}
	}
	return out
}

// Similarity is the Jaccard index over the keyword sets of both texts.
func Similarity(a, b string) float64 {
	ka := Keywords(a, 3)
	kb := Keywords(b, 3)
	if len(ka) == 0 || len(kb) == 0 {
		return 0.0
	}
	setA := make(map[string]bool, len(ka))
	for _, k := range ka {
		setA[k] = true
	}
	inter := 0
	union := len(ka)
	for _, k := range kb {
		if setA[k] {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}

// UserID derives a stable id from an email, or a time-based one when empty.
func UserID(email string) string {
	src := email
	if src == "" {
		src = time.Now().Format(time.RFC3339Nano)
	}
	sum := md5.Sum([]byte(src))
	return hex.EncodeToString(sum[:])
}

// FormatCurrency normalizes salary strings like "90-130" or "120,000" into
// "$90,000 - $130,000" form. Values under 1000 are read as thousands.
func FormatCurrency(amount string) string {
	numbers := reDigits.FindAllString(strings.ReplaceAll(amount, ",", ""), -1)

	switch {
	case len(numbers) >= 2:
		low, _ := strconv.Atoi(numbers[0])
		high, _ := strconv.Atoi(numbers[1])
		if low < 1000 {
			low *= 1000
			high *= 1000
		}
		return fmt.Sprintf("$%s - $%s", comma(low), comma(high))
	case len(numbers) == 1:
		n, _ := strconv.Atoi(numbers[0])
		if n < 1000 {
			n *= 1000
		}
		return "$" + comma(n)
	}
	return amount
}

func comma(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func ValidEmail(email string) bool {
	return reEmail.MatchString(email)
}

// ExperienceLevel maps free text onto one of the four standard bands.
func ExperienceLevel(text string) string {
	t := strings.ToLower(text)
	contains := func(terms ...string) bool {
		for _, term := range terms {
			if strings.Contains(t, term) {
				return true
			}
		}
		return false
	}
	switch {
	case contains("entry", "junior", "new", "graduate", "0-2"):
		return "Entry Level"
	case contains("mid", "intermediate", "3-5", "2-5"):
		return "Mid Level"
	case contains("senior", "lead", "principal", "5+"):
		return "Senior Level"
	case contains("executive", "director", "vp", "chief"):
		return "Executive"
	}
	return "Mid Level"
}

// Chunk splits text on sentence boundaries into pieces of at most maxLength.
func Chunk(text string, maxLength int) []string {
	if maxLength <= 0 {
		maxLength = 1000
	}
	if len(text) <= maxLength {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	for _, sentence := range reSentences.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if current.Len()+len(sentence) <= maxLength {
			current.WriteString(sentence)
			current.WriteString(". ")
		} else {
			if current.Len() > 0 {
				chunks = append(chunks, strings.TrimSpace(current.String()))
				current.Reset()
			}
			current.WriteString(sentence)
			current.WriteString(". ")
		}
	}
	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}
	return chunks
}

// FormatDate renders known date layouts as "January 2, 2006"; anything else
// passes through untouched.
func FormatDate(s string) string {
	for _, layout := range []string{"2006-01-02", "01/02/2006", "02/01/2006"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format("January 2, 2006")
		}
	}
	return s
}

// ReadingTime estimates minutes at 200 words per minute, minimum 1.
func ReadingTime(text string) int {
	words := len(strings.Fields(text))
	m := (words + 100) / 200
	if m < 1 {
		return 1
	}
	return m
}

// ValidJobTitle rejects titles carrying markup, money amounts or URLs.
func ValidJobTitle(title string) bool {
	if len(title) < 2 {
		return false
	}
	if reMarkup.MatchString(title) || reMoney.MatchString(title) || reURL.MatchString(title) {
		return false
	}
	return true
}

// ValidSalaryRange accepts empty (optional field) or anything with a number.
func ValidSalaryRange(salary string) bool {
	if salary == "" {
		return true
	}
	return reSalary.MatchString(salary)
}

// FallbackMessage is the user-facing text for a failed operation.
func FallbackMessage(operation string) string {
	messages := map[string]string{
		"analyze_skills":    "Unable to analyze skills at this time. Please try again later.",
		"plan_career":       "Career planning service is temporarily unavailable.",
		"generate_document": "Document generation failed. Please check your input and try again.",
		"search_jobs":       "Job search is temporarily unavailable. Please try again later.",
	}
	if m, ok := messages[operation]; ok {
		return m
	}
	return "An unexpected error occurred. Please try again."
}
