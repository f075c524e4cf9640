package llm

import (
	"regexp"
	"strings"
)

var reFirstJSON = regexp.MustCompile(`\{[\s\S]*\}`)

// CleanOutput normaliza la salida de un modelo antes de parsearla como JSON:
// quita fences markdown, se queda con el primer objeto JSON y endereza las
// comillas curvas.
func CleanOutput(s string) string {
	s = strings.TrimSpace(s)

	// 1) remover cualquier bloque ```xxx ... ```
	if strings.HasPrefix(s, "```") {
		// quitar primera línea (```json o ```)
		lines := strings.Split(s, "\n")
		if len(lines) > 1 {
			// quitar primera y última
			s = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	// 2) regex para sacar el primer objeto JSON válido
	if match := reFirstJSON.FindString(s); match != "" {
		s = match
	}

	// 3) reemplazar comillas curvas por comillas normales
	s = strings.ReplaceAll(s, "“", "\"")
	s = strings.ReplaceAll(s, "”", "\"")
	s = strings.ReplaceAll(s, "‘", "'")
	s = strings.ReplaceAll(s, "’", "'")

	return strings.TrimSpace(s)
}

// StripFences removes a surrounding markdown code fence but leaves the body
// untouched. Useful when the payload is prose, not JSON.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	if strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[1 : len(lines)-1]
	} else {
		lines = lines[1:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
