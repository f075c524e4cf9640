package guard

import (
	"fmt"
	"regexp"

	"github.com/launchpad-ai/launchpad/internal/textx"
)

// Operaciones que el intake acepta y sabe enrutar.
const (
	OpChat    = "chat"
	OpSkills  = "skills.analyze"
	OpCareer  = "career.plan"
	OpDocs    = "docs.generate"
	OpJobs    = "jobs.search"
	OpJobTips = "jobs.tips"
)

// MaxTextLen bounds every free-text param before it reaches a prompt.
const MaxTextLen = 50000

var idRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// required params per operation; todo lo demás es opcional
var requiredParams = map[string][]string{
	OpChat:    {"user_id", "message"},
	OpSkills:  {"user_id", "input"},
	OpCareer:  {"user_id", "skills"},
	OpDocs:    {"user_id", "type"},
	OpJobs:    {"user_id", "role", "location"},
	OpJobTips: {"role"},
}

var docTypes = map[string]bool{
	"resume":           true,
	"cover_letter":     true,
	"linkedin_summary": true,
}

func ValidateOperation(op string) error {
	if _, ok := requiredParams[op]; !ok {
		return fmt.Errorf("operación desconocida: %s", op)
	}
	return nil
}

func ValidateRequired(op string, params map[string]string) error {
	for _, field := range requiredParams[op] {
		if params[field] == "" {
			return fmt.Errorf("falta parámetro requerido: %s", field)
		}
	}
	return nil
}

// Ids viajan en URLs y claves de S3, así que solo [a-zA-Z0-9_-].
func ValidateIDs(params map[string]string) error {
	for _, field := range []string{"user_id", "session_id"} {
		v := params[field]
		if v == "" {
			continue
		}
		if !idRe.MatchString(v) {
			return fmt.Errorf("%s inválido", field)
		}
	}
	return nil
}

func ValidateLengths(params map[string]string) error {
	for field, v := range params {
		if len(v) > MaxTextLen {
			return fmt.Errorf("parámetro %s demasiado largo (%d > %d)", field, len(v), MaxTextLen)
		}
	}
	return nil
}

func validateDomain(op string, params map[string]string) error {
	switch op {
	case OpDocs:
		if !docTypes[params["type"]] {
			return fmt.Errorf("tipo de documento desconocido: %s", params["type"])
		}
	case OpJobs, OpJobTips:
		if !textx.ValidJobTitle(params["role"]) {
			return fmt.Errorf("role inválido: %q", params["role"])
		}
	}
	return nil
}

// ---- API pública: un solo punto de entrada ----

// ValidateAll comprueba operación conocida, requeridos presentes, ids bien
// formados, tamaños acotados y las reglas propias de cada operación.
func ValidateAll(op string, params map[string]string) error {
	if err := ValidateOperation(op); err != nil {
		return err
	}
	if err := ValidateRequired(op, params); err != nil {
		return err
	}
	if err := ValidateIDs(params); err != nil {
		return err
	}
	if err := ValidateLengths(params); err != nil {
		return err
	}
	return validateDomain(op, params)
}
