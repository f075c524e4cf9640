package worker

import (
	"encoding/json"
	"fmt"

	"github.com/launchpad-ai/launchpad/internal/llm"
)

const matchSystem = `You are an experienced technical recruiter. You evaluate how well a resume
matches a stated career goal and you always answer with a single JSON object, nothing else.`

// matchResult es la fila de análisis que persistimos y servimos por la API.
type matchResult struct {
	MatchScore      int      `json:"match_score"`
	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
	Recommendations []string `json:"recommendations"`
	Summary         string   `json:"summary"`
}

func matchPrompt(goal, resumeText string) string {
	if goal == "" {
		goal = "advance in their current field"
	}
	return fmt.Sprintf(`Evaluate this resume against the candidate's career goal.

Career Goal: %s

Resume:
%s

Provide:
1. Match score (0-100) - be realistic
2. Key strengths relevant to the goal
3. Gaps holding the candidate back
4. Concrete recommendations to close them
5. A two-sentence summary

Return a JSON object matching this schema:
%s`, goal, resumeText, llm.GenerateSchema[matchResult]())
}

// parseAnalysis limpia la respuesta del modelo, la valida y la normaliza
// antes de persistirla.
func parseAnalysis(raw string) (json.RawMessage, error) {
	var res matchResult
	if err := json.Unmarshal([]byte(llm.CleanOutput(raw)), &res); err != nil {
		return nil, fmt.Errorf("parsing analysis json: %w", err)
	}

	if res.MatchScore < 0 {
		res.MatchScore = 0
	}
	if res.MatchScore > 100 {
		res.MatchScore = 100
	}

	out, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	return out, nil
}
