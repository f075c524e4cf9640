package guard

import (
    "strings"
    "testing"
)

func TestValidateOperation(t *testing.T) {
    for _, op := range []string{OpChat, OpSkills, OpCareer, OpDocs, OpJobs, OpJobTips} {
        if err := ValidateOperation(op); err != nil {
            t.Fatalf("unexpected error for %s: %v", op, err)
        }
    }
    if err := ValidateOperation("transfer.money"); err == nil {
        t.Fatalf("expected error for unknown operation")
    }
}

func TestValidateRequired(t *testing.T) {
    t.Run("missing message", func(t *testing.T) {
        if err := ValidateRequired(OpChat, map[string]string{"user_id": "u1"}); err == nil {
            t.Fatalf("expected error for missing message")
        }
    })

    t.Run("happy path", func(t *testing.T) {
        params := map[string]string{"user_id": "u1", "message": "hola"}
        if err := ValidateRequired(OpChat, params); err != nil {
            t.Fatalf("unexpected: %v", err)
        }
    })

    t.Run("optional fields may be absent", func(t *testing.T) {
        params := map[string]string{"user_id": "u1", "skills": "Go"}
        if err := ValidateRequired(OpCareer, params); err != nil {
            t.Fatalf("interests/experience are optional: %v", err)
        }
    })
}

func TestValidateIDs(t *testing.T) {
    t.Run("valid ids", func(t *testing.T) {
        params := map[string]string{"user_id": "user_42-a", "session_id": "VY2pXkGqa"}
        if err := ValidateIDs(params); err != nil {
            t.Fatalf("unexpected: %v", err)
        }
    })

    t.Run("path traversal rejected", func(t *testing.T) {
        if err := ValidateIDs(map[string]string{"user_id": "../etc"}); err == nil {
            t.Fatalf("expected error for user_id with slashes")
        }
    })

    t.Run("too long rejected", func(t *testing.T) {
        if err := ValidateIDs(map[string]string{"user_id": strings.Repeat("a", 65)}); err == nil {
            t.Fatalf("expected error for 65-char id")
        }
    })

    t.Run("empty session id is fine", func(t *testing.T) {
        if err := ValidateIDs(map[string]string{"user_id": "u1"}); err != nil {
            t.Fatalf("unexpected: %v", err)
        }
    })
}

func TestValidateLengths(t *testing.T) {
    params := map[string]string{"resume_text": strings.Repeat("x", MaxTextLen+1)}
    if err := ValidateLengths(params); err == nil {
        t.Fatalf("expected error for oversized field")
    }
    params["resume_text"] = strings.Repeat("x", MaxTextLen)
    if err := ValidateLengths(params); err != nil {
        t.Fatalf("unexpected: %v", err)
    }
}

func TestValidateAll(t *testing.T) {
    t.Run("docs type checked", func(t *testing.T) {
        params := map[string]string{"user_id": "u1", "type": "resume"}
        if err := ValidateAll(OpDocs, params); err != nil {
            t.Fatalf("unexpected: %v", err)
        }
        params["type"] = "powerpoint"
        if err := ValidateAll(OpDocs, params); err == nil {
            t.Fatalf("expected error for unknown document type")
        }
    })

    t.Run("jobs role checked", func(t *testing.T) {
        params := map[string]string{"user_id": "u1", "role": "Data Scientist", "location": "remote"}
        if err := ValidateAll(OpJobs, params); err != nil {
            t.Fatalf("unexpected: %v", err)
        }
        params["role"] = "<script>alert(1)</script>"
        if err := ValidateAll(OpJobs, params); err == nil {
            t.Fatalf("expected error for role with markup")
        }
    })

    t.Run("tips only needs role", func(t *testing.T) {
        if err := ValidateAll(OpJobTips, map[string]string{"role": "Product Manager"}); err != nil {
            t.Fatalf("unexpected: %v", err)
        }
    })
}
