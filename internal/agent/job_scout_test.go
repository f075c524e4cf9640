package agent

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/launchpad-ai/launchpad/internal/bus"
	"github.com/launchpad-ai/launchpad/internal/config"
	"github.com/launchpad-ai/launchpad/internal/ui"
)

func scoutConfig() *config.Config {
	return &config.Config{
		Seeds: []config.JobSeed{
			{
				Title: "Senior Data Engineer", Company: "TechCorp", Location: "Remote",
				Salary: "$140,000 - $180,000", Description: "Build pipelines end to end.",
				Requirements: []string{"Python", "SQL"}, Posted: "2025-01-10",
				CompanySize: "500-1000", Industry: "Technology",
			},
			{
				Title: "Data Engineer", Company: "DataWorks", Location: "Madrid, Spain",
				Salary: "$90,000 - $120,000", Description: "ETL y modelado de datos.",
				Requirements: []string{"Python", "Airflow"}, Posted: "2025-01-05",
				CompanySize: "50-200", Industry: "Technology",
			},
			{
				Title: "Marketing Manager", Company: "AdHouse", Location: "Remote",
				Salary: "$80,000 - $100,000", Description: "Run campaigns.",
				Requirements: []string{"SEO"}, Posted: "2025-01-02",
				CompanySize: "10-50", Industry: "Marketing",
			},
		},
		Fill: config.JobFill{
			Companies:     []string{"Innovatech"},
			Skills:        map[string][]string{"data": {"Python", "SQL", "Spark"}},
			DefaultSkills: []string{"Communication"},
		},
	}
}

func TestJobScout_SearchReportsMatches(t *testing.T) {
	f := &fakeLLM{replies: []string{"Score: 88\nStrong match for your data background."}}
	j := NewJobScout(bus.New(), scoutConfig(), f, ui.NewUIStore())

	j.dispatch(context.Background(), bus.Message{
		Type: "search",
		Payload: map[string]any{
			"id": "jobs-1",
			"params": map[string]string{
				"user_id":          "u1",
				"role":             "data engineer",
				"location":         "remote",
				"experience_level": "Senior Level",
			},
		},
	})

	res := waitStoredResult(t, "jobs-1", 2*time.Second)
	deleteResult("jobs-1")
	if res.Status != "ok" {
		t.Fatalf("unexpected result: %+v", res)
	}
	data, ok := res.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected data shape: %#v", res.Data)
	}
	report, _ := data["report"].(string)
	if !strings.Contains(report, "Job Search Results") {
		t.Fatalf("report missing header:\n%s", report)
	}
	if !strings.Contains(report, "**Role:** data engineer") {
		t.Fatalf("report missing role line:\n%s", report)
	}

	list, ok := data["jobs"].([]map[string]any)
	if !ok || len(list) == 0 {
		t.Fatalf("expected compact job list, got %#v", data["jobs"])
	}
	if list[0]["match_score"] != 88 {
		t.Fatalf("unexpected top score: %v", list[0]["match_score"])
	}
	if _, ok := list[0]["title"]; !ok {
		t.Fatalf("compact entry missing title: %#v", list[0])
	}
}

func TestJobScout_Tips(t *testing.T) {
	f := &fakeLLM{replies: []string{"Tailor your resume to each role you apply for."}}
	j := NewJobScout(bus.New(), scoutConfig(), f, ui.NewUIStore())

	j.dispatch(context.Background(), bus.Message{
		Type: "tips",
		Payload: map[string]any{
			"id":     "jobs-2",
			"params": map[string]string{"role": "data engineer"},
		},
	})

	res := waitStoredResult(t, "jobs-2", time.Second)
	deleteResult("jobs-2")
	if res.Status != "ok" {
		t.Fatalf("unexpected result: %+v", res)
	}
	data, _ := res.Data.(map[string]any)
	if data["role"] != "data engineer" {
		t.Fatalf("role not echoed: %v", data["role"])
	}
	tips, _ := data["tips"].(string)
	if !strings.Contains(tips, "Tailor your resume") {
		t.Fatalf("unexpected tips: %q", tips)
	}
}
