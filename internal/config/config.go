package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type SkillCategory struct {
	Name     string   `yaml:"name"`  // snake_case key used in LLM merges
	Label    string   `yaml:"label"` // display form
	Keywords []string `yaml:"keywords"`
}

type Ladder struct {
	Name  string   `yaml:"name"`
	Field string   `yaml:"field"` // technology, business...
	Rungs []string `yaml:"rungs"` // junior -> executive
}

type JobSeed struct {
	Title        string   `yaml:"title"`
	Company      string   `yaml:"company"`
	Location     string   `yaml:"location"`
	Salary       string   `yaml:"salary"`
	Description  string   `yaml:"description"`
	Requirements []string `yaml:"requirements"`
	Posted       string   `yaml:"posted"`
	CompanySize  string   `yaml:"company_size"`
	Industry     string   `yaml:"industry"`
}

// JobFill seeds the synthetic listings used when the catalog comes up short.
type JobFill struct {
	Companies     []string            `yaml:"companies"`
	Skills        map[string][]string `yaml:"skills"`
	DefaultSkills []string            `yaml:"default_skills"`
}

// ModelDef mapea un alias corto de modelo al id de invocación del proveedor.
type ModelDef struct {
	Name   string `yaml:"name"`
	ID     string `yaml:"id"`
	Format string `yaml:"format"` // nova | anthropic
}

type Config struct {
	Categories []SkillCategory
	Ladders    map[string]Ladder
	Seeds      []JobSeed
	Fill       JobFill
	Models     map[string]ModelDef
}

func LoadFromDir(base string) (*Config, error) {
	cfg := &Config{
		Ladders: make(map[string]Ladder),
		Models:  make(map[string]ModelDef),
	}

	if err := loadSkillsDir(filepath.Join(base, "skills"), cfg); err != nil {
		return nil, err
	}
	if err := loadCareersDir(filepath.Join(base, "careers"), cfg); err != nil {
		return nil, err
	}
	if err := loadJobsDir(filepath.Join(base, "jobs"), cfg); err != nil {
		return nil, err
	}
	if err := loadModelsDir(filepath.Join(base, "models"), cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Category busca por name; nil si no existe.
func (c *Config) Category(name string) *SkillCategory {
	for i := range c.Categories {
		if c.Categories[i].Name == name {
			return &c.Categories[i]
		}
	}
	return nil
}

func loadSkillsDir(dir string, cfg *Config) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("leyendo skills dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var raw struct {
			Categories []SkillCategory `yaml:"categories"`
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parseando %s: %w", path, err)
		}
		cfg.Categories = append(cfg.Categories, raw.Categories...)
	}
	if len(cfg.Categories) == 0 {
		return fmt.Errorf("skills dir %s has no categories", dir)
	}
	return nil
}

func loadCareersDir(dir string, cfg *Config) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("leyendo careers dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var raw struct {
			Ladders []Ladder `yaml:"ladders"`
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parseando %s: %w", path, err)
		}
		for _, l := range raw.Ladders {
			cfg.Ladders[l.Name] = l
		}
	}
	return nil
}

func loadJobsDir(dir string, cfg *Config) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("leyendo jobs dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var raw struct {
			Listings []JobSeed `yaml:"listings"`
			Fill     *JobFill  `yaml:"fill"`
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parseando %s: %w", path, err)
		}
		cfg.Seeds = append(cfg.Seeds, raw.Listings...)
		if raw.Fill != nil {
			cfg.Fill.Companies = append(cfg.Fill.Companies, raw.Fill.Companies...)
			cfg.Fill.DefaultSkills = append(cfg.Fill.DefaultSkills, raw.Fill.DefaultSkills...)
			if cfg.Fill.Skills == nil {
				cfg.Fill.Skills = make(map[string][]string)
			}
			for k, v := range raw.Fill.Skills {
				cfg.Fill.Skills[k] = v
			}
		}
	}
	return nil
}

// loadModelsDir es la única carga opcional: la tabla de modelos solo pisa los
// alias compilados en el cliente, así que sin directorio no hay error.
func loadModelsDir(dir string, cfg *Config) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("leyendo models dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var raw struct {
			Models []ModelDef `yaml:"models"`
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parseando %s: %w", path, err)
		}
		for _, m := range raw.Models {
			if m.Name == "" || m.ID == "" {
				return fmt.Errorf("%s: model entry needs name and id: %+v", path, m)
			}
			if m.Format != "nova" && m.Format != "anthropic" {
				return fmt.Errorf("%s: unknown model format %q for %s", path, m.Format, m.Name)
			}
			cfg.Models[m.Name] = m
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
