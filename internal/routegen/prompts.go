package routegen

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/bestway-backend/internal/domain"
)

//go:embed prompts.yaml
var promptsYAML []byte

// Prompts maps a generation mode to its system prompt.
type Prompts struct {
	Full    string `yaml:"full"`
	Partial string `yaml:"partial"`
}

func LoadPrompts(raw []byte) (Prompts, error) {
	var p Prompts
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Prompts{}, fmt.Errorf("decode prompts: %w", err)
	}
	p.Full = strings.TrimSpace(p.Full)
	p.Partial = strings.TrimSpace(p.Partial)
	if p.Full == "" || p.Partial == "" {
		return Prompts{}, fmt.Errorf("prompts: both full and partial templates are required")
	}
	return p, nil
}

// DefaultPrompts returns the templates compiled into the binary.
func DefaultPrompts() Prompts {
	p, err := LoadPrompts(promptsYAML)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Prompts) For(mode domain.GenerationMode) string {
	if mode == domain.GenerationModePartial {
		return p.Partial
	}
	return p.Full
}
