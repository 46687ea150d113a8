package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"kitchenmate/internal/models"
)

// LLMSuggester re-ranks the suggestions of another Suggester with a language
// model. The base order is kept whenever the model fails or answers with
// something that is not a ranking.
type LLMSuggester struct {
	base   Suggester
	model  llms.Model
	logger *log.Logger
}

// NewLLMSuggester wraps base with model-driven ranking
func NewLLMSuggester(base Suggester, model llms.Model, logger *log.Logger) *LLMSuggester {
	if logger == nil {
		logger = log.Default()
	}
	return &LLMSuggester{base: base, model: model, logger: logger}
}

// GitHubModelsURL is the OpenAI-compatible endpoint of GitHub Models
const GitHubModelsURL = "https://models.inference.ai.azure.com"

// ModelConfig selects the chat model used for suggestion ranking
type ModelConfig struct {
	Provider   string
	Model      string
	APIKey     string
	BaseURL    string
	APIVersion string
}

// NewModel creates the chat model described by cfg. OpenAI, GitHub Models
// and Azure OpenAI are all served through the OpenAI client.
func NewModel(cfg ModelConfig) (llms.Model, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s api key is required", cfg.Provider)
	}

	opts := []openai.Option{
		openai.WithModel(cfg.Model),
		openai.WithToken(cfg.APIKey),
	}
	switch cfg.Provider {
	case "", "openai":
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
	case "github":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = GitHubModelsURL
		}
		opts = append(opts, openai.WithBaseURL(baseURL))
	case "azure":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("azure endpoint is required")
		}
		version := cfg.APIVersion
		if version == "" {
			version = "2024-02-01"
		}
		opts = append(opts,
			openai.WithAPIType(openai.APITypeAzure),
			openai.WithBaseURL(cfg.BaseURL),
			openai.WithAPIVersion(version),
		)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s client: %w", cfg.Provider, err)
	}
	return llm, nil
}

type rankingResponse struct {
	Ranking []uint `json:"ranking"`
}

// Suggest implements Suggester
func (s *LLMSuggester) Suggest(ctx context.Context, available []string, prefs *models.Preferences) ([]Suggestion, error) {
	suggestions, err := s.base.Suggest(ctx, available, prefs)
	if err != nil {
		return nil, err
	}
	if len(suggestions) < 2 {
		return suggestions, nil
	}

	answer, err := llms.GenerateFromSinglePrompt(ctx, s.model, rankingPrompt(available, suggestions, prefs),
		llms.WithTemperature(0.2),
	)
	if err != nil {
		s.logger.Warn("suggestion ranking failed, keeping match order", "err", err)
		return suggestions, nil
	}

	ranked, err := applyRanking(suggestions, answer)
	if err != nil {
		s.logger.Warn("unusable ranking from model, keeping match order", "err", err)
		return suggestions, nil
	}
	return ranked, nil
}

func rankingPrompt(available []string, suggestions []Suggestion, prefs *models.Preferences) string {
	var b strings.Builder
	b.WriteString("You rank home-cooking recipes for a user.\n")
	fmt.Fprintf(&b, "Ingredients on hand: %s\n", strings.Join(available, ", "))
	if prefs != nil {
		if len(prefs.PreferredCuisines) > 0 {
			fmt.Fprintf(&b, "Preferred cuisines: %s\n", strings.Join(prefs.PreferredCuisines, ", "))
		}
		if prefs.SkillLevel != "" {
			fmt.Fprintf(&b, "Cooking skill: %s\n", prefs.SkillLevel)
		}
	}
	b.WriteString("Candidates:\n")
	for _, sug := range suggestions {
		fmt.Fprintf(&b, "- id %d: %s (%s, %d min, missing: %s)\n",
			sug.Recipe.ID, sug.Recipe.Name, sug.Recipe.Difficulty, sug.Recipe.TotalTime(),
			strings.Join(sug.MissingIngredients, ", "))
	}
	b.WriteString(`Return ONLY a JSON object of the form {"ranking": [id, ...]} listing the candidate ids best first.`)
	return b.String()
}

// applyRanking orders suggestions by the ids in answer. Ids the model left
// out keep their relative order after the ranked ones.
func applyRanking(suggestions []Suggestion, answer string) ([]Suggestion, error) {
	answer = strings.TrimSpace(answer)
	answer = strings.TrimPrefix(answer, "```json")
	answer = strings.TrimPrefix(answer, "```")
	answer = strings.TrimSuffix(answer, "```")

	var resp rankingResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(answer)), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse ranking: %w", err)
	}
	if len(resp.Ranking) == 0 {
		return nil, fmt.Errorf("empty ranking")
	}

	byID := make(map[uint]int, len(suggestions))
	for i, sug := range suggestions {
		byID[sug.Recipe.ID] = i
	}

	used := make([]bool, len(suggestions))
	out := make([]Suggestion, 0, len(suggestions))
	for _, id := range resp.Ranking {
		i, ok := byID[id]
		if !ok || used[i] {
			continue
		}
		used[i] = true
		out = append(out, suggestions[i])
	}
	for i, sug := range suggestions {
		if !used[i] {
			out = append(out, sug)
		}
	}
	return out, nil
}
