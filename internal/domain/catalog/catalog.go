// Package catalog holds the default seed catalog of competing models.
package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/nvoss/modelarena/internal/domain/model"
)

// entry is the static part of a seed model; ids, ratings and counters are
// assigned at seed time.
type entry struct {
	name         string
	provider     string
	description  string
	capabilities []string
	imageURL     string
}

var defaults = []entry{
	{
		name:         "GPT-4",
		provider:     "OpenAI",
		description:  "OpenAI's most advanced GPT model with superior reasoning capabilities",
		capabilities: []string{"Text Generation", "Code", "Math", "Analysis", "Creative Writing"},
		imageURL:     "https://images.unsplash.com/photo-1677442136019-21780ecad995?w=400",
	},
	{
		name:         "Claude 4 Sonnet",
		provider:     "Anthropic",
		description:  "Anthropic's flagship model balancing intelligence, speed, and cost",
		capabilities: []string{"Text Analysis", "Code", "Math", "Creative Tasks", "Safety"},
		imageURL:     "https://images.unsplash.com/photo-1655635949348-953b0e3c140a?w=400",
	},
	{
		name:         "Gemini 2.5 Pro",
		provider:     "Google",
		description:  "Google's most advanced multimodal AI with exceptional capabilities",
		capabilities: []string{"Multimodal", "Long Context", "Code", "Math", "Analysis"},
		imageURL:     "https://images.unsplash.com/photo-1639322537228-f710d846310a?w=400",
	},
	{
		name:         "Claude 4 Haiku",
		provider:     "Anthropic",
		description:  "Fast and efficient model for quick responses",
		capabilities: []string{"Speed", "Text Generation", "Basic Analysis", "Code"},
		imageURL:     "https://images.unsplash.com/photo-1620712943543-bcc4688e7485?w=400",
	},
	{
		name:         "Llama 3.3",
		provider:     "Meta",
		description:  "Open-source powerhouse with strong performance",
		capabilities: []string{"Open Source", "Text Generation", "Code", "Multilingual"},
		imageURL:     "https://images.unsplash.com/photo-1555949963-aa79dcee981c?w=400",
	},
	{
		name:         "Mistral Large",
		provider:     "Mistral AI",
		description:  "European AI model with strong multilingual capabilities",
		capabilities: []string{"Multilingual", "Code", "Text Generation", "Analysis"},
		imageURL:     "https://images.unsplash.com/photo-1451187580459-43490279c0fa?w=400",
	},
	{
		name:         "PaLM 2",
		provider:     "Google",
		description:  "Google's language model with strong reasoning abilities",
		capabilities: []string{"Reasoning", "Code", "Math", "Multilingual"},
		imageURL:     "https://images.unsplash.com/photo-1518709268805-4e9042af2176?w=400",
	},
	{
		name:         "GPT-3.5 Turbo",
		provider:     "OpenAI",
		description:  "Fast and cost-effective model for general tasks",
		capabilities: []string{"Speed", "Cost-effective", "Text Generation", "Code"},
		imageURL:     "https://images.unsplash.com/photo-1676277791608-ac54325e36e1?w=400",
	},
}

// Default returns the built-in seed catalog with fresh ids, zero counters
// and the given base rating.
func Default(baseRating float64) []model.Model {
	now := time.Now().UTC()
	models := make([]model.Model, 0, len(defaults))
	for _, e := range defaults {
		models = append(models, model.Model{
			ID:           uuid.NewString(),
			Name:         e.name,
			Provider:     e.provider,
			Description:  e.description,
			Capabilities: append([]string(nil), e.capabilities...),
			ImageURL:     e.imageURL,
			Rating:       baseRating,
			CreatedAt:    now,
		})
	}
	return models
}
