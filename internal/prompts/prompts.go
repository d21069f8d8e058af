package prompts

// Prompt is one entry in the fixed transformation catalog. Immutable
// after load; identified by its stable id.
type Prompt struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	SystemPrompt string `json:"system_prompt"`
	Icon         string `json:"icon"`
}

var catalog = []Prompt{
	{
		ID:           "fix_grammar",
		Name:         "Fix Grammar",
		Description:  "Correct grammar, spelling, and punctuation",
		SystemPrompt: "Please correct the grammar, spelling, and punctuation in the text below. Keep the original meaning, tone, and intent exactly the same. Do not add new information or remove anything. Return only the corrected version.",
		Icon:         "✓",
	},
	{
		ID:           "improve_text",
		Name:         "Improve Text",
		Description:  "Make text clearer and smoother",
		SystemPrompt: "Please rewrite the text below to make it clearer and smoother, but keep the same meaning. Use simple, everyday words (no fancy or technical vocabulary). Don't make it longer than necessary but you can make up to 50 percent longer, and keep the style sounding like the original. Return only the improved version.",
		Icon:         "✨",
	},
	{
		ID:           "summarize",
		Name:         "Summarize",
		Description:  "Create a concise summary",
		SystemPrompt: "Please summarize the text below in a clear, concise way while keeping the main ideas and key details. Don't add new information or opinions. Keep the tone neutral and accurate.",
		Icon:         "📝",
	},
	{
		ID:           "expand",
		Name:         "Expand",
		Description:  "Add more detail and context",
		SystemPrompt: "Please expand on the text below by adding relevant details. Keep the original meaning and tone without using complex words, but make it more comprehensive and informative. Return only the expanded version.",
		Icon:         "📖",
	},
	{
		ID:           "simplify",
		Name:         "Simplify",
		Description:  "Make text easier to understand",
		SystemPrompt: "Please rewrite the text below using simpler language that anyone can understand. Keep the same meaning but use shorter sentences and common words. Make it clear and straightforward.",
		Icon:         "💡",
	},
	{
		ID:           "professional",
		Name:         "Make Professional",
		Description:  "Convert to formal business tone",
		SystemPrompt: "Please rewrite the text below in a professional, business-appropriate tone. Use formal language while keeping it clear and concise. Maintain the original meaning and key points.",
		Icon:         "💼",
	},
}

// All returns a copy of the catalog in display order.
func All() []Prompt {
	out := make([]Prompt, len(catalog))
	copy(out, catalog)
	return out
}

// Find looks up a prompt by id.
func Find(id string) (Prompt, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Prompt{}, false
}
