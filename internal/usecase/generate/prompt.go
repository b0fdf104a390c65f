package generate

import (
	"fmt"
	"strings"

	"github.com/fundedfolk/supportbot/internal/domain"
)

// promptTemplate is the production support prompt. The wording is
// fixed: models are instructed to prefer the live site sections over
// the embedded examples on conflict. Slots are web context, examples,
// and the user question.
const promptTemplate = `You are Funded Folk's helpful support assistant. Answer the user's question in a concise, to-the-point manner. Do not include unnecessary details or long explanations. Use the following information to answer the user's question. Always prefer the most up-to-date information from the Official FundedFolk Website if there is any conflict. Provide a helpful, accurate response based on the combined context provided.

IMPORTANT: Format your response with proper structure, bullet points, and clear sections. Use markdown-style formatting for better readability.

### Official FundedFolk Website (latest info):
%s

### Embedded Knowledge Base Examples:
%s

### User Question:
%s

### Response:
Please provide a concise, well-structured response with:
- Clear headings and sections (if needed)
- Bullet points for lists
- Bold text for important information
- Step-by-step instructions when applicable
- Professional but friendly tone
- If there is a conflict, prefer the information from the Official FundedFolk Website as it is the most up-to-date.
- **Keep your answer as short and direct as possible.**`

// buildPrompt renders the full model prompt.
func buildPrompt(query, webContext, examples string) string {
	return fmt.Sprintf(promptTemplate, webContext, examples, query)
}

// renderExamples formats retrieved QA pairs as numbered prompt
// examples, questions cut at 200 characters and answers at 500.
func renderExamples(results []domain.RetrievalResult) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "Example %d:\nQ: %s\nA: %s\n\n", i+1, clip(r.Question, 200), clip(r.Answer, 500))
	}
	return b.String()
}

// clip truncates s to max characters, marking the cut with an ellipsis.
func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
