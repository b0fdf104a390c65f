package generate

import (
	"fmt"
	"strings"

	"github.com/fundedfolk/supportbot/internal/domain"
)

// contextFallback is the offline answer when at least one context
// snippet is available. Slots are the joined snippets and the query.
// The deployed text ends its first paragraph with a trailing space,
// concatenated explicitly below.
const contextFallback = `Based on the available information:

%s

**Response:** I understand you're asking about: "%s". While I'm experiencing technical difficulties with my AI models, I can provide you with the most relevant information from our knowledge base above.` + " \n\n" +
	`For the most up-to-date information, please visit our website at https://fundedfolk.co or contact our support team directly.`

// genericFallback is the offline answer when nothing was retrieved
// and no usable web context survived.
const genericFallback = `I understand you're asking about: "%s".` + " \n\n" +
	`I'm currently experiencing technical difficulties with my AI models. For the most accurate and up-to-date information, please:

1. Visit our website: https://fundedfolk.co
2. Contact our support team directly
3. Try again in a few moments

Thank you for your patience!`

// fallbackText renders the offline answer from whatever context is on
// hand: a web excerpt if one of substance was scraped, plus the best
// retrieved example. With neither, the generic try-again message.
func fallbackText(query, webContext string, results []domain.RetrievalResult) string {
	var info []string
	if len(strings.TrimSpace(webContext)) > 50 {
		info = append(info, "**Latest Website Information:**\n"+head(webContext, 500)+"...")
	}
	if len(results) > 0 {
		best := results[0]
		info = append(info, fmt.Sprintf("**Related Information:**\nQ: %s...\nA: %s...",
			head(best.Question, 200), head(best.Answer, 300)))
	}

	if len(info) == 0 {
		return fmt.Sprintf(genericFallback, query)
	}
	return fmt.Sprintf(contextFallback, strings.Join(info, "\n\n"), query)
}

// head returns the first max characters of s.
func head(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
