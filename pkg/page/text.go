package page

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Text returns the visible text below n with markup stripped and whitespace
// collapsed. Script and style bodies are dropped.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	cleaned := textSanitizer().Sanitize(InnerHTML(n))
	return strings.Join(strings.Fields(html.UnescapeString(cleaned)), " ")
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AddSpaceWhenStrippingTag(true)
		textPolicy = policy
	})
	return textPolicy
}
