package prompt

import "strings"

// CrisisResponse is returned verbatim, without a model call, when a chat
// message trips the crisis keyword check.
const CrisisResponse = `I notice you might be going through something difficult. While I'm here to support you with relationship guidance, I want to make sure you have access to professional help if you need it.

If you're experiencing a crisis, please reach out to:
- National Suicide Prevention Lifeline: 988 (US)
- Crisis Text Line: Text HOME to 741741
- International Association for Suicide Prevention: https://www.iasp.info/resources/Crisis_Centres/

Would you like to talk about what's going on, or would you prefer some gentle conversation instead?`

var crisisKeywords = []string{
	"suicide",
	"kill myself",
	"want to die",
	"end it all",
	"no reason to live",
	"better off dead",
	"harm myself",
	"can't go on",
	"no way out",
}

// DetectCrisis reports whether a message contains any crisis keyword.
// Case-insensitive substring match.
func DetectCrisis(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range crisisKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
