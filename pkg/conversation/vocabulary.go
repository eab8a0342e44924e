package conversation

import (
	"regexp"
	"strings"
)

// TerminationVocabulary lists the inputs that end a session.
var TerminationVocabulary = []string{"done", "exit", "save", "finish", "quit", "q"}

// IsTerminationToken reports whether input, trimmed and case-folded, is a termination token.
func IsTerminationToken(input string) bool {
	trimmed := strings.TrimSpace(input)
	for _, token := range TerminationVocabulary {
		if strings.EqualFold(trimmed, token) {
			return true
		}
	}
	return false
}

var completionCue = regexp.MustCompile("(?i)\\btype\\s+[*_'\"`]*(done|exit|save|finish|quit)\\b")

// HasCompletionCue reports whether an assistant utterance invites the user to finish.
func HasCompletionCue(content string) bool {
	return completionCue.MatchString(content)
}
