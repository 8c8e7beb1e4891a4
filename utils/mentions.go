package utils

import (
	"regexp"
	"strings"
)

var mentionPattern = regexp.MustCompile(`@([\p{L}\d._-]+)`)

// ExtractMentions returns the unique @mention handles found in a
// comment body, in order of first appearance and without the @.
func ExtractMentions(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	var handles []string
	for _, match := range matches {
		handle := strings.ToLower(match[1])
		if !seen[handle] {
			seen[handle] = true
			handles = append(handles, handle)
		}
	}
	return handles
}

// MentionHandle normalizes a user display name into the handle form
// used by the @mention syntax (spaces collapsed to dots, lowercased).
func MentionHandle(name string) string {
	handle := strings.TrimSpace(strings.ToLower(name))
	return strings.Join(strings.Fields(handle), ".")
}
