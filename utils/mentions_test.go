package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMentions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"no mentions", "nothing to see here", nil},
		{"single mention", "ping @ada about this", []string{"ada"}},
		{"multiple unique ordered", "@ada please sync with @grace.hopper", []string{"ada", "grace.hopper"}},
		{"duplicates collapsed", "@ada and @Ada again", []string{"ada"}},
		{"dots dashes underscores", "cc @jean-luc_p.1", []string{"jean-luc_p.1"}},
		{"unicode handles", "thanks @søren!", []string{"søren"}},
		{"bare at ignored", "meet @ 5pm", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMentions(tt.content))
		})
	}
}

func TestMentionHandle(t *testing.T) {
	assert.Equal(t, "ada.lovelace", MentionHandle("Ada Lovelace"))
	assert.Equal(t, "ada", MentionHandle("  Ada  "))
	assert.Equal(t, "grace.brewster.hopper", MentionHandle("Grace  Brewster Hopper"))
	assert.Equal(t, "", MentionHandle("   "))
}
