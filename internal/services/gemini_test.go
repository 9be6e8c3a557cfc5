package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "short input untouched", in: "Go", n: 10, want: "Go"},
		{name: "ascii cut", in: "Kubernetes", n: 4, want: "Kube"},
		{name: "backs off a split rune", in: "résumé", n: 2, want: "r"},
		{name: "keeps a whole rune", in: "résumé", n: 3, want: "ré"},
		{name: "zero", in: "Go", n: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateUTF8(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestTruncateUTF8_EmbedLimit(t *testing.T) {
	text := strings.Repeat("a", maxEmbedChars-1) + "日本"

	got := truncateUTF8(text, maxEmbedChars)

	assert.True(t, utf8.ValidString(got))
	assert.Len(t, got, maxEmbedChars-1)
}
