package services

import (
	"strings"
	"unicode/utf8"
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
)

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// chunkBuilder accumulates pieces into chunks of at most max runes.
type chunkBuilder struct {
	max     int
	overlap int
	chunks  []string
	current strings.Builder
	size    int
}

func (b *chunkBuilder) add(piece, sep string) {
	pieceLen := utf8.RuneCountInString(piece)
	if b.size > 0 && b.size+utf8.RuneCountInString(sep)+pieceLen > b.max {
		b.flush(sep)
	}

	if b.current.Len() > 0 {
		b.current.WriteString(sep)
		b.size += utf8.RuneCountInString(sep)
	}
	b.current.WriteString(piece)
	b.size += pieceLen
}

// flush closes the current chunk and seeds the next one with its tail.
func (b *chunkBuilder) flush(sep string) {
	prev := b.current.String()
	b.chunks = append(b.chunks, prev)
	b.current.Reset()
	b.size = 0

	if b.overlap > 0 {
		tail := strings.TrimSpace(getLastNChars(prev, b.overlap))
		if tail != "" {
			b.current.WriteString(tail)
			b.size = utf8.RuneCountInString(tail)
		}
	}
}

// ChunkText implements TextChunker. Paragraphs are kept whole when they fit;
// longer paragraphs are split into sentences.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = defaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	b := &chunkBuilder{max: maxChunkSize, overlap: overlap}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= maxChunkSize {
			b.add(para, "\n\n")
			continue
		}

		for _, sentence := range splitIntoSentences(para) {
			b.add(sentence, " ")
		}
	}

	if b.current.Len() > 0 {
		b.chunks = append(b.chunks, b.current.String())
	}

	return b.chunks
}

func splitIntoSentences(text string) []string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var result []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

func getLastNChars(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
