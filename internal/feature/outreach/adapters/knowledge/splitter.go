package knowledge

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultChunkSize はチャンクの最大文字数です。
	DefaultChunkSize = 1000
	// DefaultChunkOverlap は隣接チャンク間で重複させる文字数です。
	DefaultChunkOverlap = 100
	// DefaultMaxChunks は埋め込むチャンク数の上限です。
	DefaultMaxChunks = 100
)

// separators は段落・行・単語・文字の順に試す区切りです。
var separators = []string{"\n\n", "\n", " ", ""}

// Splitter はテキストを size 文字以下のチャンクに再帰的に分割します。
type Splitter struct {
	Size    int
	Overlap int
}

// NewSplitter は既定値（1000文字・重複100文字）のSplitterを返します。
func NewSplitter() Splitter {
	return Splitter{Size: DefaultChunkSize, Overlap: DefaultChunkOverlap}
}

// Split はテキストをチャンクに分割します。空白だけのチャンクは返しません。
func (s Splitter) Split(text string) []string {
	return s.split(text, separators)
}

func (s Splitter) split(text string, seps []string) []string {
	sep, rest := seps[len(seps)-1], []string(nil)
	for i, c := range seps {
		if c == "" || strings.Contains(text, c) {
			sep, rest = c, seps[i+1:]
			break
		}
	}

	var pieces []string
	if sep == "" {
		for _, r := range text {
			pieces = append(pieces, string(r))
		}
	} else {
		pieces = strings.Split(text, sep)
	}

	var chunks, small []string
	for _, p := range pieces {
		if p == "" {
			continue
		}
		if utf8.RuneCountInString(p) < s.Size {
			small = append(small, p)
			continue
		}
		chunks = append(chunks, s.merge(small, sep)...)
		small = nil
		if len(rest) == 0 {
			chunks = append(chunks, p)
			continue
		}
		chunks = append(chunks, s.split(p, rest)...)
	}
	return append(chunks, s.merge(small, sep)...)
}

// merge は小さな断片をつなぎ、末尾 Overlap 文字分を次のチャンクに持ち越します。
func (s Splitter) merge(pieces []string, sep string) []string {
	sepLen := utf8.RuneCountInString(sep)
	joinCost := func(n int) int {
		if n > 0 {
			return sepLen
		}
		return 0
	}

	var chunks, cur []string
	total := 0
	emit := func() {
		if doc := strings.TrimSpace(strings.Join(cur, sep)); doc != "" {
			chunks = append(chunks, doc)
		}
	}

	for _, p := range pieces {
		l := utf8.RuneCountInString(p)
		if len(cur) > 0 && total+l+joinCost(len(cur)) > s.Size {
			emit()
			for total > s.Overlap || (total > 0 && total+l+joinCost(len(cur)) > s.Size) {
				total -= utf8.RuneCountInString(cur[0]) + joinCost(len(cur)-1)
				cur = cur[1:]
			}
		}
		total += l + joinCost(len(cur))
		cur = append(cur, p)
	}
	emit()
	return chunks
}
