package shell

import (
	"io"
	"strings"
	"unicode"
)

// DefaultParser splits a line on runs of whitespace. There is no quoting or
// escaping. Tokens past the argument limit are dropped.
type DefaultParser struct {
	maxArgs    int
	newReader  func(string) io.RuneReader
	newBuilder func() *strings.Builder
}

// NewDefaultParser returns a parser producing at most maxArgs-1 tokens.
func NewDefaultParser(maxArgs int) *DefaultParser {
	if maxArgs < 2 {
		maxArgs = 2
	}
	d := &DefaultParser{
		maxArgs: maxArgs,
		newReader: func(s string) io.RuneReader {
			return strings.NewReader(s)
		},
		newBuilder: func() *strings.Builder {
			return &strings.Builder{}
		},
	}

	return d
}

type tokenBuffer struct {
	builder *strings.Builder
}

func newTokenBuffer(builder *strings.Builder) *tokenBuffer {
	return &tokenBuffer{
		builder: builder,
	}
}

func (tokenBuffer *tokenBuffer) isEmpty() bool {
	return tokenBuffer.builder.Len() == 0
}

func (tokenBuffer *tokenBuffer) appendRune(r rune) {
	tokenBuffer.builder.WriteRune(r)
}

func (tokenBuffer *tokenBuffer) flushIfNotEmpty(args []string) []string {
	if !tokenBuffer.isEmpty() {
		s := tokenBuffer.builder.String()
		tokenBuffer.builder.Reset()
		args = append(args, s)
	}

	return args
}

func (p *DefaultParser) Parse(line string) ([]string, error) {
	r := p.newReader(line)
	tokenBuffer := newTokenBuffer(p.newBuilder())
	limit := p.maxArgs - 1

	args := []string{}

	for len(args) < limit {
		ch, _, err := r.ReadRune()

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, err
		}

		if unicode.IsSpace(ch) {
			args = tokenBuffer.flushIfNotEmpty(args)
			continue
		}

		tokenBuffer.appendRune(ch)
	}

	if len(args) < limit {
		args = tokenBuffer.flushIfNotEmpty(args)
	}

	return args, nil
}
