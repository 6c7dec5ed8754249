// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package intcode

import (
	"strconv"
	"strings"
)

// Program is an immutable program image. Every VM built from it gets its own
// copy of the words.
type Program struct {
	words []int64
}

// NewProgram returns a program holding a copy of words
func NewProgram(words []int64) *Program {
	w := make([]int64, len(words))
	copy(w, words)
	return &Program{words: w}
}

// ParseProgram parses comma-separated base-10 signed integers. Whitespace
// around the text and around each token is ignored.
func ParseProgram(text string) (*Program, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &LoadError{Index: 0, Token: ""}
	}

	tokens := strings.Split(text, ",")
	words := make([]int64, 0, len(tokens))
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok {
				err = ne.Err
			}
			return nil, &LoadError{Index: i, Token: tok, Cause: err}
		}
		words = append(words, v)
	}
	return &Program{words: words}, nil
}

// Len returns the number of words in the image
func (p *Program) Len() int {
	return len(p.words)
}

// Word returns the i-th word of the image
func (p *Program) Word(i int) int64 {
	return p.words[i]
}

// Words returns a copy of the image
func (p *Program) Words() []int64 {
	w := make([]int64, len(p.words))
	copy(w, p.words)
	return w
}

func (p *Program) String() string {
	strs := make([]string, len(p.words))
	for i, w := range p.words {
		strs[i] = strconv.FormatInt(w, 10)
	}
	return strings.Join(strs, ",")
}
