// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package intcode

import (
	"crypto/sha256"
	"io/ioutil"
	"strings"

	lru "github.com/hashicorp/golang-lru"
)

// DefaultCacheSize is the number of parsed programs kept by a Loader
const DefaultCacheSize = 16

// Loader parses program text and caches the resulting images, so hosts
// building many VMs from the same source parse it once.
type Loader struct {
	cache *lru.Cache
}

// NewLoader creates a loader caching up to size programs
func NewLoader(size int) (*Loader, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Loader{cache: cache}, nil
}

// Load returns the program for text, parsing it on a cache miss
func (l *Loader) Load(text string) (*Program, error) {
	key := sha256.Sum256([]byte(strings.TrimSpace(text)))
	if prog, ok := l.cache.Get(key); ok {
		return prog.(*Program), nil
	}

	prog, err := ParseProgram(text)
	if err != nil {
		return nil, err
	}
	l.cache.Add(key, prog)
	logger.Debugf("program loaded: %d words, %x", prog.Len(), key[:4])
	return prog, nil
}

// LoadFile reads and loads the program stored at path
func (l *Loader) LoadFile(path string) (*Program, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return l.Load(string(data))
}

// Len returns the number of cached programs
func (l *Loader) Len() int {
	return l.cache.Len()
}
