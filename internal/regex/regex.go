// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package regex is the single point of truth for REGEXP/NOT REGEXP value
// evaluation. The teacher's package of the same name is a pluggable
// registry over multiple C-binding regex engines (oniguruma and friends);
// this engine only ever needs the stdlib RE2 engine, so the registry is
// kept (a future embedder can still swap engines) but only "go" is
// registered by default.
package regex

import (
	"fmt"
	"regexp"
	"sync"

	"gopkg.in/src-d/go-errors.v1"
)

var ErrRegexNameEmpty = errors.NewKind("regex engine name can't be empty")

// Matcher reports whether a compiled pattern matches a string.
type Matcher interface {
	Match(s string) bool
}

// Disposer releases resources held by a Matcher. The stdlib engine needs
// none, but the interface exists so a future cgo-backed engine can plug
// in without changing callers.
type Disposer interface {
	Dispose()
}

// Constructor compiles pattern into a Matcher/Disposer pair for one engine.
type Constructor func(pattern string) (Matcher, Disposer, error)

type noopDisposer struct{}

func (noopDisposer) Dispose() {}

type goMatcher struct{ re *regexp.Regexp }

func (m goMatcher) Match(s string) bool { return m.re.MatchString(s) }

func goConstructor(pattern string) (Matcher, Disposer, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, nil, err
	}
	return goMatcher{re}, noopDisposer{}, nil
}

const nativeDefault = "go"

var (
	mu      sync.Mutex
	engines = map[string]Constructor{"go": goConstructor}
	order   = []string{"go"}
	dflt    = nativeDefault
)

// Engines lists the names of every registered engine, in registration order.
func Engines() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Default returns the name of the engine New uses when none is specified.
func Default() string {
	mu.Lock()
	defer mu.Unlock()
	return dflt
}

// SetDefault changes the name New uses when called with "". Passing ""
// resets it to the native stdlib engine.
func SetDefault(name string) {
	mu.Lock()
	defer mu.Unlock()
	if name == "" {
		dflt = nativeDefault
		return
	}
	dflt = name
}

// Register adds a new named engine. Re-registering an existing name
// replaces its constructor without duplicating it in Engines().
func Register(name string, ctor Constructor) error {
	if name == "" {
		return ErrRegexNameEmpty.New()
	}
	mu.Lock()
	defer mu.Unlock()
	if _, exists := engines[name]; !exists {
		order = append(order, name)
	}
	engines[name] = ctor
	return nil
}

// New compiles pattern with the named engine ("" selects Default()).
func New(name, pattern string) (Matcher, Disposer, error) {
	if name == "" {
		name = Default()
	}
	mu.Lock()
	ctor, ok := engines[name]
	mu.Unlock()
	if !ok {
		return nil, nil, fmt.Errorf("unknown regex engine %q", name)
	}
	return ctor(pattern)
}
