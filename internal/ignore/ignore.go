// Package ignore matches path components against the glob patterns listed in
// the ignore sections of a dotbackup document.
//
// Patterns use github.com/gobwas/glob syntax (*, ?, [abc], [!abc], {a,b}) and
// are compared with the basename of each entry met during a tree copy, never
// with the full path:
//
//	set, _ := ignore.Compile([]string{"*.log", "cache"})
//	set.Match("debug.log") // true
//	set.Match("cache")     // true
package ignore

import (
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/thoreinstein/dotbackup/internal/errors"
)

// ErrInvalidGlob is returned when a pattern cannot be compiled.
var ErrInvalidGlob = errors.New("invalid glob")

// Set is an ordered list of compiled glob patterns.
// The zero value is an empty set that matches nothing.
type Set struct {
	patterns []string
	globs    []glob.Glob
}

// Compile compiles every pattern once. An invalid pattern yields a
// configuration error wrapping ErrInvalidGlob.
func Compile(patterns []string) (Set, error) {
	s := Set{
		patterns: make([]string, 0, len(patterns)),
		globs:    make([]glob.Glob, 0, len(patterns)),
	}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return Set{}, errors.Config(errors.Wrapf(ErrInvalidGlob, "%q: %v", p, err), "failed to compile ignore pattern")
		}
		s.patterns = append(s.patterns, p)
		s.globs = append(s.globs, g)
	}
	return s, nil
}

// MustCompile is like Compile but panics on error. Intended for tests and
// package-level patterns.
func MustCompile(patterns ...string) Set {
	s, err := Compile(patterns)
	if err != nil {
		panic(err)
	}
	return s
}

// Match reports whether any pattern matches name.
// A name containing separators is reduced to its basename first.
func (s Set) Match(name string) bool {
	if len(s.globs) == 0 {
		return false
	}
	base := filepath.Base(name)
	for _, g := range s.globs {
		if g.Match(base) {
			return true
		}
	}
	return false
}

// Union returns a new set holding the patterns of s followed by those of other.
func (s Set) Union(other Set) Set {
	out := Set{
		patterns: make([]string, 0, len(s.patterns)+len(other.patterns)),
		globs:    make([]glob.Glob, 0, len(s.globs)+len(other.globs)),
	}
	out.patterns = append(append(out.patterns, s.patterns...), other.patterns...)
	out.globs = append(append(out.globs, s.globs...), other.globs...)
	return out
}

// Strings returns the raw patterns in order.
func (s Set) Strings() []string {
	out := make([]string, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// Len returns the number of patterns.
func (s Set) Len() int {
	return len(s.patterns)
}

// Empty reports whether the set holds no patterns.
func (s Set) Empty() bool {
	return len(s.patterns) == 0
}
