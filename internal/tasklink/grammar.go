package tasklink

import (
	"fmt"
	"regexp"
	"strings"
)

// GrammarVersion is bumped whenever the recognised link shape or the control
// keyword table changes.
const GrammarVersion = 2

// DefaultHost is the Asana web host.
const DefaultHost = "app.asana.com"

// ControlWord is a keyword that marks a reference as resolved by the source
// issue or pull request.
type ControlWord string

const (
	ControlFixes    ControlWord = "fixes"
	ControlResolves ControlWord = "resolves"
)

// DefaultControlWords is the fixed keyword table.
var DefaultControlWords = []ControlWord{ControlFixes, ControlResolves}

// Capture group names of the link pattern.
const (
	groupMarker  = "marker"
	groupKeyword = "keyword"
	groupWrapper = "wrapper"
	groupURL     = "url"
	groupOrg     = "org"
	groupProject = "project"
	groupTask    = "task"
)

// linkPattern is the link grammar:
//
//	[marker ws] [keyword[:] ws] ["[" text "]("] https://<host>/<org>/<project-id>/<task-id>
//
// The pattern has no nested quantifiers; RE2 matches it in linear time.
const linkPattern = `(?i)` +
	`(?:(?P<marker>[*-])[ \t]+)?` +
	`(?:\b(?P<keyword>%s):?[ \t]+)?` +
	`(?P<wrapper>\[[^\]\n]*\]\()?` +
	`(?P<url>https://%s/(?P<org>[0-9a-z]+)/(?P<project>[0-9]+)/(?P<task>[0-9]+))\b`

// Grammar is a compiled link grammar for one tracker host.
type Grammar struct {
	host    string
	words   map[string]ControlWord
	pattern *regexp.Regexp
	groups  map[string]int
}

// NewGrammar compiles the link grammar for host with the given control words.
// With no words DefaultControlWords is used.
func NewGrammar(host string, words ...ControlWord) (*Grammar, error) {
	if host == "" {
		return nil, ErrEmptyHost
	}
	if len(words) == 0 {
		words = DefaultControlWords
	}

	quoted := make([]string, 0, len(words))
	table := make(map[string]ControlWord, len(words))
	for _, w := range words {
		lw := strings.ToLower(string(w))
		quoted = append(quoted, regexp.QuoteMeta(lw))
		table[lw] = ControlWord(lw)
	}

	re, err := regexp.Compile(fmt.Sprintf(linkPattern, strings.Join(quoted, "|"), regexp.QuoteMeta(host)))
	if err != nil {
		return nil, fmt.Errorf("compile link grammar: %w", err)
	}

	groups := make(map[string]int)
	for i, name := range re.SubexpNames() {
		if name != "" {
			groups[name] = i
		}
	}

	return &Grammar{
		host:    host,
		words:   table,
		pattern: re,
		groups:  groups,
	}, nil
}

// MustGrammar is NewGrammar that panics on error.
func MustGrammar(host string, words ...ControlWord) *Grammar {
	g, err := NewGrammar(host, words...)
	if err != nil {
		panic(err)
	}
	return g
}

// Host returns the tracker host the grammar recognises.
func (g *Grammar) Host() string {
	return g.host
}

// controlWord maps a captured keyword to the table, ignoring case.
func (g *Grammar) controlWord(keyword string) ControlWord {
	return g.words[strings.ToLower(keyword)]
}
