package model

import (
	"fmt"
	"strings"
)

// Advice is a single directive placed in the content of the robots meta tag.
//
// Advice is a comparable value that carries only its label. Two advices with
// the same label are equal, whether they come from the predefined values
// below or from NewAdvice.
type Advice struct {
	label string
}

// Explicit advices. These are only present when the page states them.
var (
	// NoIndex tells crawlers not to index the page.
	NoIndex = Advice{label: "noindex"}

	// NoFollow tells crawlers not to follow links on the page.
	NoFollow = Advice{label: "nofollow"}

	// None is shorthand for "noindex, nofollow".
	None = Advice{label: "none"}

	// NoArchive tells crawlers not to show a cached copy of the page.
	NoArchive = Advice{label: "noarchive"}

	// NoSnippet tells crawlers not to show a text snippet in results.
	NoSnippet = Advice{label: "nosnippet"}

	// NoODP tells crawlers not to use the description from the Open
	// Directory Project.
	NoODP = Advice{label: "noodp"}

	// NoImageIndex tells crawlers not to index images on the page.
	NoImageIndex = Advice{label: "noimageindex"}
)

// Implicit advices. Crawlers assume these unless a cancelling advice is
// present; see ImplicitAdvicesAnd.
var (
	// Index allows indexing. Cancelled by NoIndex and None.
	Index = Advice{label: "index"}

	// Follow allows following links. Cancelled by NoFollow and None.
	Follow = Advice{label: "follow"}
)

// NewAdvice creates an advice with an arbitrary label. It is meant for
// directives outside the predefined vocabulary (for example "max-snippet:20").
// The label is used verbatim.
func NewAdvice(label string) Advice {
	return Advice{label: label}
}

// ParseAdvice returns the advice for label. Surrounding whitespace is
// trimmed. Labels outside the predefined vocabulary are accepted as custom
// advice; only an empty label is rejected.
func ParseAdvice(label string) (Advice, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Advice{}, ErrEmptyAdvice
	}
	return Advice{label: label}, nil
}

// Label returns the wire token written into the robots meta tag.
func (a Advice) Label() string {
	return a.label
}

// String implements fmt.Stringer.
func (a Advice) String() string {
	return a.label
}

// IsImplicit reports whether a carries the label of an implicit advice.
func (a Advice) IsImplicit() bool {
	for _, rule := range implicitRules {
		if rule.advice == a {
			return true
		}
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (a Advice) MarshalText() ([]byte, error) {
	return []byte(a.label), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Advice) UnmarshalText(text []byte) error {
	parsed, err := ParseAdvice(string(text))
	if err != nil {
		return fmt.Errorf("parse advice %q: %w", string(text), err)
	}
	*a = parsed
	return nil
}

// ExplicitAdvices returns the predefined explicit advices in declaration order.
func ExplicitAdvices() []Advice {
	return []Advice{NoIndex, NoFollow, None, NoArchive, NoSnippet, NoODP, NoImageIndex}
}

// ParseAdvices parses every label and stops at the first invalid one.
func ParseAdvices(labels []string) ([]Advice, error) {
	advices := make([]Advice, 0, len(labels))
	for _, label := range labels {
		a, err := ParseAdvice(label)
		if err != nil {
			return nil, err
		}
		advices = append(advices, a)
	}
	return advices, nil
}
