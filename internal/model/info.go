package model

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// WebCrawlerInfo describes everything a page tells crawlers through its head:
// the canonical URL, robots advices, alternates, description, keywords and
// disabled Google features.
//
// A WebCrawlerInfo is immutable. The zero value is the empty info; every
// With* method returns a new value with one field replaced and the others
// carried over. Scalars distinguish "not set" from the empty string:
// WithCanonical("") sets an empty canonical URL, WithoutCanonical removes it.
type WebCrawlerInfo struct {
	canonical              optional
	advices                List[Advice]
	alternates             List[Alternate]
	description            optional
	keywords               optional
	disabledGoogleFeatures List[GoogleFeature]
}

// New returns an empty WebCrawlerInfo. It is equivalent to the zero value.
func New() WebCrawlerInfo {
	return WebCrawlerInfo{}
}

// Canonical returns the canonical URL and whether it is set.
func (i WebCrawlerInfo) Canonical() (string, bool) {
	return i.canonical.get()
}

// WithCanonical returns a copy of i with the canonical URL set.
func (i WebCrawlerInfo) WithCanonical(canonical string) WebCrawlerInfo {
	i.canonical = some(canonical)
	return i
}

// WithoutCanonical returns a copy of i without a canonical URL.
func (i WebCrawlerInfo) WithoutCanonical() WebCrawlerInfo {
	i.canonical = optional{}
	return i
}

// Advices returns the robots advices in rendering order.
func (i WebCrawlerInfo) Advices() List[Advice] {
	return i.advices
}

// WithAdvices returns a copy of i whose advices are exactly advices.
func (i WebCrawlerInfo) WithAdvices(advices ...Advice) WebCrawlerInfo {
	i.advices = NewList(advices...)
	return i
}

// WithImplicitAdvices returns a copy of i whose advices are extended by
// ImplicitAdvicesAnd.
func (i WebCrawlerInfo) WithImplicitAdvices() WebCrawlerInfo {
	return i.WithAdvices(ImplicitAdvicesAnd(i.advices.items)...)
}

// Alternates returns the alternates in rendering order.
func (i WebCrawlerInfo) Alternates() List[Alternate] {
	return i.alternates
}

// WithAlternates returns a copy of i whose alternates are exactly alternates.
func (i WebCrawlerInfo) WithAlternates(alternates ...Alternate) WebCrawlerInfo {
	i.alternates = NewList(alternates...)
	return i
}

// Description returns the description and whether it is set.
func (i WebCrawlerInfo) Description() (string, bool) {
	return i.description.get()
}

// WithDescription returns a copy of i with the description set.
func (i WebCrawlerInfo) WithDescription(description string) WebCrawlerInfo {
	i.description = some(description)
	return i
}

// WithoutDescription returns a copy of i without a description.
func (i WebCrawlerInfo) WithoutDescription() WebCrawlerInfo {
	i.description = optional{}
	return i
}

// Keywords returns the keywords and whether they are set.
func (i WebCrawlerInfo) Keywords() (string, bool) {
	return i.keywords.get()
}

// WithKeywords returns a copy of i with the keywords set.
func (i WebCrawlerInfo) WithKeywords(keywords string) WebCrawlerInfo {
	i.keywords = some(keywords)
	return i
}

// WithoutKeywords returns a copy of i without keywords.
func (i WebCrawlerInfo) WithoutKeywords() WebCrawlerInfo {
	i.keywords = optional{}
	return i
}

// DisabledGoogleFeatures returns the disabled Google features in rendering order.
func (i WebCrawlerInfo) DisabledGoogleFeatures() List[GoogleFeature] {
	return i.disabledGoogleFeatures
}

// DisableGoogleFeatures returns a copy of i whose disabled features are
// exactly features.
func (i WebCrawlerInfo) DisableGoogleFeatures(features ...GoogleFeature) WebCrawlerInfo {
	i.disabledGoogleFeatures = NewList(features...)
	return i
}

// IsEmpty reports whether no field is set, in which case nothing is rendered.
func (i WebCrawlerInfo) IsEmpty() bool {
	return !i.canonical.set &&
		i.advices.IsEmpty() &&
		i.alternates.IsEmpty() &&
		!i.description.set &&
		!i.keywords.set &&
		i.disabledGoogleFeatures.IsEmpty()
}

// Equal reports whether i and other hold equal values in all six fields.
// List fields are compared element by element, in order.
func (i WebCrawlerInfo) Equal(other WebCrawlerInfo) bool {
	return i.canonical == other.canonical &&
		i.advices.Equal(other.advices) &&
		i.alternates.Equal(other.alternates) &&
		i.description == other.description &&
		i.keywords == other.keywords &&
		i.disabledGoogleFeatures.Equal(other.disabledGoogleFeatures)
}

// Hash returns a hash consistent with Equal: equal infos hash equally.
func (i WebCrawlerInfo) Hash() uint64 {
	buf := make([]byte, 0, 256)
	buf = appendOptional(buf, i.canonical)
	buf = binary.AppendUvarint(buf, uint64(i.advices.Len()))
	for a := range i.advices.Values() {
		buf = appendString(buf, a.label)
	}
	buf = binary.AppendUvarint(buf, uint64(i.alternates.Len()))
	for a := range i.alternates.Values() {
		buf = appendString(buf, a.href)
		buf = appendOptional(buf, a.language)
		buf = appendOptional(buf, a.media)
	}
	buf = appendOptional(buf, i.description)
	buf = appendOptional(buf, i.keywords)
	buf = binary.AppendUvarint(buf, uint64(i.disabledGoogleFeatures.Len()))
	for f := range i.disabledGoogleFeatures.Values() {
		buf = binary.AppendVarint(buf, int64(f))
	}
	return xxhash.Sum64(buf)
}

// appendString writes s with a length prefix so that adjacent fields cannot
// run into each other.
func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

func appendOptional(buf []byte, o optional) []byte {
	if !o.set {
		return append(buf, 0)
	}
	buf = append(buf, 1)
	return appendString(buf, o.value)
}

// String implements fmt.Stringer.
func (i WebCrawlerInfo) String() string {
	return fmt.Sprintf("WebCrawlerInfo [canonical=%s, advices=%s, alternates=%s, description=%s, keywords=%s, disabledGoogleFeatures=%s]",
		i.canonical, i.advices, i.alternates, i.description, i.keywords, i.disabledGoogleFeatures)
}
