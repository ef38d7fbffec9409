package model

import (
	"fmt"
	"strings"
)

// GoogleFeature is a Google search feature that a page can opt out of with
// <meta name="google" content="...">.
type GoogleFeature int

const (
	// SitelinksSearchBox is the search box shown below the result for a site.
	SitelinksSearchBox GoogleFeature = iota + 1

	// Translation is the offer to translate the page.
	Translation
)

type googleFeatureInfo struct {
	name              string
	labelForDisabling string
}

var googleFeatures = map[GoogleFeature]googleFeatureInfo{
	SitelinksSearchBox: {name: "sitelinks-search-box", labelForDisabling: "nositelinkssearchbox"},
	Translation:        {name: "translation", labelForDisabling: "notranslate"},
}

// GoogleFeatures returns all known features in declaration order.
func GoogleFeatures() []GoogleFeature {
	return []GoogleFeature{SitelinksSearchBox, Translation}
}

// LabelForDisabling returns the meta content that disables f, or an empty
// string for an unknown feature.
func (f GoogleFeature) LabelForDisabling() string {
	return googleFeatures[f].labelForDisabling
}

// String returns the feature name, e.g. "translation".
func (f GoogleFeature) String() string {
	if info, ok := googleFeatures[f]; ok {
		return info.name
	}
	return fmt.Sprintf("GoogleFeature(%d)", int(f))
}

// ParseGoogleFeature accepts either the feature name ("translation") or the
// disabling label ("notranslate"). Matching ignores case and surrounding
// whitespace.
func ParseGoogleFeature(s string) (GoogleFeature, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, f := range GoogleFeatures() {
		info := googleFeatures[f]
		if key == info.name || key == info.labelForDisabling {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGoogleFeature, s)
}

// ParseGoogleFeatures parses every name and stops at the first unknown one.
func ParseGoogleFeatures(names []string) ([]GoogleFeature, error) {
	features := make([]GoogleFeature, 0, len(names))
	for _, name := range names {
		f, err := ParseGoogleFeature(name)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return features, nil
}

// MarshalText encodes f as its disabling label.
func (f GoogleFeature) MarshalText() ([]byte, error) {
	info, ok := googleFeatures[f]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGoogleFeature, int(f))
	}
	return []byte(info.labelForDisabling), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *GoogleFeature) UnmarshalText(text []byte) error {
	parsed, err := ParseGoogleFeature(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
