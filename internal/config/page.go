package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/nao1215/robotsmeta/internal/model"
)

// AlternateConfig is one alternate link of a page.
type AlternateConfig struct {
	// Href is the URL of the alternate page. Required.
	Href string `yaml:"href"`

	// Hreflang is the language of the alternate page, e.g. "fr".
	Hreflang *string `yaml:"hreflang,omitempty"`

	// Media is the media query the alternate page targets.
	Media *string `yaml:"media,omitempty"`
}

// PageConfig is the crawler info of one page as written in the page file.
// Scalars are pointers so that an empty string can be told apart from a
// missing key.
type PageConfig struct {
	Canonical     *string           `yaml:"canonical,omitempty"`
	Advices       []string          `yaml:"advices,omitempty"`
	Alternates    []AlternateConfig `yaml:"alternates,omitempty"`
	Description   *string           `yaml:"description,omitempty"`
	Keywords      *string           `yaml:"keywords,omitempty"`
	DisableGoogle []string          `yaml:"disableGoogle,omitempty"`
}

// File represents the structure of the .robotsmeta page file.
type File struct {
	// Style is the default void element style (html, xml, xml-compact).
	Style string `yaml:"style,omitempty"`

	// ImplicitAdvices appends index and follow where they are not cancelled.
	ImplicitAdvices bool `yaml:"implicitAdvices,omitempty"`

	// Defaults is merged under every page.
	Defaults PageConfig `yaml:"defaults,omitempty"`

	// Pages maps a page path such as "/about" to its configuration.
	Pages map[string]PageConfig `yaml:"pages,omitempty"`
}

// PagePaths returns the configured page paths in sorted order.
func (cf *File) PagePaths() []string {
	return slices.Sorted(maps.Keys(cf.Pages))
}

// GetPageConfig returns the configuration for path merged over the defaults.
// Set scalars and present lists override the default, so an explicit empty
// list such as "advices: []" clears a default list. An unknown path yields
// the defaults alone.
func (cf *File) GetPageConfig(path string) PageConfig {
	result := cf.Defaults

	if page, ok := cf.Pages[path]; ok {
		if page.Canonical != nil {
			result.Canonical = page.Canonical
		}
		if page.Advices != nil {
			result.Advices = page.Advices
		}
		if page.Alternates != nil {
			result.Alternates = page.Alternates
		}
		if page.Description != nil {
			result.Description = page.Description
		}
		if page.Keywords != nil {
			result.Keywords = page.Keywords
		}
		if page.DisableGoogle != nil {
			result.DisableGoogle = page.DisableGoogle
		}
	}

	return result
}

// Page returns the merged configuration of a listed page, or ErrUnknownPage.
func (cf *File) Page(path string) (PageConfig, error) {
	if _, ok := cf.Pages[path]; !ok {
		return PageConfig{}, fmt.Errorf("%w: %s", ErrUnknownPage, path)
	}
	return cf.GetPageConfig(path), nil
}

// Info returns the crawler info of a listed page.
func (cf *File) Info(path string) (model.WebCrawlerInfo, error) {
	page, err := cf.Page(path)
	if err != nil {
		return model.WebCrawlerInfo{}, err
	}
	info, err := page.ToInfo()
	if err != nil {
		return model.WebCrawlerInfo{}, fmt.Errorf("page %s: %w", path, err)
	}
	return info, nil
}

// ToInfo converts the page configuration to a model.WebCrawlerInfo.
func (p PageConfig) ToInfo() (model.WebCrawlerInfo, error) {
	info := model.New()

	if p.Canonical != nil {
		info = info.WithCanonical(*p.Canonical)
	}

	advices, err := model.ParseAdvices(p.Advices)
	if err != nil {
		return model.WebCrawlerInfo{}, err
	}
	info = info.WithAdvices(advices...)

	alternates := make([]model.Alternate, 0, len(p.Alternates))
	for _, a := range p.Alternates {
		alternate, err := a.toAlternate()
		if err != nil {
			return model.WebCrawlerInfo{}, err
		}
		alternates = append(alternates, alternate)
	}
	info = info.WithAlternates(alternates...)

	if p.Description != nil {
		info = info.WithDescription(*p.Description)
	}
	if p.Keywords != nil {
		info = info.WithKeywords(*p.Keywords)
	}

	features, err := model.ParseGoogleFeatures(p.DisableGoogle)
	if err != nil {
		return model.WebCrawlerInfo{}, err
	}
	return info.DisableGoogleFeatures(features...), nil
}

func (a AlternateConfig) toAlternate() (model.Alternate, error) {
	if strings.TrimSpace(a.Href) == "" {
		return model.Alternate{}, ErrInvalidAlternate
	}
	alternate := model.NewAlternate(a.Href)
	if a.Hreflang != nil {
		alternate = alternate.WithLanguage(*a.Hreflang)
	}
	if a.Media != nil {
		alternate = alternate.WithMedia(*a.Media)
	}
	return alternate, nil
}

// ParseAlternate parses the --alternate flag value. The accepted forms are
// "href" and "hreflang=href". Text before the first "=" is a language only
// when it looks like a language tag, so "page.html?lang=fr" stays an href.
func ParseAlternate(s string) (AlternateConfig, error) {
	lang, href, found := strings.Cut(s, "=")
	if !found || !isLanguageToken(lang) {
		href = s
		lang = ""
		found = false
	}
	href = strings.TrimSpace(href)
	if href == "" {
		return AlternateConfig{}, fmt.Errorf("%w: %q", ErrInvalidAlternate, s)
	}

	a := AlternateConfig{Href: href}
	if found {
		lang = strings.TrimSpace(lang)
		a.Hreflang = &lang
	}
	return a, nil
}

// isLanguageToken reports whether s can be an hreflang value rather than the
// start of a URL.
func isLanguageToken(s string) bool {
	return !strings.ContainsAny(s, "?#./:")
}
