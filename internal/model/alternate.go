package model

// Alternate is the target of a <link rel="alternate"> tag. It points to a
// variant of the current page for another language or another media type.
//
// Alternate is comparable: two alternates are equal when href, language and
// media are all equal. Normally only one of language and media is set, but
// this is not enforced.
type Alternate struct {
	href     string
	language optional
	media    optional
}

// NewAlternate creates an alternate with neither language nor media.
func NewAlternate(href string) Alternate {
	return Alternate{href: href}
}

// AlternateLanguage creates an alternate for the page in another language.
// language is written as the hreflang attribute.
func AlternateLanguage(language, href string) Alternate {
	return Alternate{href: href, language: some(language)}
}

// AlternateMedia creates an alternate for the page on another media type,
// typically a media query such as "only screen and (max-width: 640px)".
func AlternateMedia(media, href string) Alternate {
	return Alternate{href: href, media: some(media)}
}

// WithLanguage returns a copy of a with the hreflang value set.
func (a Alternate) WithLanguage(language string) Alternate {
	a.language = some(language)
	return a
}

// WithoutLanguage returns a copy of a without hreflang.
func (a Alternate) WithoutLanguage() Alternate {
	a.language = optional{}
	return a
}

// WithMedia returns a copy of a with the media value set.
func (a Alternate) WithMedia(media string) Alternate {
	a.media = some(media)
	return a
}

// WithoutMedia returns a copy of a without media.
func (a Alternate) WithoutMedia() Alternate {
	a.media = optional{}
	return a
}

// Href returns the target URL.
func (a Alternate) Href() string {
	return a.href
}

// Language returns the hreflang value and whether it is set.
func (a Alternate) Language() (string, bool) {
	return a.language.get()
}

// Media returns the media value and whether it is set.
func (a Alternate) Media() (string, bool) {
	return a.media.get()
}

// String implements fmt.Stringer.
func (a Alternate) String() string {
	return "Alternate [language=" + a.language.String() + ", href=" + a.href +
		", media=" + a.media.String() + "]"
}
