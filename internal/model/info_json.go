package model

import "encoding/json"

// infoJSON is the wire form of WebCrawlerInfo. Unset scalars are omitted so
// that an empty string survives a round trip as an empty string.
type infoJSON struct {
	Canonical              *string         `json:"canonical,omitempty"`
	Advices                []Advice        `json:"advices,omitempty"`
	Alternates             []alternateJSON `json:"alternates,omitempty"`
	Description            *string         `json:"description,omitempty"`
	Keywords               *string         `json:"keywords,omitempty"`
	DisabledGoogleFeatures []GoogleFeature `json:"disabledGoogleFeatures,omitempty"`
}

type alternateJSON struct {
	Href     string  `json:"href"`
	Hreflang *string `json:"hreflang,omitempty"`
	Media    *string `json:"media,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (i WebCrawlerInfo) MarshalJSON() ([]byte, error) {
	out := infoJSON{
		Canonical:              i.canonical.ptr(),
		Advices:                i.advices.items,
		Description:            i.description.ptr(),
		Keywords:               i.keywords.ptr(),
		DisabledGoogleFeatures: i.disabledGoogleFeatures.items,
	}
	for a := range i.alternates.Values() {
		out.Alternates = append(out.Alternates, alternateJSON{
			Href:     a.href,
			Hreflang: a.language.ptr(),
			Media:    a.media.ptr(),
		})
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *WebCrawlerInfo) UnmarshalJSON(data []byte) error {
	var in infoJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	alternates := make([]Alternate, 0, len(in.Alternates))
	for _, a := range in.Alternates {
		alternates = append(alternates, Alternate{
			href:     a.Href,
			language: fromPtr(a.Hreflang),
			media:    fromPtr(a.Media),
		})
	}

	*i = WebCrawlerInfo{
		canonical:              fromPtr(in.Canonical),
		advices:                NewList(in.Advices...),
		alternates:             NewList(alternates...),
		description:            fromPtr(in.Description),
		keywords:               fromPtr(in.Keywords),
		disabledGoogleFeatures: NewList(in.DisabledGoogleFeatures...),
	}
	return nil
}
