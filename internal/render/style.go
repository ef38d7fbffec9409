package render

import (
	"fmt"
	"strings"
)

// VoidElementStyle selects how a void element such as <link> or <meta> is
// terminated.
type VoidElementStyle int

const (
	// HTMLVoid closes the tag with ">". This is the default.
	HTMLVoid VoidElementStyle = iota

	// XMLSelfClosingWithSpace closes the tag with " />".
	XMLSelfClosingWithSpace

	// XMLSelfClosingWithoutSpace closes the tag with "/>".
	XMLSelfClosingWithoutSpace
)

type voidElementStyleInfo struct {
	name   string
	suffix string
}

var voidElementStyles = map[VoidElementStyle]voidElementStyleInfo{
	HTMLVoid:                   {name: "html", suffix: ">"},
	XMLSelfClosingWithSpace:    {name: "xml", suffix: " />"},
	XMLSelfClosingWithoutSpace: {name: "xml-compact", suffix: "/>"},
}

// VoidElementStyles returns all styles in declaration order.
func VoidElementStyles() []VoidElementStyle {
	return []VoidElementStyle{HTMLVoid, XMLSelfClosingWithSpace, XMLSelfClosingWithoutSpace}
}

// ClosingSuffix returns the text that terminates a tag. Unknown values fall
// back to the HTMLVoid suffix.
func (v VoidElementStyle) ClosingSuffix() string {
	if info, ok := voidElementStyles[v]; ok {
		return info.suffix
	}
	return voidElementStyles[HTMLVoid].suffix
}

// String returns the style name used in flags and config files.
func (v VoidElementStyle) String() string {
	if info, ok := voidElementStyles[v]; ok {
		return info.name
	}
	return fmt.Sprintf("VoidElementStyle(%d)", int(v))
}

// ParseVoidElementStyle parses html, xml or xml-compact. Matching ignores
// case and surrounding whitespace.
func ParseVoidElementStyle(s string) (VoidElementStyle, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, v := range VoidElementStyles() {
		if voidElementStyles[v].name == name {
			return v, nil
		}
	}
	return HTMLVoid, fmt.Errorf("%w: %q", ErrUnknownVoidElementStyle, s)
}

// MarshalText implements encoding.TextMarshaler.
func (v VoidElementStyle) MarshalText() ([]byte, error) {
	info, ok := voidElementStyles[v]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVoidElementStyle, int(v))
	}
	return []byte(info.name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *VoidElementStyle) UnmarshalText(text []byte) error {
	parsed, err := ParseVoidElementStyle(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Style is the output configuration of a Renderer. The zero value renders
// HTML void elements.
type Style struct {
	voidElementStyle VoidElementStyle
}

// NewStyle returns the default style.
func NewStyle() Style {
	return Style{}
}

// VoidElementStyle returns the configured void element style.
func (s Style) VoidElementStyle() VoidElementStyle {
	return s.voidElementStyle
}

// WithVoidElementStyle returns a copy of s using v.
func (s Style) WithVoidElementStyle(v VoidElementStyle) Style {
	s.voidElementStyle = v
	return s
}

// String implements fmt.Stringer.
func (s Style) String() string {
	return "Style [voidElementStyle=" + s.voidElementStyle.String() + "]"
}
