// Package dparsoid decodes the round-trip metadata Parsoid attaches to each
// DOM element as a JSON-encoded "data-parsoid" attribute.
package dparsoid

import "encoding/json"

// DSR (Document Source Range) locates an element in the original wikitext:
// a half-open byte range plus the widths of its opening and closing syntax.
type DSR struct {
	Start     int
	End       int
	OpenWidth int
	CloseWidth int
}

// UnmarshalJSON decodes the 4-element array form Parsoid uses on the wire:
// [startOffset, endOffset, openWidth, closeWidth]. Missing trailing entries
// are left zero rather than erroring, since upstream frequently omits
// openWidth/closeWidth for elements with no visible delimiters.
func (d *DSR) UnmarshalJSON(b []byte) error {
	var raw []*int
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	get := func(i int) int {
		if i < len(raw) && raw[i] != nil {
			return *raw[i]
		}
		return 0
	}
	d.Start = get(0)
	d.End = get(1)
	d.OpenWidth = get(2)
	d.CloseWidth = get(3)
	return nil
}

// MarshalJSON re-encodes as the 4-element array form.
func (d DSR) MarshalJSON() ([]byte, error) {
	return json.Marshal([]int{d.Start, d.End, d.OpenWidth, d.CloseWidth})
}

// OptListItem is one entry of DataParsoid.OptList, an ordered image-option
// key/value pair. V is a pointer so a JSON `null` (meaning "use the actual
// figcaption content" for a caption option) is distinguishable from an
// empty string.
type OptListItem struct {
	K string  `json:"k"`
	V *string `json:"v"`
}

// DataParsoid is the per-node round-trip metadata record. Fields default to
// their zero value when absent from the source JSON, which is the common
// case: most nodes carry only a handful of these.
type DataParsoid struct {
	Src               string        `json:"src,omitempty"`
	Dsr               *DSR          `json:"dsr,omitempty"`
	Stx               string        `json:"stx,omitempty"`
	StxV              string        `json:"stx_v,omitempty"`
	StartTagSrc       string        `json:"startTagSrc,omitempty"`
	EndTagSrc         string        `json:"endTagSrc,omitempty"`
	AttrSepSrc        string        `json:"attrSepSrc,omitempty"`
	Tail              string        `json:"tail,omitempty"`
	Prefix            string        `json:"prefix,omitempty"`
	PipeTrick         bool          `json:"pipetrick,omitempty"`
	AutoInsertedStart bool          `json:"autoInsertedStart,omitempty"`
	AutoInsertedEnd   bool          `json:"autoInsertedEnd,omitempty"`
	SelfClose         bool          `json:"selfClose,omitempty"`
	NoClose           bool          `json:"noClose,omitempty"`
	StrippedNL        bool          `json:"strippedNL,omitempty"`
	ExtraDashes       int           `json:"extra_dashes,omitempty"`
	LineContent       bool          `json:"lineContent,omitempty"`
	MagicSrc          string        `json:"magicSrc,omitempty"`
	OptList           []OptListItem `json:"optList,omitempty"`
	OptNames          []string      `json:"optNames,omitempty"`
	SrcContent        string        `json:"srcContent,omitempty"`
	SrcTagName        string        `json:"srcTagName,omitempty"`
}

// Decode parses the content of a data-parsoid attribute. An empty string
// decodes to a zero-value DataParsoid rather than an error, since untouched
// elements (freshly inserted by an editor, for instance) carry none.
func Decode(raw string) (*DataParsoid, error) {
	if raw == "" {
		return &DataParsoid{}, nil
	}
	var dp DataParsoid
	if err := json.Unmarshal([]byte(raw), &dp); err != nil {
		return nil, err
	}
	return &dp, nil
}

// Encode serializes back to the wire form, for components that need to
// round-trip metadata they did not originate.
func Encode(dp *DataParsoid) (string, error) {
	if dp == nil {
		return "", nil
	}
	b, err := json.Marshal(dp)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// HasDsr reports whether a source range was recorded at all. Entries
// missing from a short dsr array read as zero and are not distinguished.
func (d *DataParsoid) HasDsr() bool {
	return d != nil && d.Dsr != nil
}
