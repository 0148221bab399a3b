package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ImageRef points at one image held by the external image host.
type ImageRef struct {
	URL       string `json:"url" yaml:"url"`
	DeleteURL string `json:"deleteUrl" yaml:"delete_url"`
}

// RawImages is the images column as stored. Entries are either JSON objects
// or JSON strings that encode an object.
type RawImages []json.RawMessage

func (r *RawImages) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*r = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported images column type %T", src)
	}
	*r = decodeImageColumn(data)
	return nil
}

// decodeImageColumn accepts an array, a string that encodes an array, or a
// lone object. Anything else reads as no images.
func decodeImageColumn(data []byte) RawImages {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return RawImages{}
		}
		trimmed = bytes.TrimSpace([]byte(encoded))
	}
	if len(trimmed) == 0 {
		return RawImages{}
	}
	switch trimmed[0] {
	case '[':
		var entries []json.RawMessage
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return RawImages{}
		}
		return entries
	case '{':
		if !json.Valid(trimmed) {
			return RawImages{}
		}
		return RawImages{json.RawMessage(trimmed)}
	}
	return RawImages{}
}

// Value encodes as text; lib/pq would send []byte as bytea.
func (r RawImages) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]json.RawMessage(r))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Normalize returns every entry that decodes to a valid ImageRef, in order.
func (r RawImages) Normalize() []ImageRef {
	refs := make([]ImageRef, 0, len(r))
	for _, entry := range r {
		if ref, ok := NormalizeImage(entry); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// NormalizeImage decodes a single stored entry. A string entry is parsed as
// JSON first. The result is valid only when both url and deleteUrl are
// present as strings.
func NormalizeImage(entry json.RawMessage) (ImageRef, bool) {
	trimmed := bytes.TrimSpace(entry)
	if len(trimmed) == 0 {
		return ImageRef{}, false
	}
	if trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return ImageRef{}, false
		}
		trimmed = bytes.TrimSpace([]byte(encoded))
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return ImageRef{}, false
		}
	}
	if trimmed[0] != '{' {
		return ImageRef{}, false
	}

	var candidate struct {
		URL       *string `json:"url"`
		DeleteURL *string `json:"deleteUrl"`
	}
	if err := json.Unmarshal(trimmed, &candidate); err != nil {
		return ImageRef{}, false
	}
	if candidate.URL == nil || candidate.DeleteURL == nil {
		return ImageRef{}, false
	}
	return ImageRef{URL: *candidate.URL, DeleteURL: *candidate.DeleteURL}, true
}

// RawImagesFrom encodes refs in the structured form used for new writes.
func RawImagesFrom(refs []ImageRef) (RawImages, error) {
	raw := make(RawImages, 0, len(refs))
	for _, ref := range refs {
		b, err := json.Marshal(ref)
		if err != nil {
			return nil, err
		}
		raw = append(raw, b)
	}
	return raw, nil
}

// ProductImages is what the record locator reads for one product.
type ProductImages struct {
	ProductID int
	Images    RawImages
}
