package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description,omitempty"`
	ProductType string   `json:"product_type,omitempty"`
	Metadata    Metadata `json:"metadata,omitempty"`
	Img         string   `json:"img,omitempty"`
}

// Metadata holds free-form attribute filters. The backend stores it as a JSON
// object with arbitrary values; everything is kept as a string here.
type Metadata map[string]string

func (m *Metadata) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		*m = nil
		return nil
	}
	out := make(Metadata, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case string:
			out[k] = t
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(t)
		case nil:
			out[k] = ""
		default:
			enc, err := json.Marshal(t)
			if err != nil {
				return fmt.Errorf("metadata %q: %w", k, err)
			}
			out[k] = string(enc)
		}
	}
	*m = out
	return nil
}
