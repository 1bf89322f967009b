package types

import (
	"encoding/json"
	"strings"
)

// VendorRef is how an item points at its vendor. Historically the backend
// stored an id string, an embedded vendor object, or a free-text name typed
// by the user; this type accepts all three and normalizes to an id whenever
// one is known.
type VendorRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`

	// Raw holds a bare wire string that has not been classified as id or
	// name yet; Resolve settles it against the vendor lookup.
	Raw string `json:"-"`
}

// IsZero reports whether the reference carries no vendor information at all.
func (v VendorRef) IsZero() bool {
	return v.ID == "" && v.Name == "" && strings.TrimSpace(v.Raw) == ""
}

// Key returns the grouping key for this reference: the id when known,
// otherwise the display name, otherwise the raw text.
func (v VendorRef) Key() string {
	if v.ID != "" {
		return v.ID
	}
	if v.Name != "" {
		return v.Name
	}
	return strings.TrimSpace(v.Raw)
}

// Display returns the human-readable vendor label.
func (v VendorRef) Display() string {
	if v.Name != "" {
		return v.Name
	}
	if raw := strings.TrimSpace(v.Raw); raw != "" {
		return raw
	}
	return v.ID
}

// Resolve normalizes the reference using an id-to-name lookup. A raw string
// matching a known id becomes that id; otherwise it is kept as an ad hoc
// vendor name pending server-side creation.
func (v VendorRef) Resolve(nameByID map[string]string) VendorRef {
	if v.ID != "" {
		if name, ok := nameByID[v.ID]; ok && v.Name == "" {
			v.Name = name
		}
		v.Raw = ""
		return v
	}

	raw := strings.TrimSpace(v.Raw)
	if raw == "" {
		return v
	}
	if name, ok := nameByID[raw]; ok {
		return VendorRef{ID: raw, Name: name}
	}
	for id, name := range nameByID {
		if strings.EqualFold(name, raw) {
			return VendorRef{ID: id, Name: name}
		}
	}
	return VendorRef{Name: raw}
}

// Pending reports whether the reference is a free-text vendor name that has
// no server-side id yet.
func (v VendorRef) Pending() bool {
	return v.ID == "" && (v.Name != "" || strings.TrimSpace(v.Raw) != "")
}

// MarshalJSON writes the id when known, else the name string.
func (v VendorRef) MarshalJSON() ([]byte, error) {
	if v.ID != "" {
		return json.Marshal(v.ID)
	}
	if v.Name != "" {
		return json.Marshal(v.Name)
	}
	if raw := strings.TrimSpace(v.Raw); raw != "" {
		return json.Marshal(raw)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts a bare string or an embedded vendor object.
func (v *VendorRef) UnmarshalJSON(data []byte) error {
	trimmed := string(data)
	if trimmed == "null" || trimmed == "" {
		*v = VendorRef{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*v = VendorRef{Raw: raw}
		return nil
	}

	var embedded struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &embedded); err != nil {
		return err
	}
	*v = VendorRef{ID: embedded.ID, Name: embedded.Name}
	return nil
}
