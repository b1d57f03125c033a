package dto

import "encoding/json"

// OptField distinguishes an absent JSON field from an explicit null: Set is
// false when the key was missing, true with a nil Value when the client sent
// null to clear the field.
type OptField struct {
	Set   bool
	Value *string
}

func (o *OptField) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}
