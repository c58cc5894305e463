package datastructure

import (
	"encoding/json"
	"strconv"
)

// Optional holds a tag value that may be missing. The zero value is missing.
type Optional[T int | float64] struct {
	Value T
	Valid bool
}

func Some[T int | float64](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

func Missing[T int | float64]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Valid
}

func (o Optional[T]) IsMissing() bool {
	return !o.Valid
}

// String renders a missing value as the empty string, which parses back to missing.
func (o Optional[T]) String() string {
	if !o.Valid {
		return ""
	}
	switch v := any(o.Value).(type) {
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// EdgeTags is the normalized tag set carried by real edges.
type EdgeTags struct {
	Width         Optional[float64] `json:"width"`
	Lanes         Optional[int]     `json:"lanes"`
	LanesForward  Optional[int]     `json:"lanes_forward"`
	LanesBackward Optional[int]     `json:"lanes_backward"`
	LanesBothWays Optional[int]     `json:"lanes_both_ways"`
	Oneway        bool              `json:"oneway"`
	Reverse       bool              `json:"reverse"`
	Highway       string            `json:"highway,omitempty"`
	Name          string            `json:"name,omitempty"`
}

// ToMap serializes the tags back to raw osm keys. Missing values are kept as "".
func (t EdgeTags) ToMap() map[string]string {
	m := map[string]string{
		"width":           t.Width.String(),
		"lanes":           t.Lanes.String(),
		"lanes:forward":   t.LanesForward.String(),
		"lanes:backward":  t.LanesBackward.String(),
		"lanes:both_ways": t.LanesBothWays.String(),
	}
	if t.Highway != "" {
		m["highway"] = t.Highway
	}
	if t.Name != "" {
		m["name"] = t.Name
	}
	return m
}
