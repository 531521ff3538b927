package model

// Attribute is a single key/value pair of an event. Value is nil when the
// indexer stored NULL.
type Attribute struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

// Event groups the attributes that share an event type.
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}
