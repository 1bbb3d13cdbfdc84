package processingerror

import "time"

type ProcessingError struct {
	ProcessingContext ProcessingContext
	Sources           Sources
	Reason            Reason
}

type ProcessingContext struct {
	Component Component
	Time      time.Time
	Host      string
}

type Component struct {
	Version  string
	Branch   string
	Revision string
}

type Sources struct {
	Main       Source
	Additional []KeyValue
}

type Source struct {
	Transport string
	Key       string
	Received  time.Time
	Topic     string `json:",omitempty"`
	Partition int32  `json:",omitempty"`
	Offset    int64  `json:",omitempty"`
	Payload   []byte
}

type KeyValue struct {
	Source string
	Key    string
	Value  []byte
}

type Reason struct {
	Category  string
	Error     string
	Retryable bool
}
