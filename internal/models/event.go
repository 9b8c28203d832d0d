package models

type EventKind string

const (
	EventVisit   EventKind = "visit"
	EventReading EventKind = "reading"
)

func (e EventKind) Valid() bool {
	return e == EventVisit || e == EventReading
}

type ReadingType string

const (
	ReadingOne    ReadingType = "one"
	ReadingThree  ReadingType = "three"
	ReadingCustom ReadingType = "custom"
)

func (r ReadingType) Valid() bool {
	switch r {
	case ReadingOne, ReadingThree, ReadingCustom:
		return true
	}
	return false
}

// TrackRequest is the body of POST /api/track.
type TrackRequest struct {
	FID         int64       `json:"fid"`
	Wallet      string      `json:"wallet,omitempty"`
	Event       EventKind   `json:"event"`
	ReadingType ReadingType `json:"readingType,omitempty"`
	ClientTs    int64       `json:"clientTs"`
}

// ErrorResponse is the JSON body of every 4xx/5xx answer of the remote service.
type ErrorResponse struct {
	Error string `json:"error"`
}
