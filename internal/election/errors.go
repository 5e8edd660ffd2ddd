package election

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNetwork matches fetch failures where no usable response came back:
	// transport errors and non-2xx statuses.
	ErrNetwork = errors.New("election: upstream unavailable")
	// ErrUpstreamStatus matches non-2xx responses only.
	ErrUpstreamStatus = errors.New("election: upstream returned non-2xx status")
	// ErrMalformedPayload matches bodies that are not valid JSON or miss required keys.
	ErrMalformedPayload = errors.New("election: malformed payload")
)

// FetchKind classifies a FetchError.
type FetchKind string

const (
	KindNetwork   FetchKind = "network"
	KindStatus    FetchKind = "status"
	KindMalformed FetchKind = "malformed"
)

// FetchError is returned by Client for every failed fetch.
type FetchError struct {
	URL    string
	Kind   FetchKind
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	var b strings.Builder
	b.WriteString("election: fetch ")
	b.WriteString(e.URL)
	b.WriteString(": ")
	b.WriteString(string(e.Kind))
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is lets callers match on the error class without caring about the URL.
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork || e.Kind == KindStatus
	case ErrUpstreamStatus:
		return e.Kind == KindStatus
	case ErrMalformedPayload:
		return e.Kind == KindMalformed
	}
	return false
}

// Code is picked up by the router's handler summary as err_code.
func (e *FetchError) Code() string {
	return "fetch_" + string(e.Kind)
}

func malformed(url string, err error) *FetchError {
	return &FetchError{URL: url, Kind: KindMalformed, Err: err}
}

func missingKey(path string) error {
	return fmt.Errorf("missing key %q", path)
}
