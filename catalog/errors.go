package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrEmptyQuery      = errors.New("search query is empty")
	ErrInvalidPage     = errors.New("page must be 1 or greater")
	ErrInvalidID       = errors.New("id must be a positive number")
	ErrUnknownResource = errors.New("unknown resource")
	ErrMissingAPIKey   = errors.New("tmdb api key is missing")
)

// RemoteFetchError wraps any failure talking to TMDB: transport errors,
// non-2xx responses and undecodable payloads.
type RemoteFetchError struct {
	Op     string
	Status int
	Err    error
}

func (e *RemoteFetchError) Error() string {
	switch {
	case e.Status == 0:
		return fmt.Sprintf("could not reach TMDB while fetching %s: %v", e.Op, e.Err)
	case e.Status >= 200 && e.Status < 300:
		return fmt.Sprintf("TMDB sent an unreadable response for %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("TMDB answered %d %s for %s: %v", e.Status, http.StatusText(e.Status), e.Op, e.Err)
	}
}

func (e *RemoteFetchError) Unwrap() error {
	return e.Err
}

// NotFoundError is a 404 on an id lookup, or an empty featured listing (ID 0).
type NotFoundError struct {
	Kind Kind
	ID   int
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("No featured %s found.", e.Kind.Noun())
	}
	return fmt.Sprintf("The %s you are looking for could not be found.", e.Kind.Noun())
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ErrorClass groups errors for retry decisions.
type ErrorClass int

const (
	ClassUnknown ErrorClass = iota
	ClassNetwork
	ClassServer
	ClassClient
	ClassNotFound
	ClassDecode
	ClassInvalid
	ClassCanceled
)

func (c ErrorClass) String() string {
	switch c {
	case ClassNetwork:
		return "network"
	case ClassServer:
		return "server"
	case ClassClient:
		return "client"
	case ClassNotFound:
		return "not-found"
	case ClassDecode:
		return "decode"
	case ClassInvalid:
		return "invalid"
	case ClassCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by the client to its class.
func Classify(err error) ErrorClass {
	if err == nil {
		return ClassUnknown
	}

	if errors.Is(err, context.Canceled) {
		return ClassCanceled
	}

	if errors.Is(err, ErrNotFound) {
		return ClassNotFound
	}

	for _, invalid := range []error{ErrEmptyQuery, ErrInvalidPage, ErrInvalidID, ErrUnknownResource, ErrMissingAPIKey} {
		if errors.Is(err, invalid) {
			return ClassInvalid
		}
	}

	var remote *RemoteFetchError
	if errors.As(err, &remote) {
		switch {
		case remote.Status == 0:
			return ClassNetwork
		case remote.Status >= 500:
			return ClassServer
		case remote.Status >= 400:
			return ClassClient
		default:
			return ClassDecode
		}
	}

	return ClassUnknown
}
