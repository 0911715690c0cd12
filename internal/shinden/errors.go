package shinden

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidURL is returned when a series URL has the wrong origin or path
	ErrInvalidURL = errors.New("invalid series url")
	// ErrUnavailable is returned by the Anime factory when the main page
	// cannot be retrieved and verified
	ErrUnavailable = errors.New("series is not available")
	// ErrVerification is returned when no attempt produced a page with the
	// site header
	ErrVerification = errors.New("could not verify page")
	// ErrResponse is returned when a verified page came with a non-2xx status
	ErrResponse = errors.New("response is not OK")
	// ErrMissingField is returned when a required element is absent from a page
	ErrMissingField = errors.New("missing field")
	// ErrUnsupportedDetail is returned for detail labels the parser does not know
	ErrUnsupportedDetail = errors.New("unsupported detail")
	// ErrMissingArgument is returned when a players page is requested without
	// an episode that links to one
	ErrMissingArgument = errors.New("missing argument")
	// ErrEndOfResults is returned by NextPage on the last search page
	ErrEndOfResults = errors.New("this is the last page")
)

// MissingFieldError names the element a parser could not find
type MissingFieldError struct {
	Page  PageKind
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("error parsing %s: %s is missing", e.Page, e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

func missingField(page PageKind, field string) error {
	return errors.WithStack(&MissingFieldError{Page: page, Field: field})
}

// UnsupportedDetailError carries the unknown detail label verbatim
type UnsupportedDetailError struct {
	Label string
}

func (e *UnsupportedDetailError) Error() string {
	return fmt.Sprintf("parsing not implemented for detail: %q", e.Label)
}

func (e *UnsupportedDetailError) Is(target error) bool { return target == ErrUnsupportedDetail }

// ResponseError is returned when the page verified but the status was not 2xx
type ResponseError struct {
	URL        string
	StatusCode int
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: response is not OK (status %d)", e.URL, e.StatusCode)
}

func (e *ResponseError) Is(target error) bool { return target == ErrResponse }

// UnavailableError is returned by Client.Anime when the availability probe
// failed. It matches ErrUnavailable and unwraps to the fetch error.
type UnavailableError struct {
	URL string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s is not available on shinden.pl: %v", e.URL, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }
