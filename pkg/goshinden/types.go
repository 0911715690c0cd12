package goshinden

import "github.com/alvarorichard/Goshinden/internal/shinden"

type (
	Anime        = shinden.Anime
	AnimeStats   = shinden.AnimeStats
	AnimeDetails = shinden.AnimeDetails
	AnimeKind    = shinden.AnimeKind
	AnimeStatus  = shinden.AnimeStatus
	Episode      = shinden.Episode
	Player       = shinden.Player
	SearchPage   = shinden.SearchPage
	SearchResult = shinden.SearchResult
	PageKind     = shinden.PageKind

	MissingFieldError      = shinden.MissingFieldError
	UnsupportedDetailError = shinden.UnsupportedDetailError
	ResponseError          = shinden.ResponseError
	UnavailableError       = shinden.UnavailableError
)

// Errors returned by the library. Match them with errors.Is.
var (
	ErrInvalidURL        = shinden.ErrInvalidURL
	ErrUnavailable       = shinden.ErrUnavailable
	ErrVerification      = shinden.ErrVerification
	ErrResponse          = shinden.ErrResponse
	ErrMissingField      = shinden.ErrMissingField
	ErrUnsupportedDetail = shinden.ErrUnsupportedDetail
	ErrMissingArgument   = shinden.ErrMissingArgument
	ErrEndOfResults      = shinden.ErrEndOfResults
)

// PlaceholderImageURL is used for covers hidden from guests
const PlaceholderImageURL = shinden.PlaceholderImageURL
