package domain

import "errors"

var (
	ErrAuthOrURLMissing    = errors.New("exactly one of KOKO_KEYWORDS_URL or KOKO_KEYWORDS_AUTH must be set")
	ErrUpstreamUnavailable = errors.New("keyword refresh request failed")
	ErrUpstreamDecode      = errors.New("keyword refresh response could not be decoded")
	ErrBadKeywordRegex     = errors.New("keyword set contains an invalid regular expression")
	ErrMissingInput        = errors.New("input is required")
	ErrMissingFilter       = errors.New("filter is required")
	ErrSetNotFound         = errors.New("no keyword set available for this filter")
	ErrSnapshotNotFound    = errors.New("keyword snapshot not found")
	ErrAuditDisabled       = errors.New("match auditing is not enabled")
)

// Numeric error codes of the shared-library ABI. koko_keywords_match returns
// them negated; the values are fixed and must not be renumbered.
const (
	CodeAuthOrURLMissing      = 1
	CodeRefreshRequestFailure = 2
	CodeRefreshParseFailure   = 3
	CodeParseError            = 4
)

// ErrorCode maps a domain error onto its shared-library ABI code.
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrAuthOrURLMissing):
		return CodeAuthOrURLMissing
	case errors.Is(err, ErrUpstreamUnavailable), errors.Is(err, ErrSetNotFound):
		return CodeRefreshRequestFailure
	case errors.Is(err, ErrUpstreamDecode), errors.Is(err, ErrBadKeywordRegex):
		return CodeRefreshParseFailure
	default:
		return CodeParseError
	}
}
