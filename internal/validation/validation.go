package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxKeywordLength is the longest accepted search keyword, in characters.
const MaxKeywordLength = 100

var (
	ErrKeywordRequired = errors.New("keyword is required")
	ErrKeywordTooLong  = errors.New("keyword is too long")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SearchQuery is the query string of a search request.
type SearchQuery struct {
	Keyword string `query:"keyword" validate:"required,max=100"`
}

// NormalizeKeyword trims surrounding whitespace from a search keyword.
// Case is preserved; matching is case-insensitive further down.
func NormalizeKeyword(keyword string) string {
	return strings.TrimSpace(keyword)
}

// ValidateKeyword checks a normalized keyword is present and not longer than
// MaxKeywordLength characters.
func ValidateKeyword(keyword string) error {
	return keywordError(validate.Var(keyword, "required,max=100"))
}

// ValidateSearchQuery normalizes q in place and validates it.
func ValidateSearchQuery(q *SearchQuery) error {
	q.Keyword = NormalizeKeyword(q.Keyword)
	return keywordError(validate.Struct(q))
}

func keywordError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "max" {
		return ErrKeywordTooLong
	}
	return ErrKeywordRequired
}
