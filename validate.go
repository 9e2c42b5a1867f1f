package shorten

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// labelPattern a dot-separated host label of 2+ alphanumerics.
// The host must contain at least one such label for the URL to be
// worth sending to the provider, "http://x" or "http://.." are not.
var labelPattern = regexp.MustCompile(`^[A-Za-z0-9]{2,}$`)

type shortenRequest struct {
	URL string `validate:"required,shortenable"`
}

func newValidator() *validator.Validate {
	validate := validator.New()
	// the builtin "url" tag accepts any scheme and opaque hosts,
	// register the narrower shape this tool accepts
	_ = validate.RegisterValidation("shortenable", func(fl validator.FieldLevel) bool {
		return shortenable(fl.Field().String())
	})
	return validate
}

func shortenable(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := u.Hostname()
	if host == "" {
		return false
	}
	for _, label := range strings.Split(host, ".") {
		if labelPattern.MatchString(label) {
			return true
		}
	}
	return false
}

// Validate reports whether rawURL is acceptable input.
// Returns an error wrapping ErrInvalidURL when it is not.
func (s *Service) Validate(rawURL string) error {
	if err := s.validate.Struct(shortenRequest{URL: rawURL}); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	return nil
}
