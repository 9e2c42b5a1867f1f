// Package shorten caches and shortens URLs through a remote provider.
package shorten

import (
	"context"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/jbaldus/shorten/cache"
	"github.com/jbaldus/shorten/logger"
)

// Client requests shortened URLs from the remote provider.
type Client interface {
	// Shorten returns the shortened form of rawURL.
	Shorten(ctx context.Context, rawURL string) (string, error)
	// Host returns the provider host.
	Host() string
}

// Service resolves a URL to its shortened form, consulting the cache
// before the remote provider. One call performs at most one lookup,
// one outbound request and one cache write.
type Service struct {
	store    cache.Store
	client   Client
	validate *validator.Validate
}

// NewService returns a new Service over the given store and client.
func NewService(store cache.Store, client Client) *Service {
	return &Service{
		store:    store,
		client:   client,
		validate: newValidator(),
	}
}

// Shorten returns the shortened form of rawURL.
//
// A URL already on the provider's host is returned unchanged without a
// cache lookup or network call. A cached entry is returned without a
// network call. Failed or empty provider responses are never cached,
// and a failed cache write degrades to a warning, the result is still
// returned.
func (s *Service) Shorten(ctx context.Context, rawURL string) (string, error) {
	if err := s.Validate(rawURL); err != nil {
		return "", err
	}

	if s.alreadyShort(rawURL) {
		logger.Info("url is already shortened", "url", rawURL)
		return rawURL, nil
	}

	if shortened, ok := s.store.Get(rawURL); ok {
		logger.Debug("cache hit", "url", rawURL, "shortened", shortened)
		return shortened, nil
	}

	shortened, err := s.client.Shorten(ctx, rawURL)
	if err != nil {
		return "", err
	}

	if err := s.store.Put(rawURL, shortened); err != nil {
		logger.Warn("could not cache result", "error", err)
	}
	return shortened, nil
}

func (s *Service) alreadyShort(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Hostname() == s.client.Host()
}
