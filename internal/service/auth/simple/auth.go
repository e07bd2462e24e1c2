package service_simple_auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Token = string

var (
	ErrInternal  = errors.New("internal error")
	ErrWrongCode = errors.New("wrong code")
)

const (
	defaultSecret   = "shared"
	defaultTokenTTL = 10 * time.Minute
)

type SessionCache interface {
	Set(key string, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
}

// Service trades a shared admin secret for short-lived session tokens.
type Service struct {
	secret       string
	sessionCache SessionCache
	ttl          time.Duration
}

func New(
	secret string,
	sessionCache SessionCache,
	ttl time.Duration,
) *Service {
	if secret == "" {
		secret = defaultSecret
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &Service{
		secret:       secret,
		sessionCache: sessionCache,
		ttl:          ttl,
	}
}

func (s *Service) Auth(code string) (Token, error) {
	const activeSession = "active"

	if code != s.secret {
		return "", ErrWrongCode
	}

	t := s.genToken()
	if err := s.sessionCache.Set(t, activeSession, s.ttl); err != nil {
		return "", errors.Join(ErrInternal, err)
	}

	return t, nil
}

func (s *Service) ValidateToken(t Token) (bool, error) {
	if t == "" {
		return false, nil
	}
	v, err := s.sessionCache.Get(t)
	if err != nil {
		return false, errors.Join(ErrInternal, err)
	}

	return v != "", nil
}

func (s *Service) Revoke(t Token) error {
	if err := s.sessionCache.Delete(t); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func (s *Service) genToken() Token {
	return uuid.New().String()
}
