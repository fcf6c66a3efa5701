// Package tokenstore guarda el token del backend de cuidado en el keyring del sistema (modo CLI).
package tokenstore

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const DefaultService = "child-care-tracker"

var ErrNoToken = errors.New("no token stored")

type Store struct {
	service string
}

func New(service string) *Store {
	service = strings.TrimSpace(service)
	if service == "" {
		service = DefaultService
	}
	return &Store{service: service}
}

func (s *Store) Set(account, token string) error {
	account = strings.TrimSpace(account)
	token = strings.TrimSpace(token)
	if account == "" || token == "" {
		return errors.New("tokenstore: account and token required")
	}
	return keyring.Set(s.service, account, token)
}

func (s *Store) Get(account string) (string, error) {
	tok, err := keyring.Get(s.service, strings.TrimSpace(account))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", err
	}
	return tok, nil
}

// Clear es idempotente: borrar algo inexistente no es error.
func (s *Store) Clear(account string) error {
	err := keyring.Delete(s.service, strings.TrimSpace(account))
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
