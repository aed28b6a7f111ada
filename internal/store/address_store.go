package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nikolayk812/storefront-go/internal/domain"
	"github.com/nikolayk812/storefront-go/internal/port"
)

// AddressStore holds the signed-in user's shipping addresses.
type AddressStore struct {
	mu        sync.RWMutex
	addresses []domain.Address
	loading   bool
	lastErr   string

	api     port.AddressAPI
	session port.SessionProvider
	log     logrus.FieldLogger
}

func NewAddressStore(api port.AddressAPI, session port.SessionProvider, log logrus.FieldLogger) *AddressStore {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &AddressStore{
		api:     api,
		session: session,
		log:     log,
	}
}

func (s *AddressStore) FetchAddresses(ctx context.Context) {
	s.begin()
	defer s.end()

	if err := s.requireSession(); err != nil {
		s.fail(err)
		return
	}

	addresses, err := s.api.ListAddresses(ctx)
	if err != nil {
		s.fail(fmt.Errorf("api.ListAddresses: %w", err))
		return
	}

	s.mu.Lock()
	s.addresses = addresses
	s.mu.Unlock()
}

func (s *AddressStore) AddAddress(ctx context.Context, address domain.Address) (domain.Address, error) {
	s.begin()
	defer s.end()

	if err := s.requireSession(); err != nil {
		s.fail(err)
		return domain.Address{}, err
	}

	created, err := s.api.CreateAddress(ctx, address)
	if err != nil {
		err = fmt.Errorf("api.CreateAddress: %w", err)
		s.fail(err)
		return domain.Address{}, err
	}

	s.mu.Lock()
	s.addresses = append(s.addresses, created)
	s.mu.Unlock()

	return created, nil
}

func (s *AddressStore) UpdateAddress(ctx context.Context, addressID string, address domain.Address) (domain.Address, error) {
	s.begin()
	defer s.end()

	if err := s.requireSession(); err != nil {
		s.fail(err)
		return domain.Address{}, err
	}

	updated, err := s.api.UpdateAddress(ctx, addressID, address)
	if err != nil {
		err = fmt.Errorf("api.UpdateAddress: %w", err)
		s.fail(err)
		return domain.Address{}, err
	}

	s.mu.Lock()
	for i := range s.addresses {
		if s.addresses[i].ID == addressID {
			s.addresses[i] = updated
			break
		}
	}
	s.mu.Unlock()

	return updated, nil
}

func (s *AddressStore) DeleteAddress(ctx context.Context, addressID string) error {
	s.begin()
	defer s.end()

	if err := s.requireSession(); err != nil {
		s.fail(err)
		return err
	}

	if err := s.api.DeleteAddress(ctx, addressID); err != nil {
		err = fmt.Errorf("api.DeleteAddress: %w", err)
		s.fail(err)
		return err
	}

	s.mu.Lock()
	kept := s.addresses[:0]
	for _, address := range s.addresses {
		if address.ID != addressID {
			kept = append(kept, address)
		}
	}
	s.addresses = kept
	s.mu.Unlock()

	return nil
}

func (s *AddressStore) Addresses() []domain.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Address(nil), s.addresses...)
}

func (s *AddressStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *AddressStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *AddressStore) requireSession() error {
	if s.session.Authenticated() {
		return nil
	}
	return ErrAuthRequired
}

func (s *AddressStore) begin() {
	s.mu.Lock()
	s.lastErr = ""
	s.loading = true
	s.mu.Unlock()
}

func (s *AddressStore) end() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *AddressStore) fail(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()

	s.log.WithError(err).Warn("address request failed")
}
