package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/r70610363/swiftcart-backend/internal/cart"
	"github.com/r70610363/swiftcart-backend/internal/checkout"
	"github.com/r70610363/swiftcart-backend/internal/notifications"
	"github.com/r70610363/swiftcart-backend/internal/users"
	"github.com/r70610363/swiftcart-backend/pkg/auth"
	"github.com/r70610363/swiftcart-backend/pkg/config"
	"github.com/r70610363/swiftcart-backend/pkg/errors"
	"github.com/r70610363/swiftcart-backend/pkg/kvstore"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/models"
	"github.com/r70610363/swiftcart-backend/pkg/types"
)

// Service owns the signed-in user and the session-scoped UI state: the
// login modal flag and the shipping address. Logout tears the whole session
// down: cart, wishlist, checkout snapshot, persisted user and the
// notification feed all go, so the next login starts clean.
type Service interface {
	CurrentUser(ctx context.Context) (models.User, bool)
	Login(ctx context.Context, identifier string) (models.User, string, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, user models.User) (models.User, error)

	SaveAddress(ctx context.Context, address types.Address) error
	Address(ctx context.Context) (types.Address, bool)

	OpenLoginModal(ctx context.Context)
	CloseLoginModal(ctx context.Context)
	LoginModalOpen(ctx context.Context) bool
}

type service struct {
	store     kvstore.Store
	directory users.Service
	cart      cart.Service
	checkout  checkout.Service
	feed      notifications.Service
	logg      *logger.Logger
	jwtCfg    config.JWTConfig
	now       func() time.Time

	mu        sync.RWMutex
	user      *models.User
	address   *types.Address
	modalOpen bool
}

func NewService(ctx context.Context, store kvstore.Store, directory users.Service, cartSvc cart.Service, checkoutSvc checkout.Service, feed notifications.Service, jwtCfg config.JWTConfig, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, errors.New(errors.CodeInternal, "session service requires a store")
	}
	if directory == nil {
		return nil, errors.New(errors.CodeInternal, "session service requires a user directory")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "session service requires a logger")
	}

	s := &service{
		store:     store,
		directory: directory,
		cart:      cartSvc,
		checkout:  checkoutSvc,
		feed:      feed,
		logg:      logg,
		jwtCfg:    jwtCfg,
		now:       time.Now,
	}

	var persisted models.User
	if kvstore.GetJSON(ctx, store, logg, kvstore.KeyUser, &persisted) && persisted.ID != "" {
		s.user = &persisted
	}
	return s, nil
}

func (s *service) CurrentUser(ctx context.Context) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// Login resolves the identifier through the directory, persists the session
// user and mints an access token carrying the resolved role.
func (s *service) Login(ctx context.Context, identifier string) (models.User, string, error) {
	user, err := s.directory.Authenticate(ctx, identifier)
	if err != nil {
		return models.User{}, "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyUser, user); err != nil {
		return models.User{}, "", err
	}
	s.user = &user
	s.modalOpen = false

	token, err := auth.MintAccessToken(s.jwtCfg, s.now(), auth.AccessTokenPayload{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
		JTI:    uuid.NewString(),
	})
	if err != nil {
		return models.User{}, "", errors.Wrap(errors.CodeInternal, err, "mint access token")
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID), "session started")
	return user, token, nil
}

// Logout clears every session-scoped artifact. Teardown keeps going past
// individual failures and reports them all together.
func (s *service) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.address = nil
	s.modalOpen = false
	s.mu.Unlock()

	var err error
	if removeErr := s.store.Remove(ctx, kvstore.KeyUser); removeErr != nil {
		err = multierr.Append(err, errors.Wrap(errors.CodeStorage, removeErr, "clear persisted user"))
	}
	if s.cart != nil {
		err = multierr.Append(err, s.cart.Reset(ctx))
	}
	if s.checkout != nil {
		err = multierr.Append(err, s.checkout.Abandon(ctx))
	}
	if s.feed != nil {
		s.feed.Clear(ctx)
	}

	if err != nil {
		return err
	}
	s.logg.Info(ctx, "session ended")
	return nil
}

// UpdateProfile writes the directory record and refreshes the persisted
// session user when it is the one signed in.
func (s *service) UpdateProfile(ctx context.Context, user models.User) (models.User, error) {
	updated, err := s.directory.Update(ctx, user)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil && s.user.ID == updated.ID {
		if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyUser, updated); err != nil {
			return models.User{}, err
		}
		s.user = &updated
	}
	return updated, nil
}

func (s *service) SaveAddress(ctx context.Context, address types.Address) error {
	if address.Empty() {
		return errors.New(errors.CodeValidation, "shipping address is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.address = &address
	return nil
}

func (s *service) Address(ctx context.Context) (types.Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.address == nil {
		return types.Address{}, false
	}
	return *s.address, true
}

func (s *service) OpenLoginModal(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modalOpen = true
}

func (s *service) CloseLoginModal(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modalOpen = false
}

func (s *service) LoginModalOpen(ctx context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modalOpen
}
