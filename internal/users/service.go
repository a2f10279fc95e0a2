package users

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/r70610363/swiftcart-backend/pkg/config"
	"github.com/r70610363/swiftcart-backend/pkg/enums"
	"github.com/r70610363/swiftcart-backend/pkg/errors"
	"github.com/r70610363/swiftcart-backend/pkg/kvstore"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/metrics"
	"github.com/r70610363/swiftcart-backend/pkg/models"
	"github.com/r70610363/swiftcart-backend/pkg/upstream"
)

// Service is the user directory. Accounts are looked up by email or mobile;
// the admin allow-lists override whatever role the directory stores.
type Service interface {
	Exists(ctx context.Context, identifier string) (bool, error)
	Register(ctx context.Context, name, email, mobile string) (models.User, error)
	Authenticate(ctx context.Context, identifier string) (models.User, error)
	Update(ctx context.Context, user models.User) (models.User, error)
}

type service struct {
	store    kvstore.Store
	upstream *upstream.Client
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
	admin    config.AdminConfig
	now      func() time.Time

	mu    sync.RWMutex
	users []models.User
}

// NewService hydrates the directory and guarantees the two default admin
// accounts exist, matching the allow-lists shipped in the config defaults.
func NewService(ctx context.Context, store kvstore.Store, up *upstream.Client, admin config.AdminConfig, logg *logger.Logger, met *metrics.StorefrontMetrics) (Service, error) {
	if store == nil {
		return nil, errors.New(errors.CodeInternal, "users service requires a store")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "users service requires a logger")
	}

	s := &service{
		store:    store,
		upstream: up,
		logg:     logg,
		metrics:  met,
		admin:    admin,
		now:      time.Now,
	}
	kvstore.GetJSON(ctx, store, logg, kvstore.KeyUsers, &s.users)

	seeded := s.seedDefaultAdmins()
	if seeded {
		if err := kvstore.SetJSON(ctx, store, kvstore.KeyUsers, s.users); err != nil {
			logg.Warn(logg.WithStoreKey(ctx, kvstore.KeyUsers), "default admins not persisted, serving from memory")
		}
	}
	return s, nil
}

func (s *service) seedDefaultAdmins() bool {
	defaults := []models.User{
		{ID: "admin-default", Name: "Flipkart Admin", Email: "admin@flipkart.com", Mobile: "9999999999", Role: enums.UserRoleAdmin},
		{ID: "admin-mobile-owner", Name: "Owner", Email: "owner@flipkart.com", Mobile: "7891906445", Role: enums.UserRoleAdmin},
	}
	changed := false
	for _, def := range defaults {
		found := false
		for _, u := range s.users {
			if u.Matches(def.Email) || u.Matches(def.Mobile) {
				found = true
				break
			}
		}
		if !found {
			s.users = append(s.users, def)
			changed = true
		}
	}
	return changed
}

func (s *service) isAllowListed(identifier string) bool {
	for _, email := range s.admin.Emails {
		if identifier == email {
			return true
		}
	}
	for _, mobile := range s.admin.Mobiles {
		if identifier == mobile {
			return true
		}
	}
	return false
}

// Exists reports whether an identifier can log in. Allow-listed identifiers
// always exist, whether or not the directory holds a record for them.
func (s *service) Exists(ctx context.Context, identifier string) (bool, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return false, errors.New(errors.CodeValidation, "identifier is required")
	}
	if s.isAllowListed(identifier) {
		return true, nil
	}

	if s.upstream != nil && s.upstream.Enabled() {
		exists, err := s.upstream.CheckUser(ctx, identifier)
		if err == nil {
			return exists, nil
		}
		s.metrics.IncFallback("users.exists")
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "upstream user check failed, consulting local directory")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Matches(identifier) {
			return true, nil
		}
	}
	return false, nil
}

// Register creates a USER-role account. Roles are never chosen by the
// caller; admin rights come only from the allow-lists at login.
func (s *service) Register(ctx context.Context, name, email, mobile string) (models.User, error) {
	email = strings.TrimSpace(email)
	mobile = strings.TrimSpace(mobile)
	if email == "" && mobile == "" {
		return models.User{}, errors.New(errors.CodeValidation, "email or mobile is required")
	}
	if name = strings.TrimSpace(name); name == "" {
		name = "User"
	}

	if s.upstream != nil && s.upstream.Enabled() {
		created, err := s.upstream.RegisterUser(ctx, upstream.RegisterRequest{Name: name, Email: email, Mobile: mobile})
		if err == nil {
			return created, nil
		}
		s.metrics.IncFallback("users.register")
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "upstream registration failed, registering locally")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Matches(email) || u.Matches(mobile) {
			return models.User{}, errors.New(errors.CodeConflict, "account already exists for this identifier")
		}
	}

	user := models.User{
		ID:     fmt.Sprintf("u-%d", s.now().UnixMilli()),
		Name:   name,
		Email:  email,
		Mobile: mobile,
		Role:   enums.UserRoleUser,
	}

	next := append(cloneUsers(s.users), user)
	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyUsers, next); err != nil {
		return models.User{}, err
	}
	s.users = next
	return user, nil
}

// Authenticate resolves an identifier to an account. Allow-listed
// identifiers always authenticate as a synthetic ADMIN account, even when no
// directory record exists for them.
func (s *service) Authenticate(ctx context.Context, identifier string) (models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return models.User{}, errors.New(errors.CodeValidation, "identifier is required")
	}

	if s.isAllowListed(identifier) {
		user := models.User{ID: "admin-force", Name: "Admin", Role: enums.UserRoleAdmin}
		if strings.Contains(identifier, "@") {
			user.Email = identifier
		} else {
			user.Email = "admin@flipkart.com"
			user.Mobile = identifier
		}
		return user, nil
	}

	if s.upstream != nil && s.upstream.Enabled() {
		user, err := s.upstream.LoginUser(ctx, identifier)
		if err == nil {
			return user, nil
		}
		s.metrics.IncFallback("users.authenticate")
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "upstream login failed, consulting local directory")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Matches(identifier) {
			return u, nil
		}
	}
	return models.User{}, errors.New(errors.CodeNotFound, "user not found")
}

// Update replaces the directory record with the same id.
func (s *service) Update(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == "" {
		return models.User{}, errors.New(errors.CodeValidation, "user id is required")
	}

	if s.upstream != nil && s.upstream.Enabled() {
		if updated, err := s.upstream.UpdateUser(ctx, user); err == nil {
			user = updated
		} else {
			s.metrics.IncFallback("users.update")
			s.logg.Warn(s.logg.WithUserID(ctx, user.ID), "upstream profile update failed, updating locally only")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.users {
		if s.users[i].ID == user.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.User{}, errors.New(errors.CodeNotFound, "user "+user.ID+" not found")
	}

	next := cloneUsers(s.users)
	next[idx] = user

	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyUsers, next); err != nil {
		return models.User{}, err
	}
	s.users = next
	return user, nil
}

func cloneUsers(in []models.User) []models.User {
	out := make([]models.User, len(in))
	copy(out, in)
	return out
}
