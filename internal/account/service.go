package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/entity"
	accountrepo "github.com/ovaphlow/pitchfork/service-account-go/internal/account/repo"
	"github.com/ovaphlow/pitchfork/service-account-go/pkg/utilities"
)

var (
	ErrMissingEmail   = errors.New("email is required")
	ErrBadCredentials = errors.New("invalid credentials")
	ErrInactive       = errors.New("account inactive")
	ErrDuplicateEmail = accountrepo.ErrDuplicate
	ErrNotFound       = accountrepo.ErrNotFound
)

// Store is the persistence the directory needs. Email uniqueness is the
// store's job; Create must report a taken email as ErrDuplicateEmail.
type Store interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	Update(ctx context.Context, a *entity.Account) error
}

// Options enumerates the optional fields a caller may set at creation.
type Options struct {
	FirstName        string
	LastName         string
	ConfirmationCode string
	// Unusable stores a credential no password verifies against; the password argument is ignored.
	Unusable bool
}

// Service creates accounts and wraps the few operations that need the hasher or clock.
type Service struct {
	store  Store
	hasher PasswordHasher
	clock  clockwork.Clock
	logger *zap.SugaredLogger
}

// NewService wires the directory. A nil store falls back to the Postgres repo on db;
// nil hasher, clock or logger get production defaults.
func NewService(db *sqlx.DB, store Store, hasher PasswordHasher, clock clockwork.Clock, logger *zap.SugaredLogger) *Service {
	if store == nil {
		store = accountrepo.NewAccountRepo(db)
	}
	if hasher == nil {
		hasher = BcryptHasher{Cost: 12}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{store: store, hasher: hasher, clock: clock, logger: logger}
}

// CreateAccount creates an active, unprivileged account.
func (s *Service) CreateAccount(ctx context.Context, email, password string, opts Options) (*entity.Account, error) {
	return s.create(ctx, email, password, false, false, opts)
}

// CreateAdminAccount creates an active account with both staff and superuser set.
func (s *Service) CreateAdminAccount(ctx context.Context, email, password string, opts Options) (*entity.Account, error) {
	return s.create(ctx, email, password, true, true, opts)
}

func (s *Service) create(ctx context.Context, email, password string, isStaff, isSuperuser bool, opts Options) (*entity.Account, error) {
	now := s.now()
	if strings.TrimSpace(email) == "" {
		return nil, ErrMissingEmail
	}
	a := &entity.Account{
		ID:               utilities.NewSnowflakeID(),
		Email:            NormalizeEmail(email),
		FirstName:        opts.FirstName,
		LastName:         opts.LastName,
		IsStaff:          isStaff,
		IsActive:         true,
		IsSuperuser:      isSuperuser,
		DateJoined:       now,
		LastLogin:        &now,
		ConfirmationCode: opts.ConfirmationCode,
	}
	if opts.Unusable {
		a.PasswordHash = utilities.NewUnusablePassword(entity.UnusablePasswordPrefix)
	} else if err := s.setPassword(a, password); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, a); err != nil {
		if !errors.Is(err, ErrDuplicateEmail) {
			s.logger.Warnw("account create failed", "email", a.Email, "err", err)
		}
		return nil, err
	}
	s.logger.Infow("account created", "id", a.ID, "email", a.Email, "privilege", a.Privilege().String())
	return a, nil
}

// now is the clock time at the microsecond precision TIMESTAMPTZ keeps.
func (s *Service) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Microsecond)
}

// setPassword hashes password into a. The empty string is hashed like any other password.
func (s *Service) setPassword(a *entity.Account, password string) error {
	h, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	a.PasswordHash = h
	return nil
}

// Get looks an account up by email after normalizing it.
func (s *Service) Get(ctx context.Context, email string) (*entity.Account, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrMissingEmail
	}
	return s.store.GetByEmail(ctx, NormalizeEmail(email))
}

// CheckPassword verifies password against the stored credential.
func (s *Service) CheckPassword(a *entity.Account, password string) bool {
	if !a.HasUsablePassword() {
		return false
	}
	return s.hasher.Verify(a.PasswordHash, password)
}

// Authenticate verifies email and password for an active account. A hash made
// with outdated parameters is upgraded in place; failing to persist the upgrade
// does not fail the login.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entity.Account, error) {
	a, err := s.Get(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrMissingEmail) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !s.CheckPassword(a, password) {
		return nil, ErrBadCredentials
	}
	if !a.IsActive {
		return nil, ErrInactive
	}
	if s.hasher.NeedsRehash(a.PasswordHash) {
		if err := s.SetPassword(ctx, a, password); err != nil {
			s.logger.Warnw("password rehash failed", "id", a.ID, "err", err)
		}
	}
	return a, nil
}

// SetPassword replaces the stored credential and persists it. On failure the
// account keeps its previous credential.
func (s *Service) SetPassword(ctx context.Context, a *entity.Account, password string) error {
	prev := a.PasswordHash
	if err := s.setPassword(a, password); err != nil {
		return err
	}
	if err := s.store.Update(ctx, a); err != nil {
		a.PasswordHash = prev
		return err
	}
	return nil
}

// RecordLogin stamps last_login with the current time.
func (s *Service) RecordLogin(ctx context.Context, a *entity.Account) error {
	now := s.now()
	prev := a.LastLogin
	a.LastLogin = &now
	if err := s.store.Update(ctx, a); err != nil {
		a.LastLogin = prev
		return err
	}
	return nil
}

// Save persists profile edits. The email is re-normalized; date_joined is left to the store.
func (s *Service) Save(ctx context.Context, a *entity.Account) error {
	if strings.TrimSpace(a.Email) == "" {
		return ErrMissingEmail
	}
	a.Email = NormalizeEmail(a.Email)
	return s.store.Update(ctx, a)
}
