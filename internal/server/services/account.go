package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/recordkeeper/recordkeeper/internal/common"
	"github.com/recordkeeper/recordkeeper/internal/server/auth"
	"github.com/recordkeeper/recordkeeper/internal/server/config"
	"github.com/recordkeeper/recordkeeper/internal/server/models"
	"github.com/recordkeeper/recordkeeper/internal/server/repositories/repomanager"
)

var mobileRe = regexp.MustCompile(`^\d{10}$`)

// AccountService handles registration, login, and account disablement.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	secretKey   []byte
	tokenTTL    time.Duration
}

// NewAccountService constructs an AccountService.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		secretKey:   []byte(cfg.SecretKey),
		tokenTTL:    cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new active account with a bcrypt password hash.
// A duplicate email yields common.ErrConflict.
func (s *AccountService) Register(ctx context.Context, name, email, password, mobile string) (*models.Account, error) {
	if name == "" || email == "" || password == "" || mobile == "" {
		return nil, fmt.Errorf("%w: name, email, password and mobile are required", common.ErrValidation)
	}
	if !mobileRe.MatchString(mobile) {
		return nil, fmt.Errorf("%w: mobile must be exactly 10 digits", common.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: hashing password: %v", common.ErrInternal, err)
	}

	repo := s.repomanager.Accounts(s.db)
	account, err := repo.Create(ctx, &models.Account{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Mobile:       mobile,
		Status:       models.AccountStatusActive,
	})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, fmt.Errorf("%w: email already registered", common.ErrConflict)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return account, nil
}

// Login verifies credentials against the active account with the given
// email and mints a session token. An unknown email, a disabled account,
// and a wrong password are all reported as common.ErrUnauthorized.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *models.Account, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	repo := s.repomanager.Accounts(s.db)
	account, err := repo.GetActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", nil, common.ErrUnauthorized
		}
		return "", nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(auth.Identity{
		AccountID: strconv.FormatInt(account.ID, 10),
		Email:     account.Email,
		Name:      account.Name,
	}, s.secretKey, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("%w: signing token: %v", common.ErrInternal, err)
	}

	return token, account, nil
}

// Disable soft-deletes the account. Its rows remain but login stops working.
func (s *AccountService) Disable(ctx context.Context, accountID int64) error {
	repo := s.repomanager.Accounts(s.db)
	if err := repo.Disable(ctx, accountID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return nil
}
