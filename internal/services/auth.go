package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/models"
	"github.com/dmitrijs2005/authkeeper/internal/strength"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RegisterRequest is the input of AuthService.Register. UserName must pass
// models.ValidateUserName.
type RegisterRequest struct {
	UserName string `validate:"required,max=64,username"`
	Password string `validate:"required"`
	Role     string `validate:"omitempty,oneof=user admin analyst"`
}

type RegisterResult struct {
	User     *models.User
	Strength strength.Tier
}

type LoginResult struct {
	UserName string
	Role     models.Role
	Token    string
}

// AuthService runs the register, login and session flows on top of the
// credential store, lockout tracker and session registry.
type AuthService struct {
	creds    *CredentialStore
	lockouts *LockoutTracker
	sessions *SessionRegistry
	log      logging.Logger

	validate    *validator.Validate
	minStrength *strength.Tier

	// hash verified against on unknown usernames
	dummyHash string
}

// NewAuthService builds an AuthService. minStrength names the weakest tier
// accepted at registration; "" accepts any password.
func NewAuthService(creds *CredentialStore, lockouts *LockoutTracker, sessions *SessionRegistry, log logging.Logger, minStrength string) (*AuthService, error) {
	s := &AuthService{
		creds:    creds,
		lockouts: lockouts,
		sessions: sessions,
		log:      log,
		validate: validator.New(),
	}
	if err := s.validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return models.ValidateUserName(fl.Field().String()) == nil
	}); err != nil {
		return nil, err
	}

	dummyHash, err := creds.hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("error preparing dummy hash: %w", err)
	}
	s.dummyHash = dummyHash

	if minStrength != "" {
		tier, err := strength.ParseTier(minStrength)
		if err != nil {
			return nil, err
		}
		s.minStrength = &tier
	}
	return s, nil
}

// Register validates req, classifies the password and stores the user.
// The strength tier is advisory unless a minimum was configured, in which
// case weaker passwords fail with common.ErrWeakPassword.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	tier := strength.Classify(req.Password)
	if s.minStrength != nil && tier < *s.minStrength {
		return nil, fmt.Errorf("%w: %s is below the required %s", common.ErrWeakPassword, tier, *s.minStrength)
	}

	user, err := s.creds.Register(ctx, req.UserName, req.Password, models.Role(req.Role))
	if err != nil {
		return nil, err
	}
	return &RegisterResult{User: user, Strength: tier}, nil
}

// Login checks the lockout state, verifies the password, records the outcome
// and issues a session on success.
//
// A locked account fails with *LockedError without touching credentials or
// the failure counter. A wrong password and an unknown username both fail
// with *FailedAttemptError and both count towards the lockout.
func (s *AuthService) Login(ctx context.Context, userName, password string) (*LoginResult, error) {
	log := s.log.With("attempt_id", uuid.NewString(), "username", userName)

	status, err := s.lockouts.Check(ctx, userName)
	if err != nil {
		return nil, err
	}
	if status.Locked {
		log.Info(ctx, "login rejected, account locked", "remaining_seconds", status.RemainingSeconds())
		return nil, &LockedError{UserName: userName, Remaining: status.Remaining}
	}

	ok, err := s.creds.Authenticate(ctx, userName, password)
	if errors.Is(err, common.ErrUnknownUser) {
		s.verifyDummy(password)
		ok, err = false, nil
	}
	if err != nil {
		log.Error(ctx, "login aborted", "error", err)
		return nil, err
	}

	if !ok {
		rec, err := s.lockouts.RecordFailure(ctx, userName)
		if err != nil {
			return nil, err
		}
		log.Info(ctx, "login failed", "failed_count", rec.FailedCount)
		return nil, &FailedAttemptError{
			Attempt:     rec.FailedCount,
			MaxAttempts: common.MaxFailedAttempts,
			Locked:      rec.LockedUntil != nil,
		}
	}

	if err := s.lockouts.RecordSuccess(ctx, userName); err != nil {
		return nil, err
	}

	role, err := s.creds.GetRole(ctx, userName)
	if err != nil {
		return nil, err
	}

	token, err := s.sessions.Issue(ctx, userName)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "login succeeded", "role", string(role))
	return &LoginResult{UserName: userName, Role: role, Token: token}, nil
}

// Logout revokes token. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// WhoAmI resolves token to its user. The returned user has no password hash.
func (s *AuthService) WhoAmI(ctx context.Context, token string) (*models.User, error) {
	userName, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}

	role, err := s.creds.GetRole(ctx, userName)
	if err != nil {
		return nil, err
	}
	return &models.User{UserName: userName, Role: role}, nil
}

const dummyPassword = "authkeeper-dummy-password"

// verifyDummy spends the same hashing work as a real verify so unknown
// usernames are not told apart by timing.
func (s *AuthService) verifyDummy(password string) {
	_, _ = s.creds.hasher.Verify(password, s.dummyHash)
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	fe := verrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "max":
		msg = "must be at most " + fe.Param() + " characters"
	case "username":
		msg = "must not be blank, have surrounding spaces or contain commas, quotes or line breaks"
	case "oneof":
		msg = "must be one of: " + fe.Param()
	default:
		msg = "is invalid"
	}
	return fmt.Errorf("%w: %s %s", common.ErrValidation, strings.ToLower(fe.Field()), msg)
}
