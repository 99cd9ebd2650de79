package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
	"recruitment-platform/pkg/hash"
	"recruitment-platform/pkg/logger"
	"recruitment-platform/pkg/security"
)

const (
	msgUsernameTaken      = "Error: Username is already taken!"
	msgEmailTaken         = "Error: Email is already in use!"
	msgInvalidCredentials = "Invalid username or password"
)

type authUsecase struct {
	userRepo  domain.UserRepository
	tokens    domain.TokenIssuer
	guard     domain.LoginGuard
	secLogger *security.SecurityLogger
}

// NewAuthUsecase wires registration and login. guard may be nil, in which
// case failed attempts are not tracked.
func NewAuthUsecase(
	userRepo domain.UserRepository,
	tokens domain.TokenIssuer,
	guard domain.LoginGuard,
	secLogger *security.SecurityLogger,
) domain.AuthUsecase {
	if secLogger == nil {
		secLogger = security.DefaultLogger()
	}
	return &authUsecase{
		userRepo:  userRepo,
		tokens:    tokens,
		guard:     guard,
		secLogger: secLogger,
	}
}

func (u *authUsecase) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	if !in.Role.Valid() {
		return nil, apperror.BadRequest("Role must be JOBSEEKER or RECRUITER")
	}

	taken, err := u.userRepo.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if taken {
		return nil, apperror.BadRequest(msgUsernameTaken)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	taken, err = u.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if taken {
		return nil, apperror.BadRequest(msgEmailTaken)
	}

	hashed, err := hash.Password(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		Username:  in.Username,
		Email:     email,
		Password:  hashed,
		Role:      in.Role,
		CreatedAt: time.Now(),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same name or email
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusConflict {
			if strings.Contains(appErr.Message, "email") {
				return nil, apperror.BadRequest(msgEmailTaken)
			}
			return nil, apperror.BadRequest(msgUsernameTaken)
		}
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, in domain.LoginInput) (*domain.LoginResult, error) {
	info := security.RequestInfo{
		IP:        in.IP,
		UserAgent: in.UserAgent,
		RequestID: in.RequestID,
		Method:    in.Method,
		Path:      in.Path,
	}

	if u.guard != nil {
		blocked, err := u.guard.IsBlocked(ctx, in.Username, in.IP)
		if err != nil {
			logger.Log.Warn("login guard unavailable", "error", err)
		}
		if blocked {
			u.secLogger.LogLoginBlocked(ctx, in.Username, info)
			return nil, apperror.TooManyRequests("Too many failed login attempts. Try again later.")
		}
	}

	user, err := u.userRepo.GetByUsername(ctx, in.Username)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if user == nil || !hash.Matches(user.Password, in.Password) {
		reason := "bad_password"
		if user == nil {
			reason = "unknown_user"
		}
		u.secLogger.LogLoginFailed(ctx, in.Username, info, reason)
		u.recordFailure(ctx, in.Username, in.IP)
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}

	token, err := u.tokens.Issue(user.Username, user.ID, string(user.Role))
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if u.guard != nil {
		if err := u.guard.ClearAttempts(ctx, user.Username); err != nil {
			logger.Log.Warn("failed to clear login attempts", "error", err)
		}
	}
	u.secLogger.LogLoginSuccess(ctx, user.Username, info)

	return &domain.LoginResult{
		Token:    token,
		Type:     "Bearer",
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    []string{user.Role.Authority()},
	}, nil
}

func (u *authUsecase) recordFailure(ctx context.Context, username, ip string) {
	if u.guard == nil {
		return
	}
	if _, _, err := u.guard.RecordFailedAttempt(ctx, username, ip); err != nil {
		logger.Log.Warn("failed to record login attempt", "error", err)
	}
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}
