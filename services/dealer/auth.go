package dealer

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	dealerRepo "fleetrent/database/repository/dealer"
	"fleetrent/models"
	"fleetrent/utils"
)

const tokenLifetime = 24 * time.Hour

// AuthResponse carries the dealer's identity and a fresh bearer token.
type AuthResponse struct {
	DealerID string `json:"dealerId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

// DealerService handles tenant account registration and authentication.
type DealerService interface {
	Register(ctx context.Context, input models.RegisterDealerInput) (*AuthResponse, error)
	Login(ctx context.Context, input models.LoginInput) (*AuthResponse, error)
	Revoke(ctx context.Context, dealerID models.DealerID) error
}

// DefaultDealerService implements DealerService.
type DefaultDealerService struct {
	Dealers dealerRepo.DealerRepository
}

// verifyPasswordComplexity checks that the password contains at least one
// lowercase letter, one uppercase letter, and one digit.
func verifyPasswordComplexity(pw string) error {
	var (
		hasMinLen = len(pw) >= 8
		hasUpper  = regexp.MustCompile(`[A-Z]`).MatchString(pw)
		hasLower  = regexp.MustCompile(`[a-z]`).MatchString(pw)
		hasNumber = regexp.MustCompile(`[0-9]`).MatchString(pw)
	)
	if !hasMinLen {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !hasUpper {
		return fmt.Errorf("password must include at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must include at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must include at least one number")
	}
	return nil
}

// Register creates a dealer account, signs a token, and stores its hash.
func (svc *DefaultDealerService) Register(ctx context.Context, input models.RegisterDealerInput) (*AuthResponse, error) {
	if err := verifyPasswordComplexity(input.Password); err != nil {
		return nil, err
	}

	existing, err := svc.Dealers.GetByEmail(ctx, input.Email)
	if err != nil {
		utils.GetLogger().Error("Failed to check for existing dealer", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	now := time.Now()
	d := &models.Dealer{
		DealerID:     utils.NewEntityID("DLR"),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := svc.Dealers.Create(ctx, d); err != nil {
		utils.GetLogger().Error("Failed to create dealer", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := svc.issueToken(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("registration failed, please try again")
	}

	utils.GetLogger().Info("dealer registered", zap.String("dealerId", d.DealerID))
	return &AuthResponse{DealerID: d.DealerID, Name: d.Name, Email: d.Email, Token: token}, nil
}

// Login verifies credentials and rotates the dealer's token.
func (svc *DefaultDealerService) Login(ctx context.Context, input models.LoginInput) (*AuthResponse, error) {
	d, err := svc.Dealers.GetByEmail(ctx, input.Email)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch dealer for authentication", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if d == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := svc.issueToken(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	return &AuthResponse{DealerID: d.DealerID, Name: d.Name, Email: d.Email, Token: token}, nil
}

// Revoke clears the stored token hash so the current token stops validating.
func (svc *DefaultDealerService) Revoke(ctx context.Context, dealerID models.DealerID) error {
	if err := svc.Dealers.UpdateTokenHash(ctx, dealerID, ""); err != nil {
		utils.GetLogger().Error("Failed to revoke dealer token",
			zap.String("dealerId", string(dealerID)), zap.Error(err))
		return fmt.Errorf("failed to logout, please try again")
	}
	svc.clearAuthCache(ctx, string(dealerID))
	return nil
}

// issueToken signs a JWT, persists its hash, and drops the stale cache entry.
func (svc *DefaultDealerService) issueToken(ctx context.Context, d *models.Dealer) (string, error) {
	token, err := utils.GenerateToken(d.DealerID, d.Email, tokenLifetime)
	if err != nil {
		utils.GetLogger().Error("Failed to generate auth token", zap.Error(err))
		return "", err
	}
	if err := svc.Dealers.UpdateTokenHash(ctx, models.DealerID(d.DealerID), utils.HashToken(token)); err != nil {
		utils.GetLogger().Error("Failed to store token hash", zap.Error(err))
		return "", err
	}
	svc.clearAuthCache(ctx, d.DealerID)
	return token, nil
}

func (svc *DefaultDealerService) clearAuthCache(ctx context.Context, dealerID string) {
	authCache := utils.GetAuthCacheClient()
	if authCache == nil {
		return
	}
	if err := authCache.Del(ctx, utils.AuthCachePrefix+dealerID).Err(); err != nil {
		utils.GetLogger().Error("Failed to clear auth cache", zap.Error(err))
	}
}
