package dealerRepo

import (
	"context"

	"fleetrent/models"
)

// DealerRepository manages tenant root accounts.
type DealerRepository interface {
	Create(ctx context.Context, dealer *models.Dealer) error
	GetByEmail(ctx context.Context, email string) (*models.Dealer, error)
	GetByDealerID(ctx context.Context, dealerID models.DealerID) (*models.Dealer, error)
	UpdateTokenHash(ctx context.Context, dealerID models.DealerID, tokenHash string) error
}
