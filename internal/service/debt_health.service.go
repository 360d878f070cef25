package service

import (
	"context"
	"fmt"
	"time"

	"finhealth/internal/amortization"
	"finhealth/internal/domain"
	"finhealth/internal/logger"

	"github.com/google/uuid"
)

// DebtProvider reads a single debt fresh from the data layer on every call.
type DebtProvider interface {
	GetDebt(ctx context.Context, debtID uuid.UUID) (*domain.DebtSnapshot, error)
}

type DebtHealthService interface {
	// GetDebtHealth returns nil (with a nil error) when the debt doesn't
	// carry enough data for amortization tracking. That is a normal
	// outcome, not a failure.
	GetDebtHealth(ctx context.Context, debtID uuid.UUID, now time.Time) (*domain.AmortizationHealth, error)
}

type debtHealthServiceHandler struct {
	DebtProvider DebtProvider
}

func NewDebtHealthService(debtProvider DebtProvider) DebtHealthService {
	return debtHealthServiceHandler{
		DebtProvider: debtProvider,
	}
}

func (h debtHealthServiceHandler) GetDebtHealth(ctx context.Context, debtID uuid.UUID, now time.Time) (*domain.AmortizationHealth, error) {
	debt, err := h.DebtProvider.GetDebt(ctx, debtID)
	if err != nil {
		return nil, fmt.Errorf("failed to load debt %s: %w", debtID, err)
	}

	health := amortization.Health(*debt, now)
	if health == nil {
		logger.FromContext(ctx).Debugw("debt has insufficient data for amortization tracking", "debtId", debtID)
	}
	return health, nil
}
