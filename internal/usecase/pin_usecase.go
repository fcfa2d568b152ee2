package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"roofing_crm/internal/domain/entities"
	"roofing_crm/internal/infrastructure/logging"
	"roofing_crm/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrPinNotFound         = errors.New("pin not found")
	ErrInvalidPinID        = errors.New("invalid pin id")
	ErrPinAlreadyConverted = errors.New("pin already converted")
	ErrPinLinkFailed       = errors.New("deal created but pin link failed")
)

// ConvertPinInput overrides the homeowner details copied from the pin.
type ConvertPinInput struct {
	HomeownerName string
	Address       string
	Phone         string
	Email         string
	Notes         string
}

// IPinUseCase exposes map pin reads and the pin → deal conversion.
type IPinUseCase interface {
	GetPin(ctx context.Context, id string) (entities.Pin, error)
	ConvertToDeal(ctx context.Context, pinID string, in ConvertPinInput, actor entities.Actor) (entities.Deal, error)
}

type PinUseCase struct {
	pins  interfaces.IPinRepository
	deals IDealWorkflowUseCase
	log   *zap.Logger
}

var _ IPinUseCase = (*PinUseCase)(nil)

func NewPinUseCase(pins interfaces.IPinRepository, deals IDealWorkflowUseCase, logger *zap.Logger) *PinUseCase {
	return &PinUseCase{pins: pins, deals: deals, log: logging.OrNop(logger)}
}

func (u *PinUseCase) GetPin(ctx context.Context, id string) (entities.Pin, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Pin{}, ErrInvalidPinID
	}
	p, err := u.pins.GetByID(ctx, id)
	if err != nil {
		return entities.Pin{}, err
	}
	if p.ID == "" {
		return entities.Pin{}, ErrPinNotFound
	}
	return p, nil
}

// ConvertToDeal creates a lead deal from the pin and links it back.
//
// The pin is kept. When the link write fails the created deal is returned
// together with ErrPinLinkFailed; the deal is not removed.
func (u *PinUseCase) ConvertToDeal(ctx context.Context, pinID string, in ConvertPinInput, actor entities.Actor) (entities.Deal, error) {
	pin, err := u.GetPin(ctx, pinID)
	if err != nil {
		return entities.Deal{}, err
	}
	if pin.DealID != "" {
		u.log.Info("[pin][usecase] already converted", zap.String("pin_id", pin.ID), zap.String("deal_id", pin.DealID))
		return entities.Deal{}, ErrPinAlreadyConverted
	}

	deal, err := u.deals.CreateDeal(ctx, CreateDealInput{
		HomeownerName: firstNonEmpty(in.HomeownerName, pin.HomeownerName),
		Address:       firstNonEmpty(in.Address, pin.Address),
		Phone:         in.Phone,
		Email:         in.Email,
		Notes:         in.Notes,
		RepID:         pin.RepID,
		PinID:         pin.ID,
	}, actor)
	if err != nil {
		return entities.Deal{}, err
	}

	linked, err := u.pins.LinkDeal(ctx, pin.ID, deal.ID)
	if err != nil {
		u.log.Error("[pin][usecase] link failed", zap.String("pin_id", pin.ID), zap.String("deal_id", deal.ID), zap.Error(err))
		return deal, fmt.Errorf("%w: %v", ErrPinLinkFailed, err)
	}
	if linked.ID == "" {
		// lost a race with another conversion of the same pin
		u.log.Warn("[pin][usecase] pin linked concurrently", zap.String("pin_id", pin.ID), zap.String("deal_id", deal.ID))
		return deal, fmt.Errorf("%w: pin already linked", ErrPinLinkFailed)
	}
	u.log.Info("[pin][usecase] converted", zap.String("pin_id", pin.ID), zap.String("deal_id", deal.ID))
	return deal, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
