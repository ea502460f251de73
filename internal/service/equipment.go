package service

import (
	"context"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/repository"
	"reelstudio-backend/internal/utils"
)

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepository) EquipmentService {
	return &equipmentService{equipmentRepo: equipmentRepo}
}

func (s *equipmentService) Create(ctx context.Context, eq *domain.Equipment) (*domain.Equipment, error) {
	if eq.Name == "" {
		return nil, validationf("equipment name is required")
	}
	if eq.PurchasePriceCents < 0 {
		return nil, validationf("purchase price cannot be negative")
	}
	if eq.DailyRateCents < 0 {
		return nil, validationf("daily rate cannot be negative")
	}

	if eq.Status == "" {
		eq.Status = domain.EquipmentStatusAvailable
	}
	if err := s.equipmentRepo.Create(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

func (s *equipmentService) Get(ctx context.Context, id int32) (*domain.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, id)
}

func (s *equipmentService) List(ctx context.Context, page, pageSize int32) ([]domain.Equipment, int32, error) {
	return s.equipmentRepo.List(ctx, page, pageSize)
}

func (s *equipmentService) ROI(ctx context.Context, equipmentID int32) (*utils.EquipmentROI, error) {
	eq, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	roi := utils.ComputeEquipmentROI(eq)
	return &roi, nil
}

// RecordBooking snapshots the current day rate on the booking and
// accrues the asset's booked days and generated revenue. Callers may
// override the rate, a deliberate zero included.
func (s *equipmentService) RecordBooking(ctx context.Context, b *domain.EquipmentBooking, rateOverride *int64) (*domain.Equipment, error) {
	if b.Days <= 0 {
		return nil, validationf("booking days must be positive")
	}
	if rateOverride != nil && *rateOverride < 0 {
		return nil, validationf("day rate cannot be negative")
	}

	eq, err := s.equipmentRepo.GetByID(ctx, b.EquipmentID)
	if err != nil {
		return nil, err
	}
	if eq.Status == domain.EquipmentStatusRetired {
		return nil, conflictf("equipment is retired")
	}

	if rateOverride != nil {
		b.DayRateCents = *rateOverride
	} else {
		b.DayRateCents = eq.DailyRateCents
	}
	if err := s.equipmentRepo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	eq.TotalDaysBooked += b.Days
	eq.TotalRevenueGeneratedCents += b.RevenueCents()
	if err := s.equipmentRepo.Update(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

func (s *equipmentService) ListBookings(ctx context.Context, equipmentID int32) ([]domain.EquipmentBooking, error) {
	return s.equipmentRepo.ListBookings(ctx, equipmentID)
}
