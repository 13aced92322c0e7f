package costing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"agro-cost/internal/storage"
)

const dateLayout = "2006-01-02"

type WorkOrderStorage interface {
	GetPhase(ctx context.Context, id int64) (*storage.Phase, error)
	GetActivity(ctx context.Context, id int64) (*storage.Activity, error)
	GetMaterialsByIDs(ctx context.Context, ids []int64) (map[int64]storage.Material, error)
	GetExtraCostsByIDs(ctx context.Context, ids []int64) (map[int64]storage.ExtraCost, error)
	SaveWorkOrder(ctx context.Context, order storage.WorkOrder) (int64, error)
	UpdateWorkOrder(ctx context.Context, order storage.WorkOrder) error
	GetWorkOrder(ctx context.Context, id int64) (*storage.WorkOrder, error)
}

type WorkOrderService struct {
	storage WorkOrderStorage
}

func NewWorkOrderService(storage WorkOrderStorage) *WorkOrderService {
	return &WorkOrderService{storage: storage}
}

// reference is everything fetched from storage for one calculation.
type reference struct {
	phase      *storage.Phase
	activity   *storage.Activity
	materials  map[int64]storage.Material
	extraCosts map[int64]storage.ExtraCost
}

// Calculate resolves reference data for the order and prices it.
func (s *WorkOrderService) Calculate(ctx context.Context, dto storage.WorkOrder) (Estimate, error) {
	_, est, err := s.calculate(ctx, dto)
	return est, err
}

func (s *WorkOrderService) calculate(ctx context.Context, dto storage.WorkOrder) (WorkOrder, Estimate, error) {
	const op = "service.costing.Calculate"

	ref, err := s.loadReference(ctx, dto)
	if err != nil {
		return WorkOrder{}, Estimate{}, fmt.Errorf("%s: %w", op, err)
	}

	order, err := BuildWorkOrder(dto, ref.activity, ref.materials, ref.extraCosts)
	if err != nil {
		return WorkOrder{}, Estimate{}, fmt.Errorf("%s: %w", op, err)
	}

	calcCtx := Context{IsDefaultPhase: ref.phase.IsDefault}
	if ref.activity != nil && ref.activity.DailyActivityCost != nil {
		calcCtx.DailyActivityCost = *ref.activity.DailyActivityCost
	}

	return order, Recompute(order, calcCtx), nil
}

func (s *WorkOrderService) loadReference(ctx context.Context, dto storage.WorkOrder) (reference, error) {
	var ref reference

	if dto.PhaseID == 0 {
		return ref, fmt.Errorf("%w: phaseId", ErrMissingValue)
	}

	materialIDs, extraCostIDs := catalogIDs(dto)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		phase, err := s.storage.GetPhase(gCtx, dto.PhaseID)
		if err != nil {
			return referenceErr(err, storage.RefPhase, dto.PhaseID)
		}
		ref.phase = phase
		return nil
	})
	if dto.ActivityID != 0 {
		g.Go(func() error {
			activity, err := s.storage.GetActivity(gCtx, dto.ActivityID)
			if err != nil {
				return referenceErr(err, storage.RefActivity, dto.ActivityID)
			}
			ref.activity = activity
			return nil
		})
	}
	if len(materialIDs) > 0 {
		g.Go(func() error {
			materials, err := s.storage.GetMaterialsByIDs(gCtx, materialIDs)
			if err != nil {
				return fmt.Errorf("materials: %w", err)
			}
			ref.materials = materials
			return nil
		})
	}
	if len(extraCostIDs) > 0 {
		g.Go(func() error {
			extraCosts, err := s.storage.GetExtraCostsByIDs(gCtx, extraCostIDs)
			if err != nil {
				return fmt.Errorf("extra costs: %w", err)
			}
			ref.extraCosts = extraCosts
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return reference{}, err
	}

	return ref, nil
}

func referenceErr(err error, kind string, id int64) error {
	if errors.Is(err, storage.ErrNotFound) {
		return &storage.MissingReferenceError{Kind: kind, ID: id}
	}
	return fmt.Errorf("%s: %w", kind, err)
}

// catalogIDs collects the catalog entries whose unit cost has to be looked up.
func catalogIDs(dto storage.WorkOrder) (materialIDs, extraCostIDs []int64) {
	seenM := make(map[int64]bool)
	seenE := make(map[int64]bool)

	addMaterials := func(lines []storage.MaterialLine) {
		for _, l := range lines {
			if l.UnitCost == nil && l.MaterialID != nil && !seenM[*l.MaterialID] {
				seenM[*l.MaterialID] = true
				materialIDs = append(materialIDs, *l.MaterialID)
			}
		}
	}
	addExtraCosts := func(lines []storage.ExtraCostLine) {
		for _, l := range lines {
			if l.UnitCost == nil && l.ExtraCostID != nil && !seenE[*l.ExtraCostID] {
				seenE[*l.ExtraCostID] = true
				extraCostIDs = append(extraCostIDs, *l.ExtraCostID)
			}
		}
	}

	for _, e := range dto.Employees {
		addMaterials(e.Materials)
		addExtraCosts(e.ExtraCosts)
	}
	addMaterials(dto.GlobalMaterials)
	addExtraCosts(dto.GlobalExtraCosts)

	return materialIDs, extraCostIDs
}

// Save prices the order, stores it with its cost snapshots and returns the
// stored version.
func (s *WorkOrderService) Save(ctx context.Context, dto storage.WorkOrder) (*storage.WorkOrder, error) {
	const op = "service.costing.Save"

	if err := validateDate(dto.Date); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	order, est, err := s.calculate(ctx, dto)
	if err != nil {
		return nil, err
	}

	merged := MergeEstimate(dto, order, est)
	merged.ID = 0

	id, err := s.storage.SaveWorkOrder(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	merged.ID = id

	return &merged, nil
}

func (s *WorkOrderService) Update(ctx context.Context, id int64, dto storage.WorkOrder) (*storage.WorkOrder, error) {
	const op = "service.costing.Update"

	if err := validateDate(dto.Date); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	order, est, err := s.calculate(ctx, dto)
	if err != nil {
		return nil, err
	}

	merged := MergeEstimate(dto, order, est)
	merged.ID = id

	if err := s.storage.UpdateWorkOrder(ctx, merged); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &merged, nil
}

func (s *WorkOrderService) Get(ctx context.Context, id int64) (*storage.WorkOrder, error) {
	const op = "service.costing.Get"

	order, err := s.storage.GetWorkOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return order, nil
}

func validateDate(date string) error {
	if date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}
