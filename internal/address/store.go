package address

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"savora-storefront/internal/logger"
	"savora-storefront/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrDuplicate = errors.New("an address at this location is already saved")
	ErrEmptyName = errors.New("address name must not be empty")
	ErrNotFound  = errors.New("address not found")
	ErrInvalid   = errors.New("address is missing coordinates")
)

// Store owns the shopper's selected delivery address and the list of saved
// addresses. The two are independent: the selected address need not be saved.
type Store struct {
	snapshots storage.Store
}

func NewStore(snapshots storage.Store) *Store {
	return &Store{snapshots: snapshots}
}

// Selected returns the current delivery target, or nil when none is set.
func (s *Store) Selected(ctx context.Context, shopper string) (*Address, error) {
	body, err := s.snapshots.Get(ctx, shopper, storage.NSSelectedAddress)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var a Address
	if err := json.Unmarshal(body, &a); err != nil {
		logger.FromCtx(ctx).Warn("discarding corrupt selected address", zap.Error(err))
		_ = s.snapshots.Delete(ctx, shopper, storage.NSSelectedAddress)
		return nil, nil
	}
	return &a, nil
}

// SetSelected makes addr the delivery target and persists it.
func (s *Store) SetSelected(ctx context.Context, shopper string, addr Address) error {
	log := logger.FromCtx(ctx).With(
		zap.String("store", "Address"),
		zap.String("method", "SetSelected"),
	)

	if !addr.Valid() {
		return ErrInvalid
	}
	if addr.ID == uuid.Nil {
		addr.ID = uuid.New()
	}

	body, err := json.Marshal(addr)
	if err != nil {
		return err
	}
	if err := s.snapshots.Put(ctx, shopper, storage.NSSelectedAddress, body); err != nil {
		log.Error("failed to persist selected address", zap.Error(err))
		return err
	}

	log.Info("selected address set", zap.String("address_id", addr.ID.String()))
	return nil
}

// Saved returns the shopper's saved address list, default first.
func (s *Store) Saved(ctx context.Context, shopper string) ([]Address, error) {
	return s.loadSaved(ctx, shopper)
}

// Save appends addr to the saved list. A save within CoordTolerance of an
// existing entry on both axes is rejected, not silently merged.
func (s *Store) Save(ctx context.Context, shopper string, addr Address) (*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("store", "Address"),
		zap.String("method", "Save"),
	)

	if !addr.Valid() {
		return nil, ErrInvalid
	}

	saved, err := s.loadSaved(ctx, shopper)
	if err != nil {
		return nil, err
	}

	for _, existing := range saved {
		if near(existing, addr) {
			log.Warn("duplicate address save rejected",
				zap.String("existing_id", existing.ID.String()))
			return nil, ErrDuplicate
		}
	}

	if addr.ID == uuid.Nil {
		addr.ID = uuid.New()
	}
	if addr.IsDefault {
		for i := range saved {
			saved[i].IsDefault = false
		}
	}
	saved = append(saved, addr)

	if err := s.persistSaved(ctx, shopper, saved); err != nil {
		log.Error("failed to persist saved addresses", zap.Error(err))
		return nil, err
	}

	log.Info("address saved", zap.String("address_id", addr.ID.String()))
	return &addr, nil
}

// Delete removes a saved address. If it was the selected delivery target the
// selection is cleared as well.
func (s *Store) Delete(ctx context.Context, shopper string, id uuid.UUID) error {
	log := logger.FromCtx(ctx).With(
		zap.String("store", "Address"),
		zap.String("method", "Delete"),
		zap.String("address_id", id.String()),
	)

	saved, err := s.loadSaved(ctx, shopper)
	if err != nil {
		return err
	}

	idx := -1
	for i := range saved {
		if saved[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	saved = append(saved[:idx], saved[idx+1:]...)

	if err := s.persistSaved(ctx, shopper, saved); err != nil {
		log.Error("failed to persist saved addresses", zap.Error(err))
		return err
	}

	selected, err := s.Selected(ctx, shopper)
	if err != nil {
		return err
	}
	if selected != nil && selected.ID == id {
		if err := s.snapshots.Delete(ctx, shopper, storage.NSSelectedAddress); err != nil {
			log.Error("failed to clear selection", zap.Error(err))
			return err
		}
		log.Info("selection cleared with deleted address")
	}

	return nil
}

// Rename updates the label of a saved address. Empty-after-trim is rejected.
func (s *Store) Rename(ctx context.Context, shopper string, id uuid.UUID, name string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("store", "Address"),
		zap.String("method", "Rename"),
		zap.String("address_id", id.String()),
	)

	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	saved, err := s.loadSaved(ctx, shopper)
	if err != nil {
		return err
	}

	found := false
	for i := range saved {
		if saved[i].ID == id {
			saved[i].Name = name
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}

	if err := s.persistSaved(ctx, shopper, saved); err != nil {
		log.Error("failed to persist saved addresses", zap.Error(err))
		return err
	}
	return nil
}

// SetDefault marks one saved address as default and clears the flag on the rest.
func (s *Store) SetDefault(ctx context.Context, shopper string, id uuid.UUID) error {
	saved, err := s.loadSaved(ctx, shopper)
	if err != nil {
		return err
	}

	found := false
	for i := range saved {
		saved[i].IsDefault = saved[i].ID == id
		if saved[i].IsDefault {
			found = true
		}
	}
	if !found {
		return ErrNotFound
	}

	return s.persistSaved(ctx, shopper, saved)
}

// ClearOnLogout wipes both the selection and the saved list. Delivery
// locations never persist across an authentication boundary.
func (s *Store) ClearOnLogout(ctx context.Context, shopper string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("store", "Address"),
		zap.String("method", "ClearOnLogout"),
	)

	if err := s.snapshots.Delete(ctx, shopper, storage.NSSelectedAddress); err != nil {
		log.Error("failed to clear selected address", zap.Error(err))
		return err
	}
	if err := s.snapshots.Delete(ctx, shopper, storage.NSSavedAddresses); err != nil {
		log.Error("failed to clear saved addresses", zap.Error(err))
		return err
	}

	log.Info("address state cleared")
	return nil
}

func (s *Store) loadSaved(ctx context.Context, shopper string) ([]Address, error) {
	body, err := s.snapshots.Get(ctx, shopper, storage.NSSavedAddresses)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var saved []Address
	if err := json.Unmarshal(body, &saved); err != nil {
		logger.FromCtx(ctx).Warn("discarding corrupt saved addresses", zap.Error(err))
		_ = s.snapshots.Delete(ctx, shopper, storage.NSSavedAddresses)
		return nil, nil
	}
	return saved, nil
}

func (s *Store) persistSaved(ctx context.Context, shopper string, saved []Address) error {
	body, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	return s.snapshots.Put(ctx, shopper, storage.NSSavedAddresses, body)
}
