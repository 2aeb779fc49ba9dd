package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"savora-storefront/internal/logger"
	"savora-storefront/internal/storage"

	"go.uber.org/zap"
)

// Store owns the cart line collection for each shopper. Every mutation is a
// pure transition over the loaded lines followed by a persistence commit;
// totals are recomputed from scratch after each one so they cannot drift.
type Store struct {
	snapshots storage.Store
}

func NewStore(snapshots storage.Store) *Store {
	return &Store{snapshots: snapshots}
}

// ---- pure transitions ----

func addLine(lines []Line, line Line) []Line {
	for i := range lines {
		if lines[i].ID == line.ID {
			lines[i].Quantity++
			return lines
		}
	}
	line.Quantity = 1
	return append(lines, line)
}

func increase(lines []Line, id string) []Line {
	for i := range lines {
		if lines[i].ID == id {
			lines[i].Quantity++
			break
		}
	}
	return lines
}

func decrease(lines []Line, id string) []Line {
	for i := range lines {
		if lines[i].ID != id {
			continue
		}
		if lines[i].Quantity <= 1 {
			return append(lines[:i], lines[i+1:]...)
		}
		lines[i].Quantity--
		break
	}
	return lines
}

func remove(lines []Line, id string) []Line {
	for i := range lines {
		if lines[i].ID == id {
			return append(lines[:i], lines[i+1:]...)
		}
	}
	return lines
}

// deriveTotals is the single source of truth for cart totals.
func deriveTotals(lines []Line) Totals {
	var t Totals
	for _, l := range lines {
		t.Quantity += l.Quantity
		t.Amount += l.Price * float64(l.Quantity)
	}
	return t
}

// ---- store operations ----

func (s *Store) Get(ctx context.Context, shopper string) (Cart, error) {
	lines, err := s.load(ctx, shopper)
	if err != nil {
		return Cart{}, err
	}
	return Cart{Lines: lines, Totals: deriveTotals(lines)}, nil
}

// AddLine adds a product line or bumps the existing one with the same id.
func (s *Store) AddLine(ctx context.Context, shopper string, line Line) (Cart, error) {
	return s.mutate(ctx, shopper, "AddLine", func(lines []Line) []Line {
		return addLine(lines, line)
	})
}

// IncreaseQuantity is a no-op when the id is absent.
func (s *Store) IncreaseQuantity(ctx context.Context, shopper, id string) (Cart, error) {
	return s.mutate(ctx, shopper, "IncreaseQuantity", func(lines []Line) []Line {
		return increase(lines, id)
	})
}

// DecreaseQuantity removes the line entirely when its quantity is 1; a line
// never exists at quantity zero.
func (s *Store) DecreaseQuantity(ctx context.Context, shopper, id string) (Cart, error) {
	return s.mutate(ctx, shopper, "DecreaseQuantity", func(lines []Line) []Line {
		return decrease(lines, id)
	})
}

func (s *Store) RemoveLine(ctx context.Context, shopper, id string) (Cart, error) {
	return s.mutate(ctx, shopper, "RemoveLine", func(lines []Line) []Line {
		return remove(lines, id)
	})
}

// Clear empties the cart and deletes the persisted snapshot outright, so a
// stale partial snapshot cannot resurrect the cart on the next load.
func (s *Store) Clear(ctx context.Context, shopper string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("store", "Cart"),
		zap.String("method", "Clear"),
	)

	if err := s.snapshots.Delete(ctx, shopper, storage.NSCart); err != nil {
		log.Error("failed to delete cart snapshot", zap.Error(err))
		return err
	}

	log.Info("cart cleared")
	return nil
}

func (s *Store) mutate(
	ctx context.Context,
	shopper string,
	op string,
	apply func([]Line) []Line,
) (Cart, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("store", "Cart"),
		zap.String("method", op),
	)

	lines, err := s.load(ctx, shopper)
	if err != nil {
		return Cart{}, err
	}

	lines = apply(lines)

	if err := s.persist(ctx, shopper, lines); err != nil {
		log.Error("failed to persist cart", zap.Error(err))
		return Cart{}, err
	}

	totals := deriveTotals(lines)
	log.Debug("cart mutated",
		zap.Int("lines", len(lines)),
		zap.Int("total_quantity", totals.Quantity),
	)

	return Cart{Lines: lines, Totals: totals}, nil
}

func (s *Store) load(ctx context.Context, shopper string) ([]Line, error) {
	body, err := s.snapshots.Get(ctx, shopper, storage.NSCart)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		// A corrupt snapshot is dropped rather than wedging the cart forever.
		logger.FromCtx(ctx).Warn("discarding corrupt cart snapshot", zap.Error(err))
		_ = s.snapshots.Delete(ctx, shopper, storage.NSCart)
		return nil, nil
	}

	return snap.Lines, nil
}

func (s *Store) persist(ctx context.Context, shopper string, lines []Line) error {
	body, err := json.Marshal(snapshot{Lines: lines, CapturedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	return s.snapshots.Put(ctx, shopper, storage.NSCart, body)
}
