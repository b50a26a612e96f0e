package admin

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/louisbranch/queenofhearts/internal/ledger"
	apperrors "github.com/louisbranch/queenofhearts/internal/platform/errors"
	"github.com/louisbranch/queenofhearts/internal/storage"
	"github.com/louisbranch/queenofhearts/internal/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/queenofhearts/internal/services/admin"

// Service serializes admin actions against one store handle.
type Service struct {
	store  *store.Store
	tracer trace.Tracer

	mu     sync.Mutex
	ledger ledger.Ledger
}

// NewService loads the ledger through st.
func NewService(ctx context.Context, st *store.Store) (*Service, error) {
	if st == nil {
		return nil, errors.New("store is required")
	}
	l, err := st.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Service{store: st, tracer: otel.Tracer(tracerName), ledger: l}, nil
}

// View renders both rosters.
func (s *Service) View(context.Context) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return buildView(&s.ledger)
}

// CreatePlayer adds a player without changing the session pointer.
func (s *Service) CreatePlayer(ctx context.Context, name, email string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reload(ctx); err != nil {
		return View{}, err
	}
	err := s.mutate(ctx, "admin.create_player", func(l *ledger.Ledger, now time.Time) error {
		_, err := l.CreatePlayer(name, email, ledger.ActorAdmin, now)
		return err
	})
	return s.settle(err)
}

// CreateGameAccount adds an account for an explicit player. Every field is
// required; there is no username suggestion here.
func (s *Service) CreateGameAccount(ctx context.Context, playerID int64, game, username string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.ledger.Players) == 0 {
		return s.settle(apperrors.New(apperrors.CodeNoPlayers, "no players"))
	}
	if err := s.reload(ctx); err != nil {
		return View{}, err
	}
	err := s.mutate(ctx, "admin.create_game_account", func(l *ledger.Ledger, now time.Time) error {
		_, err := l.CreateGameAccount(playerID, game, username, ledger.ActorAdmin, now)
		return err
	}, attribute.Int64("player_id", playerID))
	return s.settle(err)
}

// ApproveTransfer approves a pending transfer. Missing or already approved
// transfers are ignored.
func (s *Service) ApproveTransfer(ctx context.Context, transferID int64) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reload(ctx); err != nil {
		return View{}, err
	}
	err := s.mutate(ctx, "admin.approve_transfer", func(l *ledger.Ledger, now time.Time) error {
		_, err := l.ApproveTransfer(transferID, now)
		return err
	}, attribute.Int64("transfer_id", transferID))
	return s.settle(err)
}

// Reset replaces the ledger with a fresh seed. The session pointer is left
// as is.
func (s *Service) Reset(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "admin.reset")
	defer span.End()

	seeded := s.store.Seed()
	if err := s.store.Save(ctx, seeded); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return View{}, err
	}
	s.ledger = seeded
	return buildView(&s.ledger), nil
}

// HandleExternalChange reloads when another handle wrote the ledger
// document. Session pointer changes do not affect the admin view.
func (s *Service) HandleExternalChange(ctx context.Context, change store.Change) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if change.Key != storage.DataKey {
		return buildView(&s.ledger), nil
	}
	if err := s.reload(ctx); err != nil {
		return View{}, err
	}
	return buildView(&s.ledger), nil
}

// reload adopts the persisted ledger before a write.
func (s *Service) reload(ctx context.Context) error {
	l, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.ledger = l
	return nil
}

func (s *Service) mutate(ctx context.Context, op string, fn func(*ledger.Ledger, time.Time) error, attrs ...attribute.KeyValue) error {
	ctx, span := s.tracer.Start(ctx, op, trace.WithAttributes(attrs...))
	defer span.End()

	next := s.ledger.Clone()
	if err := fn(&next, s.store.Now()); err != nil {
		span.SetAttributes(attribute.String("outcome", string(apperrors.CodeOf(err))))
		return err
	}
	if err := s.store.Save(ctx, next); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	s.ledger = next
	return nil
}

// settle pairs the fresh view with domain errors; storage errors drop it.
func (s *Service) settle(opErr error) (View, error) {
	if opErr != nil && !apperrors.IsSilent(opErr) && !apperrors.IsAlert(opErr) {
		return View{}, opErr
	}
	return buildView(&s.ledger), opErr
}
