package player

import (
	"context"
	"errors"
	"strings"
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

const tracerName = "github.com/louisbranch/queenofhearts/internal/services/player"

// Service serializes player actions against one store handle.
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

// View resolves the active player and renders the page state.
func (s *Service) View(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.render(ctx, "")
}

// ViewFor is View with the username suggestion computed for game.
func (s *Service) ViewFor(ctx context.Context, game string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.render(ctx, game)
}

// SuggestUsername returns the suggestion for game for the active player, or
// an empty string in the guest state.
func (s *Service) SuggestUsername(ctx context.Context, game string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	active, err := s.resolveActive(ctx)
	if err != nil || active == nil {
		return "", err
	}
	return ledger.SuggestUsername(active, game), nil
}

// SwitchPlayer points the session at playerID.
func (s *Service) SwitchPlayer(ctx context.Context, playerID int64) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reload(ctx); err != nil {
		return View{}, err
	}
	if err := s.store.SetCurrentPlayer(ctx, playerID); err != nil {
		return View{}, err
	}
	return s.render(ctx, "")
}

// SignUp creates a player and makes it the active session. Blank name or
// email is ignored.
func (s *Service) SignUp(ctx context.Context, name, email string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reload(ctx); err != nil {
		return View{}, err
	}
	var created ledger.Player
	err := s.mutate(ctx, "player.signup", func(l *ledger.Ledger, now time.Time) error {
		p, err := l.CreatePlayer(name, email, ledger.ActorPlayer, now)
		created = p
		return err
	})
	if err != nil {
		return s.settle(ctx, "", err)
	}
	if err := s.store.SetCurrentPlayer(ctx, created.ID); err != nil {
		return View{}, err
	}
	return s.render(ctx, "")
}

// CreateGameAccount adds an account for the active player. A blank username
// falls back to the suggestion for game.
func (s *Service) CreateGameAccount(ctx context.Context, game, username string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reload(ctx); err != nil {
		return View{}, err
	}
	active, err := s.requireActive(ctx)
	if err != nil {
		return s.settle(ctx, game, err)
	}
	err = s.mutate(ctx, "player.create_game_account", func(l *ledger.Ledger, now time.Time) error {
		name := username
		if strings.TrimSpace(name) == "" {
			name = ledger.SuggestUsername(l.Player(active), game)
		}
		_, err := l.CreateGameAccount(active, game, name, ledger.ActorPlayer, now)
		return err
	})
	return s.settle(ctx, game, err)
}

// Deposit credits the active player's wallet.
func (s *Service) Deposit(ctx context.Context, amount int64, method string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reload(ctx); err != nil {
		return View{}, err
	}
	active, err := s.requireActive(ctx)
	if err != nil {
		return s.settle(ctx, "", err)
	}
	err = s.mutate(ctx, "player.deposit", func(l *ledger.Ledger, now time.Time) error {
		_, err := l.Deposit(active, amount, method, now)
		return err
	}, attribute.Int64("amount", amount))
	return s.settle(ctx, "", err)
}

// RequestTransfer moves amount from the wallet into one of the active
// player's game accounts. Player transfers are approved immediately.
func (s *Service) RequestTransfer(ctx context.Context, gameAccountID, amount int64) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reload(ctx); err != nil {
		return View{}, err
	}
	active, err := s.requireActive(ctx)
	if err != nil {
		return s.settle(ctx, "", err)
	}
	err = s.mutate(ctx, "player.request_transfer", func(l *ledger.Ledger, now time.Time) error {
		_, err := l.RequestTransfer(active, gameAccountID, amount, now)
		return err
	}, attribute.Int64("amount", amount), attribute.Int64("game_account_id", gameAccountID))
	return s.settle(ctx, "", err)
}

// Reset replaces the ledger with a fresh seed and selects its first player.
func (s *Service) Reset(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "player.reset")
	defer span.End()

	seeded := s.store.Seed()
	if err := s.store.Save(ctx, seeded); err != nil {
		recordError(span, err)
		return View{}, err
	}
	s.ledger = seeded
	if err := s.store.SetCurrentPlayer(ctx, seeded.Players[0].ID); err != nil {
		recordError(span, err)
		return View{}, err
	}
	return s.render(ctx, "")
}

// HandleExternalChange reloads after another handle wrote either slot.
func (s *Service) HandleExternalChange(ctx context.Context, change store.Change) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if change.Key != storage.DataKey && change.Key != storage.SessionKey {
		return s.render(ctx, "")
	}
	if err := s.reload(ctx); err != nil {
		return View{}, err
	}
	return s.render(ctx, "")
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

// mutate applies fn to a copy of the ledger and persists it. The in-memory
// copy is replaced only after a successful save.
func (s *Service) mutate(ctx context.Context, op string, fn func(*ledger.Ledger, time.Time) error, attrs ...attribute.KeyValue) error {
	ctx, span := s.tracer.Start(ctx, op, trace.WithAttributes(attrs...))
	defer span.End()

	next := s.ledger.Clone()
	if err := fn(&next, s.store.Now()); err != nil {
		span.SetAttributes(attribute.String("outcome", string(apperrors.CodeOf(err))))
		return err
	}
	if err := s.store.Save(ctx, next); err != nil {
		recordError(span, err)
		return err
	}
	s.ledger = next
	return nil
}

// settle renders after an operation. Domain errors travel with the fresh
// view so callers can show alerts; storage errors abort rendering.
func (s *Service) settle(ctx context.Context, game string, opErr error) (View, error) {
	if opErr != nil && !apperrors.IsSilent(opErr) && !apperrors.IsAlert(opErr) {
		return View{}, opErr
	}
	v, err := s.render(ctx, game)
	if err != nil {
		return View{}, err
	}
	return v, opErr
}

func (s *Service) render(ctx context.Context, game string) (View, error) {
	active, err := s.resolveActive(ctx)
	if err != nil {
		return View{}, err
	}
	return buildView(&s.ledger, active, game), nil
}

// resolveActive returns the session player, adopting the first player when
// the pointer is unset or stale and clearing it when there are no players.
func (s *Service) resolveActive(ctx context.Context) (*ledger.Player, error) {
	id, ok, err := s.store.CurrentPlayerID(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		if p := s.ledger.Player(id); p != nil {
			return p, nil
		}
	}
	if len(s.ledger.Players) > 0 {
		first := &s.ledger.Players[0]
		if err := s.store.SetCurrentPlayer(ctx, first.ID); err != nil {
			return nil, err
		}
		return first, nil
	}
	if ok {
		if err := s.store.ClearCurrentPlayer(ctx); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (s *Service) requireActive(ctx context.Context) (int64, error) {
	p, err := s.resolveActive(ctx)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, apperrors.New(apperrors.CodeNoActivePlayer, "no active player")
	}
	return p.ID, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
