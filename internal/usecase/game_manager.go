package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/ui"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	UpdateIfRevision(ctx context.Context, session *entity.Session, revision int64) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// View is what a transport needs to draw one session.
type View struct {
	SessionID string
	Revision  int64
	Tree      ui.Node
	Changed   bool
}

type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	root        ui.Component
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, root ui.Component) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		sessionRepo: sessionRepo,
		root:        root,
	}
}

// Open - renders the session, starting a new one when the id is unknown or expired.
func (that *GameManager) Open(ctx context.Context, sessionID string) (*View, error) {
	log := that.logger.With("method", "Open")

	session, created, err := that.getOrCreateSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed get session: %w", err)
	}

	host := that.render(session)

	if created {
		session.State = host.Snapshot()
		if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
			return nil, fmt.Errorf("failed create session: %w", err)
		}

		log.Info("session started", "sessionID", session.ID)
	}

	return &View{
		SessionID: session.ID,
		Revision:  host.Revision(),
		Tree:      host.Tree(),
	}, nil
}

// Resume - renders an existing session. Unknown or expired ids give ErrSessionNotFound.
func (that *GameManager) Resume(ctx context.Context, sessionID string) (*View, error) {
	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed get session by id: %w", err)
	}

	host := that.render(session)

	return &View{
		SessionID: session.ID,
		Revision:  host.Revision(),
		Tree:      host.Tree(),
	}, nil
}

// Click - runs handler id of the render at revision. Stale or unknown clicks leave the session as is,
// and so does a click that lost the race against another click on the same revision.
func (that *GameManager) Click(ctx context.Context, sessionID string, revision int64, handlerID string) (*View, error) {
	log := that.logger.With("method", "Click", "sessionID", sessionID)

	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed get session by id: %w", err)
	}

	loadedRevision := session.Revision
	host := that.render(session)

	if !host.Dispatch(revision, handlerID) {
		log.Debug("click ignored", "handler", handlerID, "revision", revision, "current", host.Revision())

		return &View{
			SessionID: session.ID,
			Revision:  host.Revision(),
			Tree:      host.Tree(),
		}, nil
	}

	session.State = host.Snapshot()
	session.Revision = host.Revision()

	err = that.sessionRepo.UpdateIfRevision(ctx, session, loadedRevision)
	if errors.Is(err, apperror.ErrRevisionConflict) {
		log.Debug("click lost to a concurrent update", "handler", handlerID, "revision", revision)

		return that.Resume(ctx, sessionID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed update session: %w", err)
	}

	log.Debug("state replaced", "handler", handlerID, "revision", session.Revision)

	return &View{
		SessionID: session.ID,
		Revision:  host.Revision(),
		Tree:      host.Tree(),
		Changed:   true,
	}, nil
}

// Restart - drops the session so the next Open starts from the empty board.
func (that *GameManager) Restart(ctx context.Context, sessionID string) error {
	err := that.sessionRepo.DeleteByID(ctx, sessionID)
	if err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
		return fmt.Errorf("failed delete session: %w", err)
	}

	that.logger.Info("session restarted", "sessionID", sessionID)

	return nil
}

func (that *GameManager) getOrCreateSession(ctx context.Context, sessionID string) (*entity.Session, bool, error) {
	if !entity.IsValidID(sessionID) {
		return entity.NewSession(), true, nil
	}

	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		return entity.NewSession(), true, nil
	}

	if err != nil {
		return nil, false, err
	}

	return session, false, nil
}

func (that *GameManager) render(session *entity.Session) *ui.Host {
	host := ui.NewHost(that.root, session.State, session.Revision)
	host.Render()

	for _, err := range host.Errors() {
		that.logger.Warn("stored state discarded", "sessionID", session.ID, "error", err)
	}

	return host
}
