package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/ui/htmlrender"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

const pageTitle = "Tic-tac-toe"

type Handlers interface {
	PageHandler(w http.ResponseWriter, r *http.Request)
	ClickHandler(w http.ResponseWriter, r *http.Request)
	RestartHandler(w http.ResponseWriter, r *http.Request)
}

type gameUseCase interface {
	Open(ctx context.Context, sessionID string) (*usecase.View, error)
	Click(ctx context.Context, sessionID string, revision int64, handlerID string) (*usecase.View, error)
	Restart(ctx context.Context, sessionID string) error
}

type handlers struct {
	logger     *slog.Logger
	game       gameUseCase
	sessionTTL time.Duration
}

func NewHandlers(logger *slog.Logger, game gameUseCase, sessionTTL time.Duration) Handlers {
	return &handlers{
		logger:     logger.With("component", "rest"),
		game:       game,
		sessionTTL: sessionTTL,
	}
}

func (that *handlers) PageHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "PageHandler")

	view, err := that.game.Open(r.Context(), sessionID(r))
	if err != nil {
		log.Error("failed to open session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.setSessionCookie(w, view.SessionID)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err = htmlrender.Page(w, pageTitle, view.Tree, view.Revision); err != nil {
		log.Error("failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// ClickHandler - form fallback for clients without the websocket. Always redirects back to the page.
func (that *handlers) ClickHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ClickHandler")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	revision, err := strconv.ParseInt(r.PostForm.Get("revision"), 10, 64)
	if err != nil {
		http.Error(w, "invalid revision", http.StatusBadRequest)
		return
	}

	_, err = that.game.Click(r.Context(), sessionID(r), revision, r.PostForm.Get("handler"))
	if err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
		log.Error("failed to handle click", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *handlers) RestartHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "RestartHandler")

	if id := sessionID(r); id != "" {
		if err := that.game.Restart(r.Context(), id); err != nil {
			log.Error("failed to restart session", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *handlers) setSessionCookie(w http.ResponseWriter, id string) {
	cookie := &http.Cookie{
		Name:     entity.SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if that.sessionTTL > 0 {
		cookie.Expires = time.Now().Add(that.sessionTTL)
	}

	http.SetCookie(w, cookie)
}

func sessionID(r *http.Request) string {
	cookie, err := r.Cookie(entity.SessionCookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}
