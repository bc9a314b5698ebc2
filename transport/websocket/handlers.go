package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/ui/htmlrender"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

func (that *Server) handleOpen(ctx context.Context, client *connection, msg *Message) error {
	log := that.logger.With("method", "handleOpen", "sessionID", client.sessionID)

	view, err := that.game.Resume(ctx, client.sessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		return that.sendReload(client)
	}

	if err != nil {
		log.Error("failed to open session", "error", err)
		return that.sendErrorResponse(client, "failed to open the game")
	}

	return that.sendRender(client, view)
}

func (that *Server) handleClick(ctx context.Context, client *connection, msg *Message) error {
	log := that.logger.With("method", "handleClick", "sessionID", client.sessionID)

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		log.Warn("failed to unmarshal payload", "error", err)
		return that.sendErrorResponse(client, "invalid payload")
	}

	view, err := that.game.Click(ctx, client.sessionID, payloadReq.Revision, payloadReq.Handler)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		return that.sendReload(client)
	}

	if err != nil {
		log.Error("failed to handle click", "error", err)
		return that.sendErrorResponse(client, "failed to handle the click")
	}

	return that.sendRender(client, view)
}

func (that *Server) sendRender(client *connection, view *usecase.View) error {
	html, err := htmlrender.FragmentString(view.Tree, view.Revision)
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	return that.sendMessage(client, actionRender, Payload{Revision: view.Revision, HTML: html})
}

// sendReload - asks the page to reload. Only the page request can set the cookie of a new session,
// so the connection ends here.
func (that *Server) sendReload(client *connection) error {
	if err := that.sendMessage(client, actionReload, Payload{}); err != nil {
		return err
	}

	_ = writeFrame(client.bufrw.Writer, frame{isFin: true, opCode: opClose})

	return errSessionGone
}

func (that *Server) sendErrorResponse(client *connection, errorMsg string) error {
	if err := that.sendMessage(client, actionError, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

func (that *Server) sendMessage(client *connection, action string, payload Payload) error {
	messageBytes, err := encodeMessage(action, payload)
	if err != nil {
		return err
	}

	if err = writeFrame(client.bufrw.Writer, frame{isFin: true, opCode: opText, payload: messageBytes}); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
