package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

const (
	actionOpen   = "open"
	actionClick  = "click"
	actionRender = "render"
	actionError  = "error"
	actionReload = "reload"

	idleTimeout = 10 * time.Minute
)

var (
	errClosed      = errors.New("connection closed by client")
	errSessionGone = errors.New("session expired")
)

type gameUseCase interface {
	Resume(ctx context.Context, sessionID string) (*usecase.View, error)
	Click(ctx context.Context, sessionID string, revision int64, handlerID string) (*usecase.View, error)
}

type handlerFunc func(ctx context.Context, conn *connection, msg *Message) error

type Server struct {
	logger *slog.Logger
	game   gameUseCase

	handlers map[string]handlerFunc
}

// connection is one upgraded client bound to the session cookie it presented.
type connection struct {
	conn      net.Conn
	bufrw     *bufio.ReadWriter
	sessionID string
}

func New(logger *slog.Logger, game gameUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		game:   game,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionOpen] = server.handleOpen
	server.handlers[actionClick] = server.handleClick

	return server
}

// Handler - the /ws endpoint. Connections are closed when ctx is canceled.
func (that *Server) Handler(ctx context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	if !headerContainsToken(req.Header.Get("Connection"), "upgrade") ||
		!headerContainsToken(req.Header.Get("Upgrade"), "websocket") {
		http.Error(writer, "not a websocket upgrade", http.StatusBadRequest)
		return
	}

	key := req.Header.Get("Sec-WebSocket-Key")
	if key == "" {
		http.Error(writer, "missing Sec-WebSocket-Key", http.StatusBadRequest)
		return
	}

	cookie, err := req.Cookie(entity.SessionCookieName)
	if err != nil {
		http.Error(writer, "session cookie required", http.StatusUnauthorized)
		return
	}

	hijacker, ok := writer.(http.Hijacker)
	if !ok {
		log.Error("web server does not support hijacking")
		http.Error(writer, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	conn, bufrw, err := hijacker.Hijack()
	if err != nil {
		log.Error("failed to hijack connection", "error", err)
		return
	}

	defer conn.Close()

	// drop the deadlines the http server put on the connection
	_ = conn.SetDeadline(time.Time{})

	response := "HTTP/1.1 101 Switching Protocols\r\n" +
		"Upgrade: websocket\r\n" +
		"Connection: Upgrade\r\n" +
		"Sec-WebSocket-Accept: " + GenerateAcceptKey(key) + "\r\n\r\n"
	if _, err = bufrw.WriteString(response); err != nil {
		log.Error("failed to write handshake", "error", err)
		return
	}
	if err = bufrw.Flush(); err != nil {
		log.Error("failed to flush handshake", "error", err)
		return
	}

	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	client := &connection{conn: conn, bufrw: bufrw, sessionID: cookie.Value}

	log.Debug("WebSocket connection established", "sessionID", client.sessionID)

	if err = that.handleMessages(ctx, client); err != nil && !errors.Is(err, errClosed) && !errors.Is(err, errSessionGone) {
		log.Debug("connection finished", "error", err)
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, client *connection) error {
	log := that.logger.With("method", "handleMessages", "sessionID", client.sessionID)

	for {
		_ = client.conn.SetReadDeadline(time.Now().Add(idleTimeout))

		f, err := readFrame(client.bufrw.Reader, true)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return errClosed
			}
			return err
		}

		switch {
		case f.opCode == opClose:
			_ = writeFrame(client.bufrw.Writer, frame{isFin: true, opCode: opClose, payload: f.payload})
			return errClosed
		case f.opCode == opPing:
			if err = writeFrame(client.bufrw.Writer, frame{isFin: true, opCode: opPong, payload: f.payload}); err != nil {
				return err
			}
			continue
		case f.opCode == opPong:
			continue
		case !f.isFin || f.opCode == opContinuation:
			return ErrFragmented
		case f.opCode != opText:
			return fmt.Errorf("unsupported opcode %d", f.opCode)
		}

		var message Message
		if err = json.Unmarshal(f.payload, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			continue
		}

		if err = handler(ctx, client, &message); err != nil {
			return fmt.Errorf("failed to process %s: %w", message.Action, err)
		}
	}
}
