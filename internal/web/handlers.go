package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jaminalder/gomoku/internal/app"
	"github.com/jaminalder/gomoku/internal/domain"
)

type handlers struct {
	svc       *app.Service
	tpl       *templates
	log       *zap.SugaredLogger
	heartbeat time.Duration
}

func (h *handlers) renderBoard(snap app.Snapshot, owner bool, errMsg string) []byte {
	return renderTemplate(h.tpl.board, "", newBoardView(snap, owner, errMsg))
}

func (h *handlers) writeBoard(w http.ResponseWriter, status int, snap app.Snapshot, owner bool, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(h.renderBoard(snap, owner, errMsg))
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.index, "base", struct{ Action string }{"/game"}))
}

func parseColor(r *http.Request) (humanIsBlack bool, ok bool) {
	_ = r.ParseForm()
	switch r.Form.Get("color") {
	case "", "black":
		return true, true
	case "white":
		return false, true
	}
	return false, false
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	black, ok := parseColor(r)
	if !ok {
		http.Error(w, "color must be black or white", http.StatusBadRequest)
		return
	}
	pid := ensurePlayerCookie(w, r)
	sess := h.svc.CreateGame(pid)
	if err := sess.Start(black); err != nil {
		h.log.Errorw("start new game", "session", sess.ID(), "error", err)
		http.Error(w, "failed to start", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+sess.ID(), http.StatusSeeOther)
}

// session resolves {id} and reports whether the caller owns it. It writes
// 404 and returns nil when the session does not exist.
func (h *handlers) session(w http.ResponseWriter, r *http.Request) (*app.Session, bool) {
	id := chi.URLParam(r, "id")
	sess, ok := h.svc.Get(id)
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}
	return sess, h.svc.IsOwner(id, playerID(r))
}

// command resolves the session for a state-changing request and rejects
// callers that do not own it.
func (h *handlers) command(w http.ResponseWriter, r *http.Request) *app.Session {
	sess, owner := h.session(w, r)
	if sess == nil {
		return nil
	}
	if !owner {
		http.Error(w, "You are a spectator", http.StatusForbidden)
		return nil
	}
	return sess
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	sess, owner := h.session(w, r)
	if sess == nil {
		return
	}
	data := newBoardView(sess.Snapshot(), owner, "")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.game, "base", data))
}

func (h *handlers) start(w http.ResponseWriter, r *http.Request) {
	sess := h.command(w, r)
	if sess == nil {
		return
	}
	black, ok := parseColor(r)
	if !ok {
		http.Error(w, "color must be black or white", http.StatusBadRequest)
		return
	}
	if err := sess.Start(black); err != nil {
		h.fail(w, sess, err)
		return
	}
	http.Redirect(w, r, "/game/"+sess.ID(), http.StatusSeeOther)
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	sess := h.command(w, r)
	if sess == nil {
		return
	}
	_ = r.ParseForm()
	ri, errR := strconv.Atoi(r.Form.Get("r"))
	ci, errC := strconv.Atoi(r.Form.Get("c"))
	if errR != nil || errC != nil {
		http.Error(w, "r and c must be integers", http.StatusBadRequest)
		return
	}
	if err := sess.ApplyHumanMove(ri, ci); err != nil {
		h.fail(w, sess, err)
		return
	}
	h.writeBoard(w, http.StatusOK, sess.Snapshot(), true, "")
}

func (h *handlers) undo(w http.ResponseWriter, r *http.Request) {
	sess := h.command(w, r)
	if sess == nil {
		return
	}
	if err := sess.Undo(); err != nil {
		h.fail(w, sess, err)
		return
	}
	h.writeBoard(w, http.StatusOK, sess.Snapshot(), true, "")
}

func (h *handlers) restart(w http.ResponseWriter, r *http.Request) {
	sess := h.command(w, r)
	if sess == nil {
		return
	}
	if err := sess.Reset(); err != nil {
		if errors.Is(err, domain.ErrAIThinking) {
			http.Error(w, "Computer is thinking", http.StatusConflict)
			return
		}
		h.fail(w, sess, err)
		return
	}
	http.Redirect(w, r, "/game/"+sess.ID(), http.StatusSeeOther)
}

// fail reports a command error. Rejections re-render the board with a
// message; contract violations are caller bugs and get 400.
func (h *handlers) fail(w http.ResponseWriter, sess *app.Session, err error) {
	if errors.Is(err, domain.ErrContract) {
		h.log.Errorw("contract violation", "session", sess.ID(), "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var msg string
	switch {
	case errors.Is(err, domain.ErrOccupied):
		msg = "Cell is occupied"
	case errors.Is(err, domain.ErrAIThinking):
		msg = "Computer is thinking"
	case errors.Is(err, domain.ErrUndoTooEarly):
		msg = "Nothing to undo"
	case errors.Is(err, domain.ErrNotStarted):
		msg = "Choose a color first"
	case errors.Is(err, domain.ErrGameOver):
		msg = "Game is over"
	default:
		msg = "Invalid move"
	}
	h.writeBoard(w, http.StatusOK, sess.Snapshot(), true, msg)
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.session(w, r)
	if sess == nil {
		return
	}
	writeJSON(h.log, w, http.StatusOK, sess.Snapshot())
}

func writeJSON(log *zap.SugaredLogger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Errorf("writeJSON encode error: %v", err)
	}
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	sess, owner := h.session(w, r)
	if sess == nil {
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// Plain requests only get the headers.
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub, err := h.svc.Subscribe(ctx, sess.ID())
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer unsub()
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	h.writeEvent(w, sess.Snapshot(), owner)
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case snap, ok := <-ch:
			if !ok {
				return
			}
			h.writeEvent(w, snap, owner)
			flusher.Flush()
		}
	}
}

// writeEvent emits a board event. A data line cannot hold a newline, so the
// fragment is flattened first.
func (h *handlers) writeEvent(w io.Writer, snap app.Snapshot, owner bool) {
	frag := bytes.ReplaceAll(h.renderBoard(snap, owner, ""), []byte("\n"), nil)
	_, _ = fmt.Fprintf(w, "event: board\n")
	_, _ = fmt.Fprintf(w, "data: %s\n\n", frag)
}
