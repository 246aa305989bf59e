// Package tui is a terminal front-end for a single game against the
// computer.
package tui

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/jaminalder/gomoku/internal/app"
	"github.com/jaminalder/gomoku/internal/domain"
)

const (
	pageStart = "start"
	pageGame  = "game"
	pageOver  = "over"
)

// UI owns the tview application and the session it drives.
type UI struct {
	app    *tview.Application
	pages  *tview.Pages
	board  *tview.Table
	status *tview.TextView
	over   *tview.Modal
	sess   *app.Session
	log    *zap.SugaredLogger

	// Snapshots reach the draw loop through a latest-wins slot so that the
	// session observer never blocks on the event loop.
	mu      sync.Mutex
	pending *app.Snapshot
	wake    chan struct{}
	stop    chan struct{}
}

// New builds the UI. opts are passed to the session after the UI's own
// observer.
func New(log *zap.SugaredLogger, opts ...app.Option) *UI {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	u := &UI{
		app:  tview.NewApplication(),
		log:  log,
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
	}
	opts = append([]app.Option{app.WithLogger(log), app.WithObserver(u.post)}, opts...)
	u.sess = app.NewSession(opts...)
	u.layout()
	return u
}

// Run starts the event loop and blocks until the user quits.
func (u *UI) Run() error {
	go u.pump()
	defer close(u.stop)
	u.render(u.sess.Snapshot())
	return u.app.Run()
}

func (u *UI) layout() {
	var humanBlack = true
	form := tview.NewForm().
		AddDropDown("Choose your color", []string{"Black", "White"}, 0, func(option string, index int) {
			humanBlack = index == 0
		}).
		AddButton("Start Game", func() {
			if err := u.sess.Start(humanBlack); err != nil {
				u.log.Warnw("start rejected", "error", err)
			}
		}).
		AddButton("Quit", u.app.Stop)
	form.SetBorder(true).SetTitle(" Gomoku ").SetTitleAlign(tview.AlignCenter)

	u.board = tview.NewTable()
	u.board.SetSelectable(true, true)
	u.board.SetBorder(true)
	u.board.SetBorders(true)
	u.board.SetTitleAlign(tview.AlignLeft)
	u.board.SetTitleColor(tcell.ColorGreen)
	u.board.SetBorderColor(tcell.ColorGreen)
	u.board.SetSelectedFunc(func(row, column int) {
		u.command(u.sess.ApplyHumanMove(row, column))
	})
	u.board.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'u':
			u.command(u.sess.Undo())
			return nil
		case 'r':
			u.command(u.sess.Reset())
			return nil
		case 'q':
			u.app.Stop()
			return nil
		}
		return event
	})

	u.status = tview.NewTextView()
	u.status.SetDynamicColors(true)
	u.status.SetBorder(true)
	u.status.SetTitle(" Status ")

	side := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(u.status, 0, 1, false).
		AddItem(tview.NewTextView().SetText("Enter  play\nu      undo\nr      restart\nq      quit"), 6, 0, false)
	game := tview.NewFlex().
		AddItem(u.board, 0, 1, true).
		AddItem(side, 32, 0, false)

	u.over = tview.NewModal().
		AddButtons([]string{"New Game", "Quit"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			if buttonLabel == "Quit" {
				u.app.Stop()
				return
			}
			u.command(u.sess.Reset())
		})

	u.pages = tview.NewPages().
		AddPage(pageStart, form, true, true).
		AddPage(pageGame, game, true, false).
		AddPage(pageOver, u.over, false, false)
	u.app.SetRoot(u.pages, true)
}

// command reports a rejected command in the status line. It runs on the
// event loop, so it may touch widgets directly.
func (u *UI) command(err error) {
	if err == nil {
		return
	}
	if !errors.Is(err, domain.ErrRejected) {
		u.log.Errorw("command failed", "error", err)
	}
	u.status.SetText(statusText(u.sess.Snapshot()) + "\n\n[red]" + rejectionText(err))
}

func (u *UI) post(snap app.Snapshot) {
	u.mu.Lock()
	u.pending = &snap
	u.mu.Unlock()
	select {
	case u.wake <- struct{}{}:
	default:
	}
}

func (u *UI) pump() {
	for {
		select {
		case <-u.stop:
			return
		case <-u.wake:
		}
		u.mu.Lock()
		snap := u.pending
		u.pending = nil
		u.mu.Unlock()
		if snap != nil {
			u.app.QueueUpdateDraw(func() { u.render(*snap) })
		}
	}
}

func (u *UI) render(snap app.Snapshot) {
	if snap.State.Phase == app.NotStarted {
		u.pages.HidePage(pageOver)
		u.pages.SwitchToPage(pageStart)
		return
	}
	fillBoard(u.board, snap)
	u.board.SetTitle(" " + titleText(snap) + " ")
	u.status.SetText(statusText(snap))
	u.pages.SwitchToPage(pageGame)
	if snap.State.Phase == app.Finished {
		u.over.SetText(statusText(snap))
		u.pages.ShowPage(pageOver)
	}
}

func fillBoard(t *tview.Table, snap app.Snapshot) {
	win := make(map[[2]int]bool, len(snap.WinningLine))
	for _, m := range snap.WinningLine {
		win[[2]int{m.Row, m.Col}] = true
	}
	for r := 0; r < domain.Size; r++ {
		for c := 0; c < domain.Size; c++ {
			cell := tview.NewTableCell(pieceSymbol(snap.Board.At(r, c)))
			cell.SetAlign(tview.AlignCenter)
			if snap.LastMove != nil && snap.LastMove.Row == r && snap.LastMove.Col == c {
				cell.SetTextColor(tcell.ColorRed)
			}
			if win[[2]int{r, c}] {
				cell.SetBackgroundColor(tcell.ColorDarkGreen)
			}
			t.SetCell(r, c, cell)
		}
	}
}

func pieceSymbol(c domain.Cell) string {
	switch c {
	case domain.Black:
		return " ⚫ "
	case domain.White:
		return " ⚪ "
	default:
		return "  "
	}
}

func titleText(snap app.Snapshot) string {
	return fmt.Sprintf("Gomoku - you are %s - move %d", snap.Human, snap.Ply)
}

func statusText(snap app.Snapshot) string {
	if _, ok := snap.State.Winner(); ok {
		if snap.HumanWon() {
			return "You win!"
		}
		return "Computer wins"
	}
	switch snap.State.Phase {
	case app.HumanTurn:
		return "Your turn"
	case app.AIThinking:
		return "Computer is thinking..."
	case app.Finished:
		return "Draw"
	}
	return "Choose a color"
}

func rejectionText(err error) string {
	switch {
	case errors.Is(err, domain.ErrOccupied):
		return "Cell is occupied"
	case errors.Is(err, domain.ErrAIThinking):
		return "Computer is thinking"
	case errors.Is(err, domain.ErrUndoTooEarly):
		return "Nothing to undo"
	case errors.Is(err, domain.ErrGameOver):
		return "Game is over"
	case errors.Is(err, domain.ErrNotStarted):
		return "Choose a color first"
	}
	return err.Error()
}
