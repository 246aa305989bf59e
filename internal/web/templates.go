package web

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jaminalder/gomoku/internal/app"
	"github.com/jaminalder/gomoku/internal/domain"
)

type templates struct {
	game  *template.Template
	board *template.Template
	index *template.Template
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Gomoku</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
<style>
table.grid{border-collapse:collapse}
table.grid td{width:28px;height:28px;text-align:center;border:1px solid #b58b4c;background:#e3c16f}
table.grid td button{width:100%;height:100%;border:0;background:none;cursor:pointer}
td.black{color:#000}td.white{color:#fff}td.last{outline:2px solid #c00}td.win{background:#f5e08a}
</style>
</head><body>{{template "content" .}}</body></html>`))
	template.Must(base.New("board").Parse(boardTemplate))
	template.Must(base.New("choose").Parse(chooseTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Gomoku</h1>{{template "choose" .}}`))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" sse-connect="/game/{{.ID}}/events">
  <div id="stream" sse-swap="board" hx-swap="innerHTML">{{template "board" .}}</div>
</div>`))
	board := template.Must(template.New("board_only").Parse(boardTemplate))
	template.Must(board.New("choose").Parse(chooseTemplate))
	return &templates{game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	if name == "" {
		_ = t.Execute(&buf, data)
	} else {
		_ = t.ExecuteTemplate(&buf, name, data)
	}
	return buf.Bytes()
}

const chooseTemplate = `<form action="{{.Action}}" method="post">
  <p>Choose your color. Black moves first.</p>
  <button name="color" value="black">Play black</button>
  <button name="color" value="white">Play white</button>
</form>`

const boardTemplate = `<div id="board">
  <p class="status">{{.Status}}{{if .Human}} (you are {{.Human}}){{end}}</p>
  {{if .Error}}<div class="alert">{{.Error}}</div>{{end}}
  {{if .Choose}}{{if .Owner}}{{template "choose" .}}{{end}}{{else}}
  <table class="grid">
  {{range .Rows}}<tr>{{range .}}
    <td class="{{.Class}}">{{if .Playable}}<form hx-post="/game/{{$.ID}}/play" hx-target="#board" hx-swap="outerHTML" method="post">
      <input type="hidden" name="r" value="{{.Row}}"><input type="hidden" name="c" value="{{.Col}}">
      <button type="submit"></button></form>{{else}}{{.Stone}}{{end}}</td>{{end}}
  </tr>{{end}}
  </table>
  {{if .Owner}}
  <form hx-post="/game/{{.ID}}/undo" hx-target="#board" hx-swap="outerHTML" method="post">
    <button type="submit"{{if not .CanUndo}} disabled{{end}}>Undo</button>
  </form>
  <form action="/game/{{.ID}}/restart" method="post"><button type="submit">Restart</button></form>
  {{end}}{{end}}
</div>`

type cellView struct {
	Row, Col int
	Stone    string
	Class    string
	Playable bool
}

type boardView struct {
	ID      string
	Action  string
	Status  string
	Human   string
	Error   string
	Choose  bool
	Owner   bool
	CanUndo bool
	Rows    [][]cellView
}

func newBoardView(snap app.Snapshot, owner bool, errMsg string) boardView {
	v := boardView{
		ID:      snap.ID,
		Action:  "/game/" + snap.ID + "/start",
		Status:  statusText(snap),
		Error:   errMsg,
		Choose:  snap.State.Phase == app.NotStarted,
		Owner:   owner,
		CanUndo: snap.CanUndo,
	}
	if snap.Human != 0 {
		v.Human = snap.Human.String()
	}
	win := make(map[[2]int]bool, len(snap.WinningLine))
	for _, m := range snap.WinningLine {
		win[[2]int{m.Row, m.Col}] = true
	}
	playable := owner && snap.State.Phase == app.HumanTurn
	v.Rows = make([][]cellView, domain.Size)
	for r := range v.Rows {
		v.Rows[r] = make([]cellView, domain.Size)
		for c := range v.Rows[r] {
			cell := snap.Board.At(r, c)
			cv := cellView{Row: r, Col: c, Playable: playable && cell == domain.Empty}
			var class []string
			switch cell {
			case domain.Black:
				cv.Stone = "●"
				class = append(class, "black")
			case domain.White:
				cv.Stone = "○"
				class = append(class, "white")
			}
			if snap.LastMove != nil && snap.LastMove.Row == r && snap.LastMove.Col == c {
				class = append(class, "last")
			}
			if win[[2]int{r, c}] {
				class = append(class, "win")
			}
			cv.Class = strings.Join(class, " ")
			v.Rows[r][c] = cv
		}
	}
	return v
}

// statusText is the line shown above the board.
func statusText(snap app.Snapshot) string {
	if _, ok := snap.State.Winner(); ok {
		if snap.HumanWon() {
			return "You win!"
		}
		return "Computer wins"
	}
	if snap.State.IsDraw() {
		return "Draw"
	}
	switch snap.State.Phase {
	case app.NotStarted:
		return "Choose a color"
	case app.AIThinking:
		return "Computer is thinking..."
	}
	return "Your turn"
}

const playerCookie = "player_id"

func ensurePlayerCookie(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookie); err == nil && c.Value != "" {
		return c.Value
	}
	v := uuid.NewString()
	http.SetCookie(w, &http.Cookie{Name: playerCookie, Value: v, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	return v
}

func playerID(r *http.Request) string {
	if c, err := r.Cookie(playerCookie); err == nil {
		return c.Value
	}
	return ""
}
