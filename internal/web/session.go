package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/peterkuimelis/pokedraft/internal/dex"
	"github.com/peterkuimelis/pokedraft/internal/game"
)

// --- WebSocket protocol ---

// ClientMessage is the envelope for all browser-to-server messages.
type ClientMessage struct {
	Type string `json:"type"` // start, starter, reveal, add, replace, skip, new-round, reset
	Game string `json:"game,omitempty"`
	// Index is the card index for "reveal", the team index for "replace".
	Index int `json:"index,omitempty"`
	Seed  int64 `json:"seed,omitempty"`
}

// StateMessage is the full session state pushed after every command. The
// browser renders purely from this.
type StateMessage struct {
	Type    string `json:"type"` // "state" or "error"
	Session string `json:"session"`
	Error   string `json:"error,omitempty"`

	Phase           string              `json:"phase"`
	Generation      *dex.Generation     `json:"generation,omitempty"`
	GameVersion     *dex.GameVersion    `json:"gameVersion,omitempty"`
	Team            []dex.EvolutionLine `json:"team"`
	Attempts        int                 `json:"attempts"`
	Cards           []dex.EvolutionLine `json:"cards"`
	RevealedIndex   int                 `json:"revealedIndex"`
	ExcludedLineIDs []int               `json:"excludedLineIds"`
	PoolSize        int                 `json:"poolSize"`
	Coverage        int                 `json:"coverage"`

	// Starter is the drawn-but-unconfirmed starter during starter-reveal.
	Starter *dex.EvolutionLine `json:"starter,omitempty"`
	// Scenario and replaceable indices accompany a revealed card.
	Scenario           string `json:"scenario,omitempty"`
	ReplaceableIndices []int  `json:"replaceableIndices,omitempty"`
}

// session is one browser connection's game.
type session struct {
	id      string
	dataDir string
	game    *game.Game
	starter *dex.EvolutionLine
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	sess := &session{
		id:      uuid.NewString(),
		dataDir: s.dataDir,
		game:    game.New(game.Config{}),
	}

	for {
		_, data, err := wsConn.Read(ctx)
		if err != nil {
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			sess.send(ctx, wsConn, "bad message")
			continue
		}

		if err := sess.handle(msg); err != nil {
			sess.send(ctx, wsConn, err.Error())
			continue
		}
		sess.send(ctx, wsConn, "")
	}
}

func (sess *session) handle(msg ClientMessage) error {
	switch msg.Type {
	case "start":
		return sess.start(msg.Game, msg.Seed)
	case "starter":
		if sess.starter == nil {
			return errNoStarter
		}
		starter := *sess.starter
		sess.starter = nil
		return sess.game.ConfirmStarter(starter)
	case "reveal":
		return sess.game.RevealCard(msg.Index)
	case "add":
		return sess.game.AddToTeam()
	case "replace":
		return sess.game.Replace(msg.Index)
	case "skip":
		if err := sess.game.Skip(); err != nil {
			return err
		}
		return sess.game.NewRound()
	case "new-round":
		return sess.game.NewRound()
	case "reset":
		sess.game.Reset()
		sess.starter = nil
		return nil
	default:
		return errUnknownCommand
	}
}

func (sess *session) start(slug string, seed int64) error {
	gv := dex.GetGameVersion(slug)
	if gv == nil {
		return errUnknownGame
	}
	generation := dex.GenerationForGame(*gv)
	if generation == nil {
		return errUnknownGame
	}
	pool, err := dex.LoadDataset(sess.dataDir, slug)
	if err != nil {
		return err
	}
	if seed != 0 {
		sess.game = game.New(game.Config{Seed: seed})
	}
	if err := sess.game.StartGame(*generation, *gv, pool); err != nil {
		return err
	}
	starter, err := sess.game.DrawStarter()
	if err != nil {
		return err
	}
	sess.starter = &starter
	return nil
}

// send pushes the current state (plus an optional command error) to the
// browser.
func (sess *session) send(ctx context.Context, wsConn *websocket.Conn, cmdErr string) {
	snap := sess.game.Snapshot()

	msg := StateMessage{
		Type:            "state",
		Session:         sess.id,
		Phase:           snap.Phase.String(),
		Generation:      snap.Generation,
		GameVersion:     snap.GameVersion,
		Team:            snap.Team,
		Attempts:        snap.Attempts,
		Cards:           snap.Cards,
		RevealedIndex:   snap.RevealedIndex,
		ExcludedLineIDs: snap.ExcludedLineIDs,
		PoolSize:        snap.PoolSize,
		Coverage:        game.TypeCoverage(snap.Team),
		Starter:         sess.starter,
	}
	if cmdErr != "" {
		msg.Type = "error"
		msg.Error = cmdErr
	}
	if revealed := snap.Revealed(); revealed != nil {
		msg.Scenario = string(game.GetActionScenario(snap.Team, *revealed))
		msg.ReplaceableIndices = game.ReplaceableIndices(snap.Team)
	}
	if msg.Team == nil {
		msg.Team = []dex.EvolutionLine{}
	}
	if msg.Cards == nil {
		msg.Cards = []dex.EvolutionLine{}
	}
	if msg.ExcludedLineIDs == nil {
		msg.ExcludedLineIDs = []int{}
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal state: %v", err)
		return
	}
	if err := wsConn.Write(ctx, websocket.MessageText, data); err != nil {
		log.Printf("WebSocket write error: %v", err)
	}
}
