package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/pokedraft/internal/dex"
)

// activeSession is the singleton game session (one per stdio process).
var activeSession *GameSession

// dataDir is the generated-data directory, set by main.
var dataDir string

// SetDataDir sets the generated-data directory.
func SetDataDir(dir string) {
	dataDir = dir
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(listGamesTool(), handleListGames)
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(confirmStarterTool(), handleConfirmStarter)
	s.AddTool(revealCardTool(), handleRevealCard)
	s.AddTool(addToTeamTool(), handleAddToTeam)
	s.AddTool(replaceMemberTool(), handleReplaceMember)
	s.AddTool(skipCardTool(), handleSkipCard)
	s.AddTool(getStateTool(), handleGetState)
	s.AddTool(resetGameTool(), handleResetGame)
}

// --- Tool definitions ---

func listGamesTool() mcp.Tool {
	return mcp.NewTool("list_games",
		mcp.WithDescription("List every playable game version with its slug, display name, generation and region."),
	)
}

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new team-building run for a game version. Returns the state with a drawn starter waiting to be confirmed via confirm_starter."),
		mcp.WithString("game", mcp.Required(), mcp.Description("Game version slug from list_games (e.g. 'firered-leafgreen')")),
		mcp.WithNumber("seed", mcp.Description("Optional RNG seed for reproducible runs (0 = random)")),
	)
}

func confirmStarterTool() mcp.Tool {
	return mcp.NewTool("confirm_starter",
		mcp.WithDescription("Accept the drawn starter into team slot 0 and deal the first hand of cards."),
	)
}

func revealCardTool() mcp.Tool {
	return mcp.NewTool("reveal_card",
		mcp.WithDescription("Flip one of the dealt cards. Counts an attempt. The response's scenario field says what you can do next: add, add-with-overlap, or replace-or-skip."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the card to reveal")),
	)
}

func addToTeamTool() mcp.Tool {
	return mcp.NewTool("add_to_team",
		mcp.WithDescription("Add the revealed line to the team, then deal the next round."),
	)
}

func replaceMemberTool() mcp.Tool {
	return mcp.NewTool("replace_member",
		mcp.WithDescription("Swap the revealed line in for an existing team member. The displaced line is released and cannot be drawn again. The starter (slot 0) is never replaceable."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based team index to replace (see replaceableIndices)")),
	)
}

func skipCardTool() mcp.Tool {
	return mcp.NewTool("skip_card",
		mcp.WithDescription("Decline the revealed line (it stays in the pool) and deal the next round."),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current game state without acting. Read-only."),
	)
}

func resetGameTool() mcp.Tool {
	return mcp.NewTool("reset_game",
		mcp.WithDescription("Abandon the current run."),
	)
}

// --- Tool handlers ---

func handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type gameInfo struct {
		Slug        string `json:"slug"`
		DisplayName string `json:"displayName"`
		Generation  string `json:"generation"`
		Region      string `json:"region"`
	}
	var games []gameInfo
	for _, gv := range dex.GameVersions {
		info := gameInfo{Slug: gv.Slug, DisplayName: gv.DisplayName, Region: gv.Region}
		if generation := dex.GenerationForGame(gv); generation != nil {
			info.Generation = generation.DisplayName
		}
		games = append(games, info)
	}
	data, _ := json.MarshalIndent(games, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil && !activeSession.gameOver() {
		return mcp.NewToolResultError("A run is already in progress. Use reset_game first."), nil
	}

	slug := request.GetString("game", "")
	if slug == "" {
		return mcp.NewToolResultError("game is required"), nil
	}
	seed := int64(request.GetInt("seed", 0))

	sess, err := NewGameSession(dataDir, slug, seed)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	activeSession = sess
	return mcp.NewToolResultText(sess.respond()), nil
}

func handleConfirmStarter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No run in progress. Use start_game first."), nil
	}
	if sess.starter == nil {
		return mcp.NewToolResultError("No starter pending confirmation."), nil
	}
	starter := *sess.starter
	sess.starter = nil
	if err := sess.game.ConfirmStarter(starter); err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	return mcp.NewToolResultText(sess.respond()), nil
}

func handleRevealCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No run in progress. Use start_game first."), nil
	}
	index := request.GetInt("index", -1)
	if err := sess.game.RevealCard(index); err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	return mcp.NewToolResultText(sess.respond()), nil
}

func handleAddToTeam(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No run in progress. Use start_game first."), nil
	}
	if err := sess.game.AddToTeam(); err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	if err := sess.game.NewRound(); err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	return mcp.NewToolResultText(sess.respond()), nil
}

func handleReplaceMember(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No run in progress. Use start_game first."), nil
	}
	index := request.GetInt("index", -1)
	if err := sess.game.Replace(index); err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	if err := sess.game.NewRound(); err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	return mcp.NewToolResultText(sess.respond()), nil
}

func handleSkipCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No run in progress. Use start_game first."), nil
	}
	if err := sess.game.Skip(); err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	if err := sess.game.NewRound(); err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	return mcp.NewToolResultText(sess.respond()), nil
}

func handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No run in progress. Use start_game first."), nil
	}
	return mcp.NewToolResultText(sess.respond()), nil
}

func handleResetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No run in progress."), nil
	}
	activeSession.game.Reset()
	activeSession = nil
	return mcp.NewToolResultText(`{"reset": true}`), nil
}
