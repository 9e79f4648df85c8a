package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blunderlog/internal/core"
	httpapi "blunderlog/internal/http"
	"blunderlog/internal/service"
	"blunderlog/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/lixenwraith/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassphrase = "opera box blindfold"

const operaMovetext = `1. e4 e5 2. Nf3 d6 3. d4 Bg4 4. dxe5 Bxf3 5. Qxf3 dxe5 6. Bc4 Nf6
7. Qb3 Qe7 8. Nc3 c6 9. Bg5 b5 10. Nxb5 cxb5 11. Bxb5+ Nbd7 12. O-O-O Rd8
13. Rxd7 Rxd7 14. Rd1 Qe6 15. Bxd7+ Nxd7 16. Qb8+ Nxb8 17. Rd8# 1-0`

type testEnv struct {
	app   *fiber.App
	token string
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	store, err := storage.NewStore(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), false)
	require.NoError(t, err)
	require.NoError(t, store.InitDB())
	t.Cleanup(func() { store.Close() })

	hash, err := auth.HashPassword(testPassphrase)
	require.NoError(t, err)

	svc := service.New(store, nil, []byte("test-secret"), hash)
	app := httpapi.NewFiberApp(svc, true)

	env := &testEnv{app: app}

	resp := env.do(t, "POST", "/api/v1/auth/login",
		core.LoginRequest{Passphrase: testPassphrase}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var authResp core.AuthResponse
	decodeBody(t, resp, &authResp)
	env.token = authResp.Token

	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *nethttp.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *nethttp.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (e *testEnv) importOperaGame(t *testing.T) core.GameResponse {
	t.Helper()
	resp := e.do(t, "POST", "/api/v1/games", core.ImportGameRequest{
		MoveText:    operaMovetext,
		PlayerColor: "b",
	}, e.token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var game core.GameResponse
	decodeBody(t, resp, &game)
	return game
}

func TestHealth(t *testing.T) {
	env := setupEnv(t)

	resp := env.do(t, "GET", "/health", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "ok", body["storage"])
}

func TestLoginRejectsWrongPassphrase(t *testing.T) {
	env := setupEnv(t)

	resp := env.do(t, "POST", "/api/v1/auth/login",
		core.LoginRequest{Passphrase: "not it"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	var errResp core.ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, core.ErrUnauthorized, errResp.Code)
}

func TestAuthRequired(t *testing.T) {
	env := setupEnv(t)

	resp := env.do(t, "GET", "/api/v1/games", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, "GET", "/api/v1/games", nil, "garbage-token")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestImportAndGetGame(t *testing.T) {
	env := setupEnv(t)

	game := env.importOperaGame(t)
	assert.Equal(t, 33, game.TotalPlies)

	resp := env.do(t, "GET", "/api/v1/games/"+game.GameID, nil, env.token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got core.GameResponse
	decodeBody(t, resp, &got)
	assert.Equal(t, game.MoveText, got.MoveText)

	// Same game again conflicts.
	resp = env.do(t, "POST", "/api/v1/games", core.ImportGameRequest{
		MoveText:    operaMovetext,
		PlayerColor: "b",
	}, env.token)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	var errResp core.ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, core.ErrDuplicateGame, errResp.Code)
}

func TestImportGameValidation(t *testing.T) {
	env := setupEnv(t)

	// Missing playerColor fails struct validation.
	resp := env.do(t, "POST", "/api/v1/games", map[string]any{
		"moveText": "e4 e5",
	}, env.token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Illegal movetext fails replay validation.
	resp = env.do(t, "POST", "/api/v1/games", core.ImportGameRequest{
		MoveText:    "e4 e5 Ke3",
		PlayerColor: "w",
	}, env.token)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	var errResp core.ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, core.ErrParseFailed, errResp.Code)
	assert.Contains(t, errResp.Details, "ply 3")
}

func TestGetPositionEndpoint(t *testing.T) {
	env := setupEnv(t)
	game := env.importOperaGame(t)

	resp := env.do(t, "GET", "/api/v1/games/"+game.GameID+"/positions/0", nil, env.token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var pos core.PositionResponse
	decodeBody(t, resp, &pos)
	assert.Equal(t, "start", pos.MoveLabel)
	assert.Equal(t, "w", pos.SideToMove)

	resp = env.do(t, "GET", "/api/v1/games/"+game.GameID+"/positions/99", nil, env.token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var errResp core.ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, core.ErrIndexOutOfRange, errResp.Code)
}

func TestResolveMoveNumberEndpoint(t *testing.T) {
	env := setupEnv(t)
	game := env.importOperaGame(t) // player is Black

	resp := env.do(t, "GET", "/api/v1/games/"+game.GameID+"/move-number/17", nil, env.token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var res core.ResolveResponse
	decodeBody(t, resp, &res)
	assert.Equal(t, 33, res.PlyIndex)
	assert.True(t, res.Clamped)

	resp = env.do(t, "GET", "/api/v1/games/"+game.GameID+"/move-number/zero", nil, env.token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMistakeLifecycle(t *testing.T) {
	env := setupEnv(t)
	game := env.importOperaGame(t)

	ply := 18
	resp := env.do(t, "POST", "/api/v1/games/"+game.GameID+"/mistakes", core.CreateMistakeRequest{
		PlyIndex:    &ply,
		Description: "b5 loosened the queenside",
		Tag:         "pawn-structure",
	}, env.token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var mistake core.MistakeResponse
	decodeBody(t, resp, &mistake)
	assert.Equal(t, "9...", mistake.MoveLabel)
	assert.NotEmpty(t, mistake.FEN)

	// Update text, snapshot stays.
	tag := "opening"
	resp = env.do(t, "PUT", "/api/v1/mistakes/"+mistake.MistakeID, core.UpdateMistakeRequest{
		Tag: &tag,
	}, env.token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var updated core.MistakeResponse
	decodeBody(t, resp, &updated)
	assert.Equal(t, "opening", updated.Tag)
	assert.Equal(t, mistake.FEN, updated.FEN)

	// Listing by tag.
	resp = env.do(t, "GET", "/api/v1/mistakes?tag=opening", nil, env.token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list core.MistakeListResponse
	decodeBody(t, resp, &list)
	require.Len(t, list.Mistakes, 1)

	// Tag aggregation.
	resp = env.do(t, "GET", "/api/v1/tags", nil, env.token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var tags core.TagListResponse
	decodeBody(t, resp, &tags)
	require.Len(t, tags.Tags, 1)
	assert.Equal(t, core.TagCount{Tag: "opening", Count: 1}, tags.Tags[0])

	// Delete.
	resp = env.do(t, "DELETE", "/api/v1/mistakes/"+mistake.MistakeID, nil, env.token)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp = env.do(t, "GET", "/api/v1/mistakes/"+mistake.MistakeID, nil, env.token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	var errResp core.ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, core.ErrMistakeNotFound, errResp.Code)
}

func TestCreateMistakeOutOfRange(t *testing.T) {
	env := setupEnv(t)
	game := env.importOperaGame(t)

	ply := 34
	resp := env.do(t, "POST", "/api/v1/games/"+game.GameID+"/mistakes", core.CreateMistakeRequest{
		PlyIndex:    &ply,
		Description: "x",
		Tag:         "y",
	}, env.token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var errResp core.ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, core.ErrIndexOutOfRange, errResp.Code)
}

func TestDeleteGameCascadesOverHTTP(t *testing.T) {
	env := setupEnv(t)
	game := env.importOperaGame(t)

	ply := 2
	resp := env.do(t, "POST", "/api/v1/games/"+game.GameID+"/mistakes", core.CreateMistakeRequest{
		PlyIndex:    &ply,
		Description: "premature symmetry",
		Tag:         "opening",
	}, env.token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var mistake core.MistakeResponse
	decodeBody(t, resp, &mistake)

	resp = env.do(t, "DELETE", "/api/v1/games/"+game.GameID, nil, env.token)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = env.do(t, "GET", "/api/v1/mistakes/"+mistake.MistakeID, nil, env.token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInsightUnconfigured(t *testing.T) {
	env := setupEnv(t)

	resp := env.do(t, "POST", "/api/v1/insights", core.InsightRequest{}, env.token)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	var errResp core.ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, core.ErrInsightFailed, errResp.Code)
}

func TestUpdateGameMetadata(t *testing.T) {
	env := setupEnv(t)
	game := env.importOperaGame(t)

	opponent := "Morphy"
	resp := env.do(t, "PATCH", "/api/v1/games/"+game.GameID, core.UpdateGameRequest{
		Opponent: &opponent,
	}, env.token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var updated core.GameResponse
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Morphy", updated.Opponent)
	assert.Equal(t, game.MoveText, updated.MoveText)

	resp = env.do(t, "GET", "/api/v1/games/not-a-uuid", nil, env.token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
