package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-testutil"
	"golang.org/x/crypto/bcrypt"

	"github.com/mike-warlet/megarealms/internal/catalog"
	"github.com/mike-warlet/megarealms/internal/game"
	"github.com/mike-warlet/megarealms/internal/room"
	"github.com/mike-warlet/megarealms/internal/session"
	"github.com/mike-warlet/megarealms/internal/store"
)

type memStore struct {
	chars map[string]*game.Character
}

func (m *memStore) Load(_ context.Context, id string) (*game.Character, error) {
	c, ok := m.chars[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return c.Clone(), nil
}

func (m *memStore) Save(_ context.Context, id string, c *game.Character) error {
	m.chars[id] = c.Clone()
	return nil
}

func newTestServer(t *testing.T, tokenHashes []string) *httptest.Server {
	t.Helper()
	st := &memStore{chars: map[string]*game.Character{}}
	sessions := session.NewManager(catalog.Default(), st, nil)
	rooms := room.NewManager(nil)
	srv := NewServer(0, sessions, rooms, NewTokenVerifier(tokenHashes))

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path, bearer, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("sending request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return out
}

type wireError struct {
	Error string `json:"error"`
}

type wireState struct {
	OK   int             `json:"ok"`
	Data *game.Character `json:"data"`
}

func loadCharacter(t *testing.T, ts *httptest.Server, c *game.Character) wireState {
	t.Helper()
	body, err := json.Marshal(map[string]any{"charId": c.CharID, "data": c})
	if err != nil {
		t.Fatalf("marshaling load body: %v", err)
	}
	resp := doRequest(t, ts, http.MethodPost, "/player/load", "test", string(body))
	testutil.AssertEqual(t, "load status", resp.StatusCode, http.StatusOK)
	return decodeBody[wireState](t, resp)
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := doRequest(t, ts, http.MethodPost, "/player/load", "", `{"charId":"c1"}`)
	testutil.AssertEqual(t, "status", resp.StatusCode, http.StatusUnauthorized)
	testutil.AssertEqual(t, "body", decodeBody[wireError](t, resp).Error, "Unauthorized")
}

func TestBearerTokenVerification(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing token: %v", err)
	}
	ts := newTestServer(t, []string{string(hash)})

	resp := doRequest(t, ts, http.MethodGet, "/player/state?charId=c1", "wrong", "")
	testutil.AssertEqual(t, "bad token", resp.StatusCode, http.StatusUnauthorized)

	// The right token passes auth; the unknown character is a separate 404.
	resp = doRequest(t, ts, http.MethodGet, "/player/state?charId=c1", "secret", "")
	testutil.AssertEqual(t, "good token", resp.StatusCode, http.StatusNotFound)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := doRequest(t, ts, http.MethodOptions, "/player/action", "", "")
	testutil.AssertEqual(t, "status", resp.StatusCode, http.StatusNoContent)
	testutil.AssertEqual(t, "origin", resp.Header.Get("Access-Control-Allow-Origin"), "*")
	testutil.AssertEqual(t, "methods", resp.Header.Get("Access-Control-Allow-Methods"), "GET, POST, OPTIONS")
	testutil.AssertEqual(t, "headers", resp.Header.Get("Access-Control-Allow-Headers"), "Content-Type, Authorization")
}

func TestCORSOnRegularResponses(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := doRequest(t, ts, http.MethodGet, "/api/online", "", "")
	testutil.AssertEqual(t, "status", resp.StatusCode, http.StatusOK)
	testutil.AssertEqual(t, "origin", resp.Header.Get("Access-Control-Allow-Origin"), "*")
}

func TestLoadSanitizesAndReturnsSnapshot(t *testing.T) {
	ts := newTestServer(t, nil)

	state := loadCharacter(t, ts, &game.Character{
		CharID:   "c1",
		Name:     strings.Repeat("n", 40),
		Vocation: "knight",
		Level:    5000,
	})

	testutil.AssertEqual(t, "ok", state.OK, 1)
	testutil.AssertEqual(t, "level clamped", state.Data.Level, game.MaxLevel)
	testutil.AssertEqual(t, "name truncated", len([]rune(state.Data.Name)), game.MaxNameLength)
}

func TestLoadRequiresCharID(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := doRequest(t, ts, http.MethodPost, "/player/load", "test", `{}`)
	testutil.AssertEqual(t, "status", resp.StatusCode, http.StatusBadRequest)
	testutil.AssertEqual(t, "body", decodeBody[wireError](t, resp).Error, "charId required")
}

func TestLoadCharIDFromQuery(t *testing.T) {
	ts := newTestServer(t, nil)

	body := `{"data":{"charId":"c9","name":"Query","voc":"knight"}}`
	resp := doRequest(t, ts, http.MethodPost, "/player/load?charId=c9", "test", body)
	testutil.AssertEqual(t, "status", resp.StatusCode, http.StatusOK)
	testutil.AssertEqual(t, "name", decodeBody[wireState](t, resp).Data.Name, "Query")
}

func TestStateUnknownCharacter(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := doRequest(t, ts, http.MethodGet, "/player/state?charId=nobody", "test", "")
	testutil.AssertEqual(t, "status", resp.StatusCode, http.StatusNotFound)
	testutil.AssertEqual(t, "body", decodeBody[wireError](t, resp).Error, "Not found")
}

func TestActionFlow(t *testing.T) {
	ts := newTestServer(t, nil)
	loadCharacter(t, ts, &game.Character{CharID: "c1", Name: "Buyer", Vocation: "knight", Gold: 100})

	resp := doRequest(t, ts, http.MethodPost, "/player/action", "test",
		`{"charId":"c1","action":{"type":"buy","itemId":"leather_boots"}}`)
	testutil.AssertEqual(t, "status", resp.StatusCode, http.StatusOK)

	wallet := decodeBody[struct {
		Gold      int64            `json:"gold"`
		Inventory []game.ItemStack `json:"inv"`
	}](t, resp)
	testutil.AssertEqual(t, "gold", wallet.Gold, int64(60))
	testutil.AssertEqual(t, "slots", len(wallet.Inventory), 1)
	testutil.AssertEqual(t, "item", wallet.Inventory[0].ID, "leather_boots")
}

func TestActionUserError(t *testing.T) {
	ts := newTestServer(t, nil)
	loadCharacter(t, ts, &game.Character{CharID: "c1", Name: "Broke", Vocation: "knight"})

	resp := doRequest(t, ts, http.MethodPost, "/player/action", "test",
		`{"charId":"c1","action":{"type":"buy","itemId":"leather_boots"}}`)
	testutil.AssertEqual(t, "status", resp.StatusCode, http.StatusBadRequest)
	testutil.AssertEqual(t, "body", decodeBody[wireError](t, resp).Error, "Not enough gold")
}

func TestActionUnknownType(t *testing.T) {
	ts := newTestServer(t, nil)
	loadCharacter(t, ts, &game.Character{CharID: "c1", Name: "Lost", Vocation: "knight"})

	resp := doRequest(t, ts, http.MethodPost, "/player/action", "test",
		`{"charId":"c1","action":{"type":"teleport"}}`)
	testutil.AssertEqual(t, "status", resp.StatusCode, http.StatusBadRequest)
	testutil.AssertEqual(t, "body", decodeBody[wireError](t, resp).Error, "Unknown action type: teleport")
}

func TestActionRequiresCharID(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := doRequest(t, ts, http.MethodPost, "/player/action", "test",
		`{"action":{"type":"save"}}`)
	testutil.AssertEqual(t, "status", resp.StatusCode, http.StatusBadRequest)
	testutil.AssertEqual(t, "body", decodeBody[wireError](t, resp).Error, "charId required")
}

func TestOnlineEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := doRequest(t, ts, http.MethodGet, "/api/online", "", "")
	body := decodeBody[struct {
		Status string `json:"status"`
		Online int    `json:"online"`
	}](t, resp)
	testutil.AssertEqual(t, "status", body.Status, "ok")
	testutil.AssertEqual(t, "online", body.Online, 0)
}

func TestWebsocketInvalidFloor(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := doRequest(t, ts, http.MethodGet, "/ws?floor=abc", "", "")
	testutil.AssertEqual(t, "status", resp.StatusCode, http.StatusBadRequest)
}

func TestWebsocketUpgrade(t *testing.T) {
	ts := newTestServer(t, nil)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?floor=1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing: %v", err)
	}
	defer conn.Close()

	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("reading init frame: %v", err)
	}
	var init struct {
		T  string `json:"t"`
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &init); err != nil {
		t.Fatalf("decoding init frame: %v", err)
	}
	testutil.AssertEqual(t, "type", init.T, "init")
	testutil.AssertEqual(t, "id length", len(init.ID), 8)
}
