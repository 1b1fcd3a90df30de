package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rps_game/internal/game"
	"rps_game/internal/http/handlers"
	"rps_game/internal/mail"
	"rps_game/internal/repository/memstore"
	"rps_game/internal/service"

	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T, computer game.Move) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	audit := service.NewAuditService(store.Audit())
	h := handlers.NewHandler(
		service.NewUserService(store.Users(), store.Scores(), nil, audit),
		service.NewGameService(store.Users(), store.Games(),
			service.WithThrower(game.ThrowerFunc(func() game.Move { return computer })),
			service.WithAudit(audit),
		),
		service.NewScoreService(store.Users(), store.Scores()),
		service.NewReminderService(store.Users(), mail.LogSender{}, "noreply@rps.local", audit),
	)
	health := handlers.NewHealthHandler(store, nil, "test")

	r := NewRouter()
	RegisterRoutes(r, h, health)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer res.Body.Close()

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, url, err)
		}
	}
	return res.StatusCode
}

type gameBody struct {
	ID           string `json:"id"`
	UserName     string `json:"user_name"`
	BestOf       int    `json:"best_of"`
	GameOver     bool   `json:"game_over"`
	Message      string `json:"message"`
	PlayerWins   int    `json:"player_wins"`
	PlayerMove   string `json:"player_move"`
	ComputerWins int    `json:"computer_wins"`
	ComputerMove string `json:"computer_move"`
}

type messageBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func TestCreateUserRoute(t *testing.T) {
	srv := newTestServer(t, game.Rock)
	api := srv.URL + "/api/v1"

	var msg messageBody
	if code := doJSON(t, "POST", api+"/user", map[string]string{"user_name": "alice"}, &msg); code != 200 {
		t.Fatalf("expected 200 got %d", code)
	}
	if msg.Message != "User alice created!" {
		t.Fatalf("unexpected message %q", msg.Message)
	}

	cases := []struct {
		body any
		want int
	}{
		{map[string]string{"user_name": "alice"}, http.StatusConflict},
		{map[string]string{}, http.StatusBadRequest},
		{map[string]string{"user_name": "bob", "email": "nope"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		if code := doJSON(t, "POST", api+"/user", tc.body, nil); code != tc.want {
			t.Fatalf("body %v: expected %d got %d", tc.body, tc.want, code)
		}
	}
}

func TestGameRoutes(t *testing.T) {
	srv := newTestServer(t, game.Scissors)
	api := srv.URL + "/api/v1"
	doJSON(t, "POST", api+"/user", map[string]string{"user_name": "alice"}, nil)

	var g gameBody
	if code := doJSON(t, "POST", api+"/game", map[string]any{"user_name": "alice"}, &g); code != 200 {
		t.Fatalf("new game: expected 200 got %d", code)
	}
	if g.BestOf != 3 || g.Message != service.MsgNewGame || g.UserName != "alice" {
		t.Fatalf("unexpected game %+v", g)
	}

	if code := doJSON(t, "POST", api+"/game", map[string]any{"user_name": "alice", "best_of": 4}, nil); code != http.StatusBadRequest {
		t.Fatalf("even best_of: expected 400 got %d", code)
	}
	if code := doJSON(t, "POST", api+"/game", map[string]any{"user_name": "nobody"}, nil); code != http.StatusNotFound {
		t.Fatalf("unknown user: expected 404 got %d", code)
	}

	var moved gameBody
	if code := doJSON(t, "PUT", api+"/game/"+g.ID, map[string]string{"move": "banana"}, &moved); code != 200 {
		t.Fatalf("invalid move: expected 200 got %d", code)
	}
	if moved.Message != service.MsgInvalidMove {
		t.Fatalf("expected %q got %q", service.MsgInvalidMove, moved.Message)
	}

	doJSON(t, "PUT", api+"/game/"+g.ID, map[string]string{"move": "rock"}, &moved)
	doJSON(t, "PUT", api+"/game/"+g.ID, map[string]string{"move": "rock"}, &moved)
	if !moved.GameOver || moved.Message != "You win!" {
		t.Fatalf("expected finished game, got %+v", moved)
	}

	var history struct {
		Items []string `json:"items"`
	}
	if code := doJSON(t, "GET", api+"/game/"+g.ID+"/history", nil, &history); code != 200 {
		t.Fatalf("history: expected 200 got %d", code)
	}
	if len(history.Items) != 2 {
		t.Fatalf("expected 2 history lines, got %q", history.Items)
	}

	var msg messageBody
	doJSON(t, "DELETE", api+"/game/"+g.ID, nil, &msg)
	if msg.Message != service.MsgCannotCancel {
		t.Fatalf("expected %q got %q", service.MsgCannotCancel, msg.Message)
	}

	var scores struct {
		Items []service.ScoreForm `json:"items"`
	}
	if code := doJSON(t, "GET", api+"/scores/user/alice", nil, &scores); code != 200 {
		t.Fatalf("scores: expected 200 got %d", code)
	}
	if len(scores.Items) != 1 || !scores.Items[0].Won || scores.Items[0].Rounds != 2 {
		t.Fatalf("unexpected scores %+v", scores.Items)
	}

	var rankings struct {
		Items []struct {
			UserName string  `json:"user_name"`
			WinRate  float64 `json:"win_rate"`
		} `json:"items"`
	}
	doJSON(t, "GET", api+"/rankings", nil, &rankings)
	if len(rankings.Items) != 1 || rankings.Items[0].WinRate != 100 {
		t.Fatalf("unexpected rankings %+v", rankings.Items)
	}
}

func TestCancelRoute(t *testing.T) {
	srv := newTestServer(t, game.Rock)
	api := srv.URL + "/api/v1"
	doJSON(t, "POST", api+"/user", map[string]string{"user_name": "alice"}, nil)

	var g gameBody
	doJSON(t, "POST", api+"/game", map[string]any{"user_name": "alice", "best_of": 5}, &g)

	var games struct {
		Items []gameBody `json:"items"`
	}
	doJSON(t, "GET", api+"/games/user/alice", nil, &games)
	if len(games.Items) != 1 || games.Items[0].ID != g.ID {
		t.Fatalf("unexpected active games %+v", games.Items)
	}

	var msg messageBody
	if code := doJSON(t, "DELETE", api+"/game/"+g.ID, nil, &msg); code != 200 {
		t.Fatalf("cancel: expected 200 got %d", code)
	}
	if msg.Message != service.MsgGameDeleted {
		t.Fatalf("expected %q got %q", service.MsgGameDeleted, msg.Message)
	}

	if code := doJSON(t, "GET", api+"/game/"+g.ID, nil, nil); code != http.StatusNotFound {
		t.Fatalf("deleted game: expected 404 got %d", code)
	}
	if code := doJSON(t, "PUT", api+"/game/"+g.ID, map[string]string{"move": "rock"}, nil); code != http.StatusNotFound {
		t.Fatalf("move on deleted game: expected 404 got %d", code)
	}
}

func TestHealthAndCronRoutes(t *testing.T) {
	srv := newTestServer(t, game.Rock)

	for _, path := range []string{"/health", "/healthz", "/readyz"} {
		if code := doJSON(t, "GET", srv.URL+path, nil, nil); code != 200 {
			t.Fatalf("%s: expected 200 got %d", path, code)
		}
	}

	var report service.ReminderReport
	if code := doJSON(t, "POST", srv.URL+"/crons/send_reminder", nil, &report); code != 200 {
		t.Fatalf("cron: expected 200 got %d", code)
	}
	if report.Sent != 0 || report.Failed != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := newTestServer(t, game.Rock)

	req, _ := http.NewRequest("GET", srv.URL+"/healthz", nil)
	req.Header.Set("X-Request-ID", "req-123")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	res.Body.Close()
	if got := res.Header.Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("expected request id to be echoed, got %q", got)
	}

	res, err = http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	res.Body.Close()
	if res.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected a generated request id")
	}
}
