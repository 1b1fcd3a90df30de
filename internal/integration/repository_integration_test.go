package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"rps_game/internal/domain"
	"rps_game/internal/game"
	"rps_game/internal/repository"
	"rps_game/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	var names []string
	for _, f := range files {
		if strings.HasSuffix(f.Name(), ".sql") {
			names = append(names, f.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(migDir, name))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", name, err)
		}
	}
}

func connect(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	return db
}

// uniqueName keeps reruns against the same database independent.
func uniqueName(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	db := connect(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	u := &domain.User{Name: uniqueName("alice"), Email: "alice@example.com"}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("expected id to be set")
	}

	if err := repo.Create(ctx, &domain.User{Name: u.Name}); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	got, err := repo.GetByName(ctx, u.Name)
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if got.ID != u.ID || got.Email != u.Email {
		t.Fatalf("unexpected user %+v", got)
	}

	if _, err := repo.GetByName(ctx, uniqueName("nobody")); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGameRepository_UpdateAndDelete(t *testing.T) {
	db := connect(t)
	users := repository.NewUserRepository(db)
	games := repository.NewGameRepository(db)
	ctx := context.Background()

	u := &domain.User{Name: uniqueName("bob")}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	g, _ := domain.NewGame(u, 3)
	if err := games.Create(ctx, g); err != nil {
		t.Fatalf("create game: %v", err)
	}

	updated, err := games.Update(ctx, g.ID, func(g *domain.Game) (*domain.Score, error) {
		_, err := g.Play(game.Paper, game.Rock)
		return nil, err
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PlayerWins != 1 || updated.PlayerMove != game.Paper || len(updated.History) != 1 {
		t.Fatalf("unexpected game %+v", updated)
	}

	got, err := games.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserName != u.Name || got.History[0] != "Player: paper, Computer: rock, Result: player" {
		t.Fatalf("unexpected stored game %+v", got)
	}

	active, err := games.ListActiveByUser(ctx, u.ID)
	if err != nil || len(active) != 1 {
		t.Fatalf("expected one active game, got %d (%v)", len(active), err)
	}

	deleted, err := games.DeleteActive(ctx, g.ID)
	if err != nil || !deleted {
		t.Fatalf("expected delete, got %v %v", deleted, err)
	}
	if _, err := games.GetByID(ctx, g.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGameService_ConcurrentMovesOnPostgres(t *testing.T) {
	db := connect(t)
	users := repository.NewUserRepository(db)
	games := repository.NewGameRepository(db)
	scores := repository.NewScoreRepository(db)
	ctx := context.Background()

	svc := service.NewGameService(users, games,
		service.WithThrower(game.ThrowerFunc(func() game.Move { return game.Scissors })),
	)

	name := uniqueName("carol")
	if err := users.Create(ctx, &domain.User{Name: name}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	g, err := svc.NewGame(ctx, name, 3)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.MakeMove(ctx, g.ID, "rock"); err != nil {
				t.Errorf("make move: %v", err)
			}
		}()
	}
	wg.Wait()

	final, err := svc.GetGame(ctx, g.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if !final.GameOver || final.PlayerWins != 2 {
		t.Fatalf("expected finished 2-0 game, got %+v", final)
	}

	history, _ := svc.History(ctx, g.ID)
	if len(history) != 2 {
		t.Fatalf("expected 2 history lines, got %q", history)
	}

	u, _ := users.GetByName(ctx, name)
	recorded, err := scores.ListByUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("list scores: %v", err)
	}
	if len(recorded) != 1 || !recorded[0].Won || recorded[0].Rounds != 2 {
		t.Fatalf("expected exactly one winning score, got %+v", recorded)
	}

	records, err := scores.Records(ctx)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	for _, rec := range records {
		if rec.UserName == name && (rec.Won != 1 || rec.Lost != 0) {
			t.Fatalf("unexpected record %+v", rec)
		}
	}
}

func TestAuditRepository_NewestFirst(t *testing.T) {
	db := connect(t)
	users := repository.NewUserRepository(db)
	audit := repository.NewAuditRepository(db)
	ctx := context.Background()

	u := &domain.User{Name: uniqueName("dave")}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	for _, action := range []string{domain.AuditActionGameStart, domain.AuditActionGameCancel} {
		entry := &domain.AuditLog{UserID: u.ID, Action: action, Details: map[string]interface{}{"game_id": "x"}}
		if err := audit.Create(ctx, entry); err != nil {
			t.Fatalf("audit: %v", err)
		}
	}

	logs, err := audit.GetByUserID(ctx, u.ID, 10)
	if err != nil {
		t.Fatalf("get audit: %v", err)
	}
	if len(logs) != 2 || logs[0].Action != domain.AuditActionGameCancel {
		t.Fatalf("unexpected logs %+v", logs)
	}
	if logs[0].Details["game_id"] != "x" {
		t.Fatalf("details not round-tripped: %+v", logs[0].Details)
	}
}

func TestGameRepository_ScoreCommitsWithGame(t *testing.T) {
	db := connect(t)
	users := repository.NewUserRepository(db)
	games := repository.NewGameRepository(db)
	scores := repository.NewScoreRepository(db)
	ctx := context.Background()

	u := &domain.User{Name: uniqueName("erin")}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	g, _ := domain.NewGame(u, 3)
	if err := games.Create(ctx, g); err != nil {
		t.Fatalf("create game: %v", err)
	}

	withScore := func(g *domain.Game) (*domain.Score, error) {
		g.History = append(g.History, "round")
		return &domain.Score{GameID: g.ID, UserID: g.UserID, Date: time.Now().UTC(), Won: true, Rounds: 1}, nil
	}
	if _, err := games.Update(ctx, g.ID, withScore); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := games.Update(ctx, g.ID, withScore); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	got, err := games.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.History) != 1 {
		t.Fatalf("rejected score still changed the game: %q", got.History)
	}
	recorded, _ := scores.ListByUser(ctx, u.ID)
	if len(recorded) != 1 || recorded[0].GameID != g.ID {
		t.Fatalf("expected one score for the game, got %+v", recorded)
	}
}
