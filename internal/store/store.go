package store

import (
	"context"
	"database/sql"
	errs "errors"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirjenkins/lwotai/internal/ai"
	"github.com/sirjenkins/lwotai/internal/engine"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	ErrNoChange = errs.New("no change")
	ErrNotFound = errs.New("not found")
)

// DB wraps gorm.DB for repositories and exposes Close.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
}

func (d *DB) Close() error   { return d.sql.Close() }
func (d *DB) Gorm() *gorm.DB { return d.gorm }

// Open connects to the game history database.
func Open(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("missing DSN")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sdb.SetConnMaxLifetime(30 * time.Minute)
	sdb.SetMaxOpenConns(4)
	sdb.SetMaxIdleConns(2)
	if err := sdb.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "ping postgres")
	}
	return &DB{gorm: gdb, sql: sdb}, nil
}

// WithTx executes fn within a database transaction.
func (d *DB) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.gorm.WithContext(ctx).Transaction(fn)
}

// Game is one row of the games table.
type Game struct {
	ID       uuid.UUID
	Scenario int
	Ideology int
	Seed     string
	Turn     int
}

type GameRepo struct{ db *DB }

func NewGameRepo(db *DB) *GameRepo { return &GameRepo{db: db} }

// Create records a new game. Resuming an existing game id is a no-op.
func (r *GameRepo) Create(ctx context.Context, w *engine.World, seed string) error {
	err := r.db.gorm.WithContext(ctx).Exec(`INSERT INTO games(id, scenario, ideology, seed, turn) VALUES (?,?,?,?,?)
	ON CONFLICT (id) DO NOTHING`, w.ID, w.Scenario, int(w.Ideology), seed, w.Turn).Error
	return errors.Wrap(err, "insert game")
}

func (r *GameRepo) Get(ctx context.Context, id uuid.UUID) (Game, error) {
	row := r.db.gorm.WithContext(ctx).Raw(`SELECT id, scenario, ideology, seed, turn FROM games WHERE id = ?`, id).Row()
	var g Game
	if err := row.Scan(&g.ID, &g.Scenario, &g.Ideology, &g.Seed, &g.Turn); err != nil {
		if errs.Is(err, sql.ErrNoRows) {
			return Game{}, ErrNotFound
		}
		return Game{}, errors.Wrap(err, "select game")
	}
	return g, nil
}

func (r *GameRepo) SetTurn(ctx context.Context, tx *gorm.DB, id uuid.UUID, turn int) error {
	err := tx.WithContext(ctx).Exec(`UPDATE games SET turn = ?, updated_at = now() WHERE id = ?`, turn, id).Error
	return errors.Wrap(err, "update game turn")
}

type PlayRepo struct{ db *DB }

func NewPlayRepo(db *DB) *PlayRepo { return &PlayRepo{db: db} }

// Insert stores the flowchart path one Jihadist card took.
func (p *PlayRepo) Insert(ctx context.Context, tx *gorm.DB, gameID uuid.UUID, turn int, res ai.Result) (uuid.UUID, error) {
	id := uuid.New()
	err := tx.WithContext(ctx).Exec(`INSERT INTO plays(id, game_id, turn, card, path, event_played, target) VALUES (?,?,?,?,?,?,?)`,
		id, gameID, turn, res.Card, pqStringArray(res.Path), res.EventPlayed, res.Target).Error
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "insert play")
	}
	return id, nil
}

// Count is the number of plays recorded for a game.
func (p *PlayRepo) Count(ctx context.Context, gameID uuid.UUID) (int, error) {
	var n int
	row := p.db.gorm.WithContext(ctx).Raw(`SELECT count(*) FROM plays WHERE game_id = ?`, gameID).Row()
	if err := row.Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count plays")
	}
	return n, nil
}

type HistoryRepo struct{ db *DB }

func NewHistoryRepo(db *DB) *HistoryRepo { return &HistoryRepo{db: db} }

// Append stores history lines starting at sequence number from.
func (h *HistoryRepo) Append(ctx context.Context, tx *gorm.DB, gameID uuid.UUID, turn, from int, lines []string) error {
	for i, l := range lines {
		if err := tx.WithContext(ctx).Exec(`INSERT INTO history_lines(game_id, seq, turn, line) VALUES (?,?,?,?)
		ON CONFLICT (game_id, seq) DO UPDATE SET turn = EXCLUDED.turn, line = EXCLUDED.line`, gameID, from+i, turn, l).Error; err != nil {
			return errors.Wrap(err, "insert history line")
		}
	}
	return nil
}

// Truncate drops lines at or after seq; undo and rollback rewind the log.
func (h *HistoryRepo) Truncate(ctx context.Context, tx *gorm.DB, gameID uuid.UUID, seq int) error {
	err := tx.WithContext(ctx).Exec(`DELETE FROM history_lines WHERE game_id = ? AND seq >= ?`, gameID, seq).Error
	return errors.Wrap(err, "truncate history")
}

func (h *HistoryRepo) List(ctx context.Context, gameID uuid.UUID) ([]string, error) {
	rows, err := h.db.gorm.WithContext(ctx).Raw(`SELECT line FROM history_lines WHERE game_id = ? ORDER BY seq`, gameID).Rows()
	if err != nil {
		return nil, errors.Wrap(err, "select history")
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Journal mirrors a game session into Postgres.
type Journal struct {
	db      *DB
	games   *GameRepo
	plays   *PlayRepo
	history *HistoryRepo
	// written is how many history lines are already stored.
	written int
}

func NewJournal(db *DB) *Journal {
	return &Journal{db: db, games: NewGameRepo(db), plays: NewPlayRepo(db), history: NewHistoryRepo(db)}
}

func (j *Journal) Start(ctx context.Context, w *engine.World, seed string) error {
	if err := j.games.Create(ctx, w, seed); err != nil {
		return err
	}
	j.written = 0
	return j.Sync(ctx, w, nil)
}

// Sync writes new history lines, the current turn and, when res is set, the card play.
// A history shorter than what was written means the game was rewound.
func (j *Journal) Sync(ctx context.Context, w *engine.World, res *ai.Result) error {
	return j.db.WithTx(ctx, func(tx *gorm.DB) error {
		if len(w.History) < j.written {
			if err := j.history.Truncate(ctx, tx, w.ID, len(w.History)); err != nil {
				return err
			}
			j.written = len(w.History)
		}
		if err := j.history.Append(ctx, tx, w.ID, w.Turn, j.written, w.History[j.written:]); err != nil {
			return err
		}
		if res != nil {
			if _, err := j.plays.Insert(ctx, tx, w.ID, w.Turn, *res); err != nil {
				return err
			}
		}
		if err := j.games.SetTurn(ctx, tx, w.ID, w.Turn); err != nil {
			return err
		}
		j.written = len(w.History)
		return nil
	})
}

// Helper converts []T (string-like) to []string for driver.
func pqStringArray[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
