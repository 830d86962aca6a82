package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tierlist_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Postgres implements Store over a pgx pool.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

const playerCols = `id, user_id, username, avatar, combat_title, points, bounty, region, COALESCE(webhook_url, ''), created_at`

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Username,
		&p.Avatar,
		&p.CombatTitle,
		&p.Points,
		&p.Bounty,
		&p.Region,
		&p.WebhookURL,
		&p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Postgres) collectPlayers(ctx context.Context, query string, args ...any) ([]domain.Player, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *p)
	}
	return res, rows.Err()
}

func (s *Postgres) Players(ctx context.Context) ([]domain.Player, error) {
	return s.collectPlayers(ctx,
		`SELECT `+playerCols+` FROM players ORDER BY points DESC, id`)
}

func (s *Postgres) PlayerByID(ctx context.Context, id int64) (*domain.Player, error) {
	return scanPlayer(s.db.QueryRow(ctx,
		`SELECT `+playerCols+` FROM players WHERE id = $1`, id))
}

func (s *Postgres) PlayerByUserID(ctx context.Context, userID string) (*domain.Player, error) {
	return scanPlayer(s.db.QueryRow(ctx,
		`SELECT `+playerCols+` FROM players WHERE user_id = $1`, userID))
}

func (s *Postgres) CreatePlayer(ctx context.Context, p *domain.Player) error {
	if p.CombatTitle == "" {
		p.CombatTitle = domain.DefaultCombatTitle
	}
	if p.Bounty == "" {
		p.Bounty = domain.DefaultBounty
	}

	err := s.db.QueryRow(ctx,
		`INSERT INTO players (user_id, username, avatar, combat_title, points, bounty, region, webhook_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
		 RETURNING id, created_at`,
		p.UserID, p.Username, p.Avatar, p.CombatTitle, p.Points, p.Bounty, p.Region, p.WebhookURL,
	).Scan(&p.ID, &p.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (s *Postgres) UpdatePlayer(ctx context.Context, id int64, u domain.PlayerUpdate) (*domain.Player, error) {
	set := make([]string, 0, 7)
	args := make([]any, 0, 8)

	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if u.Username != nil {
		add("username", *u.Username)
	}
	if u.Avatar != nil {
		add("avatar", *u.Avatar)
	}
	if u.CombatTitle != nil {
		add("combat_title", *u.CombatTitle)
	}
	if u.Points != nil {
		add("points", *u.Points)
	}
	if u.Bounty != nil {
		add("bounty", *u.Bounty)
	}
	if u.Region != nil {
		add("region", *u.Region)
	}
	if u.WebhookURL != nil {
		add("webhook_url", *u.WebhookURL)
	}

	if len(set) == 0 {
		return s.PlayerByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE players SET %s WHERE id = $%d RETURNING `+playerCols,
		strings.Join(set, ", "), len(args))

	return scanPlayer(s.db.QueryRow(ctx, query, args...))
}

func (s *Postgres) DeletePlayer(ctx context.Context, id int64) (bool, error) {
	// tiers go with the player via ON DELETE CASCADE
	tag, err := s.db.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// likeEscaper neutralizes LIKE metacharacters so the query is a literal
// substring match.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *Postgres) SearchPlayers(ctx context.Context, query string) ([]domain.Player, error) {
	return s.collectPlayers(ctx,
		`SELECT `+playerCols+` FROM players
		 WHERE username ILIKE '%' || $1 || '%' ESCAPE '\'
		 ORDER BY points DESC, id`, likeEscaper.Replace(query))
}

func scanTier(row pgx.Row) (*domain.Tier, error) {
	var t domain.Tier
	err := row.Scan(&t.ID, &t.PlayerID, &t.Category, &t.Grade, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Postgres) collectTiers(ctx context.Context, query string, args ...any) ([]domain.Tier, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Tier
	for rows.Next() {
		t, err := scanTier(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *t)
	}
	return res, rows.Err()
}

func (s *Postgres) Tiers(ctx context.Context) ([]domain.Tier, error) {
	return s.collectTiers(ctx,
		`SELECT id, player_id, category, grade, updated_at FROM tiers ORDER BY player_id, category`)
}

func (s *Postgres) TiersByPlayer(ctx context.Context, playerID int64) ([]domain.Tier, error) {
	return s.collectTiers(ctx,
		`SELECT id, player_id, category, grade, updated_at FROM tiers WHERE player_id = $1 ORDER BY category`,
		playerID)
}

func (s *Postgres) TiersByCategory(ctx context.Context, c domain.Category) ([]domain.Tier, error) {
	return s.collectTiers(ctx,
		`SELECT id, player_id, category, grade, updated_at FROM tiers WHERE category = $1 ORDER BY player_id`,
		c)
}

func (s *Postgres) TierByPlayerCategory(ctx context.Context, playerID int64, c domain.Category) (*domain.Tier, error) {
	return scanTier(s.db.QueryRow(ctx,
		`SELECT id, player_id, category, grade, updated_at FROM tiers WHERE player_id = $1 AND category = $2`,
		playerID, c))
}

func (s *Postgres) UpsertTier(ctx context.Context, t *domain.Tier) (bool, error) {
	// xmax = 0 distinguishes a fresh insert from a conflict update
	var created bool
	err := s.db.QueryRow(ctx,
		`INSERT INTO tiers (player_id, category, grade, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (player_id, category)
		 DO UPDATE SET grade = EXCLUDED.grade, updated_at = now()
		 RETURNING id, updated_at, (xmax = 0)`,
		t.PlayerID, t.Category, t.Grade,
	).Scan(&t.ID, &t.UpdatedAt, &created)
	return created, err
}

func (s *Postgres) DeleteTier(ctx context.Context, id int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM tiers WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

const adminCols = `id, username, password_hash, is_super_admin, can_manage_players, can_manage_tiers,
	can_manage_admins, can_delete_data, can_view_admins, can_manage_database, can_change_settings, created_at`

func scanAdmin(row pgx.Row) (*domain.Admin, error) {
	var a domain.Admin
	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.PasswordHash,
		&a.IsSuperAdmin,
		&a.CanManagePlayers,
		&a.CanManageTiers,
		&a.CanManageAdmins,
		&a.CanDeleteData,
		&a.CanViewAdmins,
		&a.CanManageDatabase,
		&a.CanChangeSettings,
		&a.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Postgres) Admins(ctx context.Context) ([]domain.Admin, error) {
	rows, err := s.db.Query(ctx, `SELECT `+adminCols+` FROM admins ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Admin
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *a)
	}
	return res, rows.Err()
}

func (s *Postgres) AdminByID(ctx context.Context, id int64) (*domain.Admin, error) {
	return scanAdmin(s.db.QueryRow(ctx, `SELECT `+adminCols+` FROM admins WHERE id = $1`, id))
}

func (s *Postgres) AdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	return scanAdmin(s.db.QueryRow(ctx, `SELECT `+adminCols+` FROM admins WHERE username = $1`, username))
}

func (s *Postgres) CreateAdmin(ctx context.Context, a *domain.Admin) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO admins (username, password_hash, is_super_admin, can_manage_players, can_manage_tiers,
		     can_manage_admins, can_delete_data, can_view_admins, can_manage_database, can_change_settings)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at`,
		a.Username, a.PasswordHash, a.IsSuperAdmin, a.CanManagePlayers, a.CanManageTiers,
		a.CanManageAdmins, a.CanDeleteData, a.CanViewAdmins, a.CanManageDatabase, a.CanChangeSettings,
	).Scan(&a.ID, &a.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (s *Postgres) Setting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return value, err
}

func (s *Postgres) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO settings (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value)
	return err
}

func (s *Postgres) Settings(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.Query(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		res[k] = v
	}
	return res, rows.Err()
}

func (s *Postgres) Reset(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `TRUNCATE players CASCADE`)
	return err
}

func (s *Postgres) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Postgres) Close() {
	s.db.Close()
}
