package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/clock"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/config"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/repository/model"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

type sqlRepository struct {
	logger *zap.SugaredLogger
	db     *sql.DB
	d      dialect
	clk    clock.Clock

	serverID int32
	timeout  time.Duration
}

// NewSQLRepository opens the configured backend and registers a shutdown
// goroutine that closes the pool once ctx is cancelled. The clock governs the
// non-expired boundary on reads, so UTC-storage mode applies to store
// comparisons too.
func NewSQLRepository(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup, clk clock.Clock, cfg config.Config) (Repository, error) {
	var d dialect
	var driver string
	switch cfg.Database.Kind {
	case "postgres":
		d, driver = postgresDialect{}, "pgx"
	case "sqlite":
		d, driver = sqliteDialect{}, "sqlite3"
	default:
		return nil, fmt.Errorf("unsupported database kind %q", cfg.Database.Kind)
	}

	db, err := sql.Open(driver, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		logger.Info("closing database pool")
		if err := db.Close(); err != nil {
			logger.Errorw("failed to close database pool", "error", err)
		}
	}()

	return &sqlRepository{
		logger:   logger,
		db:       db,
		d:        d,
		clk:      clk,
		serverID: cfg.ServerID,
		timeout:  cfg.StoreTimeout,
	}, nil
}

func (r *sqlRepository) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *sqlRepository) CheckConnection(ctx context.Context) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (r *sqlRepository) ApplyMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(r.d.gooseDialect()); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, r.db, r.d.migrationsDir()); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (r *sqlRepository) GetAdmins(ctx context.Context) ([]*model.AdminRecord, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, r.d.selectAdmins(), r.serverID, r.clk.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to query admins: %w", err)
	}
	defer rows.Close()

	return r.foldAdminRows(rows)
}

func (r *sqlRepository) GetAdmin(ctx context.Context, identity int64) ([]*model.AdminRecord, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, r.d.selectAdmin(), identity, r.serverID, r.clk.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to query admin %d: %w", identity, err)
	}
	defer rows.Close()

	return r.foldAdminRows(rows)
}

// foldAdminRows collapses the admin/flag join into one record per grant row.
// A malformed flag skips that flag, not the whole batch.
func (r *sqlRepository) foldAdminRows(rows *sql.Rows) ([]*model.AdminRecord, error) {
	var result []*model.AdminRecord
	byID := make(map[int64]*model.AdminRecord)

	for rows.Next() {
		var (
			id       int64
			identity int64
			name     string
			immunity int
			created  time.Time
			ends     sql.NullTime
			serverID sql.NullInt32
			flag     sql.NullString
		)
		if err := rows.Scan(&id, &identity, &name, &immunity, &created, &ends, &serverID, &flag); err != nil {
			r.logger.Warnw("skipping unreadable admin row", "error", err)
			continue
		}

		rec, ok := byID[id]
		if !ok {
			rec = &model.AdminRecord{
				ID:       id,
				Identity: identity,
				Name:     name,
				Immunity: immunity,
				Created:  created,
			}
			if ends.Valid {
				e := ends.Time
				rec.Ends = &e
			}
			if serverID.Valid {
				s := serverID.Int32
				rec.ServerID = &s
			}
			byID[id] = rec
			result = append(result, rec)
		}

		if flag.Valid {
			if !model.ValidFlag(flag.String) {
				r.logger.Warnw("skipping malformed admin flag", "admin_id", id, "flag", flag.String)
				continue
			}
			rec.Flags = append(rec.Flags, flag.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read admin rows: %w", err)
	}

	return result, nil
}

func (r *sqlRepository) UpsertAdmin(ctx context.Context, rec *model.AdminRecord) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin upsert: %w", err)
	}
	defer tx.Rollback()

	// Replace the existing grant for this scope. At most one live grant per
	// identity per scope is authoritative.
	if rec.ServerID == nil {
		if _, err := tx.ExecContext(ctx, r.d.deleteAdminGlobal(), rec.Identity); err != nil {
			return fmt.Errorf("failed to replace global grant: %w", err)
		}
	} else {
		if _, err := tx.ExecContext(ctx, r.d.deleteAdminScoped(), rec.Identity, *rec.ServerID); err != nil {
			return fmt.Errorf("failed to replace scoped grant: %w", err)
		}
	}

	var ends interface{}
	if rec.Ends != nil {
		ends = *rec.Ends
	}
	var serverID interface{}
	if rec.ServerID != nil {
		serverID = *rec.ServerID
	}

	var id int64
	row := tx.QueryRowContext(ctx, r.d.insertAdmin(), rec.Identity, rec.Name, rec.Immunity, rec.Created, ends, serverID)
	if err := row.Scan(&id); err != nil {
		return fmt.Errorf("failed to insert admin: %w", err)
	}

	seen := make(map[string]struct{}, len(rec.Flags))
	for _, flag := range rec.Flags {
		if _, dup := seen[flag]; dup {
			continue
		}
		seen[flag] = struct{}{}
		if _, err := tx.ExecContext(ctx, r.d.insertAdminFlag(), id, flag); err != nil {
			return fmt.Errorf("failed to insert admin flag %q: %w", flag, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit upsert: %w", err)
	}
	rec.ID = id
	return nil
}

func (r *sqlRepository) DeleteAdmin(ctx context.Context, identity int64, global bool) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	var res sql.Result
	var err error
	if global {
		res, err = r.db.ExecContext(ctx, r.d.deleteAdminGlobal(), identity)
	} else {
		res, err = r.db.ExecContext(ctx, r.d.deleteAdminScoped(), identity, r.serverID)
	}
	if err != nil {
		return fmt.Errorf("failed to delete admin %d: %w", identity, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return AdminNotFoundError
	}
	return nil
}

func (r *sqlRepository) GetGroups(ctx context.Context) ([]*model.GroupRecord, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, r.d.selectGroups())
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var result []*model.GroupRecord
	byName := make(map[string]*model.GroupRecord)
	for rows.Next() {
		var (
			name     string
			immunity int
			flag     sql.NullString
		)
		if err := rows.Scan(&name, &immunity, &flag); err != nil {
			r.logger.Warnw("skipping unreadable group row", "error", err)
			continue
		}

		rec, ok := byName[name]
		if !ok {
			rec = &model.GroupRecord{Name: name, Immunity: immunity}
			byName[name] = rec
			result = append(result, rec)
		}
		if flag.Valid {
			if !model.ValidFlag(flag.String) {
				r.logger.Warnw("skipping malformed group flag", "group", name, "flag", flag.String)
				continue
			}
			rec.Flags = append(rec.Flags, flag.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read group rows: %w", err)
	}

	return result, nil
}

func (r *sqlRepository) GetActivePenalties(ctx context.Context, identity int64) ([]*model.PenaltyRecord, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, r.d.selectActivePenalties(), identity, r.serverID)
	if err != nil {
		return nil, fmt.Errorf("failed to query penalties for %d: %w", identity, err)
	}
	defer rows.Close()

	var result []*model.PenaltyRecord
	for rows.Next() {
		rec, err := scanPenaltyRow(rows)
		if err != nil {
			// Partial success: one bad row never fails the batch.
			r.logger.Warnw("skipping malformed penalty row", "identity", identity, "error", err)
			continue
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read penalty rows: %w", err)
	}

	return result, nil
}

func scanPenaltyRow(rows *sql.Rows) (*model.PenaltyRecord, error) {
	var (
		rec      model.PenaltyRecord
		address  sql.NullString
		kind     string
		status   string
		ends     sql.NullTime
		passed   sql.NullInt64
		serverID sql.NullInt32
	)
	if err := rows.Scan(&rec.ID, &rec.Identity, &address, &kind, &status, &rec.Reason, &rec.Duration, &rec.Created, &ends, &passed, &serverID); err != nil {
		return nil, err
	}

	k, err := model.ParsePenaltyKind(kind)
	if err != nil {
		return nil, err
	}
	st, err := model.ParsePenaltyStatus(status)
	if err != nil {
		return nil, err
	}
	rec.Kind = k
	rec.Status = st

	if address.Valid {
		a := address.String
		rec.Address = &a
	}
	if ends.Valid {
		e := ends.Time
		rec.Ends = &e
	}
	if passed.Valid {
		p := int(passed.Int64)
		rec.Passed = &p
	}
	if serverID.Valid {
		s := serverID.Int32
		rec.ServerID = &s
	}
	return &rec, nil
}

func (r *sqlRepository) InsertPenalty(ctx context.Context, rec *model.PenaltyRecord) (int64, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	var address interface{}
	if rec.Address != nil {
		address = *rec.Address
	}
	var ends interface{}
	if rec.Ends != nil {
		ends = *rec.Ends
	}
	var passed interface{}
	if rec.Passed != nil {
		passed = *rec.Passed
	}
	var serverID interface{}
	if rec.ServerID != nil {
		serverID = *rec.ServerID
	}

	var id int64
	row := r.db.QueryRowContext(ctx, r.d.insertPenalty(),
		rec.Identity, address, string(rec.Kind), string(rec.Status), rec.Reason, rec.Duration, rec.Created, ends, passed, serverID)
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert penalty: %w", err)
	}
	rec.ID = id
	return id, nil
}

func (r *sqlRepository) LiftPenalty(ctx context.Context, id int64, kind model.PenaltyKind) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.d.liftPenalty(), id, string(kind))
	if err != nil {
		return fmt.Errorf("failed to lift penalty %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return PenaltyNotFoundError
	}
	return nil
}

func (r *sqlRepository) UpdatePenaltyPassed(ctx context.Context, id int64, passed int) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, r.d.updatePenaltyPassed(), passed, id); err != nil {
		return fmt.Errorf("failed to update penalty %d elapsed intervals: %w", id, err)
	}
	return nil
}

func (r *sqlRepository) ExpirePenalty(ctx context.Context, id int64, passed int) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	// Idempotent: a silence row surfaces under two session kinds and both
	// paths may race to close it out.
	if _, err := r.db.ExecContext(ctx, r.d.expirePenaltyServed(), passed, id); err != nil {
		return fmt.Errorf("failed to expire penalty %d: %w", id, err)
	}
	return nil
}

func (r *sqlRepository) ExpirePenalties(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.d.expirePenalties(), now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire penalties: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *sqlRepository) ExpireAdmins(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.d.expireAdmins(), now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire admins: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *sqlRepository) AnonymizeOldPenalties(ctx context.Context, before time.Time) (int64, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.d.anonymizePenalties(), before)
	if err != nil {
		return 0, fmt.Errorf("failed to anonymize penalties: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
