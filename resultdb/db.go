// Package resultdb stores the results of TMscore comparisons in a SQLite
// database so that a comparison of the same two structures, run the same way,
// need not be repeated.
package resultdb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/BurntSushi/tmscore/apps/tmscore"
	"github.com/BurntSushi/tmscore/tmout"
)

// Results are keyed on the contents of the structures and of the TMscore
// executable, so editing either invalidates them. The results table of
// earlier versions keyed on paths alone and is dropped.
const schema = `
DROP TABLE IF EXISTS results;
CREATE TABLE IF NOT EXISTS comparisons (
	x TEXT NOT NULL,
	x_sum TEXT NOT NULL,
	y TEXT NOT NULL,
	y_sum TEXT NOT NULL,
	bin TEXT NOT NULL,
	bin_sum TEXT NOT NULL,
	mirror INTEGER NOT NULL,
	args TEXT NOT NULL,
	run_id TEXT NOT NULL,
	tm_score REAL NOT NULL,
	gdt_ts REAL NOT NULL,
	gdt_ts_cutoffs TEXT NOT NULL,
	gdt_ha REAL NOT NULL,
	gdt_ha_cutoffs TEXT NOT NULL,
	rmsd REAL NOT NULL,
	maxsub REAL NOT NULL,
	best TEXT NOT NULL,
	transform TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (x, x_sum, y, y_sum, bin, bin_sum, mirror, args)
);
`

// Key identifies a comparison: structure X superimposed onto structure Y by
// a particular TMscore executable, with or without the mirror check, with
// the given extra TMscore arguments.
//
// The Sum fields are SHA-256 digests of file contents. Use NewKey to fill
// them in.
type Key struct {
	X, Y       string
	XSum, YSum string
	Binary     string
	BinarySum  string
	Mirror     bool
	Args       []string
}

// NewKey builds the key of comparing the structure files x and y with the
// TMscore executable at binary. Paths are made absolute and every file is
// hashed; an unreadable file is an error.
func NewKey(x, y, binary string, mirror bool, args []string) (Key, error) {
	key := Key{Mirror: mirror, Args: args}
	for _, f := range []struct {
		path      string
		abs, hash *string
	}{
		{x, &key.X, &key.XSum},
		{y, &key.Y, &key.YSum},
		{binary, &key.Binary, &key.BinarySum},
	} {
		abs, err := filepath.Abs(f.path)
		if err != nil {
			return Key{}, err
		}
		sum, err := fileSum(abs)
		if err != nil {
			return Key{}, err
		}
		*f.abs, *f.hash = abs, sum
	}
	return key, nil
}

func fileSum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("could not hash '%s': %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Record is a stored comparison result.
type Record struct {
	tmscore.Result
	RunID   string
	Created time.Time
}

// Options changes how a DB is opened.
type Options struct {
	// Logger receives a debug line for every lookup and save. nil means no
	// logging.
	Logger *zap.Logger
}

// DB is a result store. It is safe for concurrent use.
type DB struct {
	db   *sql.DB
	path string
	log  *zap.Logger
}

// Open opens (creating if necessary) the result store at path.
func Open(path string, opts Options) (*DB, error) {
	if dir := filepath.Dir(path); len(dir) > 0 {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("could not create directory for '%s': %w",
				path, err)
		}
	}
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open '%s': %w", path, err)
	}
	if _, err := sqldb.Exec(schema); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("could not create schema in '%s': %w", path, err)
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &DB{db: sqldb, path: path, log: log.With(zap.String("db", path))}, nil
}

// Close closes the underlying database.
func (db *DB) Close() error {
	return db.db.Close()
}

// Save stores res for key, replacing any previous result.
func (db *DB) Save(ctx context.Context, key Key, res tmscore.Result, runID string) error {
	tsCutoffs, err := json.Marshal(res.GDTTSCutoffs)
	if err != nil {
		return err
	}
	haCutoffs, err := json.Marshal(res.GDTHACutoffs)
	if err != nil {
		return err
	}
	var transform sql.NullString
	if res.Transform != nil {
		b, err := json.Marshal(res.Transform)
		if err != nil {
			return err
		}
		transform = sql.NullString{String: string(b), Valid: true}
	}

	args, err := key.args()
	if err != nil {
		return err
	}

	_, err = db.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO comparisons
			(x, x_sum, y, y_sum, bin, bin_sum, mirror, args, run_id,
			 tm_score, gdt_ts, gdt_ts_cutoffs, gdt_ha, gdt_ha_cutoffs,
			 rmsd, maxsub, best, transform)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		key.X, key.XSum, key.Y, key.YSum, key.Binary, key.BinarySum,
		key.Mirror, args, runID,
		res.TMScore, res.GDTTS, string(tsCutoffs), res.GDTHA, string(haCutoffs),
		res.RMSD, res.MaxSub, string(res.Best), transform)
	if err != nil {
		return fmt.Errorf("could not save %s: %w", key, err)
	}
	db.log.Debug("saved result", zap.Stringer("key", key),
		zap.String("run", runID))
	return nil
}

// Lookup returns the stored result for key. The boolean is false if there
// is none.
func (db *DB) Lookup(ctx context.Context, key Key) (Record, bool, error) {
	args, err := key.args()
	if err != nil {
		return Record{}, false, err
	}
	row := db.db.QueryRowContext(ctx, `
		SELECT run_id, tm_score, gdt_ts, gdt_ts_cutoffs, gdt_ha,
			gdt_ha_cutoffs, rmsd, maxsub, best, transform, created_at
		FROM comparisons
		WHERE x = ? AND x_sum = ? AND y = ? AND y_sum = ?
			AND bin = ? AND bin_sum = ? AND mirror = ? AND args = ?`,
		key.X, key.XSum, key.Y, key.YSum, key.Binary, key.BinarySum,
		key.Mirror, args)

	var (
		rec                  Record
		tsCutoffs, haCutoffs string
		best                 string
		transform            sql.NullString
	)
	err = row.Scan(&rec.RunID, &rec.TMScore, &rec.GDTTS, &tsCutoffs,
		&rec.GDTHA, &haCutoffs, &rec.RMSD, &rec.MaxSub, &best, &transform,
		&rec.Created)
	if errors.Is(err, sql.ErrNoRows) {
		db.log.Debug("no stored result", zap.Stringer("key", key))
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("could not look up %s: %w", key, err)
	}

	rec.Best = tmscore.Orientation(best)
	if err := json.Unmarshal([]byte(tsCutoffs), &rec.GDTTSCutoffs); err != nil {
		return Record{}, false, fmt.Errorf("corrupt GDT-TS cutoffs for %s: %w",
			key, err)
	}
	if err := json.Unmarshal([]byte(haCutoffs), &rec.GDTHACutoffs); err != nil {
		return Record{}, false, fmt.Errorf("corrupt GDT-HA cutoffs for %s: %w",
			key, err)
	}
	if transform.Valid {
		rec.Transform = new(tmout.Transform)
		if err := json.Unmarshal([]byte(transform.String), rec.Transform); err != nil {
			return Record{}, false, fmt.Errorf("corrupt transform for %s: %w",
				key, err)
		}
	}
	db.log.Debug("found stored result", zap.Stringer("key", key),
		zap.String("run", rec.RunID))
	return rec, true, nil
}

// args encodes Args as a JSON array, so that argument boundaries are part
// of the key.
func (k Key) args() (string, error) {
	if len(k.Args) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(k.Args)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (k Key) String() string {
	s := fmt.Sprintf("%s -> %s", k.X, k.Y)
	if k.Mirror {
		s += " (mirror)"
	}
	if len(k.Args) > 0 {
		s += " [" + strings.Join(k.Args, " ") + "]"
	}
	return s
}
