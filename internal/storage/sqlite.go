package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore 基于 SQLite (WAL 模式) 的凭证存储，值经 Sealer 加密
// SQLiteStore is a SQLite-backed (WAL mode) credential store; values are sealed
type SQLiteStore struct {
	db     *sql.DB
	sealer *Sealer
	path   string
}

const credentialName = "bearer_token"

// Open 在 baseDir 下初始化数据库与设备密钥
// Open initializes the database and device key under baseDir
func Open(baseDir string) (*SQLiteStore, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		return nil, fmt.Errorf("storage base dir is empty")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	sealer, err := NewSealer(filepath.Join(baseDir, "device.key"))
	if err != nil {
		return nil, err
	}

	dbPath := filepath.Join(baseDir, "forathlete.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// 启用 WAL 模式和优化 PRAGMA / Enable WAL and performance PRAGMAs
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	store := &SQLiteStore{db: db, sealer: sealer, path: dbPath}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS credentials (
		name       TEXT PRIMARY KEY,
		sealed     BLOB NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close 关闭数据库连接 / Close the database connection
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Token() (string, error) {
	row := s.db.QueryRow(`SELECT sealed FROM credentials WHERE name=?`, credentialName)
	var sealed []byte
	if err := row.Scan(&sealed); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("load credential: %w", err)
	}
	plain, err := s.sealer.Open(sealed)
	if err != nil {
		// 设备密钥变更后的遗留值视同不存在 / A leftover value after a key change reads as absent
		return "", nil
	}
	return string(plain), nil
}

func (s *SQLiteStore) SaveToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token is empty")
	}
	sealed, err := s.sealer.Seal([]byte(token))
	if err != nil {
		return err
	}
	now := nowUTC()
	_, err = s.db.Exec(`
		INSERT INTO credentials (name, sealed, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET sealed=excluded.sealed, updated_at=excluded.updated_at`,
		credentialName, sealed, now, now,
	)
	if err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteToken() error {
	if _, err := s.db.Exec(`DELETE FROM credentials WHERE name=?`, credentialName); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
