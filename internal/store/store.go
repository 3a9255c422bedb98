package store

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultTable SQLite 数据源中的默认表名
const DefaultTable = "services"

// Store SQLite 数据源（只读）
type Store struct {
	db *sql.DB
}

// New 以只读方式打开已存在的 SQLite 文件
func New(dbPath string) (*Store, error) {
	// 只读模式下文件必须已存在，避免 sqlite 自动创建空库
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite 建议单连接
	db.SetMaxIdleConns(1)

	return &Store{db: db}, nil
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ReadTable 读取整张表，返回表头与按表头顺序排列的文本单元格
// NULL 读为空字符串
func (s *Store) ReadTable(table string) ([]string, [][]string, error) {
	if table == "" {
		table = DefaultTable
	}

	rows, err := s.db.Query("SELECT * FROM " + quoteIdent(table))
	if err != nil {
		return nil, nil, fmt.Errorf("query table %s failed: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("read columns of %s failed: %w", table, err)
	}

	var out [][]string
	for rows.Next() {
		cells := make([]sql.NullString, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("scan %s failed: %w", table, err)
		}

		row := make([]string, len(columns))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate %s failed: %w", table, err)
	}
	return columns, out, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
