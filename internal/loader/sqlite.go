package loader

import (
	"swan/internal/store"
)

func readSQLite(path, table string) ([]string, [][]string, error) {
	st, err := store.New(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = st.Close() }()

	header, rows, err := st.ReadTable(table)
	if err != nil {
		return nil, nil, err
	}
	if len(header) == 0 {
		return nil, nil, ErrEmptyTable
	}
	return header, rows, nil
}
