package store

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"swan/internal/model"
)

// Dataset 启动时加载的只读数据快照
// 构造后不再修改，可被并发请求安全共享
type Dataset struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	Format   string    `json:"format"`
	LoadedAt time.Time `json:"loadedAt"`
	Columns  []string  `json:"columns"`

	records []model.Record
}

// NewDataset 创建数据快照（复制入参，调用方后续修改不影响快照）
func NewDataset(source, format string, columns []string, records []model.Record) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)
	recs := make([]model.Record, len(records))
	copy(recs, records)

	return &Dataset{
		ID:       uuid.New().String(),
		Source:   source,
		Format:   format,
		LoadedAt: time.Now(),
		Columns:  cols,
		records:  recs,
	}
}

// Records 全部记录（只读使用）
func (d *Dataset) Records() []model.Record {
	return d.records
}

// Count 记录数
func (d *Dataset) Count() int {
	return len(d.records)
}

// Departments 科室选项，按首次出现顺序
func (d *Dataset) Departments() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range d.records {
		if r.Department == "" {
			continue
		}
		if _, ok := seen[r.Department]; ok {
			continue
		}
		seen[r.Department] = struct{}{}
		out = append(out, r.Department)
	}
	return out
}

// Physicians 医生选项，按名称排序
func (d *Dataset) Physicians() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range d.records {
		if r.Physician == "" {
			continue
		}
		if _, ok := seen[r.Physician]; !ok {
			seen[r.Physician] = struct{}{}
			out = append(out, r.Physician)
		}
	}
	sort.Strings(out)
	return out
}
