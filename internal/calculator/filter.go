package calculator

import "swan/internal/model"

// Filter 按科室 / 医生 / 类型筛选记录
// 各维度为空表示不限制，维度之间为 AND；不修改入参，总是返回新切片
func Filter(records []model.Record, sel model.Selection) []model.Record {
	departments := toSet(sel.Departments)
	physicians := toSet(sel.Physicians)
	types := toSet(sel.Types)

	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if !allowed(departments, r.Department) {
			continue
		}
		if !allowed(physicians, r.Physician) {
			continue
		}
		if !allowed(types, r.Type) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// allowed nil 集合不限制（包含未知类型的记录）
func allowed(set map[string]struct{}, value string) bool {
	if set == nil {
		return true
	}
	_, ok := set[value]
	return ok
}
