package model

// ServiceType 服务类型
type ServiceType string

const (
	TypeConsultation ServiceType = "Consultation" // 会诊
	TypeMedicine     ServiceType = "Medicine"     // 药品
	TypeProcedure    ServiceType = "Procedure"    // 操作
	TypeSupply       ServiceType = "Supply"       // 耗材
)

// KnownTypes 侧边栏固定展示的四个类型（顺序即勾选框顺序）
var KnownTypes = []ServiceType{TypeConsultation, TypeMedicine, TypeProcedure, TypeSupply}

// 源表必需列
const (
	ColDepartment = "Department"
	ColPhysician  = "Physician"
	ColType       = "Type"
	ColService    = "Service"
	ColPrice      = "Price"
	ColQtyCash    = "QTY Cash"
	ColQtyIns     = "QTY INS"
)

// RequiredColumns 加载时必须存在的列
var RequiredColumns = []string{
	ColDepartment,
	ColPhysician,
	ColType,
	ColService,
	ColPrice,
	ColQtyCash,
	ColQtyIns,
}

// Record 服务明细记录（源表一行）
type Record struct {
	RowNo      int     `json:"rowNo"` // 源表行号（数据行从 1 开始）
	Department string  `json:"department"`
	Physician  string  `json:"physician"`
	Type       string  `json:"type"` // 不限定为四个已知类型
	Service    string  `json:"service"`
	Price      string  `json:"price"` // 原始价格文本：数字 / free / var / NA / 空
	QtyCash    float64 `json:"qtyCash"`
	QtyIns     float64 `json:"qtyIns"`

	// Values 按表头顺序保存的原始单元格，用于明细表原样展示
	Values []string `json:"-"`
}

// Selection 筛选条件，空集合表示该维度不限制
type Selection struct {
	Departments []string `json:"departments"`
	Physicians  []string `json:"physicians"`
	Types       []string `json:"types"`
}

// IsEmpty 是否未设置任何筛选
func (s Selection) IsEmpty() bool {
	return len(s.Departments) == 0 && len(s.Physicians) == 0 && len(s.Types) == 0
}

// TypesFromToggles 由四个类型勾选框构造类型筛选
func TypesFromToggles(consultation, medicine, procedure, supply bool) []string {
	var out []string
	for i, on := range []bool{consultation, medicine, procedure, supply} {
		if on {
			out = append(out, string(KnownTypes[i]))
		}
	}
	return out
}
