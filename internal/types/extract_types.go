package types

// EntityLabel 表示实体识别模型输出的标签类型
type EntityLabel string

const (
	// LabelPerson 人名实体
	LabelPerson EntityLabel = "PERSON"
	// LabelLocation 地点实体（模型侧的GPE/LOC统一映射到该标签）
	LabelLocation EntityLabel = "LOCATION"
	// LabelSkill 技能实体
	LabelSkill EntityLabel = "SKILL"
	// LabelPhone 电话实体
	LabelPhone EntityLabel = "PHONE"
	// LabelOther 其他未分类实体，解析管线会忽略
	LabelOther EntityLabel = "OTHER"
)

// EntitySpan 实体识别模型返回的一段带标签文本
// 对解析管线而言是只读输入
type EntitySpan struct {
	Text  string      `json:"text"`
	Label EntityLabel `json:"label"`
}

// ExtractedRecord 简历解析结果
// 所有字段始终存在：标量字段未命中时为空字符串，skills未命中时为空切片。
// linkedin/github 与其他字段保持一致的空字符串表示（不再省略键）。
type ExtractedRecord struct {
	Name      string   `json:"name"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Location  string   `json:"location"`
	Skills    []string `json:"skills"`
	LinkedIn  string   `json:"linkedin"`
	GitHub    string   `json:"github"`
}

// NewExtractedRecord 创建一个所有字段均为默认空值的结果对象
// skills 初始化为空切片而不是nil，保证JSON序列化为 [] 而不是 null
func NewExtractedRecord() *ExtractedRecord {
	return &ExtractedRecord{
		Skills: []string{},
	}
}
