package extractor

import (
	"regexp"
	"strings"

	"resume-parser-go/internal/types"
)

// 各字段使用的正则，进程启动时编译一次
var (
	// 名字兜底1：行首两个单词；注意(?i)让字符类实际上不区分大小写
	reLeadingName = regexp.MustCompile(`(?i)^([A-Z][a-z]+)\s+([A-Z][a-z]+)`)
	// 名字兜底2："name:" 标签行，取捕获组
	reLabeledName = regexp.MustCompile(`(?i)^name[:\s]*([A-Z][a-z]+\s[A-Z][a-z]+)`)
	// 邮箱：全文搜索，取第一个匹配
	reEmail = regexp.MustCompile(`\b[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+\b`)
	// 电话兜底：可选+91前缀 + 10~13位数字
	// 注意位数校验仍然由IsValidPhone独立执行，两者不能互相替代
	rePhoneFallback = regexp.MustCompile(`\b(?:\+91[\s\-]*)?\d{10,13}\b`)
	// 社交链接，大小写不敏感
	reLinkedIn = regexp.MustCompile(`(?i)(https?://)?(www\.)?linkedin\.com/in/[a-zA-Z0-9_-]+`)
	reGitHub   = regexp.MustCompile(`(?i)(https?://)?(www\.)?github\.com/[a-zA-Z0-9_-]+`)
)

// leadingLineLimit 名字兜底1只扫描开头若干行
const leadingLineLimit = 10

// Document 一次解析请求中对简历文本的只读视图
// 行切分和实体列表在构造时准备好，供各字段策略复用
type Document struct {
	Text  string
	Lines []string
	Spans []types.EntitySpan
}

// NewDocument 构造解析文档视图
func NewDocument(text string, spans []types.EntitySpan) *Document {
	return &Document{
		Text:  text,
		Lines: strings.Split(text, "\n"),
		Spans: spans,
	}
}

// Strategy 单个字段的一种解析策略
// 纯函数：命中时返回(值, true)，未命中返回("", false)
type Strategy func(doc *Document) (string, bool)

// FieldResolver 按字段优先级级联填充解析结果
// 每个字段只有更高优先级策略全部未命中时才会尝试下一个策略
type FieldResolver struct {
	nameStrategies []Strategy
}

// NewFieldResolver 创建字段解析器
func NewFieldResolver() *FieldResolver {
	return &FieldResolver{
		// 名字的优先级：模型实体 > 开头行正则 > name标签行正则
		nameStrategies: []Strategy{
			nameFromEntity,
			nameFromLeadingLines,
			nameFromLabeledLine,
		},
	}
}

// Resolve 执行完整的字段解析级联，返回填充好的结果
// 字段缺失是合法的成功结果，不产生错误
func (r *FieldResolver) Resolve(text string, spans []types.EntitySpan) *types.ExtractedRecord {
	doc := NewDocument(text, spans)
	record := types.NewExtractedRecord()

	for _, strategy := range r.nameStrategies {
		if v, ok := strategy(doc); ok {
			record.Name = v
			break
		}
	}
	// 名字解析成功后才拆分first/last，且只拆分一次
	if record.Name != "" {
		record.FirstName, record.LastName = SplitName(record.Name)
	}

	if v, ok := locationFromEntity(doc); ok {
		record.Location = v
	}

	record.Skills = skillsFromEntities(doc)

	if v, ok := emailFromRegex(doc); ok {
		record.Email = v
	}

	if v, ok := phoneFromEntity(doc); ok {
		record.Phone = v
	} else if v, ok := phoneFromRegex(doc); ok {
		record.Phone = v
	}

	if v, ok := matchWholeText(doc, reLinkedIn); ok {
		record.LinkedIn = v
	}
	if v, ok := matchWholeText(doc, reGitHub); ok {
		record.GitHub = v
	}

	return record
}

// nameFromEntity 取第一个文本非空的PERSON实体
func nameFromEntity(doc *Document) (string, bool) {
	for _, span := range doc.Spans {
		if span.Label != types.LabelPerson {
			continue
		}
		if name := strings.TrimSpace(span.Text); name != "" {
			return name, true
		}
	}
	return "", false
}

// nameFromLeadingLines 在开头leadingLineLimit行内找"大写单词 大写单词"形式的行，取整个匹配
func nameFromLeadingLines(doc *Document) (string, bool) {
	lines := doc.Lines
	if len(lines) > leadingLineLimit {
		lines = lines[:leadingLineLimit]
	}
	for _, line := range lines {
		if m := reLeadingName.FindString(strings.TrimSpace(line)); m != "" {
			return strings.TrimSpace(m), true
		}
	}
	return "", false
}

// nameFromLabeledLine 在全部行中找"name: Xxx Yyy"形式的行，取捕获组
func nameFromLabeledLine(doc *Document) (string, bool) {
	for _, line := range doc.Lines {
		if m := reLabeledName.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

// locationFromEntity 取第一个文本非空的LOCATION实体，无正则兜底
func locationFromEntity(doc *Document) (string, bool) {
	for _, span := range doc.Spans {
		if span.Label != types.LabelLocation {
			continue
		}
		if loc := strings.TrimSpace(span.Text); loc != "" {
			return loc, true
		}
	}
	return "", false
}

// skillsFromEntities 收集全部SKILL实体，保持出现顺序，允许重复
func skillsFromEntities(doc *Document) []string {
	skills := []string{}
	for _, span := range doc.Spans {
		if span.Label == types.LabelSkill {
			skills = append(skills, strings.TrimSpace(span.Text))
		}
	}
	return skills
}

// emailFromRegex 全文正则搜索邮箱，取第一个匹配，没有实体路径
func emailFromRegex(doc *Document) (string, bool) {
	if m := reEmail.FindString(doc.Text); m != "" {
		return m, true
	}
	return "", false
}

// phoneFromEntity 按出现顺序检查PHONE实体，取第一个通过校验的
func phoneFromEntity(doc *Document) (string, bool) {
	for _, span := range doc.Spans {
		if span.Label != types.LabelPhone {
			continue
		}
		candidate := strings.TrimSpace(span.Text)
		if IsValidPhone(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// phoneFromRegex 电话正则兜底
// 正则命中后还要再过一遍位数校验：+91前缀可能把去符号后的位数推出范围
func phoneFromRegex(doc *Document) (string, bool) {
	if m := rePhoneFallback.FindString(doc.Text); m != "" && IsValidPhone(m) {
		return m, true
	}
	return "", false
}

// matchWholeText 对全文执行单次正则搜索
func matchWholeText(doc *Document, re *regexp.Regexp) (string, bool) {
	if m := re.FindString(doc.Text); m != "" {
		return m, true
	}
	return "", false
}
