package extractor

import (
	"strings"
	"testing"

	"resume-parser-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNameEntityTakesPriorityOverLineRegex 实体优先于行正则兜底
func TestNameEntityTakesPriorityOverLineRegex(t *testing.T) {
	resolver := NewFieldResolver()

	text := "John Smith works here\nsome other line"
	spans := []types.EntitySpan{
		{Text: "Jane Doe", Label: types.LabelPerson},
	}

	record := resolver.Resolve(text, spans)

	assert.Equal(t, "Jane Doe", record.Name, "PERSON实体应优先于首行正则")
	assert.Equal(t, "Jane", record.FirstName)
	assert.Equal(t, "Doe", record.LastName)
}

// TestNameFallbackToLeadingLines 无PERSON实体时回退到开头行正则
func TestNameFallbackToLeadingLines(t *testing.T) {
	resolver := NewFieldResolver()

	text := "John Smith works here\nsome other line"
	record := resolver.Resolve(text, nil)

	assert.Equal(t, "John Smith", record.Name, "应取行首两个大写单词的完整匹配")
	assert.Equal(t, "John", record.FirstName)
	assert.Equal(t, "Smith", record.LastName)
}

// TestNameFallbackOrdering 开头10行无匹配时，才轮到name标签行策略
// 注意开头的行不能以两个连续的字母单词开头（兜底1的正则带(?i)，匹配很宽松）
func TestNameFallbackOrdering(t *testing.T) {
	resolver := NewFieldResolver()

	lines := make([]string, 0, 16)
	for i := 0; i < 14; i++ {
		lines = append(lines, "+91 12345")
	}
	lines = append(lines, "Name: Alice Johnson")
	text := strings.Join(lines, "\n")

	record := resolver.Resolve(text, nil)

	assert.Equal(t, "Alice Johnson", record.Name, "应取name标签行的捕获组")
	assert.Equal(t, "Alice", record.FirstName)
	assert.Equal(t, "Johnson", record.LastName)
}

// TestNameLeadingLinesLimitedToTen 第11行的候选名字不在兜底1的扫描范围内
func TestNameLeadingLinesLimitedToTen(t *testing.T) {
	resolver := NewFieldResolver()

	lines := make([]string, 0, 11)
	for i := 0; i < 10; i++ {
		lines = append(lines, "+91 12345")
	}
	lines = append(lines, "Bob Brown")
	text := strings.Join(lines, "\n")

	record := resolver.Resolve(text, nil)

	assert.Empty(t, record.Name, "超出前10行的普通名字行不应被兜底1命中")
}

// TestNameUnresolvedLeavesSplitEmpty 名字未解析时不调用姓名拆分
func TestNameUnresolvedLeavesSplitEmpty(t *testing.T) {
	resolver := NewFieldResolver()

	record := resolver.Resolve("12345\n67890", nil)

	assert.Empty(t, record.Name)
	assert.Empty(t, record.FirstName)
	assert.Empty(t, record.LastName)
}

// TestLocationEntityOnly 地点只走实体路径，没有正则兜底
func TestLocationEntityOnly(t *testing.T) {
	resolver := NewFieldResolver()

	record := resolver.Resolve("lives in Bangalore", []types.EntitySpan{
		{Text: " Mumbai ", Label: types.LabelLocation},
	})
	assert.Equal(t, "Mumbai", record.Location, "应取第一个LOCATION实体并去掉两侧空白")

	record = resolver.Resolve("lives in Bangalore", nil)
	assert.Empty(t, record.Location, "没有LOCATION实体时地点保持为空")
}

// TestSkillsKeepOrderAndDuplicates 技能按出现顺序累积，允许重复
func TestSkillsKeepOrderAndDuplicates(t *testing.T) {
	resolver := NewFieldResolver()

	spans := []types.EntitySpan{
		{Text: "Python", Label: types.LabelSkill},
		{Text: "Go", Label: types.LabelSkill},
		{Text: "Python", Label: types.LabelSkill},
	}
	record := resolver.Resolve("", spans)

	assert.Equal(t, []string{"Python", "Go", "Python"}, record.Skills)
}

// TestSkillsEmptyIsSliceNotNil 无技能实体时skills是空切片
func TestSkillsEmptyIsSliceNotNil(t *testing.T) {
	resolver := NewFieldResolver()

	record := resolver.Resolve("", nil)

	require.NotNil(t, record.Skills)
	assert.Empty(t, record.Skills)
}

// TestEmailExtraction 邮箱全文正则搜索，与周围空白无关
func TestEmailExtraction(t *testing.T) {
	resolver := NewFieldResolver()

	testCases := []struct {
		name string
		text string
	}{
		{"裸地址", "jane.doe+cv@example-mail.co.in"},
		{"两侧空格", "   jane.doe+cv@example-mail.co.in   "},
		{"两侧换行", "\n\njane.doe+cv@example-mail.co.in\n\n"},
		{"嵌在句子里", "contact me at jane.doe+cv@example-mail.co.in for details"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			record := resolver.Resolve(tc.text, nil)
			assert.Equal(t, "jane.doe+cv@example-mail.co.in", record.Email)
		})
	}
}

// TestPhoneEntityFirstValidWins PHONE实体按顺序取第一个通过校验的
func TestPhoneEntityFirstValidWins(t *testing.T) {
	resolver := NewFieldResolver()

	spans := []types.EntitySpan{
		{Text: "12345", Label: types.LabelPhone},             // 位数不足，跳过
		{Text: " +91 98765 43210 ", Label: types.LabelPhone}, // 12位，通过
		{Text: "9876543210", Label: types.LabelPhone},        // 不再考虑
	}
	record := resolver.Resolve("", spans)

	assert.Equal(t, "+91 98765 43210", record.Phone)
}

// TestPhoneRegexFallback 实体全部未通过校验时走正则兜底，且兜底结果仍要过校验
func TestPhoneRegexFallback(t *testing.T) {
	resolver := NewFieldResolver()

	spans := []types.EntitySpan{
		{Text: "12345", Label: types.LabelPhone},
	}
	record := resolver.Resolve("call 9876543210 now", spans)
	assert.Equal(t, "9876543210", record.Phone, "实体未通过校验时应回退到正则")

	record = resolver.Resolve("nothing here", spans)
	assert.Empty(t, record.Phone, "实体和正则都未命中时电话为空")
}

// TestSocialLinksCaseInsensitive 社交链接匹配大小写不敏感
func TestSocialLinksCaseInsensitive(t *testing.T) {
	resolver := NewFieldResolver()

	record := resolver.Resolve("LINKEDIN.COM/IN/janedoe and GITHUB.COM/janedoe", nil)
	assert.Equal(t, "LINKEDIN.COM/IN/janedoe", record.LinkedIn)
	assert.Equal(t, "GITHUB.COM/janedoe", record.GitHub)

	record = resolver.Resolve("https://www.linkedin.com/in/jane-doe_1 https://github.com/jane-doe_1", nil)
	assert.Equal(t, "https://www.linkedin.com/in/jane-doe_1", record.LinkedIn)
	assert.Equal(t, "https://github.com/jane-doe_1", record.GitHub)
}

// TestSocialLinksAbsentStayEmpty 未匹配时linkedin/github保持空字符串
func TestSocialLinksAbsentStayEmpty(t *testing.T) {
	resolver := NewFieldResolver()

	record := resolver.Resolve("no links here", nil)

	assert.Empty(t, record.LinkedIn)
	assert.Empty(t, record.GitHub)
}

// TestResolveFullResume 一份完整样例的端到端字段解析
func TestResolveFullResume(t *testing.T) {
	resolver := NewFieldResolver()

	text := strings.Join([]string{
		"Jane Doe",
		"Bangalore, India",
		"Email: jane.doe@example.com | Phone: +91 98765 43210",
		"linkedin.com/in/janedoe | github.com/janedoe",
		"",
		"Experienced backend engineer.",
	}, "\n")

	spans := []types.EntitySpan{
		{Text: "Jane Doe", Label: types.LabelPerson},
		{Text: "Bangalore", Label: types.LabelLocation},
		{Text: "Go", Label: types.LabelSkill},
		{Text: "MySQL", Label: types.LabelSkill},
		{Text: "+91 98765 43210", Label: types.LabelPhone},
		{Text: "backend", Label: types.LabelOther},
	}

	record := resolver.Resolve(text, spans)

	assert.Equal(t, "Jane Doe", record.Name)
	assert.Equal(t, "Jane", record.FirstName)
	assert.Equal(t, "Doe", record.LastName)
	assert.Equal(t, "Bangalore", record.Location)
	assert.Equal(t, []string{"Go", "MySQL"}, record.Skills)
	assert.Equal(t, "jane.doe@example.com", record.Email)
	assert.Equal(t, "+91 98765 43210", record.Phone)
	assert.Equal(t, "linkedin.com/in/janedoe", record.LinkedIn)
	assert.Equal(t, "github.com/janedoe", record.GitHub)
}
