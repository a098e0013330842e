package extractor

import "strings"

// 常见称谓，出现在名字开头时剔除
var nameTitles = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "miss": true, "mx": true,
	"dr": true, "prof": true, "professor": true, "sir": true, "madam": true,
}

// 常见后缀，出现在名字结尾时剔除
var nameSuffixes = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true, "v": true,
	"phd": true, "md": true, "esq": true, "mba": true,
}

// normalizeNameToken 去掉token两侧的标点并转为小写，用于称谓/后缀判断
func normalizeNameToken(token string) string {
	return strings.ToLower(strings.Trim(token, ".,"))
}

// SplitName 将完整姓名拆分为first/last两部分
// 规则沿用常见的人名解析约定：
//   - 去掉开头的称谓(Dr./Mr.等)和结尾的后缀(Jr./PhD等)
//   - "姓, 名" 逗号形式先还原为 "名 姓"
//   - 剩余token中第一个为first name，最后一个为last name，中间名丢弃
//   - 可解析部分不足两个时对应返回值为空字符串
func SplitName(full string) (string, string) {
	full = strings.TrimSpace(full)

	// 逗号形式 "Doe, Jane" -> "Jane Doe"
	if i := strings.Index(full, ","); i >= 0 {
		full = strings.TrimSpace(full[i+1:]) + " " + strings.TrimSpace(full[:i])
	}

	tokens := strings.Fields(full)

	start := 0
	for start < len(tokens) && nameTitles[normalizeNameToken(tokens[start])] {
		start++
	}
	end := len(tokens)
	for end > start && nameSuffixes[normalizeNameToken(tokens[end-1])] {
		end--
	}
	tokens = tokens[start:end]

	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		return strings.TrimSpace(tokens[0]), ""
	}
	return strings.TrimSpace(tokens[0]), strings.TrimSpace(tokens[len(tokens)-1])
}
