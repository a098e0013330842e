package extractor

// digitCount 统计字符串中十进制数字的个数
func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// IsValidPhone 校验电话号码候选值
// 去掉所有非数字字符后，位数在[10,13]区间内才接受。
// 纯函数，无副作用。
func IsValidPhone(candidate string) bool {
	n := digitCount(candidate)
	return n >= 10 && n <= 13
}
