package validator

import "strings"

// ExtractText 从 HTML 里剥出纯文本，供内容统计使用
// 逐字符扫描，维护三个状态位：标签内 / script 块内 / style 块内
// 三个状态位都为假时字符才进入输出，最后把连续空白折叠成单个空格
//
// 只用于质量统计，不做任何转义，绝不能拿它去做渲染前的内容清洗
func ExtractText(html string) string {
	var b strings.Builder
	b.Grow(len(html))

	inTag, inScript, inStyle := false, false, false

	for i := 0; i < len(html); i++ {
		c := html[i]

		if c == '<' {
			inTag = true
			switch {
			case hasPrefixFold(html[i:], "<script"):
				inScript = true
			case hasPrefixFold(html[i:], "</script"):
				inScript = false
			case hasPrefixFold(html[i:], "<style"):
				inStyle = true
			case hasPrefixFold(html[i:], "</style"):
				inStyle = false
			}
			continue
		}
		if c == '>' {
			inTag = false
			continue
		}

		if !inTag && !inScript && !inStyle {
			b.WriteByte(c)
		}
	}

	// 折叠空白并去掉首尾空格
	return strings.Join(strings.Fields(b.String()), " ")
}

// hasPrefixFold 判断 s 是否以 prefix 开头，ASCII 字母不分大小写
// prefix 必须全小写。逐字节折叠，不经过 strings.ToLower：
// Unicode 小写化会改变字节长度 (如 U+212A 开尔文符号小写成 "k")，
// 用小写副本配原始偏移量索引会越界
func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != prefix[i] {
			return false
		}
	}
	return true
}
