// Package currency 提供印度卢比（INR）金额的格式化与解析。
// 整数部分采用印度数字分组：末三位一组，其余每两位一组，如 ₹12,34,567.89。
package currency

import (
	"math"
	"strconv"
	"strings"
)

// Symbol 货币符号
const Symbol = "₹"

// 紧凑格式的三个固定量级：千、拉克（十万）、克若尔（千万）
const (
	thousandUnit = 1_000
	lakhUnit     = 100_000
	croreUnit    = 10_000_000
)

// FormatINR 将金额格式化为带符号的卢比字符串，固定两位小数。
// NaN 按零值渲染为 ₹0.00，不报错。负号渲染在货币符号之外。
func FormatINR(amount float64) string {
	if math.IsNaN(amount) {
		return Symbol + "0.00"
	}
	abs := math.Abs(amount)
	s := strconv.FormatFloat(abs, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")
	formatted := Symbol + groupIndian(intPart) + "." + fracPart
	if amount < 0 {
		return "-" + formatted
	}
	return formatted
}

// FormatINRCompact 按量级后缀格式化大额金额：
// >= 1 千万显示为 Cr，>= 十万显示为 L，>= 一千显示为 K，其余显示整数。
// 三个后缀档保留一位小数（四舍五入远离零），无后缀档不保留小数。
func FormatINRCompact(amount float64) string {
	if math.IsNaN(amount) {
		return Symbol + "0"
	}
	abs := math.Abs(amount)

	var formatted string
	switch {
	case abs >= croreUnit:
		formatted = Symbol + fixed1(abs/croreUnit) + "Cr"
	case abs >= lakhUnit:
		formatted = Symbol + fixed1(abs/lakhUnit) + "L"
	case abs >= thousandUnit:
		formatted = Symbol + fixed1(abs/thousandUnit) + "K"
	default:
		formatted = Symbol + strconv.FormatFloat(math.Round(abs), 'f', 0, 64)
	}

	if amount < 0 {
		return "-" + formatted
	}
	return formatted
}

// ParseINR 将格式化后的卢比字符串解析回数值。
// 去掉货币符号、千分位与空白后按浮点数解析；解析失败返回 0 而不是错误，
// 调用方必须把 0 当作合法业务值处理，不能当解析失败哨兵。
func ParseINR(text string) float64 {
	clean := strings.NewReplacer(Symbol, "", ",", "", " ", "", "\t", "").Replace(text)
	clean = strings.TrimSpace(clean)
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return v
}

// fixed1 保留一位小数，0.05 进位方向远离零（与 %.1f 的银行家舍入不同）
func fixed1(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64)
}

// groupIndian 对整数部分做印度式分组：最后三位一组，再往前每两位一组
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
