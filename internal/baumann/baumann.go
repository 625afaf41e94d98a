// Package baumann 实现鲍曼皮肤类型的纯函数分类逻辑。
package baumann

import "time"

// axisRange 表示一个轴上的一段分数区间及其对应字母。
type axisRange struct {
	min, max int
	letter   string
}

// 每个轴按声明顺序匹配，第一个命中的区间获胜。
// 超出所有区间的分数落到最后一个区间的字母上。
var (
	doRanges = []axisRange{{27, 44, "O"}, {11, 26, "D"}}
	srRanges = []axisRange{{30, 75, "S"}, {18, 29, "R"}}
	pnRanges = []axisRange{{31, 45, "P"}, {10, 30, "N"}}
	wtRanges = []axisRange{{41, 85, "W"}, {20, 40, "T"}}
)

func axisLetter(score int, ranges []axisRange) string {
	for _, r := range ranges {
		if r.min <= score && score <= r.max {
			return r.letter
		}
	}
	return ranges[len(ranges)-1].letter
}

// Classify 根据四个轴的问卷得分计算 4 字母皮肤类型编码，顺序固定为 DO, SR, PN, WT。
func Classify(doScore, srScore, pnScore, wtScore int) string {
	return axisLetter(doScore, doRanges) +
		axisLetter(srScore, srRanges) +
		axisLetter(pnScore, pnRanges) +
		axisLetter(wtScore, wtRanges)
}

// DescribeDO 返回 D/O 轴的韩语描述文本。区间下界含、上界不含。
func DescribeDO(score int) string {
	switch {
	case 33 <= score && score <= 44:
		return "매우 유분이 많은 피부 (악지성)"
	case 27 <= score && score < 33:
		return "약간 유분이 많은 피부 (약간 지성)"
	case 17 <= score && score < 27:
		return "약간 건조한 피부 (약간 건성)"
	default:
		return "매우 건조한 피부 (건성)"
	}
}

// DescribeSR 返回 S/R 轴的韩语描述文本。
func DescribeSR(score int) string {
	switch {
	case 34 <= score && score <= 72:
		return "매우 민감한 피부"
	case 30 <= score && score < 34:
		return "약간 민감한 피부"
	case 25 <= score && score < 30:
		return "약간 저항성이 있는 피부"
	default:
		return "저항성이 강한 피부"
	}
}

// DescribePN 返回 P/N 轴的韩语描述文本。
func DescribePN(score int) string {
	if 31 <= score && score <= 45 {
		return "과색소침착피부"
	}
	return "비과색소침착피부"
}

// DescribeWT 返回 W/T 轴的韩语描述文本。
func DescribeWT(score int) string {
	if 41 <= score && score <= 85 {
		return "주름에 취약한 피부"
	}
	return "탄력 있는 피부"
}

// Age 按生日分界计算周岁：当前月日严格早于出生月日时减一。
// birth 为 nil 时返回 ok=false。
func Age(birth *time.Time, now time.Time) (int, bool) {
	if birth == nil {
		return 0, false
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age, true
}
