package scoring

import "time"

// DateFormat 是引擎内部统一使用的日期键格式
const DateFormat = "2006-01-02"

// Status 表示某个习惯在某一天的状态，取值为一个封闭集合
// empty 与"完全没有记录"等价；pink/gray_missed 只会由推断产生，不会被存储
type Status string

const (
	StatusEmpty      Status = "empty"
	StatusComplete   Status = "complete"
	StatusMissed     Status = "missed"
	StatusPartial    Status = "partial"
	StatusNA         Status = "na"
	StatusExempt     Status = "exempt"
	StatusExtra      Status = "extra"
	StatusPink       Status = "pink"
	StatusGrayMissed Status = "gray_missed"
)

// KnownStatuses 列出所有允许被存储的状态，供上游校验输入
var KnownStatuses = []Status{
	StatusEmpty,
	StatusComplete,
	StatusMissed,
	StatusPartial,
	StatusNA,
	StatusExempt,
	StatusExtra,
}

// Entry 是某习惯在某天的原始记录
// Count 面向计数型习惯（每日数值目标），Note 为自由备注
type Entry struct {
	Status Status
	Count  int
	Note   string
}

// Frequency 描述低频习惯的目标：每 PeriodDays 天完成 Times 次
type Frequency struct {
	Times      int
	PeriodDays int
}

// Habit 是引擎消费的习惯快照，由调用方（存储层）组装
// Entries 以 "2006-01-02" 为键，每天至多一条
// Children 非空时该习惯为父习惯：自身没有记录，状态完全由子习惯推导
type Habit struct {
	ID              uint
	Name            string
	CategoryID      *uint
	Frequency       *Frequency
	OnTrackWhenGray bool
	GoalCount       int
	CreatedAt       time.Time
	Entries         map[string]Entry
	Children        []*Habit
}

// Settings 是引擎依赖的全部外部配置
// DayBoundaryHour 取值 [0,23]，越界属于上游校验错误，引擎不做防御
type Settings struct {
	DayBoundaryHour int
	AutoMarkPink    bool
}

// CompletionScore 汇总一次打分的结果
// ExcludedCount 仅统计 na/exempt 造成的排除
type CompletionScore struct {
	Percentage     int
	CompletedCount int
	PartialCount   int
	TotalCount     int
	ExcludedCount  int
}

// DialScore 是分类表盘使用的打分变体
// NotExpected 桶收纳"今天还不需要做"的低频习惯，两个百分比描述同一圆环的两段
type DialScore struct {
	CompletionScore
	NotExpectedCount      int
	NotExpectedPercentage int
}

// StreakResult 给出当前连胜与历史最长连胜，单位为天
type StreakResult struct {
	Current int
	Best    int
}

// IsParent 判断该习惯是否为父习惯
func (h *Habit) IsParent() bool {
	return h != nil && len(h.Children) > 0
}

// DateKey 将日期格式化为条目查询键
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}

// Normalize 将时间截断到当天零点，保留原时区
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isSuccess(s Status) bool {
	return s == StatusComplete || s == StatusExtra
}

func isExcluded(s Status) bool {
	return s == StatusNA || s == StatusExempt
}
