package weather

import (
	"fmt"
	"regexp"
	"time"

	"github.com/dustin/go-humanize"
)

// Fixed strings shown in the weather field.
const (
	// Placeholder stands in for a feed with no usable first item title.
	Placeholder = "暂无数据"
	// TextLoadFailed is shown when the feed could not be fetched or parsed.
	TextLoadFailed = "加载失败"
	// TextExtractFailed is shown when the title does not match the pattern.
	TextExtractFailed = "正则失败"
	// TextLoading is shown until the fetch completes.
	TextLoading = "..."
)

// titlePattern matches the forecast feed's item title, e.g.
// "臺北市 今晚明晨 多雲 溫度: 22 ~ 25 降雨機率: 20%".
var titlePattern = regexp.MustCompile(`溫度:\s*([0-9]+\s*~\s*[0-9]+).*?降雨機率:\s*(\d+%)`)

// Result is the data extracted from one feed title.
type Result struct {
	TemperatureRange string
	RainProbability  string
}

// String renders the summary shown in the widget.
func (r Result) String() string {
	return fmt.Sprintf("温度:%s,降水概率:%s", r.TemperatureRange, r.RainProbability)
}

// Extract pulls the temperature range and rain probability out of text.
func Extract(text string) (Result, bool) {
	m := titlePattern.FindStringSubmatch(text)
	if m == nil {
		return Result{}, false
	}
	return Result{TemperatureRange: m[1], RainProbability: m[2]}, true
}

// Render maps a fetch outcome to the text shown in the widget.
func Render(text string, err error) string {
	if err != nil {
		return TextLoadFailed
	}
	r, ok := Extract(text)
	if !ok {
		return TextExtractFailed
	}
	return r.String()
}

// Age describes how long ago the summary was fetched ("3 minutes ago").
func Age(fetchedAt, now time.Time) string {
	if fetchedAt.IsZero() {
		return ""
	}
	return humanize.RelTime(fetchedAt, now, "ago", "from now")
}
