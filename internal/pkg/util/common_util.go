package util

import (
	"strconv"
	"strings"
	"time"
)

// DisplayZone 页面日期统一按韩国时间展示
var DisplayZone = time.FixedZone("KST", 9*60*60)

// FormatDate 将秒级时间戳格式化为 2006.01.02.
func FormatDate(ts int64) string {
	return time.Unix(ts, 0).In(DisplayZone).Format("2006.01.02.")
}

// FormatDateTime 评论时间，精确到分钟
func FormatDateTime(ts int64) string {
	return time.Unix(ts, 0).In(DisplayZone).Format("2006.01.02. 15:04")
}

// ParseID 解析路径中的正整数 ID
func ParseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// PtrString 空白字符串返回 nil
func PtrString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
