package view

import (
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"
)

type statusIconAsset struct {
	Key   string
	Class string
	SVG   string
}

var (
	statusIconDefinitions = []statusIconAsset{
		{Key: "ok", Class: "status-ok", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"><path d="m4.5 12.75 6 6 9-13.5"/></svg>`},
		{Key: "exceeded", Class: "status-exceeded", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"><path d="M4.5 10.5 12 3m0 0 7.5 7.5M12 3v18"/></svg>`},
		{Key: "low", Class: "status-low", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"><path d="M19.5 13.5 12 21m0 0-7.5-7.5M12 21V3"/></svg>`},
	}
	statusIconLookup = func() map[string]statusIconAsset {
		lookup := make(map[string]statusIconAsset, len(statusIconDefinitions))
		for _, icon := range statusIconDefinitions {
			lookup[icon.Key] = icon
		}
		return lookup
	}()
)

// normalizeStatus 接受 string 以及以 string 为底层类型的状态值
func normalizeStatus(status any) string {
	if status == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(fmt.Sprint(status)))
}

// StatusIcon 返回目标比较结果对应的内联 SVG，未知状态返回空
func StatusIcon(status any) template.HTML {
	if icon, ok := statusIconLookup[normalizeStatus(status)]; ok {
		return template.HTML(icon.SVG)
	}
	return ""
}

// StatusClass 返回状态对应的 CSS class
func StatusClass(status any) string {
	if icon, ok := statusIconLookup[normalizeStatus(status)]; ok {
		return icon.Class
	}
	return ""
}

// Amount formats a nutrition value with at most one decimal place.
func Amount(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
