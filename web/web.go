// Package web 内嵌页面模板与静态资源，二进制部署时无需额外文件
package web

import "embed"

//go:embed template/*.html
var Templates embed.FS

//go:embed static/*
var Static embed.FS
