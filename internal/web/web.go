// Package web 存放服务端渲染页面使用的模板
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates 解析全部内嵌模板，供 gin.Engine.SetHTMLTemplate 使用
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}
