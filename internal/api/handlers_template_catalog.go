package api

var pageTemplates = []string{
	"picker",
	"not_found",
}

var partialTemplateFiles = []string{"picker_partial.html"}
