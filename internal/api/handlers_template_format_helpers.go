package api

import (
	"encoding/json"
	"html/template"
)

func templateTranslate(messages map[string]string, key string) string {
	return translateMessage(messages, key)
}

func templateToJSON(value any) template.JS {
	serialized, err := json.Marshal(value)
	if err != nil {
		return template.JS("null")
	}
	return template.JS(serialized)
}
