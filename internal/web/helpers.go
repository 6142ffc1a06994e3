package web

import (
	"html"
	"strconv"
)

func escape(value string) string {
	return html.EscapeString(value)
}

func itoa(value int) string {
	return strconv.Itoa(value)
}
