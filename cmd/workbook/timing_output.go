package main

import (
	"io"

	"workbook/internal/observ"
)

func printTimings(out io.Writer, report observ.Report) {
	if out == nil {
		return
	}
	if _, err := io.WriteString(out, report.Summary()); err != nil {
		panic(err)
	}
}
