// Package main содержит точку входа v8run: запуск платформы 1С:Предприятие
// в режимах CREATEINFOBASE, DESIGNER и ENTERPRISE по файлу параметров.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
