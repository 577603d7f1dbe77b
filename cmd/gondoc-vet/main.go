package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/pablor21/gondoc/analyzer"
)

func main() {
	singlechecker.Main(analyzer.Analyzer)
}
