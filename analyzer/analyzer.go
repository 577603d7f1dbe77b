// Package analyzer reports documentation directive problems as a go/analysis pass.
package analyzer

import (
	"go/ast"
	"io"

	"golang.org/x/tools/go/analysis"

	"github.com/pablor21/gondoc/config"
	"github.com/pablor21/gondoc/diag"
	"github.com/pablor21/gondoc/logger"
	"github.com/pablor21/gondoc/parser"
	"github.com/pablor21/gondoc/types"
)

// Analyzer checks documentation directives without generating code.
var Analyzer = &analysis.Analyzer{
	Name: "gondoc",
	Doc:  "checks //documented: directives and the doc comments they expose",
	Run:  run,
}

var configPath string

func init() {
	Analyzer.Flags.StringVar(&configPath, "config", "", "path to a gondoc configuration file")
}

func run(pass *analysis.Pass) (interface{}, error) {
	cfg := config.NewDefaultConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	files := make([]*ast.File, 0, len(pass.Files))
	for _, f := range pass.Files {
		if !ast.IsGenerated(f) {
			files = append(files, f)
		}
	}

	ctx := types.NewProcessContext(cfg, logger.NewLogger(logger.LogLevelNone, io.Discard), pass.Fset)
	bag := diag.NewBag(*cfg.MaxDiagnostics)
	parser.NewOrchestrator(ctx).ProcessFiles(files, pass.TypesInfo, bag)
	bag.Dedup()
	bag.Sort(pass.Fset)

	for _, d := range bag.Items() {
		pass.Report(toAnalysis(d))
	}
	return nil, nil
}

func toAnalysis(d diag.Diagnostic) analysis.Diagnostic {
	out := analysis.Diagnostic{
		Pos:      d.Primary.Pos,
		End:      d.Primary.End,
		Category: d.Code.ID(),
		Message:  d.Message,
	}
	if d.Severity == diag.SevWarning {
		out.Message = "warning: " + d.Message
	}
	for _, n := range d.Notes {
		out.Related = append(out.Related, analysis.RelatedInformation{
			Pos:     n.Span.Pos,
			End:     n.Span.End,
			Message: n.Msg,
		})
	}
	return out
}
