package types

import (
	"go/token"

	"github.com/pablor21/gondoc/config"
	"github.com/pablor21/gondoc/logger"
)

type ProcessContext struct {
	Config *config.Config
	Logger logger.Logger
	Fset   *token.FileSet
}

// NewProcessContext returns a context with the built-in configuration and
// logger filled in where cfg or log are nil.
func NewProcessContext(cfg *config.Config, log logger.Logger, fset *token.FileSet) *ProcessContext {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if log == nil {
		log = logger.NewDefaultLogger()
	}
	if fset == nil {
		fset = token.NewFileSet()
	}
	return &ProcessContext{Config: cfg, Logger: log, Fset: fset}
}

// Prefix is the directive namespace in effect.
func (ctx *ProcessContext) Prefix() string {
	if ctx == nil || ctx.Config == nil || ctx.Config.Prefix == nil || *ctx.Config.Prefix == "" {
		return "documented"
	}
	return *ctx.Config.Prefix
}
