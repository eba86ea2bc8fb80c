// Package autoload initializes the global logger from the LOG_* environment
// on blank import, so binaries only need `_ "github.com/foodiespot/assistant/pkg/logger/autoload"`.
package autoload

import (
	configx "github.com/foodiespot/assistant/pkg/config"
	logx "github.com/foodiespot/assistant/pkg/logger"
)

func init() {
	cfg, err := configx.New[logx.Config]("LOG")
	if err != nil {
		cfg = logx.DefaultConfig
	}
	logx.Init(*cfg)
}
