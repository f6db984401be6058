// Package logging provides the CLI's zap logger. The library core stays
// silent; only the command surface logs.
package logging

import "go.uber.org/zap"

// New builds a console logger. Debug mode enables development output;
// otherwise only warnings and above are emitted.
func New(debug bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
