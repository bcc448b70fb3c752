package logger

import (
	"sync"

	"github.com/Roll-Play/votechain/pkg/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger
var lock = &sync.Mutex{}

func NewZapLogger(environment config.EnvironmentName) (*zap.Logger, error) {
	var level zapcore.Level
	if environment == config.DevEnvironment || environment == "" {
		level = zap.DebugLevel
	} else {
		level = zap.InfoLevel
	}

	zapConfig := zap.Config{
		Encoding:         "json",
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields:    map[string]interface{}{"app": config.AppName},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "message",

			LevelKey:    "level",
			EncodeLevel: zapcore.CapitalLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.ISO8601TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}

	return zapConfig.Build()
}

// GetInstance returns the process-wide logger, building it on first use.
func GetInstance(environment config.EnvironmentName) (*zap.Logger, error) {
	lock.Lock()
	defer lock.Unlock()

	if logger != nil {
		return logger, nil
	}

	newLogger, err := NewZapLogger(environment)
	if err != nil {
		return nil, err
	}

	logger = newLogger
	return logger, nil
}
