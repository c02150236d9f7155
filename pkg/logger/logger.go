package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogOption struct {
	Format   string // console / json
	LogDir   string // 为空时只输出到 stdout
	Level    string // debug / info / warn / error
	Compress bool   // 是否压缩轮转后的旧日志
}

const (
	logFileName   = "app.log"
	maxSizeMB     = 200
	maxBackups    = 10
	maxAgeDays    = 7
	callerSkip    = 1
	defaultFormat = "console"
)

var sugar atomic.Pointer[zap.SugaredLogger]

func init() {
	l, _ := newLogger(LogOption{Format: defaultFormat, Level: "info"})
	sugar.Store(l)
}

// Init 按配置替换全局 logger，可重复调用
func Init(opt LogOption) error {
	l, err := newLogger(opt)
	if err != nil {
		return err
	}
	if old := sugar.Swap(l); old != nil {
		_ = old.Sync()
	}
	return nil
}

func newLogger(opt LogOption) (*zap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(opt.Level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opt.Level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	switch strings.ToLower(opt.Format) {
	case "", defaultFormat:
		encoder = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		encoder = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("invalid log format %q", opt.Format)
	}

	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if opt.LogDir != "" {
		if err := os.MkdirAll(opt.LogDir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir %s: %w", opt.LogDir, err)
		}
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(opt.LogDir, logFileName),
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   opt.Compress,
			LocalTime:  true,
		}))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(callerSkip)).Sugar(), nil
}

func Debugf(template string, args ...any) {
	sugar.Load().Debugf(template, args...)
}

func Infof(template string, args ...any) {
	sugar.Load().Infof(template, args...)
}

func Warnf(template string, args ...any) {
	sugar.Load().Warnf(template, args...)
}

func Errorf(template string, args ...any) {
	sugar.Load().Errorf(template, args...)
}

func Sync() {
	_ = sugar.Load().Sync()
}
