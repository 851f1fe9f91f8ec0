package zlog

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"cpduel/configs"
)

type ctxKey string

const TraceIDKey ctxKey = "trace_id"

var logger *zap.SugaredLogger

func init() {
	// 配置加载前的兜底logger
	l, _ := zap.NewDevelopment(zap.AddCallerSkip(1))
	logger = l.Sugar()
}

// Init 按配置初始化日志，文件滚动 + 可选控制台输出
func Init(config *configs.Config) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(config.Log.Level)); err != nil {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename: config.Log.Path,
		MaxSize:  config.Log.MaxSize,
		MaxAge:   config.Log.MaxAge,
		Compress: true,
	})
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), fileWriter, level),
	}
	if config.Log.Console {
		consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level))
	}
	logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
}

// NewCtx 生成带trace id的context
func NewCtx() context.Context {
	return context.WithValue(context.Background(), TraceIDKey, uuid.NewString())
}

// GetCtxFromGin 取出全局中间件写入的trace context
func GetCtxFromGin(c *gin.Context) context.Context {
	if v, ok := c.Get(string(TraceIDKey)); ok {
		if ctx, ok := v.(context.Context); ok {
			return ctx
		}
	}
	ctx := NewCtx()
	c.Set(string(TraceIDKey), ctx)
	return ctx
}

func traceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(TraceIDKey).(string); ok {
		return v
	}
	return ""
}

func Debugf(template string, args ...interface{}) {
	logger.Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	logger.Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	logger.Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	logger.Errorf(template, args...)
}

func CtxDebugf(ctx context.Context, template string, args ...interface{}) {
	logger.With("trace_id", traceID(ctx)).Debugf(template, args...)
}

func CtxInfof(ctx context.Context, template string, args ...interface{}) {
	logger.With("trace_id", traceID(ctx)).Infof(template, args...)
}

func CtxWarnf(ctx context.Context, template string, args ...interface{}) {
	logger.With("trace_id", traceID(ctx)).Warnf(template, args...)
}

func CtxErrorf(ctx context.Context, template string, args ...interface{}) {
	logger.With("trace_id", traceID(ctx)).Errorf(template, args...)
}

// Sync 刷盘，退出前调用
func Sync() {
	_ = logger.Sync()
}
