package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the application logger: console output, a rotating log file,
// and a bounded in-memory ring buffer that keeps the last bufferSize
// entries available for retrieval over the API.
func New(filePath string, bufferSize int) (*zap.Logger, *RingBuffer) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	fileEncoder := zapcore.NewJSONEncoder(encoderConfig)

	fileSink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
	})

	ring := NewRingBuffer(bufferSize)

	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel),
		zapcore.NewCore(fileEncoder, fileSink, zapcore.DebugLevel),
		ring.Core(zapcore.DebugLevel),
	)

	return zap.New(core, zap.AddCaller()), ring
}
