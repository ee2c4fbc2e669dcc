package logger

import (
	"Darugi/internal/api/config"
	"io"
	log "log/slog"
	"net"
	"os"
	"strings"
)

var LogWriter io.Writer = os.Stdout

// level 全局日志级别，可在运行时调整
var level = new(log.LevelVar)

// InitLogger 初始化全局 slog，配置了远程地址时同时上报
func InitLogger(cfg config.LogConfig) {
	level.Set(parseLevel(cfg.Level))
	opts := &log.HandlerOptions{Level: level}
	hStdout := log.NewJSONHandler(os.Stdout, opts)

	var finalHandler log.Handler = hStdout
	LogWriter = os.Stdout

	if cfg.RemoteAddr != "" {
		conn, err := net.Dial("tcp", cfg.RemoteAddr)
		if err == nil {
			hRemote := log.NewJSONHandler(conn, opts).
				WithAttrs([]log.Attr{
					log.String("target_index", cfg.RemoteIndex),
					log.String("log_token", cfg.RemoteToken),
				})

			finalHandler = NewTeeHandler(hStdout, NewRemoteFilterHandler(hRemote, log.LevelError))
			LogWriter = io.MultiWriter(os.Stdout, conn)
		} else {
			log.Warn("Failed to connect to remote log sink, logging to stdout only", "err", err)
		}
	}

	log.SetDefault(log.New(&ContextHandler{finalHandler}))
}

// SetLevel 热更新日志级别
func SetLevel(name string) {
	next := parseLevel(name)
	if prev := level.Level(); prev != next {
		level.Set(next)
		log.Info("Log level changed", "from", prev.String(), "to", next.String())
	}
}

// Level 当前日志级别
func Level() log.Level {
	return level.Level()
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
