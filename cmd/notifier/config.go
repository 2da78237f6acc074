package main

import (
	"log/slog"
	"time"
)

type Config struct {
	Host      string `env:"HOST,default=0.0.0.0"`
	Port      int    `env:"PORT,required=true"`
	LogLevel  string `env:"LOG_LEVEL,required=true"`
	JWTSecret string `env:"JWT_SECRET,required=true"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`

	NatsURL       string        `env:"NATS_URL,required=true"`
	StreamName    string        `env:"STREAM_NAME,default=TASK_NOTIFICATIONS"`
	StreamSubject string        `env:"STREAM_SUBJECT,default=task-notifications"`
	DurableName   string        `env:"DURABLE_NAME,default=notification-service"`
	FetchTimeout  time.Duration `env:"FETCH_TIMEOUT,default=5s"`
	ReconnectWait time.Duration `env:"RECONNECT_WAIT,default=2s"`

	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,required=true"`
	WriteTimeout         time.Duration `env:"WRITE_TIMEOUT,default=10s"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,required=true"`
	HeartbeatInterval    time.Duration `env:"HEARTBEAT_INTERVAL,default=30s"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}
