package internal

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Host      string `env:"HOST,default=0.0.0.0"`
	Port      int    `env:"PORT,default=8080"`
	GrpcPort  int    `env:"GRPC_PORT,default=50051"`
	DebugPort int    `env:"DEBUG_PORT,default=8081"`
	LogLevel  string `env:"LOG_LEVEL,default=INFO"`

	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	MessageSecret     string        `env:"MESSAGE_SECRET,required=true"`
	JwtSecret         string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`

	BufferSize           int           `env:"BUFFER_SIZE,default=1024"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64"`
	DeliveryTimeout      time.Duration `env:"DELIVERY_TIMEOUT,default=5s"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=1s"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=30s"`
	LowCapacityThreshold int           `env:"LOW_CAPACITY_THRESHOLD,default=10"`
	LatencyThreshold     time.Duration `env:"LATENCY_THRESHOLD,default=500ms"`

	MailWorkers   int           `env:"MAIL_WORKERS,default=2"`
	MailQueueSize int           `env:"MAIL_QUEUE_SIZE,default=256"`
	MailTimeout   time.Duration `env:"MAIL_TIMEOUT,default=10s"`
	SmtpHost      string        `env:"SMTP_HOST"`
	SmtpPort      int           `env:"SMTP_PORT,default=587"`
	SmtpUsername  string        `env:"SMTP_USERNAME"`
	SmtpPassword  string        `env:"SMTP_PASSWORD"`
	SmtpFrom      string        `env:"SMTP_FROM,default=noreply@chat-relay.local"`

	UploadDir      string `env:"UPLOAD_DIR,default=./uploads"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES,default=10485760"`
	GroupName      string `env:"GROUP_NAME,default=General"`

	CensoredWords    string `env:"CENSORED_WORDS"`
	CensoredWordsDir string `env:"CENSORED_WORDS_DIR"`
	CharReplacement  string `env:"CHARACTER_REPLACEMENT,default=*"`

	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
}

// ExtraCensoredWords splits the comma separated CENSORED_WORDS value.
func (c Config) ExtraCensoredWords() []string {
	if strings.TrimSpace(c.CensoredWords) == "" {
		return nil
	}
	return strings.Split(c.CensoredWords, ",")
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
