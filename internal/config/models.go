package config

import "time"

type Config struct {
	GracefulDuration time.Duration
	Metrics          Metrics
	Logs             Logs
	Tracing          Tracing
	Server           Server
	Ingestion        Ingestion
	Thresholds       Thresholds
	Inventory        []Machine
	Store            Store
	Nats             Nats
	DeadLetterQueue  S3
	History          History
	Collector        Collector
}

type Metrics struct {
	Port int
}

type Logs struct {
	Level   int
	Encoder EncoderType
}

type EncoderType string

const (
	EncoderTypeJson    EncoderType = "json"
	EncoderTypeConsole EncoderType = "console"
)

type Tracing struct {
	Enabled     bool
	ServiceName string
}

// Server

type Server struct {
	Port           int
	AllowedOrigins []string
	APIKey         Secret
	RateLimit      RateLimit
	Hub            Hub
}

type RateLimit struct {
	RequestsPerSecond float64
	Burst             int
}

type Hub struct {
	SendQueueSize  int
	WriteTimeout   time.Duration
	PongTimeout    time.Duration
	MaxMessageSize int64
}

// Secret hides its value when the configuration is dumped.
type Secret string

func (s Secret) String() string {
	if s != "" {
		return "secret set"
	}

	return "no secret"
}

// Ingestion

type IngestionMode string

const (
	IngestionModeSimulated IngestionMode = "simulated"
	IngestionModeUpstream  IngestionMode = "upstream"
	IngestionModeNone      IngestionMode = "none"
)

type Ingestion struct {
	Mode          IngestionMode
	PollInterval  time.Duration
	SweepInterval time.Duration
	Simulation    Simulation
	Upstream      Upstream
	Kafka         Kafka
}

type Simulation struct {
	UpdateInterval   time.Duration
	RecoveryInterval time.Duration
	SilenceInterval  time.Duration
	Seed             int64
}

type Upstream struct {
	BaseURL   string
	APIKey    Secret
	Timeout   time.Duration
	UserAgent string
}

type Kafka struct {
	Enabled  bool
	Broker   KafkaBroker
	Consumer KafkaConsumer
}

type KafkaBroker struct {
	URLs    string
	Version string
	Creds   KafkaCreds
}

type KafkaCreds struct {
	Mechanism string
	User      string
	Password  Secret
}

func (c KafkaCreds) String() string {
	if c.User != "" && c.Password != "" {
		return "creds set (" + c.Mechanism + ")"
	}

	return "no creds"
}

type KafkaConsumer struct {
	Topic string
	Group string
}

// Classification

type Thresholds struct {
	Temperature    Band
	Pressure       Band
	DiskVolume     Band
	Speed          SpeedBand
	StaleTimeout   time.Duration
	OfflineTimeout time.Duration
}

type Band struct {
	Warning  float64
	Critical float64
}

type SpeedBand struct {
	WarningLow   float64
	WarningHigh  float64
	CriticalLow  float64
	CriticalHigh float64
}

type Machine struct {
	ID         string
	Name       string
	Location   string
	SystemType string
	Latitude   float64
	Longitude  float64
}

// Storage and sinks

type StoreBackend string

const (
	StoreBackendNone   StoreBackend = "none"
	StoreBackendValkey StoreBackend = "valkey"
	StoreBackendBadger StoreBackend = "badger"
)

type Store struct {
	Backend    StoreBackend
	Expiration time.Duration
	Valkey     Valkey
	Badger     Badger
}

type Valkey struct {
	URL   string
	Key   string
	Creds ValkeyCreds
}

type ValkeyCreds struct {
	Password string
}

func (c ValkeyCreds) String() string {
	if c.Password != "" {
		return "password set"
	}

	return "no password"
}

type Badger struct {
	Path string
}

type Nats struct {
	URL     string
	Subject string
}

type History struct {
	Size    int
	Archive S3
}

type S3 struct {
	Bucket       string
	KeyPrefix    string
	BaseEndpoint string
	Region       string
	UsePathStyle bool
	Creds        AWSCreds
}

type AWSCreds struct {
	AccessKeyID     string
	SecretAccessKey string
}

func (c AWSCreds) String() string {
	if c.AccessKeyID != "" && c.SecretAccessKey != "" {
		return "creds set"
	}

	return "no creds"
}

// Collector agent

type Collector struct {
	ServerURL  string
	MachineID  string
	APIKey     Secret
	Interval   time.Duration
	Timeout    time.Duration
	Attempts   uint
	RetryDelay time.Duration
	DiskPath   string
}
