package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets, restaurant id), security settings
// - default: Values common across all environments (timezone, timeout, thresholds), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	Redis       RedisConfig
	CORS        CORSConfig
	Log         LogConfig
	JWT         JWTConfig
	Restaurant  RestaurantConfig
	Allocation  AllocationConfig
	AutoRelease AutoReleaseConfig
	Breaker     BreakerConfig
	VoiceAI     VoiceAIConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Enabled  bool   `envconfig:"DB_ENABLED" default:"false"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"tablekeeper"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME" default:"tablekeeper"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Europe/Madrid"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
}

// An empty Addr disables the dashboard relay.
type RedisConfig struct {
	Addr          string        `envconfig:"REDIS_ADDR"`
	Password      string        `envconfig:"REDIS_PASSWORD"`
	DB            int           `envconfig:"REDIS_DB" default:"0"`
	EventsChannel string        `envconfig:"REDIS_EVENTS_CHANNEL" default:"tablekeeper:events"`
	DialTimeout   time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	MaxRetries    int           `envconfig:"REDIS_MAX_RETRIES" default:"3"`
	RetryInterval time.Duration `envconfig:"REDIS_RETRY_INTERVAL" default:"1s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Europe/Madrid"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"3600"` // 1*60*60
}

// Tokens are issued by the external staff auth service; this service only verifies them.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

type RestaurantConfig struct {
	ID           string    `envconfig:"RESTAURANT_ID" required:"true"`
	TimeZone     string    `envconfig:"RESTAURANT_TIMEZONE" default:"Europe/Madrid"`
	OpenTime     string    `envconfig:"RESTAURANT_OPEN_TIME" default:"13:00"`
	CloseTime    string    `envconfig:"RESTAURANT_CLOSE_TIME" default:"23:30"`
	MaxPartySize int       `envconfig:"RESTAURANT_MAX_PARTY_SIZE" default:"12"`
	ClosedDates  []string  `envconfig:"RESTAURANT_CLOSED_DATES"`
	Turns        TurnList  `envconfig:"RESTAURANT_TURNS"`
	Tables       TableList `envconfig:"RESTAURANT_TABLES"`
}

type AllocationConfig struct {
	DefaultDuration  time.Duration `envconfig:"ALLOCATION_DEFAULT_DURATION" default:"120m"`
	MaxCASRetries    int           `envconfig:"ALLOCATION_MAX_CAS_RETRIES" default:"3"`
	ConfirmationMode string        `envconfig:"ALLOCATION_CONFIRMATION_MODE" default:"auto"`
}

func (c AllocationConfig) ManualApproval() bool {
	return c.ConfirmationMode == "manual"
}

type AutoReleaseConfig struct {
	Enabled   bool          `envconfig:"AUTO_RELEASE_ENABLED" default:"true"`
	Interval  time.Duration `envconfig:"AUTO_RELEASE_INTERVAL" default:"1m"`
	Threshold time.Duration `envconfig:"AUTO_RELEASE_THRESHOLD" default:"150m"`
}

type BreakerConfig struct {
	FailureThreshold int           `envconfig:"BREAKER_FAILURE_THRESHOLD" default:"3"`
	OpenTimeout      time.Duration `envconfig:"BREAKER_OPEN_TIMEOUT" default:"30s"`
}

type VoiceAIConfig struct {
	BaseURL string        `envconfig:"VOICEAI_BASE_URL" default:"https://api.retellai.com"`
	APIKey  string        `envconfig:"VOICEAI_API_KEY"`
	Timeout time.Duration `envconfig:"VOICEAI_TIMEOUT" default:"10s"`
}

// TurnSpec is the JSON form of a seating window, e.g.
// {"name":"dinner","start":"20:00","end":"23:30","starts":["20:00","22:00"],"days":[1,2,3]}.
// Days uses time.Weekday numbering; an empty list means every day.
type TurnSpec struct {
	Name   string   `json:"name"`
	Start  string   `json:"start"`
	End    string   `json:"end"`
	Starts []string `json:"starts"`
	Days   []int    `json:"days,omitempty"`
}

type TurnList []TurnSpec

// Decode implements envconfig.Decoder.
func (l *TurnList) Decode(value string) error {
	return json.Unmarshal([]byte(value), (*[]TurnSpec)(l))
}

type TableSpec struct {
	ID         string `json:"id"`
	Capacity   int    `json:"capacity"`
	Location   string `json:"location"`
	Accessible bool   `json:"accessible"`
}

type TableList []TableSpec

// Decode implements envconfig.Decoder.
func (l *TableList) Decode(value string) error {
	return json.Unmarshal([]byte(value), (*[]TableSpec)(l))
}

func DefaultTurns() TurnList {
	return TurnList{
		{Name: "lunch", Start: "13:00", End: "16:30", Starts: []string{"13:00", "15:00"}},
		{Name: "dinner", Start: "20:00", End: "23:30", Starts: []string{"20:00", "22:00"}},
	}
}

func DefaultTables() TableList {
	return TableList{
		{ID: "T1", Capacity: 2, Location: "Terraza"},
		{ID: "T2", Capacity: 4, Location: "Terraza"},
		{ID: "T3", Capacity: 4, Location: "Salón", Accessible: true},
		{ID: "T4", Capacity: 6, Location: "Salón"},
		{ID: "T5", Capacity: 8, Location: "Salón privado", Accessible: true},
	}
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if len(cfg.Restaurant.Turns) == 0 {
		cfg.Restaurant.Turns = DefaultTurns()
	}
	if len(cfg.Restaurant.Tables) == 0 {
		cfg.Restaurant.Tables = DefaultTables()
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Enabled:  false,
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Europe/Madrid",
			MaxConns: 4,
		},
		Redis: RedisConfig{
			EventsChannel: "tablekeeper:test-events",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Europe/Madrid",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 3600,
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Restaurant: RestaurantConfig{
			ID:           "test-restaurant",
			TimeZone:     "Europe/Madrid",
			OpenTime:     "13:00",
			CloseTime:    "23:30",
			MaxPartySize: 12,
			Turns:        DefaultTurns(),
			Tables:       DefaultTables(),
		},
		Allocation: AllocationConfig{
			DefaultDuration:  120 * time.Minute,
			MaxCASRetries:    3,
			ConfirmationMode: "auto",
		},
		AutoRelease: AutoReleaseConfig{
			Enabled:   true,
			Interval:  time.Minute,
			Threshold: 150 * time.Minute,
		},
		Breaker: BreakerConfig{
			FailureThreshold: 3,
			OpenTimeout:      30 * time.Second,
		},
		VoiceAI: VoiceAIConfig{
			BaseURL: "http://localhost:9999",
			Timeout: time.Second,
		},
	}
}
