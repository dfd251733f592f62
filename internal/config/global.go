package config

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/utils/runtime"
)

const (
	databaseKindFlag = "database-kind"
	databaseDSNFlag  = "database-dsn"

	serverIDFlag    = "server-id"
	multiServerFlag = "multi-server"

	timeModeFlag   = "time-mode"
	timezoneFlag   = "timezone"
	utcStorageFlag = "utc-storage"

	kafkaEnabledFlag = "kafka-enabled"
	kafkaHostFlag    = "kafka-host"
	kafkaPortFlag    = "kafka-port"

	sweepIntervalFlag = "sweep-interval"
	retentionDaysFlag = "retention-days"
	storeTimeoutFlag  = "store-timeout"
	maxSlotsFlag      = "max-slots"

	developmentFlag = "development"
)

// TimeMode selects how penalty durations are measured.
type TimeMode string

const (
	// TimeModeAbsolute measures penalties against the wall clock.
	TimeModeAbsolute TimeMode = "absolute"
	// TimeModeTick measures penalties in counted intervals of connected time.
	TimeModeTick TimeMode = "tick"
)

type Config struct {
	Database DatabaseConfig
	Kafka    KafkaConfig

	// ServerID identifies this server's rows in a shared store. Grants and
	// penalties with a NULL server id apply on every server.
	ServerID    int32
	MultiServer bool

	TimeMode   TimeMode
	Timezone   string
	UTCStorage bool

	SweepInterval time.Duration
	RetentionDays int
	StoreTimeout  time.Duration
	MaxSlots      int

	Development bool
}

type DatabaseConfig struct {
	// Kind is "postgres" or "sqlite".
	Kind string
	DSN  string
}

type KafkaConfig struct {
	Enabled bool
	Host    string
	Port    int
}

func LoadGlobalConfig() Config {
	viper.SetDefault(databaseKindFlag, "postgres")
	viper.SetDefault(databaseDSNFlag, "postgres://localhost:5432/simpleadmin")
	viper.SetDefault(serverIDFlag, 1)
	viper.SetDefault(multiServerFlag, false)
	viper.SetDefault(timeModeFlag, string(TimeModeAbsolute))
	viper.SetDefault(timezoneFlag, "")
	viper.SetDefault(utcStorageFlag, true)
	viper.SetDefault(kafkaEnabledFlag, false)
	viper.SetDefault(kafkaHostFlag, "localhost")
	viper.SetDefault(kafkaPortFlag, 9092)
	viper.SetDefault(sweepIntervalFlag, time.Minute)
	viper.SetDefault(retentionDaysFlag, 0)
	viper.SetDefault(storeTimeoutFlag, 5*time.Second)
	viper.SetDefault(maxSlotsFlag, 65)
	viper.SetDefault(developmentFlag, true)

	pflag.String(databaseKindFlag, viper.GetString(databaseKindFlag), "Database backend (postgres or sqlite)")
	pflag.String(databaseDSNFlag, viper.GetString(databaseDSNFlag), "Database DSN")
	pflag.Int32(serverIDFlag, viper.GetInt32(serverIDFlag), "Server id in the shared store")
	pflag.Bool(multiServerFlag, viper.GetBool(multiServerFlag), "Multiple servers share the store")
	pflag.String(timeModeFlag, viper.GetString(timeModeFlag), "Penalty time mode (absolute or tick)")
	pflag.String(timezoneFlag, viper.GetString(timezoneFlag), "Timezone for timestamps (empty = local)")
	pflag.Bool(utcStorageFlag, viper.GetBool(utcStorageFlag), "Store and compare timestamps in UTC")
	pflag.Bool(kafkaEnabledFlag, viper.GetBool(kafkaEnabledFlag), "Publish change notifications to Kafka")
	pflag.String(kafkaHostFlag, viper.GetString(kafkaHostFlag), "Kafka host")
	pflag.Int32(kafkaPortFlag, viper.GetInt32(kafkaPortFlag), "Kafka port")
	pflag.Duration(sweepIntervalFlag, viper.GetDuration(sweepIntervalFlag), "Expiry sweep interval")
	pflag.Int(retentionDaysFlag, viper.GetInt(retentionDaysFlag), "Days before stored addresses are dropped (0 = keep)")
	pflag.Duration(storeTimeoutFlag, viper.GetDuration(storeTimeoutFlag), "Per-operation store timeout")
	pflag.Int(maxSlotsFlag, viper.GetInt(maxSlotsFlag), "Maximum session slots")
	pflag.Bool(developmentFlag, viper.GetBool(developmentFlag), "Development mode")
	pflag.Parse()

	// Bind the viper flags to environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	runtime.Must(viper.BindEnv(databaseKindFlag))
	runtime.Must(viper.BindEnv(databaseDSNFlag))
	runtime.Must(viper.BindEnv(serverIDFlag))
	runtime.Must(viper.BindEnv(multiServerFlag))
	runtime.Must(viper.BindEnv(timeModeFlag))
	runtime.Must(viper.BindEnv(timezoneFlag))
	runtime.Must(viper.BindEnv(utcStorageFlag))
	runtime.Must(viper.BindEnv(kafkaEnabledFlag))
	runtime.Must(viper.BindEnv(kafkaHostFlag))
	runtime.Must(viper.BindEnv(kafkaPortFlag))
	runtime.Must(viper.BindEnv(sweepIntervalFlag))
	runtime.Must(viper.BindEnv(retentionDaysFlag))
	runtime.Must(viper.BindEnv(storeTimeoutFlag))
	runtime.Must(viper.BindEnv(maxSlotsFlag))
	runtime.Must(viper.BindEnv(developmentFlag))

	return Config{
		Database: DatabaseConfig{
			Kind: viper.GetString(databaseKindFlag),
			DSN:  viper.GetString(databaseDSNFlag),
		},
		Kafka: KafkaConfig{
			Enabled: viper.GetBool(kafkaEnabledFlag),
			Host:    viper.GetString(kafkaHostFlag),
			Port:    int(viper.GetInt32(kafkaPortFlag)),
		},
		ServerID:      viper.GetInt32(serverIDFlag),
		MultiServer:   viper.GetBool(multiServerFlag),
		TimeMode:      TimeMode(viper.GetString(timeModeFlag)),
		Timezone:      viper.GetString(timezoneFlag),
		UTCStorage:    viper.GetBool(utcStorageFlag),
		SweepInterval: viper.GetDuration(sweepIntervalFlag),
		RetentionDays: viper.GetInt(retentionDaysFlag),
		StoreTimeout:  viper.GetDuration(storeTimeoutFlag),
		MaxSlots:      viper.GetInt(maxSlotsFlag),
		Development:   viper.GetBool(developmentFlag),
	}
}
