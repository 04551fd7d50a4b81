package config

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	EnvironmentDevelopment = "DEVELOPMENT"
	EnvironmentStaging     = "STAGING"
	EnvironmentProduction  = "PRODUCTION"
)

// DatabaseMode has the following constants: DatabaseModePostgres
type DatabaseMode string

const (
	DatabaseModePostgres DatabaseMode = "postgres"
)

// CacheMode has the following constants: CacheModeMemory, CacheModeRedis
type CacheMode string

const (
	CacheModeMemory CacheMode = "memory"
	CacheModeRedis  CacheMode = "redis"
)

type QueueMode string

const (
	QueueModeNoop      QueueMode = "noop"
	QueueModeInProcess QueueMode = "inProcess"
)

type MailMode string

const (
	MailModeNoop MailMode = "noop"
	MailModeSmtp MailMode = "smtp"
)

type PushMode string

const (
	PushModeNoop PushMode = "noop"
	PushModeFcm  PushMode = "fcm"
)

type SecretsMode string

const (
	SecretsModeNone  SecretsMode = "none"
	SecretsModeVault SecretsMode = "vault"
)

type LeaderElectionMode string

const (
	LeaderElectionModeNone  LeaderElectionMode = "none"
	LeaderElectionModeRedis LeaderElectionMode = "redis"
	LeaderElectionModeRaft  LeaderElectionMode = "raft"
)

type ServerConfig struct {
	ExternalUrl    string
	Host           string
	Port           int
	AllowedOrigins []string
}

type PostgresConfig struct {
	Database string
	Host     string
	Port     int
	Username string
	Password string
	SslMode  string
}

type DatabaseConfig struct {
	Mode     DatabaseMode
	Postgres PostgresConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Database int
}

type CacheConfig struct {
	Mode  CacheMode
	Redis RedisConfig
}

type MailConfig struct {
	Mode        MailMode
	Host        string
	Port        int
	Username    string
	Password    string
	ApiKey      string
	FromAddress string
	FromName    string
}

type PushConfig struct {
	Mode            PushMode
	ProjectId       string
	CredentialsFile string
	CredentialsJson string
	Endpoint        string
}

type AuthConfig struct {
	JwtSigningKey  string
	ServiceKey     string
	ServiceKeyHash string
}

type SecurityConfig struct {
	SslRedirect   bool
	HstsSeconds   int
	SecureCookies bool
}

type JobsConfig struct {
	RetentionDays   int
	OutboxBatchSize int
	MaxAttempts     int
}

type RaftNode struct {
	Id      string
	Address string
}

type LeaderElectionConfig struct {
	Mode  LeaderElectionMode
	Redis struct {
		Key          string
		LeaseSeconds int
	}
	Raft struct {
		Host        string
		Port        int
		Id          string
		InitiatorId string
		Nodes       []RaftNode
	}
}

type VaultConfig struct {
	Address string
	Token   string
	Mount   string
	Path    string
}

type SecretsConfig struct {
	Mode  SecretsMode
	Vault VaultConfig
}

type LogHandlerConfig struct {
	// Sink is either "stdout" or a file name relative to LoggingConfig.Dir.
	Sink       string
	Level      string
	Format     string
	MaxSizeMb  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type LoggerConfig struct {
	Level     string
	Handlers  []string
	Propagate bool
}

type LoggingConfig struct {
	Dir      string
	Handlers map[string]LogHandlerConfig
	Loggers  map[string]LoggerConfig
}

type Config struct {
	Server   ServerConfig
	Frontend struct {
		ExternalUrl string
		AppName     string
	}
	Database       DatabaseConfig
	Cache          CacheConfig
	Mail           MailConfig
	Push           PushConfig
	Auth           AuthConfig
	Security       SecurityConfig
	Jobs           JobsConfig
	Queue          struct{ Mode QueueMode }
	LeaderElection LeaderElectionConfig
	Secrets        SecretsConfig
	Logging        LoggingConfig
}

var configFilePath string
var environment string
var C Config

func Environment() string {
	return environment
}

func IsProduction() bool {
	return environment == EnvironmentProduction
}

// IsDevelopment reports whether missing settings may fall back to local defaults.
func IsDevelopment() bool {
	return environment == EnvironmentDevelopment
}

func Init() {
	// read flags (read config file path)
	readFlags()

	// read values from different sources (env vars, files and the secret store)
	readConfigFile()
}

// InitForEnvironment sets up defaults without reading flags or files.
func InitForEnvironment(env string, c Config) {
	environment = env
	C = c
	setDefaultsOrPanic()
}

var k = koanf.New(".")

func readConfigFile() {
	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			log.Fatalf("error loading config from file: %v", err)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: "KEYO_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "KEYO_")), "_", ".")

			if strings.Contains(v, " ") {
				return k, strings.Split(v, " ")
			}

			return k, v
		},
	}), nil)
	if err != nil {
		log.Fatalf("error loading config from env: %v", err)
	}

	if SecretsMode(k.String("secrets.mode")) == SecretsModeVault {
		var vc VaultConfig
		if err := k.Unmarshal("secrets.vault", &vc); err != nil {
			log.Fatalf("error reading vault config: %v", err)
		}

		if err := k.Load(VaultProvider(vc), nil); err != nil {
			log.Fatalf("error loading config from vault: %v", err)
		}
	}

	err = k.Unmarshal("", &C)
	if err != nil {
		log.Fatalf("error unmarshalling config: %v", err)
	}

	setDefaultsOrPanic()
}

func setDefaultsOrPanic() {
	setServerDefaultsOrPanic()
	setFrontendDefaultsOrPanic()
	setDatabaseDefaultsOrPanic()
	setCacheDefaultsOrPanic()
	setMailDefaultsOrPanic()
	setPushDefaultsOrPanic()
	setAuthDefaultsOrPanic()
	setSecurityDefaults()
	setJobsDefaults()
	setQueueDefaults()
	setLeaderElectionDefaultsOrPanic()
	setLoggingDefaults()
}

func setServerDefaultsOrPanic() {
	if C.Server.Host == "" {
		if !IsDevelopment() {
			panic("missing server hostname in config")
		}

		C.Server.Host = "localhost"
	}

	if C.Server.Port == 0 {
		C.Server.Port = 8000
	}

	if C.Server.ExternalUrl == "" {
		if !IsDevelopment() {
			panic("missing external url")
		}

		C.Server.ExternalUrl = fmt.Sprintf("http://%s:%d", C.Server.Host, C.Server.Port)
	}

	if len(C.Server.AllowedOrigins) == 0 {
		if !IsDevelopment() {
			panic("missing allowed origins")
		}

		C.Server.AllowedOrigins = []string{"http://localhost:3000"}
	}
}

func setFrontendDefaultsOrPanic() {
	if C.Frontend.ExternalUrl == "" {
		if !IsDevelopment() {
			panic("missing frontend external url")
		}
		C.Frontend.ExternalUrl = "http://localhost:3000"
	}

	if C.Frontend.AppName == "" {
		C.Frontend.AppName = "Keyo"
	}
}

func setDatabaseDefaultsOrPanic() {
	if C.Database.Mode == "" {
		C.Database.Mode = DatabaseModePostgres
	}

	switch C.Database.Mode {
	case DatabaseModePostgres:
		setPostgresDefaultsOrPanic()

	default:
		panic("database mode missing or not supported")
	}
}

func setPostgresDefaultsOrPanic() {
	if C.Database.Postgres.Database == "" {
		C.Database.Postgres.Database = "keyo"
	}

	if C.Database.Postgres.Port == 0 {
		C.Database.Postgres.Port = 5432
	}

	if C.Database.Postgres.SslMode == "" {
		C.Database.Postgres.SslMode = "require"
		if IsDevelopment() {
			C.Database.Postgres.SslMode = "disable"
		}
	}

	if C.Database.Postgres.Host == "" {
		if !IsDevelopment() {
			panic("missing postgres host")
		}
		C.Database.Postgres.Host = "localhost"
	}

	if C.Database.Postgres.Username == "" {
		if !IsDevelopment() {
			panic("missing postgres username")
		}
		C.Database.Postgres.Username = "keyo"
	}

	if C.Database.Postgres.Password == "" {
		if !IsDevelopment() {
			panic("missing postgres password")
		}
		C.Database.Postgres.Password = "keyo"
	}
}

func setCacheDefaultsOrPanic() {
	if C.Cache.Mode == "" {
		C.Cache.Mode = CacheModeMemory
	}

	switch C.Cache.Mode {
	case CacheModeMemory:
		// nothing to do
		break

	case CacheModeRedis:
		setRedisDefaultsOrPanic(&C.Cache.Redis)

	default:
		panic("cache mode missing or not supported")
	}
}

func setRedisDefaultsOrPanic(rc *RedisConfig) {
	if rc.Host == "" {
		if !IsDevelopment() {
			panic("missing redis host")
		}

		rc.Host = "localhost"
	}

	if rc.Port == 0 {
		rc.Port = 6379
	}
}

func setMailDefaultsOrPanic() {
	if C.Mail.Mode == "" {
		C.Mail.Mode = MailModeSmtp
		if IsDevelopment() {
			C.Mail.Mode = MailModeNoop
		}
	}

	if C.Mail.FromName == "" {
		C.Mail.FromName = C.Frontend.AppName
	}

	switch C.Mail.Mode {
	case MailModeNoop:
		break

	case MailModeSmtp:
		if C.Mail.Host == "" {
			panic("missing mail host")
		}

		if C.Mail.Port == 0 {
			C.Mail.Port = 587
		}

		// providers that authenticate with an api key use it as the smtp password
		if C.Mail.Password == "" && C.Mail.ApiKey != "" {
			C.Mail.Password = C.Mail.ApiKey
			if C.Mail.Username == "" {
				C.Mail.Username = "apikey"
			}
		}

		if C.Mail.FromAddress == "" {
			panic("missing mail from address")
		}

	default:
		panic("mail mode not supported")
	}
}

func setPushDefaultsOrPanic() {
	if C.Push.Mode == "" {
		C.Push.Mode = PushModeFcm
		if IsDevelopment() {
			C.Push.Mode = PushModeNoop
		}
	}

	switch C.Push.Mode {
	case PushModeNoop:
		break

	case PushModeFcm:
		if C.Push.ProjectId == "" {
			panic("missing push project id")
		}

		if C.Push.CredentialsFile == "" && C.Push.CredentialsJson == "" {
			panic("missing push service account credentials")
		}

		if C.Push.Endpoint == "" {
			C.Push.Endpoint = "https://fcm.googleapis.com"
		}

	default:
		panic("push mode not supported")
	}
}

func setAuthDefaultsOrPanic() {
	if C.Auth.JwtSigningKey == "" {
		if !IsDevelopment() {
			panic("missing jwt signing key")
		}
		C.Auth.JwtSigningKey = "development-signing-key"
	}

	if C.Auth.ServiceKeyHash == "" {
		if !IsDevelopment() {
			panic("missing service key hash")
		}

		if C.Auth.ServiceKey == "" {
			C.Auth.ServiceKey = "development-service-key"
		}
	}
}

func setSecurityDefaults() {
	if IsDevelopment() {
		return
	}

	if C.Security.HstsSeconds == 0 {
		C.Security.HstsSeconds = 31536000
	}
}

func setJobsDefaults() {
	if C.Jobs.RetentionDays == 0 {
		C.Jobs.RetentionDays = 30
	}

	if C.Jobs.OutboxBatchSize == 0 {
		C.Jobs.OutboxBatchSize = 50
	}

	if C.Jobs.MaxAttempts == 0 {
		C.Jobs.MaxAttempts = 5
	}
}

func setQueueDefaults() {
	if C.Queue.Mode == "" {
		C.Queue.Mode = QueueModeInProcess
	}
}

func setLeaderElectionDefaultsOrPanic() {
	if C.LeaderElection.Mode == "" {
		C.LeaderElection.Mode = LeaderElectionModeNone
	}

	switch C.LeaderElection.Mode {
	case LeaderElectionModeNone:
		break

	case LeaderElectionModeRedis:
		if C.Cache.Mode != CacheModeRedis {
			panic("redis leader election requires the redis cache mode")
		}

		if C.LeaderElection.Redis.Key == "" {
			C.LeaderElection.Redis.Key = "keyo:leader"
		}

		if C.LeaderElection.Redis.LeaseSeconds == 0 {
			C.LeaderElection.Redis.LeaseSeconds = 15
		}

	case LeaderElectionModeRaft:
		if C.LeaderElection.Raft.Id == "" {
			panic("missing raft node id")
		}

		if C.LeaderElection.Raft.Port == 0 {
			C.LeaderElection.Raft.Port = 7000
		}

		if len(C.LeaderElection.Raft.Nodes) == 0 {
			panic("missing raft nodes")
		}

	default:
		panic(fmt.Sprintf("leader election mode %s not supported", C.LeaderElection.Mode))
	}
}

func setLoggingDefaults() {
	defaults := DefaultLoggingConfig(IsDevelopment())

	if C.Logging.Dir == "" {
		C.Logging.Dir = defaults.Dir
	}

	if C.Logging.Handlers == nil {
		C.Logging.Handlers = make(map[string]LogHandlerConfig)
	}
	for name, handler := range defaults.Handlers {
		if _, ok := C.Logging.Handlers[name]; !ok {
			C.Logging.Handlers[name] = handler
		}
	}

	if C.Logging.Loggers == nil {
		C.Logging.Loggers = make(map[string]LoggerConfig)
	}
	for name, logger := range defaults.Loggers {
		if _, ok := C.Logging.Loggers[name]; !ok {
			C.Logging.Loggers[name] = logger
		}
	}
}

func readFlags() {
	// read flags passed to the program
	flag.StringVar(&configFilePath, "config", "", "The path for the config file.")
	flag.StringVar(&environment, "environment", EnvironmentProduction, "The environment that this application is running in (can be PRODUCTION, STAGING or DEVELOPMENT).")
	flag.Parse()

	environment = strings.ToUpper(environment)
}
