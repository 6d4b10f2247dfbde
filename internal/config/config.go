package config

import (
	"fmt"
	"github.com/fashionmkt/fashion-market-core/internal/log"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"math/big"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env     string
	Network string
	Index   string
	Debug   bool

	LedgerPath   string
	KeystorePath string
	LogPath      string

	ApiPort    string
	HealthPort string

	ElasticSearch ElasticSearchConfig
	Messenger     MessengerConfig
}

type ElasticSearchConfig struct {
	Hosts            []string
	Sniff            bool
	HealthCheck      bool
	Debug            bool
	Username         string
	Password         string
	MappingDir       string
	BulkPersistCount int
	Refresh          string
}

type MessengerConfig struct {
	Enabled bool
	Uri     string
}

func Init(name string) {
	if err := godotenv.Load(".env"); err != nil {
		zap.L().With(zap.Error(err)).Warn("Unable to load .env")
	}

	initLogger(name)
}

func initLogger(name string) {
	log.NewLogger(fmt.Sprintf("%s/%s.log", Get().LogPath, name), Get().Debug)
}

func Get() *Config {
	return &Config{
		Env:          getString("ENV", ""),
		Network:      getString("NETWORK", "fashion"),
		Index:        getString("INDEX_NAME", "market"),
		Debug:        getBool("DEBUG", false),
		LedgerPath:   getString("LEDGER_PATH", "./var/ledger"),
		KeystorePath: getString("KEYSTORE_PATH", "./var/keystore"),
		LogPath:      getString("LOG_PATH", "./var/log"),
		ApiPort:      getString("API_PORT", "8080"),
		HealthPort:   getString("HEALTH_PORT", "8081"),
		ElasticSearch: ElasticSearchConfig{
			Hosts:            getSlice("ELASTIC_SEARCH_HOSTS", make([]string, 0), ","),
			Sniff:            getBool("ELASTIC_SEARCH_SNIFF", true),
			HealthCheck:      getBool("ELASTIC_SEARCH_HEALTH_CHECK", true),
			Debug:            getBool("ELASTIC_SEARCH_DEBUG", false),
			Username:         getString("ELASTIC_SEARCH_USERNAME", ""),
			Password:         getString("ELASTIC_SEARCH_PASSWORD", ""),
			MappingDir:       getString("ELASTIC_SEARCH_MAPPING_DIR", "./data/mappings"),
			BulkPersistCount: getInt("ELASTIC_SEARCH_BULK_PERSIST_COUNT", 300),
			Refresh:          getString("ELASTIC_SEARCH_REFRESH", "wait_for"),
		},
		Messenger: MessengerConfig{
			Enabled: getBool("MESSENGER_ENABLED", false),
			Uri:     getString("MESSENGER_URI", ""),
		},
	}
}

func getString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func getInt(key string, defaultValue int) int {
	valStr := getString(key, "")
	val, _, err := big.ParseFloat(valStr, 10, 0, big.ToNearestEven)
	if err != nil {
		return defaultValue
	}

	intVal, _ := val.Int64()
	return int(intVal)
}

func getBool(key string, defaultValue bool) bool {
	valStr := getString(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultValue
}

func getSlice(key string, defaultVal []string, sep string) []string {
	valStr := getString(key, "")
	if valStr == "" {
		return defaultVal
	}

	return strings.Split(valStr, sep)
}
