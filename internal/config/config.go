package config

import (
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/ZilDuck/nft-marketplace-engine/internal/log"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Env     string
	Network string
	Index   string
	Debug   bool
	Reindex bool

	LogPath   string
	SentryDsn string

	ApiPort    string
	HealthPort string

	FixturePath string

	Marketplace   MarketplaceConfig
	ElasticSearch ElasticSearchConfig
	Aws           AwsConfig
	Webhook       WebhookConfig
}

type MarketplaceConfig struct {
	MinBidIncrement  string
	MinStartingPrice string
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

type AwsConfig struct {
	AccessKey string
	SecretKey string
	Region    string
}

type WebhookConfig struct {
	Url     string
	Retries int
}

func Init() {
	if err := godotenv.Load(".env"); err != nil {
		zap.L().With(zap.Error(err)).Warn("Unable to load .env, using environment")
	}

	initLogger()
}

func initLogger() {
	log.NewLogger(Get().LogPath, Get().Debug, Get().SentryDsn)
}

func Get() *Config {
	return &Config{
		Env:         getString("ENV", ""),
		Network:     getString("NETWORK", "mainnet"),
		Index:       getString("INDEX_NAME", "marketplace"),
		Debug:       getBool("DEBUG", false),
		Reindex:     getBool("REINDEX", false),
		LogPath:     getString("LOG_PATH", "./var/marketd.log"),
		SentryDsn:   getString("SENTRY_DSN", ""),
		ApiPort:     getString("API_PORT", "8080"),
		HealthPort:  getString("HEALTH_PORT", "8090"),
		FixturePath: getString("FIXTURE_PATH", "./data/fixtures"),
		Marketplace: MarketplaceConfig{
			MinBidIncrement:  getString("MARKETPLACE_MIN_BID_INCREMENT", "0.01"),
			MinStartingPrice: getString("MARKETPLACE_MIN_STARTING_PRICE", "0.03"),
		},
		Aws: AwsConfig{
			AccessKey: getString("AWS_ACCESS_KEY_ID", ""),
			SecretKey: getString("AWS_SECRET_KEY_ID", ""),
			Region:    getString("AWS_REGION", ""),
		},
		ElasticSearch: ElasticSearchConfig{
			Hosts:            getSlice("ELASTIC_SEARCH_HOSTS", make([]string, 0), ","),
			Sniff:            getBool("ELASTIC_SEARCH_SNIFF", true),
			HealthCheck:      getBool("ELASTIC_SEARCH_HEALTH_CHECK", true),
			Debug:            getBool("ELASTIC_SEARCH_DEBUG", false),
			Username:         getString("ELASTIC_SEARCH_USERNAME", ""),
			Password:         getString("ELASTIC_SEARCH_PASSWORD", ""),
			MappingDir:       getString("ELASTIC_SEARCH_MAPPING_DIR", "/data/mappings"),
			BulkPersistCount: getInt("ELASTIC_SEARCH_BULK_PERSIST_COUNT", 300),
			Refresh:          getString("ELASTIC_SEARCH_REFRESH", "wait_for"),
		},
		Webhook: WebhookConfig{
			Url:     getString("WEBHOOK_URL", ""),
			Retries: getInt("WEBHOOK_RETRIES", 3),
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
