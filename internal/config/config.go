package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/spf13/viper"
)

const (
	// HTTPAddressKey is the address <host:port> where the HTTP interface will listen on
	HTTPAddressKey = "HTTP_ADDRESS"
	// DatadirKey is the local data directory to store the internal state of the daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// AdminAddressKey is the address allowed to run the administrative operations
	AdminAddressKey = "ADMIN_ADDRESS"
	// AuctionCodeIDKey is the code id of the auction contract new instances are launched from
	AuctionCodeIDKey = "AUCTION_CODE_ID"
	// AuctionCodeHashKey is the code hash of the auction contract new instances are launched from
	AuctionCodeHashKey = "AUCTION_CODE_HASH"
	// LauncherEndpointKey is the endpoint of the execution service instantiating new auctions
	LauncherEndpointKey = "LAUNCHER_ENDPOINT"
	// PageSizeDefaultKey is the page size of the closed ledger listing when the request omits one
	PageSizeDefaultKey = "PAGE_SIZE_DEFAULT"
	// PageSizeMaxKey is the page size the closed ledger listing caps requests to
	PageSizeMaxKey = "PAGE_SIZE_MAX"
	// NoEventsKey is used to start the daemon without the websocket events endpoint
	NoEventsKey = "NO_EVENTS"
	// WebhookRateLimitKey is the number of webhook deliveries per second the daemon throttles itself to
	WebhookRateLimitKey = "WEBHOOK_RATE_LIMIT"
	// ConnLimitKey is the maximum number of simultaneous connections accepted by the HTTP interface
	ConnLimitKey = "CONN_LIMIT"
	// EnableProfilerKey enables profiler that can be used to investigate performance issues
	EnableProfilerKey = "ENABLE_PROFILER"
	// StatsIntervalKey defines interval for printing basic daemon statistics
	StatsIntervalKey = "STATS_INTERVAL"

	DbLocation       = "db"
	ProfilerLocation = "stats"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("sealbid-factory", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("FACTORY")
	vip.AutomaticEnv()

	vip.SetDefault(HTTPAddressKey, ":9945")
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(PageSizeDefaultKey, 200)
	vip.SetDefault(PageSizeMaxKey, 500)
	vip.SetDefault(NoEventsKey, false)
	vip.SetDefault(WebhookRateLimitKey, 10)
	vip.SetDefault(ConnLimitKey, 512)
	vip.SetDefault(EnableProfilerKey, false)
	vip.SetDefault(StatsIntervalKey, 600)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetUint32(key string) uint32 {
	return vip.GetUint32(key)
}

func GetUint64(key string) uint64 {
	return vip.GetUint64(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if !vip.IsSet(AdminAddressKey) {
		return fmt.Errorf("missing admin address")
	}

	if !vip.IsSet(AuctionCodeIDKey) || !vip.IsSet(AuctionCodeHashKey) {
		return fmt.Errorf(
			"missing auction contract, both %s and %s must be set",
			AuctionCodeIDKey, AuctionCodeHashKey,
		)
	}

	launcherEndpoint := GetString(LauncherEndpointKey)
	if launcherEndpoint == "" {
		return fmt.Errorf("missing launcher endpoint")
	}
	if _, err := url.ParseRequestURI(launcherEndpoint); err != nil {
		return fmt.Errorf("launcher endpoint must be a valid URI")
	}

	defaultPageSize, maxPageSize := GetUint32(PageSizeDefaultKey), GetUint32(PageSizeMaxKey)
	if defaultPageSize <= 0 || maxPageSize <= 0 {
		return fmt.Errorf("page sizes must be greater than 0")
	}
	if defaultPageSize > maxPageSize {
		return fmt.Errorf(
			"%s must be equal or smaller than %s", PageSizeDefaultKey, PageSizeMaxKey,
		)
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
		return err
	}

	profilerEnabled := GetBool(EnableProfilerKey)
	if profilerEnabled {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, ProfilerLocation)); err != nil {
			return err
		}
	}

	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
