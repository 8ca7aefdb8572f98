package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// ListeningPortKey is the port where the HTTP interface will listen on
	ListeningPortKey = "LISTENING_PORT"
	// DatadirKey is the local data directory to store the internal state of
	// the daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the
	// values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// SwapAddressKey is the ledger account holding the funds in custody
	// between acceptance and settlement, and the target of the delegated
	// settlement calls
	SwapAddressKey = "SWAP_ADDRESS"
	// OwnerKey is the identity the config singleton is initialized with on
	// first run; only this identity can update the market configuration
	OwnerKey = "OWNER"
	// EnablePubSubKey enables the webhook pubsub service notifying order
	// lifecycle events
	EnablePubSubKey = "ENABLE_PUBSUB"

	// DbLocation is the folder inside the datadir containing db files.
	DbLocation = "db"
)

var vip *viper.Viper

// InitConfig sets the default for every config key and creates the datadir
// tree if missing.
func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("SWAPD")
	vip.AutomaticEnv()

	vip.SetDefault(ListeningPortKey, 9945)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir())
	vip.SetDefault(SwapAddressKey, "swapmarket")
	vip.SetDefault(OwnerKey, "swapmarketowner")
	vip.SetDefault(EnablePubSubKey, true)

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

func GetBool(key string) bool {
	return vip.GetBool(key)
}

// GetDatadir returns the data directory of the daemon.
func GetDatadir() string {
	return GetString(DatadirKey)
}

func defaultDatadir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".swapd"
	}
	return filepath.Join(home, ".swapd")
}

func initDatadir() error {
	return makeDirectoryIfNotExists(filepath.Join(GetDatadir(), DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
