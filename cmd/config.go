package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"deliveryapp/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config is shared by the three service binaries.
type Config struct {
	Env     string `validate:"required,oneof=development stage production"`
	Service string `validate:"required,oneof=order-service delivery-service deliverer-service"`

	HTTPPort     string `validate:"required,numeric"`
	AdvertiseURL string `validate:"required,url"`

	DatabaseURL    string `validate:"required"`
	DBMaxOpenConns int    `validate:"gte=1"`

	// RegistryURL selects the redis registry; empty means a static one seeded from PeerServices.
	RegistryURL       string        `validate:"omitempty,url"`
	PeerServices      string        `validate:"omitempty"`
	HeartbeatInterval time.Duration `validate:"gte=1s"`
	RemoteTimeout     time.Duration `validate:"gt=0"`

	Pickup Pickup
}

// Pickup is the depot deliveries created from an order start at.
type Pickup struct {
	Address    string `validate:"required"`
	City       string `validate:"required"`
	PostalCode string `validate:"required"`
}

// LoadConfig reads the flags of service, then the optional dotenv file named by -config,
// then the environment. -port wins over HTTP_PORT.
func LoadConfig(service string, args []string) (Config, error) {
	flags := flag.NewFlagSet(service, flag.ContinueOnError)
	port := flags.String("port", "", "HTTP port, overrides HTTP_PORT")
	configFile := flags.String("config", ".env", "dotenv file with the service settings")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(*configFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", *configFile, err)
	}

	config := Config{
		Env:     env("ENV", "development"),
		Service: service,

		HTTPPort: env("HTTP_PORT", defaultPort(service)),

		DatabaseURL:    env("DATABASE_URL", ""),
		DBMaxOpenConns: envInt("DB_MAX_OPEN_CONNS", 10),

		RegistryURL:       env("REGISTRY_URL", ""),
		PeerServices:      env("PEER_SERVICES", ""),
		HeartbeatInterval: envDuration("HEARTBEAT_INTERVAL", 10*time.Second),
		RemoteTimeout:     envDuration("REMOTE_TIMEOUT", 5*time.Second),

		Pickup: Pickup{
			Address:    env("PICKUP_ADDRESS", "1 Depot Road"),
			City:       env("PICKUP_CITY", "Central"),
			PostalCode: env("PICKUP_POSTAL_CODE", "00000"),
		},
	}
	if *port != "" {
		config.HTTPPort = *port
	}
	config.AdvertiseURL = env("ADVERTISE_URL", "http://localhost:"+config.HTTPPort)

	return config, config.Validate()
}

func (c Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Service == ports.DeliveryServiceName && c.RegistryURL == "" && c.PeerServices == "" {
		return errors.New("delivery-service needs REGISTRY_URL or PEER_SERVICES to reach its peers")
	}
	return nil
}

func defaultPort(service string) string {
	switch service {
	case ports.OrderServiceName:
		return "8081"
	case ports.DeliveryServiceName:
		return "8082"
	case ports.DelivererServiceName:
		return "8083"
	default:
		return "8080"
	}
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
