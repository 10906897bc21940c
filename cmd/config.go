package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"fulfillment/internal/adapters/out/carrier"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP     HTTPConfig
	Log      LogConfig
	Database DatabaseConfig
	Pricing  services.PricingConfig
	Carrier  CarrierConfig
	Shipment ShipmentConfig
}

type HTTPConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level slog.Level
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type CarrierConfig struct {
	BaseURL        string
	Email          string
	Password       string
	Token          string
	Timeout        time.Duration
	PickupLocation string
	PickupPostcode string
	ChannelID      string
}

func (c CarrierConfig) Client() carrier.Config {
	return carrier.Config{
		BaseURL:  c.BaseURL,
		Email:    c.Email,
		Password: c.Password,
		Token:    c.Token,
		Timeout:  c.Timeout,
	}
}

func (c CarrierConfig) Payload() services.PayloadConfig {
	cfg := services.DefaultPayloadConfig()
	cfg.PickupLocation = c.PickupLocation
	cfg.ChannelID = c.ChannelID
	return cfg
}

type ShipmentConfig struct {
	StepTimeout   time.Duration
	LeaseTTL      time.Duration
	SweepSchedule string
	SweepBatch    int
	SweepMinAge   time.Duration
	QueueSize     int
	Workers       int
}

func (c ShipmentConfig) Settings() commands.ShipmentSettings {
	return commands.ShipmentSettings{StepTimeout: c.StepTimeout, LeaseTTL: c.LeaseTTL}
}

func (c ShipmentConfig) Job() jobs.ShipmentCreationConfig {
	return jobs.ShipmentCreationConfig{
		Schedule:  c.SweepSchedule,
		BatchSize: c.SweepBatch,
		MinAge:    c.SweepMinAge,
		QueueSize: c.QueueSize,
		Workers:   c.Workers,
	}
}

// LoadConfig reads the optional env files, then the environment. Keys are
// dotted ("carrier.base_url") and map to upper-case variables with
// underscores (CARRIER_BASE_URL). Missing env files are ignored.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	var errList []error
	rate := func(key string) decimal.Decimal {
		d, err := decimal.NewFromString(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(key, err))
		}
		return d
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log.level"))); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("log.level", err))
	}

	cfg := Config{
		HTTP: HTTPConfig{
			Port:            v.GetString("http.port"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		Log: LogConfig{Level: level},
		Database: DatabaseConfig{
			Host:     v.GetString("database.host"),
			Port:     v.GetString("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			Name:     v.GetString("database.name"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		Pricing: services.PricingConfig{
			FreeShippingThreshold: v.GetInt64("pricing.free_shipping_threshold"),
			FlatShippingFee:       v.GetInt64("pricing.flat_shipping_fee"),
			CODFee:                v.GetInt64("pricing.cod_fee"),
			OnlineFeeRate:         rate("pricing.online_fee_rate"),
			OnlineFeeTaxRate:      rate("pricing.online_fee_tax_rate"),
			GSTRate:               rate("pricing.product_gst_rate"),
		},
		Carrier: CarrierConfig{
			BaseURL:        v.GetString("carrier.base_url"),
			Email:          v.GetString("carrier.email"),
			Password:       v.GetString("carrier.password"),
			Token:          v.GetString("carrier.token"),
			Timeout:        v.GetDuration("carrier.timeout"),
			PickupLocation: v.GetString("carrier.pickup_location"),
			PickupPostcode: v.GetString("carrier.pickup_postcode"),
			ChannelID:      v.GetString("carrier.channel_id"),
		},
		Shipment: ShipmentConfig{
			StepTimeout:   v.GetDuration("shipment.step_timeout"),
			LeaseTTL:      v.GetDuration("shipment.lease_ttl"),
			SweepSchedule: v.GetString("shipment.sweep_schedule"),
			SweepBatch:    v.GetInt("shipment.sweep_batch"),
			SweepMinAge:   v.GetDuration("shipment.sweep_min_age"),
			QueueSize:     v.GetInt("shipment.queue_size"),
			Workers:       v.GetInt("shipment.workers"),
		},
	}

	if err := errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.shutdown_timeout", "15s")
	v.SetDefault("log.level", "info")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "fulfillment")
	v.SetDefault("database.sslmode", "disable")

	pricing := services.DefaultPricingConfig()
	v.SetDefault("pricing.free_shipping_threshold", pricing.FreeShippingThreshold)
	v.SetDefault("pricing.flat_shipping_fee", pricing.FlatShippingFee)
	v.SetDefault("pricing.cod_fee", pricing.CODFee)
	v.SetDefault("pricing.online_fee_rate", pricing.OnlineFeeRate.String())
	v.SetDefault("pricing.online_fee_tax_rate", pricing.OnlineFeeTaxRate.String())
	v.SetDefault("pricing.product_gst_rate", pricing.GSTRate.String())

	v.SetDefault("carrier.base_url", "https://apiv2.shiprocket.in/v1/external")
	v.SetDefault("carrier.email", "")
	v.SetDefault("carrier.password", "")
	v.SetDefault("carrier.token", "")
	v.SetDefault("carrier.timeout", "20s")
	v.SetDefault("carrier.pickup_location", services.DefaultPayloadConfig().PickupLocation)
	v.SetDefault("carrier.pickup_postcode", "")
	v.SetDefault("carrier.channel_id", "")

	job := jobs.DefaultShipmentCreationConfig()
	v.SetDefault("shipment.step_timeout", "30s")
	v.SetDefault("shipment.lease_ttl", "2m")
	v.SetDefault("shipment.sweep_schedule", job.Schedule)
	v.SetDefault("shipment.sweep_batch", job.BatchSize)
	v.SetDefault("shipment.sweep_min_age", job.MinAge.String())
	v.SetDefault("shipment.queue_size", job.QueueSize)
	v.SetDefault("shipment.workers", job.Workers)
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errList []error

	if strings.TrimSpace(c.HTTP.Port) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("http.port"))
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("http.shutdown_timeout", c.HTTP.ShutdownTimeout, "1ns", "-"))
	}
	for _, field := range []struct{ key, value string }{
		{"database.host", c.Database.Host},
		{"database.port", c.Database.Port},
		{"database.user", c.Database.User},
		{"database.name", c.Database.Name},
	} {
		if strings.TrimSpace(field.value) == "" {
			errList = append(errList, errs.NewValueIsRequiredError(field.key))
		}
	}
	if strings.TrimSpace(c.Carrier.PickupLocation) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("carrier.pickup_location"))
	}
	if strings.TrimSpace(c.Carrier.PickupPostcode) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("carrier.pickup_postcode"))
	}

	errList = append(errList,
		c.Pricing.Validate(),
		c.Carrier.Client().Validate(),
		c.Shipment.Settings().Validate(),
		c.Shipment.Job().Validate(),
	)
	return errors.Join(errList...)
}
