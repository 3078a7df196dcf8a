package bootstrap

import (
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"campsite-booking/internal/pkg/config"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		loadConfig,
	),
)

// loadConfig reads a local .env first when present, then the environment.
func loadConfig() (config.Config, error) {
	_ = godotenv.Load()
	return config.LoadConfig()
}
