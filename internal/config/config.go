package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/felipe23murillo/parking/internal/domain"
)

type Config struct {
	ServerPort string
	DataPath   string

	JWTSecret          string
	JWTExpirationHours time.Duration

	// Location is the fixed zone used for "same calendar day" revenue
	// filters and time-of-day displays.
	Location *time.Location

	// SpaceCounts sizes the seeded inventory per category. Changing it
	// after first seed has no effect until a full reseed.
	SpaceCounts map[domain.VehicleCategory]int
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	jwtExpHours, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))

	tzName := getEnv("TIME_ZONE", "America/Bogota")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Printf("Warning: unknown time zone '%s', falling back to UTC", tzName)
		loc = time.UTC
	}

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DataPath:   getEnv("DATA_PATH", "parking.db"),

		JWTSecret:          getEnv("JWT_SECRET", "local-parking-lot-secret"),
		JWTExpirationHours: time.Duration(jwtExpHours) * time.Hour,

		Location: loc,

		SpaceCounts: map[domain.VehicleCategory]int{
			domain.CategoryCar:        getEnvInt("SPACES_CAR", 20),
			domain.CategoryMotorcycle: getEnvInt("SPACES_MOTORCYCLE", 15),
			domain.CategoryTruck:      getEnvInt("SPACES_TRUCK", 5),
			domain.CategoryBicycle:    getEnvInt("SPACES_BICYCLE", 10),
		},
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			return n
		}
		log.Printf("Warning: invalid value for '%s', using default %d", key, fallback)
	}
	return fallback
}
