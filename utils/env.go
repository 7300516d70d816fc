package utils

import "os"

// IsProduction checks if the environment is production.
func IsProduction() bool {
	return os.Getenv("ENV") == "production"
}
