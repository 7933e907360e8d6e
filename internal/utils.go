package internal

import (
	"log"
	"os"
	"strings"
)

func Env(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("missing env: %s", key)
	}
	return v
}

// TrimBaseURL drops trailing slashes so paths can be appended with "/".
func TrimBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}
