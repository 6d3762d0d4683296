package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	DBDSN           string
	LogFile         string
	CheckoutRetries int
	CheckoutBackoff time.Duration
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "shopmart.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./shopmart.log"
	}
	retries := intEnv("CHECKOUT_RETRIES", 3)
	backoff := time.Duration(intEnv("CHECKOUT_BACKOFF_MS", 50)) * time.Millisecond

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, CheckoutRetries: retries, CheckoutBackoff: backoff}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s CHECKOUT_RETRIES=%d CHECKOUT_BACKOFF=%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.CheckoutRetries, cfg.CheckoutBackoff)
	return cfg
}

func intEnv(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
