package config

import (
	"os"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("setenv %s failed: %v", key, err)
	}
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		}
	})
}

func TestLoadRequiresMySQLDSN(t *testing.T) {
	unsetEnv(t, "MYSQL_DSN")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing MYSQL_DSN")
	}
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, "MYSQL_DSN", "root:root@tcp(localhost:3306)/meal_subscriptions?parseTime=true")
	unsetEnv(t, "KAFKA_BROKERS")
	unsetEnv(t, "DISCOUNT_ENFORCE_VALIDITY")
	unsetEnv(t, "ORDER_NUMBER_MAX_RETRIES")
	unsetEnv(t, "UPDATE_MAX_RETRIES")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.App.ServiceName != "meal-subscriptions-service" {
		t.Fatalf("unexpected service name: %s", cfg.App.ServiceName)
	}
	if cfg.HTTP.Port != "8080" {
		t.Fatalf("unexpected http port: %s", cfg.HTTP.Port)
	}
	if cfg.Kafka.Brokers != nil {
		t.Fatalf("expected no kafka brokers, got %v", cfg.Kafka.Brokers)
	}
	if cfg.Kafka.Topic != "subscription-events" {
		t.Fatalf("unexpected kafka topic: %s", cfg.Kafka.Topic)
	}
	if cfg.Subscriptions.EnforceDiscountValidity {
		t.Fatal("expected discount validity enforcement off by default")
	}
	if cfg.Subscriptions.OrderNumberMaxRetries != 3 || cfg.Subscriptions.UpdateMaxRetries != 3 {
		t.Fatalf("unexpected retry config: %+v", cfg.Subscriptions)
	}
	if cfg.Jobs.CompletionCheckInterval != time.Hour {
		t.Fatalf("unexpected completion interval: %v", cfg.Jobs.CompletionCheckInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	setEnv(t, "MYSQL_DSN", "root:root@tcp(localhost:3306)/meal_subscriptions?parseTime=true")
	setEnv(t, "APP_SERVICE_NAME", "meals-test")
	setEnv(t, "HTTP_PORT", "8181")
	setEnv(t, "MYSQL_MAX_OPEN_CONNS", "20")
	setEnv(t, "MYSQL_MAX_IDLE_CONNS", "8")
	setEnv(t, "MYSQL_CONN_MAX_LIFETIME_MINUTES", "40")
	setEnv(t, "KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	setEnv(t, "KAFKA_NOTIFICATION_TOPIC", "meal-events")
	setEnv(t, "DISCOUNT_ENFORCE_VALIDITY", "true")
	setEnv(t, "ORDER_NUMBER_MAX_RETRIES", "5")
	setEnv(t, "UPDATE_MAX_RETRIES", "7")
	setEnv(t, "COMPLETION_CHECK_INTERVAL_MINUTES", "15")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.App.ServiceName != "meals-test" || cfg.HTTP.Port != "8181" {
		t.Fatalf("unexpected app/http config: %+v %+v", cfg.App, cfg.HTTP)
	}
	if cfg.MySQL.MaxOpenConns != 20 || cfg.MySQL.MaxIdleConns != 8 {
		t.Fatalf("unexpected mysql pool config: %+v", cfg.MySQL)
	}
	if cfg.MySQL.ConnMaxLifetime != 40*time.Minute {
		t.Fatalf("unexpected mysql lifetime: %v", cfg.MySQL.ConnMaxLifetime)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Fatalf("unexpected kafka brokers: %v", cfg.Kafka.Brokers)
	}
	if cfg.Kafka.Topic != "meal-events" {
		t.Fatalf("unexpected kafka topic: %s", cfg.Kafka.Topic)
	}
	if !cfg.Subscriptions.EnforceDiscountValidity {
		t.Fatal("expected discount validity enforcement on")
	}
	if cfg.Subscriptions.OrderNumberMaxRetries != 5 || cfg.Subscriptions.UpdateMaxRetries != 7 {
		t.Fatalf("unexpected retry config: %+v", cfg.Subscriptions)
	}
	if cfg.Jobs.CompletionCheckInterval != 15*time.Minute {
		t.Fatalf("unexpected completion interval: %v", cfg.Jobs.CompletionCheckInterval)
	}
}

func TestGetIntEnvIgnoresGarbage(t *testing.T) {
	setEnv(t, "ORDER_NUMBER_MAX_RETRIES", "lots")
	if got := getIntEnv("ORDER_NUMBER_MAX_RETRIES", 3); got != 3 {
		t.Fatalf("expected default 3, got %d", got)
	}
}

func TestGetListEnvTrimsEntries(t *testing.T) {
	setEnv(t, "KAFKA_BROKERS", " a:9092 ,, b:9092 ")
	got := getListEnv("KAFKA_BROKERS")
	if len(got) != 2 || got[0] != "a:9092" || got[1] != "b:9092" {
		t.Fatalf("unexpected list: %v", got)
	}
}
