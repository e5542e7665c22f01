package config

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)
	for _, k := range []string{"UPDATE_INTERVAL", "DELAY_PROBABILITY", "DELAYED_STATUS_PROBABILITY",
		"MAX_DELAY_MINUTES", "RANDOM_SEED", "SEED_SOURCE", "DB_ENABLED", "HTTP_LISTEN_ADDR"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	is.NoErr(err)
	is.Equal(cfg.Simulation.UpdateInterval, 30*time.Second)
	is.Equal(cfg.Simulation.DelayProbability, 0.2)
	is.Equal(cfg.Simulation.DelayedStatusProbability, 0.1)
	is.Equal(cfg.Simulation.MaxDelayMinutes, 4)
	is.Equal(cfg.Simulation.RandomSeed, uint64(0))
	is.Equal(cfg.HTTP.ListenAddr, ":8080")
	is.True(!cfg.Database.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	is := is.New(t)
	t.Setenv("UPDATE_INTERVAL", "5s")
	t.Setenv("DELAY_PROBABILITY", "0.5")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("SEED_SOURCE", "seed.yaml")

	cfg, err := Load()
	is.NoErr(err)
	is.Equal(cfg.Simulation.UpdateInterval, 5*time.Second)
	is.Equal(cfg.Simulation.DelayProbability, 0.5)
	is.Equal(cfg.Simulation.RandomSeed, uint64(42))
	is.True(cfg.Database.Enabled)
	is.Equal(cfg.Simulation.SeedSource, "seed.yaml")
}

func TestLoadRejectsBadProbability(t *testing.T) {
	t.Setenv("DELAY_PROBABILITY", "1.5")
	if _, err := Load(); err == nil {
		t.Error("Expected error for probability above 1")
	}
}

func TestLoadRejectsBadRandomSeed(t *testing.T) {
	for _, seed := range []string{"-1", "18446744073709551616", "abc"} {
		t.Run(seed, func(t *testing.T) {
			t.Setenv("RANDOM_SEED", seed)
			if _, err := Load(); err == nil {
				t.Errorf("Expected error for RANDOM_SEED=%q", seed)
			}
		})
	}
}

func TestLoadAcceptsLargeRandomSeed(t *testing.T) {
	is := is.New(t)
	t.Setenv("RANDOM_SEED", "18446744073709551615")

	cfg, err := Load()
	is.NoErr(err)
	is.Equal(cfg.Simulation.RandomSeed, uint64(18446744073709551615))
}

func TestUnparseableValuesFallBackToDefaults(t *testing.T) {
	is := is.New(t)
	t.Setenv("UPDATE_INTERVAL", "soon")
	t.Setenv("MAX_DELAY_MINUTES", "many")
	t.Setenv("DELAY_PROBABILITY", "")

	cfg, err := Load()
	is.NoErr(err)
	is.Equal(cfg.Simulation.UpdateInterval, 30*time.Second)
	is.Equal(cfg.Simulation.MaxDelayMinutes, 4)
}

func TestConnectionString(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "citytransit"}
	want := "host=db port=5432 user=u password=p dbname=citytransit sslmode=disable"
	if got := c.ConnectionString(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
