package database

import (
	"testing"

	"loadboard/internal/config"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			"with password",
			config.Config{DBUser: "app", DBPass: "s3cret", DBHost: "db", DBPort: "3306", DBName: "loadboard"},
			"app:s3cret@tcp(db:3306)/loadboard?charset=utf8mb4&parseTime=true&loc=UTC",
		},
		{
			"without password",
			config.Config{DBUser: "root", DBHost: "127.0.0.1", DBPort: "3307", DBName: "loadboard_test"},
			"root@tcp(127.0.0.1:3307)/loadboard_test?charset=utf8mb4&parseTime=true&loc=UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dsn(tt.cfg); got != tt.want {
				t.Errorf("dsn() = %q, want %q", got, tt.want)
			}
		})
	}
}
