package main

type Config struct {
	DashboardURL             string `env:"DASHBOARD_URL,required"`
	DashboardApiKey          string `env:"DASHBOARD_API_KEY,required"`
	PostgresConnectionString string `env:"POSTGRES_CONNECTION_STRING,required"`
}
