package main

import (
	"github.com/humanbelnik/catalog/internal/app"
	"github.com/humanbelnik/catalog/internal/config"
)

//go:generate swag init -g cmd/app/main.go -d ../../ -o ../../docs

// @title Catalog admin API
// @version 1.0
// @BasePath /api/v1
// @securityDefinitions.apikey AdminToken
// @in header
// @name X-admin-token
func main() {
	app.Go(config.Load())
}
