// Package main is the entry point for the carbsmart application.
//
// @title           CarbSmart API
// @version         1.0
// @description     Splits a cooked dish into servings of a target weight and reports the carbohydrates per serving.
//
//	Keeps a library of pans whose tare weight is subtracted from the measured total.
//
// @license.name  MIT
//
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for pan management
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token from /api/auth/token
//
// @tag.name        Plans
// @tag.description Serving plan calculation
//
// @tag.name        Pans
// @tag.description Pan library management
//
// @tag.name        Auth
// @tag.description Bearer token exchange
//
// @tag.name        Logs
// @tag.description Request and audit log
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"os"

	_ "github.com/brandonleon/carbsmart/docs" // swagger docs

	"github.com/brandonleon/carbsmart/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
