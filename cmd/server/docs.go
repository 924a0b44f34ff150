package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           BeeZen Support Analytics API
// @version         0.1.0
// @description     Delta sync of helpdesk tickets into Postgres and aggregated dashboard views.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
