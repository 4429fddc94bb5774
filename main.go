package main

import (
	"Gin_postgres_redis_companies/app"
	"Gin_postgres_redis_companies/config"
	"Gin_postgres_redis_companies/routes"
	"context"
	"log"
)

func main() {
	config.LoadEnv()
	application := app.MustNew()
	defer application.Close()

	r := application.Router
	s, err := routes.RegisterRoutes(r, application)
	if err != nil {
		log.Fatalf("routes: %v", err)
	}
	app.BootstrapOwner(context.Background(), application.Config, s.Repo)

	port := application.Config.Port
	log.Printf("listening on :%s", port)
	_ = r.Run(":" + port)
}
