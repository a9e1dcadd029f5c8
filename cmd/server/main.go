package main

import (
	"log"
	"os"

	approuters "github.com/HARSHSHRI12/Nogen-Backend/internal/app_routers"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/configuration"
)

func main() {
	container, err := configuration.BuildContainer(os.Getenv("NOGEN_CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}
	defer container.Close()

	approuters.StartServer(container)
}
