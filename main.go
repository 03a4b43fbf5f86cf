package main

import (
	"fmt"

	"github.com/offrampkit/offramp-widget-backend/api"
	"github.com/offrampkit/offramp-widget-backend/utils"
)

var envPath string = "."

func main() {

	config, err := utils.LoadConfig(envPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	fmt.Printf("starting with config: %+v\n", config.Redact())

	server := api.NewServer(envPath)
	server.Start()
}
