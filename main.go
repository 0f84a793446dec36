package main

import (
	"log"
	"net"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hpcfactory/condor-api/api"
)

func main() {
	var config api.Config
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		cb, err := os.ReadFile(configPath)
		if err != nil {
			log.Fatal(err)
		}
		if err := yaml.Unmarshal(cb, &config); err != nil {
			log.Fatal(err)
		}
	}

	r := api.Router(&api.Handler{Cfg: config})

	listenAddress := config.ListenAddress
	if listenAddress == "" {
		listenAddress = os.Getenv("LISTEN_ADDRESS")
	}
	if listenAddress == "" {
		listenAddress = ":8080"
	}
	l, err := net.Listen("tcp", listenAddress)
	if err != nil {
		log.Fatal(err)
	}
	if err := http.Serve(l, r); err != nil {
		log.Fatal(err)
	}
}
