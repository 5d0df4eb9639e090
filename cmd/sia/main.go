// Package main is the entrypoint for the SIA meeting service.
package main

import (
	"log"

	"github.com/iamavinashmourya/SIA/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
