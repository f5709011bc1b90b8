// Command newsapi serves the news REST API.
//
//	@title			News API
//	@version		1.0
//	@description	Topics, articles, comments and users, with idempotent vote updates.
//	@BasePath		/api
package main

import (
	"os"

	"github.com/tbourn/go-news-api/cmd/newsapi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
