// @title                       Ayel Intranet API
// @version                     1.0
// @description                 Corporate intranet: mural, calendar, trainings, phone list, shortcuts and directory.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"os"

	"github.com/ayel/intranet/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
