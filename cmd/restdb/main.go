package main

import (
	"fmt"
	"os"

	"github.com/fulldump/goconfig"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/restdb/bootstrap"
	"github.com/fulldump/restdb/configuration"
)

var banner = `
                 _      _ _
 _ __ ___  ___| |_ __| | |__
| '__/ _ \/ __| __/ _' | '_ \
| | |  __/\__ \ || (_| | |_) |
|_|  \___||___/\__\__,_|_.__/
               version ` + bootstrap.VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(&c)

	if c.Version {
		fmt.Println("Version:", bootstrap.VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		json.MarshalWrite(os.Stdout, c, jsontext.WithIndent("    "))
		fmt.Println()
	}

	start, _ := bootstrap.Bootstrap(&c)
	start()
}
