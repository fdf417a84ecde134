package main

import (
	"os"

	"github.com/guorant/hexo/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
