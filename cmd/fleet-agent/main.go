package main

import (
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
