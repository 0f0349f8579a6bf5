package main

import (
	"studio/internal/cli"

	"github.com/joho/godotenv"
)

func main() {
	// .env 只补充尚未设置的环境变量 / .env only fills env vars not already set
	_ = godotenv.Load()
	cli.Execute()
}
