package main

import (
	"fmt"
	"os"

	"cpduel/cmd/flags"
	"cpduel/initalize"
)

func main() {
	opts := flags.Parse()
	if err := initalize.Init(opts); err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}
	if err := initalize.RunServer(); err != nil {
		fmt.Fprintf(os.Stderr, "服务退出: %v\n", err)
		os.Exit(1)
	}
}
