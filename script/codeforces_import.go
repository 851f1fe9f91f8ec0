package main

import (
	"flag"
	"fmt"
	"os"

	"cpduel/global"
	"cpduel/initalize"
	"cpduel/log/zlog"
	"cpduel/logic"
	"cpduel/model"
	"cpduel/repo"
)

// 手动全量导入题库：go run ./script -c ../config.yaml
func main() {
	configPath := flag.String("c", "config.yaml", "配置文件路径")
	flag.Parse()

	if err := initalize.InitConfig(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	zlog.Init(global.Config)
	if err := initalize.InitDataBase(); err != nil {
		fmt.Fprintf(os.Stderr, "连接数据库失败: %v\n", err)
		os.Exit(1)
	}
	if err := model.MigrateTables(global.DB); err != nil {
		fmt.Fprintf(os.Stderr, "建表失败: %v\n", err)
		os.Exit(1)
	}

	judgeCfg := global.Config.Judge
	client := logic.NewJudgeClient(judgeCfg.BaseURL, judgeCfg.Timeout(), judgeCfg.MaxSubmissions)
	ctx := zlog.NewCtx()
	problems, err := client.FetchProblemCatalog(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "拉取题库失败: %v\n", err)
		os.Exit(1)
	}
	if err := repo.NewCodeforcesProblemRepo(global.DB).BatchUpsert(problems); err != nil {
		fmt.Fprintf(os.Stderr, "写入题库失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("题库导入完成，总数:%d\n", len(problems))
}
