package flags

import "flag"

type Options struct {
	ConfigPath string
	Migrate    bool
}

// Parse 命令行参数：-c 配置文件路径，-m 执行建表后退出
func Parse() Options {
	opts := Options{}
	flag.StringVar(&opts.ConfigPath, "c", "config.yaml", "配置文件路径")
	flag.BoolVar(&opts.Migrate, "m", false, "执行数据库迁移后退出")
	flag.Parse()
	return opts
}
