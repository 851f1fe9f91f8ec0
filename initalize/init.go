package initalize

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cpduel/cmd/flags"
	"cpduel/configs"
	"cpduel/global"
	"cpduel/log/zlog"
	"cpduel/logic"
	"cpduel/model"
	routerg "cpduel/router"
)

// Init 按顺序拉起：配置 -> 日志 -> MySQL -> Redis -> 雪花节点 -> 业务组件
func Init(opts flags.Options) error {
	if err := InitConfig(opts.ConfigPath); err != nil {
		return err
	}
	zlog.Init(global.Config)
	if err := InitDataBase(); err != nil {
		return err
	}
	if opts.Migrate {
		if err := model.MigrateTables(global.DB); err != nil {
			return fmt.Errorf("建表失败: %w", err)
		}
		zlog.Infof("数据库迁移完成")
		os.Exit(0)
	}
	if err := InitRedis(); err != nil {
		return err
	}
	if err := InitSnowflake(); err != nil {
		return err
	}
	if err := logic.Setup(); err != nil {
		return fmt.Errorf("业务组件初始化失败: %w", err)
	}
	return nil
}

func InitConfig(path string) error {
	config, err := configs.Load(path)
	if err != nil {
		return err
	}
	global.Config = config
	global.Path = path
	return nil
}

func InitDataBase() error {
	logLevel := gormlogger.Warn
	if global.Config.App.Env == "dev" {
		logLevel = gormlogger.Info
	}
	db, err := gorm.Open(mysql.Open(global.Config.MySQL.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("连接MySQL失败: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	global.DB = db
	return nil
}

func InitRedis() error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     global.Config.Redis.Addr(),
		Password: global.Config.Redis.Password,
		DB:       global.Config.Redis.DB,
	})
	global.Rdb = rdb
	return nil
}

func InitSnowflake() error {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return fmt.Errorf("初始化雪花节点失败: %w", err)
	}
	global.Node = node
	return nil
}

// RunServer 启动HTTP服务，阻塞到退出信号
func RunServer() error {
	if global.Config.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	routerg.InitWebRouter(engine)

	addr := fmt.Sprintf("%s:%d", global.Config.App.Host, global.Config.App.Port)
	zlog.Infof("服务启动 addr=%s", addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- engine.Run(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		zlog.Infof("收到退出信号:%v", sig)
		Eve()
		return nil
	}
}

// Eve 收尾：停后台协程、刷日志、断开连接
func Eve() {
	logic.Shutdown()
	if global.Rdb != nil {
		_ = global.Rdb.Close()
	}
	if global.DB != nil {
		if sqlDB, err := global.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	zlog.Sync()
}
