package main

import (
	"flag"
	"log"
	"strings"
	"time"

	"expensetracker/config"
	"expensetracker/database"
	"expensetracker/router"
	"expensetracker/state"
	"expensetracker/storage"
)

// @title 个人财务跟踪 API
// @version 1.0
// @description 个人财务跟踪系统 API，支持交易记录、月度目标、预算建议、奖励积分和数据导出
// @host localhost:8080
// @BasePath /

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("个人财务跟踪系统 v1.0.0")
		return
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		// 自动添加冒号前缀
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}

	// 打印配置信息
	config.PrintConfig()

	// 初始化数据库；失败时降级为内存模式，服务保持可用但数据不落盘
	var repo storage.Repository
	degraded := false
	if err := database.Init(cfg); err != nil {
		log.Printf("数据库初始化失败，切换到内存模式: %v", err)
		repo = storage.NewMemoryRepository()
		degraded = true
	} else {
		repo = storage.NewGormRepository(database.DB)
	}

	// 加载持久化状态
	store := state.NewStore(repo, degraded)
	if err := store.Load(time.Now()); err != nil {
		log.Fatalf("加载持久化状态失败: %v", err)
	}

	// 设置路由
	r := router.SetupRouter(cfg, store)

	// 启动服务器
	log.Printf("==========================================")
	log.Printf("  💰 个人财务跟踪系统已启动")
	log.Printf("==========================================")
	log.Printf("  API接口:  http://localhost%s/api/v1/", cfg.Server.Port)
	log.Printf("  健康检查: http://localhost%s/health", cfg.Server.Port)
	log.Printf("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
