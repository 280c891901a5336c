package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/freakmaxi/kertish-serve/basics/log"
	"github.com/freakmaxi/kertish-serve/serve-node/config"
	"github.com/freakmaxi/kertish-serve/serve-node/filesystem"
	"github.com/freakmaxi/kertish-serve/serve-node/manager"
	"github.com/freakmaxi/kertish-serve/serve-node/routing"
	"github.com/freakmaxi/kertish-serve/serve-node/services"
	"go.uber.org/zap"
)

var version = "XX.X.XXXX"

func main() {
	args := os.Args[1:]
	if len(args) > 0 && strings.Compare(args[0], "--version") == 0 {
		fmt.Println(version)
		return
	}

	logger, console := log.NewLogger("serve")
	defer func() { _ = logger.Sync() }()

	printWelcome(console)

	logger.Info("------------ Starting Serve Node ------------")

	c := config.New()

	configFile := os.Getenv("CONFIG_FILE")
	if len(configFile) > 0 {
		logger.Sugar().Infof("CONFIG_FILE: %s", configFile)
		if err := c.LoadFile(configFile); err != nil {
			logger.Error("Configuration file is not valid", zap.Error(err))
			os.Exit(5)
		}
	}

	if err := c.LoadEnvironment(os.Getenv); err != nil {
		logger.Error("Environment configuration is not valid", zap.Error(err))
		os.Exit(6)
	}

	if err := c.Validate(); err != nil {
		logger.Error("Configuration is not valid", zap.Error(err))
		os.Exit(10)
	}

	logger.Sugar().Infof("BIND_ADDRESS: %s", c.BindAddress)
	logger.Sugar().Infof("BASE_DIRECTORY: %s", c.BaseDirectory)
	logger.Sugar().Infof("ROUTE_PREFIX: %s", c.Prefix())
	logger.Sugar().Infof("RFC_FRAMING: %t", c.RFCFraming)
	logger.Sugar().Infof("READ_TIMEOUT: %d sec.", c.ReadTimeout)
	logger.Sugar().Infof("WRITE_TIMEOUT: %d sec.", c.WriteTimeout)

	store, err := filesystem.NewManager(c.BaseDirectory, logger)
	if err != nil {
		logger.Error("File Store setup is failed", zap.Error(err))
		os.Exit(20)
	}
	logger.Sugar().Infof("File Store is serving from %s", store.BaseDirectory())

	serving := manager.NewServing(store, logger)
	fileRouter := routing.NewFileRouter(serving, manager.Framing{RFC: c.RFCFraming}, c.Prefix(), logger)

	routerManager := routing.NewManager()
	routerManager.Add(fileRouter)

	ctx, cancelFunc := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancelFunc()

	proxy := services.NewProxy(c.BindAddress, routerManager, c.ReadTimeoutDuration(), c.WriteTimeoutDuration(), logger)
	if err := proxy.Start(ctx); err != nil {
		logger.Error("Serve Node is failed", zap.Error(err))
		os.Exit(30)
	}
}

func printWelcome(console bool) {
	if !console {
		fmt.Printf("Kertish Serve, version %s\n", version)
		fmt.Printf("Visit: https://github.com/freakmaxi/kertish-serve\n")
		return
	}

	fmt.Println()
	fmt.Println("     'o@@@@@@o,  o@@@@@@o")
	fmt.Println("   'o@@@@o/-\\@@|@@/--\\@@@o             __ _  ____  ____  ____  __  ____  _  _")
	fmt.Println("  `o@/.       `@@~      o@@o          (  / )(  __)(  _ \\(_  _)(  )/ ___)/ )( \\")
	fmt.Println("  o@@:   oo    @@ .@@@. :@@~           )  (  ) _)  )   /  )(   )( \\___ \\) __ (")
	fmt.Println("  o@@,  .@@@.  @@=  oo  o@o`          (__\\_)(____)(__\\_) (__) (__)(____/\\_)(_/")
	fmt.Println("  '@@%`      `@@@@o....@@%`")
	fmt.Println("   :@@@@o....@@@@@@@@@@@@@%~                                 s e r v e")
	fmt.Printf("o@@@@@@%%@@@@@@@@@@@@@@@@@@@@@@@@@@@@@`  @o  @               version %s\n", version)
	fmt.Println(" ~o@@@@|  `O@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@/`")
	fmt.Println("              \\\\O@@@@@@@@@@@@@@@@@@@@@O/`")
	fmt.Println()
	fmt.Printf("Visit: https://github.com/freakmaxi/kertish-serve\n")
	fmt.Println()
}
