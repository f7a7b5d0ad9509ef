package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/EmilioGomex/oac-cix-project/internal/config"
	"github.com/EmilioGomex/oac-cix-project/internal/logger"
	"github.com/EmilioGomex/oac-cix-project/internal/server"
	"github.com/EmilioGomex/oac-cix-project/internal/util"
)

const version = "1.0.0"

var (
	port      = flag.Int("port", 0, "puerto del servidor (config.toml tiene prioridad si declara port)")
	devMode   = flag.Bool("dev", false, "modo desarrollo")
	dataDir   = flag.String("dataDir", "", "directorio de datos (sobrescribe la configuración)")
	noBrowser = flag.Bool("no-browser", false, "no abrir el navegador al arrancar")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Analizador CIX — Observatorio de Acción Climática")
	fmt.Println("==========================================")

	// Las credenciales del backend pueden venir de un .env junto al binario
	if err := godotenv.Load(); err == nil {
		fmt.Println("Variables cargadas desde .env")
	}

	// Cargar configuración
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("no se pudo cargar la configuración, se usan los valores por defecto: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// Los argumentos de línea de comandos sobrescriben la configuración
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Server.DevMode)
	if err != nil {
		log.Fatalf("no se pudo inicializar el logger: %v", err)
	}
	defer zlog.Sync()

	// Sin credenciales del backend no hay nada que hacer: fallar de inmediato
	if err := cfg.Validate(); err != nil {
		zlog.Fatal("configuración incompleta", zap.Error(err))
	}

	srv, err := server.New(cfg, version, zlog)
	if err != nil {
		zlog.Fatal("no se pudo inicializar el servidor", zap.Error(err))
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	// Arrancar el servidor
	go func() {
		fmt.Printf("Servidor escuchando en el puerto %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			zlog.Fatal("el servidor no pudo arrancar", zap.Error(err))
		}
	}()

	// Abrir el navegador
	switch {
	case cfg.Server.DevMode:
		fmt.Printf("Modo desarrollo: visita %s\n", url)
	case *noBrowser:
		fmt.Printf("Interfaz disponible en %s\n", url)
	default:
		fmt.Printf("Abriendo el navegador: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("No se pudo abrir el navegador; visita manualmente: %s\n", url)
		}
	}

	fmt.Println("\nPulsa Ctrl+C para detener el servicio...")

	// Esperar la señal de parada
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nDeteniendo el servicio...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("el apagado no fue limpio: %v", err)
	}
}
