package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"MirrorVision/cliente/internal/app"
	"MirrorVision/shared/config"
)

func main() {
	// IMPORTANTE para estabilidade: Raylib/OpenGL exige rodar na thread principal do SO
	runtime.LockOSThread()

	// Flags de linha de comando
	server := flag.String("server", "", "Endereço UDP do relay (padrão: config)")
	player := flag.Int("player", 0, "Id do jogador local (1 ou 2)")
	name := flag.String("name", "", "Nome do jogador")
	port := flag.Int("port", -1, "Porta UDP local (0 = efêmera)")
	fullscreen := flag.Bool("fullscreen", false, "Iniciar em tela cheia")
	debug := flag.Bool("debug", false, "Mostrar informações de debug")
	width := flag.Int("width", 0, "Largura da janela")
	height := flag.Int("height", 0, "Altura da janela")
	flag.Parse()

	// Configurar log em arquivo
	f, err := os.OpenFile("debug_mv.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err == nil {
		log.SetOutput(f)
		log.Println("--- INICIANDO MIRROR VISION ---")
	}

	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Println("╔══════════════════════════════════════╗")
	log.Println("║         MirrorVision v0.1.0          ║")
	log.Println("║  Sala espelhada sincronizada por UDP ║")
	log.Println("╚══════════════════════════════════════╝")

	// Carregar configurações
	cfg := config.Load()

	// Aplicar flags de linha de comando (sobrescrevem o config salvo)
	if *server != "" {
		cfg.ServerAddr = *server
	}
	if *player > 0 {
		cfg.PlayerID = uint16(*player)
	}
	if *name != "" {
		cfg.PlayerName = *name
	}
	if *port >= 0 {
		cfg.LocalPort = *port
	}
	if *fullscreen {
		cfg.Fullscreen = true
	}
	if *debug {
		cfg.ShowDebugInfo = true
	}
	if *width > 0 {
		cfg.WindowWidth = int32(*width)
	}
	if *height > 0 {
		cfg.WindowHeight = int32(*height)
	}

	// Criar e rodar a aplicação
	application := app.New(cfg)
	application.Run()
}
