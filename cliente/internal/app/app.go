package app

import (
	"log"
	"path/filepath"

	"MirrorVision/cliente/internal/assets"
	"MirrorVision/cliente/internal/camera"
	"MirrorVision/cliente/internal/client"
	"MirrorVision/cliente/internal/gpu"
	"MirrorVision/cliente/internal/render"
	"MirrorVision/shared/config"
	"MirrorVision/shared/pkg/util"
	"MirrorVision/shared/savegame"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// AppState representa os estados possíveis da aplicação.
type AppState int

const (
	StateViewing AppState = iota // Cena ativa
	StatePaused                  // Menu de pausa
)

// App é a aplicação principal do MirrorVision: dona da janela, do
// dispositivo de software, da cena e da conexão com o relay.
type App struct {
	Config *config.Config
	State  AppState

	// Controlador de câmera em primeira pessoa
	Cam *camera.Controller

	device  *gpu.Device
	scene   *render.Scene
	cmdList *gpu.CommandList

	net     *client.UDPClient
	encoder *InputEncoder

	saves *savegame.Store

	// Textura de apresentação do framebuffer renderizado por software
	frameTex rl.Texture2D

	// Relógio do jogo e da linha do tempo da GPU
	currentFence uint64
	frameCount   int
	totalTime    float32

	// Estatísticas exibidas no HUD
	packetsIn  int
	packetsOut int
	frameTimes *util.RingBuffer[float32]
	spark      []float32

	quit bool
}

// New cria uma nova instância da aplicação.
func New(cfg *config.Config) *App {
	return &App{
		Config:     cfg,
		State:      StateViewing,
		frameTimes: util.NewRingBuffer[float32](120),
		spark:      make([]float32, 0, 128),
	}
}

// Run inicia o loop principal da aplicação.
func (a *App) Run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro fatal recuperado: %v", r)
			panic(r) // Re-throw para o sistema mostrar o erro se necessário
		}
	}()

	// Inicializar janela raylib
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(a.Config.WindowWidth, a.Config.WindowHeight, a.Config.WindowTitle)
	rl.SetTraceLogLevel(rl.LogWarning) // Reduz ruído no terminal

	if a.Config.Fullscreen {
		rl.ToggleFullscreen()
	}

	rl.SetTargetFPS(a.Config.TargetFPS)
	rl.SetExitKey(0) // ESC abre o menu de pausa em vez de fechar a janela

	log.Println("[App] Janela inicializada com sucesso")
	log.Printf("[App] Resolução: %dx%d", a.Config.WindowWidth, a.Config.WindowHeight)

	aspect := float32(a.Config.WindowWidth) / float32(a.Config.WindowHeight)
	a.Cam = camera.New(aspect)

	// O dispositivo rasteriza na resolução da janela; a textura abaixo é o
	// canal de apresentação do backbuffer por software.
	a.device = gpu.NewDevice(int(a.Config.WindowWidth), int(a.Config.WindowHeight))
	a.cmdList = gpu.NewCommandList()

	skull1 := a.loadMesh("skull.txt")
	skull2 := a.loadMesh("skull2.txt")
	a.scene = render.NewScene(a.device, skull1, skull2)

	a.openSaves()

	img := rl.GenImageColor(int(a.Config.WindowWidth), int(a.Config.WindowHeight), rl.Black)
	a.frameTex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	a.encoder = NewInputEncoder(a.Config.PlayerID)
	a.connectServer()

	// Loop principal
	for !a.quit && !rl.WindowShouldClose() {
		a.update()
		a.draw()
	}

	// Cleanup
	a.shutdown()
	rl.UnloadTexture(a.frameTex)
	rl.CloseWindow()
}

// update atualiza a lógica do jogo a cada frame.
func (a *App) update() {
	a.frameCount++

	switch a.State {
	case StateViewing:
		dt := rl.GetFrameTime()
		a.totalTime += dt

		a.updateCamera()
		a.updateInput()
		a.sampleMovement(dt)
		a.tick(dt)
	case StatePaused:
		a.updateInput() // Permite detectar ESC para despausar
	}
}

// loadMesh carrega uma malha do diretório de modelos. Malha ausente vira nil
// e a cena segue sem desenhar o ator correspondente.
func (a *App) loadMesh(name string) *assets.MeshData {
	path := filepath.Join(a.Config.ModelsDir, name)
	data, err := assets.LoadSkullMesh(path)
	if err != nil {
		log.Printf("[Assets] Erro ao carregar %s: %v", path, err)
		return nil
	}
	log.Printf("[Assets] Malha %s carregada: %d vértices, %d triângulos",
		name, len(data.Vertices), len(data.Indices)/3)
	return data
}

// openSaves abre o banco de saves e restaura a posição do jogador local.
func (a *App) openSaves() {
	saves, err := savegame.Open(a.Config.SavePath)
	if err != nil {
		log.Printf("[Save] Erro ao abrir %s: %v", a.Config.SavePath, err)
		return
	}
	a.saves = saves

	p, err := saves.LoadProfile(a.Config.PlayerID)
	if err != nil {
		return // Primeira sessão: fica no spawn padrão
	}
	a.scene.UpdatePlayers(p.PlayerID, p.X, p.Y, p.Z, p.Health)
	log.Printf("[Save] Perfil restaurado: jogador %d em (%.1f, %.1f, %.1f)",
		p.PlayerID, p.X, p.Y, p.Z)
}

// saveProfile grava a posição corrente do jogador local no banco de saves.
func (a *App) saveProfile() {
	if a.saves == nil {
		return
	}
	actor := a.scene.Actors[a.Config.PlayerID]
	if actor == nil {
		return
	}
	profile := &savegame.PlayerProfile{
		PlayerID: a.Config.PlayerID,
		Name:     a.Config.PlayerName,
		Health:   actor.Health,
		X:        actor.Position.X(),
		Y:        actor.Position.Y(),
		Z:        actor.Position.Z(),
	}
	if err := a.saves.SaveProfile(profile); err == nil {
		log.Printf("[Save] Perfil do jogador %d salvo", a.Config.PlayerID)
	}
}

// shutdown realiza a limpeza de recursos.
func (a *App) shutdown() {
	log.Println("[App] Finalizando aplicação...")

	a.saveProfile()

	if a.net != nil {
		a.net.Close()
	}

	// Drena a linha do tempo antes de derrubar o executor.
	a.device.WaitFence(a.currentFence)
	a.device.Destroy()

	if a.saves != nil {
		if err := a.saves.Close(); err != nil {
			log.Printf("[Save] Erro ao fechar banco: %v", err)
		}
	}

	if err := a.Config.Save(); err != nil {
		log.Printf("[App] Erro ao salvar configurações: %v", err)
	}
}
