// Launcher do MirrorVision: sobe o relay, espera ele responder e abre um
// cliente por jogador apontando para a mesma sala.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"
)

func binPath(name string) string {
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	abs, err := filepath.Abs(filepath.Join("bin", name))
	if err != nil {
		return filepath.Join("bin", name)
	}
	return abs
}

// waitTelemetry sonda a porta TCP da telemetria até o servidor atender.
// O relay abre o socket UDP antes do HTTP, então porta aberta = relay pronto.
func waitTelemetry(addr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 500*time.Millisecond)
		if err == nil {
			conn.Close()
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("telemetria em %s não respondeu em %v", addr, timeout)
}

func main() {
	players := flag.Int("players", 2, "quantos clientes abrir (1 ou 2)")
	relayAddr := flag.String("relay", "127.0.0.1:8000", "endereço UDP do relay")
	telemetryAddr := flag.String("telemetry", "127.0.0.1:8080", "endereço HTTP da telemetria")
	flag.Parse()

	fmt.Println("╔══════════════════════════════════════╗")
	fmt.Println("║        MirrorVision Launcher         ║")
	fmt.Println("╚══════════════════════════════════════╝")

	if *players < 1 {
		*players = 1
	}
	if *players > 2 {
		*players = 2
	}

	// 1. Relay
	fmt.Println("[1/2] Iniciando o relay...")
	server := exec.Command(binPath("servidor"), "-listen", *relayAddr, "-telemetry", *telemetryAddr)
	server.Stdout = os.Stdout
	server.Stderr = os.Stderr
	if err := server.Start(); err != nil {
		log.Fatalf("Erro ao iniciar o relay: %v", err)
	}

	fmt.Println("Aguardando o relay abrir os sockets...")
	if err := waitTelemetry(*telemetryAddr, 5*time.Second); err != nil {
		server.Process.Kill()
		log.Fatalf("Relay não subiu: %v", err)
	}

	// 2. Um cliente por jogador, cada um com seu id e nome
	fmt.Printf("[2/2] Abrindo %d cliente(s)...\n", *players)
	names := []string{"alice", "bob"}
	clients := make([]*exec.Cmd, 0, *players)
	for i := 0; i < *players; i++ {
		c := exec.Command(binPath("cliente"),
			"-server", *relayAddr,
			"-player", fmt.Sprint(i+1),
			"-name", names[i],
		)
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Start(); err != nil {
			fmt.Printf("ERRO: não foi possível abrir o cliente %d: %v\n", i+1, err)
			continue
		}
		clients = append(clients, c)
	}
	if len(clients) == 0 {
		server.Process.Kill()
		server.Wait()
		log.Fatal("Nenhum cliente subiu; encerrando o relay.")
	}

	fmt.Println("\nMirrorVision no ar. Ctrl+C encerra tudo.")

	// 3. Espera os clientes saírem ou o interrupt chegar; o relay morre junto.
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)

	done := make(chan error, len(clients))
	for _, c := range clients {
		c := c
		go func() { done <- c.Wait() }()
	}

	remaining := len(clients)
	for remaining > 0 {
		select {
		case <-sigc:
			fmt.Println("\nInterrompido; encerrando os processos...")
			for _, c := range clients {
				if c.Process != nil {
					c.Process.Kill()
				}
			}
			for remaining > 0 {
				<-done
				remaining--
			}
		case err := <-done:
			remaining--
			if err != nil {
				fmt.Printf("Cliente terminou com erro: %v\n", err)
			}
		}
	}

	server.Process.Kill()
	server.Wait()
	fmt.Println("Todos os processos encerrados. Até a próxima!")
}
