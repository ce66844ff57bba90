// Servidor do MirrorVision: relay UDP de movimento entre os pares e hub
// WebSocket de telemetria para observadores.
package main

import (
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"MirrorVision/shared/config"
)

// observer é uma conexão WebSocket de observação com sua fila de envio.
type observer struct {
	conn *websocket.Conn
	send chan []byte
}

// writePump drena a fila de envio para o socket. Encerra quando o hub fechar
// a fila ou a escrita falhar.
func (o *observer) writePump() {
	defer o.conn.Close()
	for message := range o.send {
		if err := o.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			return
		}
	}
}

// readPump descarta tudo o que o observador mandar; serve só para detectar o
// fechamento da conexão.
func (o *observer) readPump(hub *Hub) {
	defer func() {
		hub.unregister <- o
		o.conn.Close()
	}()
	for {
		if _, _, err := o.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Hub gerencia as conexões WebSocket de telemetria.
type Hub struct {
	observers  map[*observer]bool
	broadcast  chan []byte
	register   chan *observer
	unregister chan *observer
}

func newHub() *Hub {
	return &Hub{
		observers:  make(map[*observer]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *observer),
		unregister: make(chan *observer),
	}
}

// run serializa registro, saída e broadcast. Observador com a fila de envio
// cheia é derrubado: o relay nunca espera por um observador lento.
func (h *Hub) run() {
	for {
		select {
		case obs := <-h.register:
			h.observers[obs] = true
			log.Printf("[Hub] Observador registrado: %s", obs.conn.RemoteAddr())
		case obs := <-h.unregister:
			if h.observers[obs] {
				delete(h.observers, obs)
				close(obs.send)
				log.Printf("[Hub] Observador desconectado: %s", obs.conn.RemoteAddr())
			}
		case message := <-h.broadcast:
			for obs := range h.observers {
				select {
				case obs.send <- message:
				default:
					delete(h.observers, obs)
					close(obs.send)
					log.Printf("[Hub] Observador lento derrubado: %s", obs.conn.RemoteAddr())
				}
			}
		}
	}
}

// safeSend publica no hub sem nunca bloquear o chamador. Quadro de telemetria
// perdido não faz falta; o próximo chega em um segundo.
func (h *Hub) safeSend(data []byte) {
	select {
	case h.broadcast <- data:
	default:
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// serveWs promove a requisição HTTP a WebSocket e registra o observador.
func serveWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Hub] Erro no upgrade do WebSocket: %v", err)
		return
	}

	obs := &observer{conn: conn, send: make(chan []byte, 16)}
	hub.register <- obs

	go obs.writePump()
	go obs.readPump(hub)
}

// publishTelemetry fotografa o relay a cada segundo e publica o quadro
// binário no hub.
func publishTelemetry(relay *Relay, hub *Hub) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		frame := relay.Snapshot()
		hub.safeSend(frame.Marshal())
	}
}

func main() {
	logFile, err := os.OpenFile("servidor_mv.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err == nil {
		log.SetOutput(io.MultiWriter(os.Stdout, logFile))
		defer logFile.Close()
	}
	log.SetFlags(log.Ltime | log.Lshortfile)

	listen := flag.String("listen", "", "endereço UDP de escuta do relay (vazio = config)")
	telemetry := flag.String("telemetry", "", "endereço HTTP do hub de telemetria (vazio = config)")
	rosterMs := flag.Int("roster-ms", 0, "período do broadcast de roster em ms (0 = config)")
	flag.Parse()

	cfg := config.Load()
	if *listen != "" {
		cfg.RelayAddr = *listen
	}
	if *telemetry != "" {
		cfg.TelemetryAddr = *telemetry
	}
	if *rosterMs > 0 {
		cfg.RosterPeriodMs = *rosterMs
	}

	log.Println("╔════════════════════════════════════════╗")
	log.Println("║       MirrorVision RELAY v0.1.0        ║")
	log.Println("║   Sala espelhada sincronizada por UDP  ║")
	log.Println("╚════════════════════════════════════════╝")

	hub := newHub()
	go hub.run()

	relay, err := NewRelay(cfg.RelayAddr, time.Duration(cfg.RosterPeriodMs)*time.Millisecond)
	if err != nil {
		log.Fatalf("Erro fatal ao abrir o relay: %v", err)
	}

	go publishTelemetry(relay, hub)

	go func() {
		http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
			serveWs(hub, w, r)
		})
		log.Printf("[Hub] Telemetria em ws://%s/ws", cfg.TelemetryAddr)
		if err := http.ListenAndServe(cfg.TelemetryAddr, nil); err != nil {
			log.Printf("[Hub] Servidor HTTP encerrado: %v", err)
		}
	}()

	relay.Run()
}
