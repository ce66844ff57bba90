// Package gpu implementa um dispositivo gráfico de software com a mesma
// disciplina de uma fila de GPU real: listas de comando gravadas pela
// thread principal, um executor assíncrono que rasteriza em ordem de
// submissão, fences para sincronizar os dois lados e presente com
// buffer triplo. O cliente usa o dispositivo para os passes de espelho
// e sombra por stencil.
package gpu

import (
	"log"
	"sync"

	"MirrorVision/shared/pkg/util"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxLights é o número de slots de luz por passe.
const MaxLights = 16

// MeshID identifica uma malha criada no dispositivo.
type MeshID int32

// TextureID identifica uma textura criada no dispositivo.
type TextureID int32

// Vertex é o layout de vértice das malhas.
type Vertex struct {
	Pos    mgl32.Vec3
	Normal mgl32.Vec3
	UV     mgl32.Vec2
}

// Light é uma luz de um passe. Apenas a forma direcional (Strength e
// Direction) é avaliada pelo sombreamento.
type Light struct {
	Strength     mgl32.Vec3
	FalloffStart float32
	Direction    mgl32.Vec3
	FalloffEnd   float32
	Position     mgl32.Vec3
	SpotPower    float32
}

// ObjectConstants são as constantes por objeto. As matrizes são armazenadas
// transpostas; o executor destranspõe antes de usar.
type ObjectConstants struct {
	World        mgl32.Mat4
	TexTransform mgl32.Mat4
}

// MaterialConstants são as constantes por material. MatTransform também é
// armazenada transposta.
type MaterialConstants struct {
	DiffuseAlbedo mgl32.Vec4
	FresnelR0     mgl32.Vec3
	Roughness     float32
	MatTransform  mgl32.Mat4
}

// PassConstants são as constantes por passe. Todas as matrizes são
// armazenadas transpostas.
type PassConstants struct {
	View        mgl32.Mat4
	InvView     mgl32.Mat4
	Proj        mgl32.Mat4
	InvProj     mgl32.Mat4
	ViewProj    mgl32.Mat4
	InvViewProj mgl32.Mat4

	EyePosW             mgl32.Vec3
	RenderTargetSize    mgl32.Vec2
	InvRenderTargetSize mgl32.Vec2
	NearZ               float32
	FarZ                float32
	TotalTime           float32
	DeltaTime           float32

	AmbientLight mgl32.Vec4
	FogColor     mgl32.Vec4
	FogStart     float32
	FogRange     float32

	Lights [MaxLights]Light
}

type meshData struct {
	vertices []Vertex
	indices  []uint16
}

type textureData struct {
	width  int
	height int
	pixels []uint8 // RGBA8
}

type timelineKind uint8

const (
	timelineSubmit timelineKind = iota
	timelineSignal
	timelinePresent
)

type timelineItem struct {
	kind  timelineKind
	cmds  []command
	fence uint64
}

// Device é o dispositivo de software. A thread principal cria recursos,
// grava listas de comando e as submete; o executor roda em goroutine
// própria e consome a linha do tempo em ordem. As constantes referenciadas
// pelos comandos são lidas na execução, não na gravação: reescrever um
// slot de constantes antes do fence correspondente corrompe o frame em
// voo, exatamente como numa GPU real.
type Device struct {
	width  int
	height int

	// Recursos imutáveis depois do primeiro Submit.
	meshes   []meshData
	textures []textureData

	// Alvos de desenho. frames é o buffer triplo de cor; profundidade e
	// stencil são únicos porque só o backbuffer corrente é desenhado.
	frames  [3][]uint8
	depth   []float32
	stencil []uint8

	timeline chan timelineItem
	done     chan struct{}

	fenceMu   sync.Mutex
	fenceCond *sync.Cond
	completed uint64

	// Rotação de presente: o executor desenha em writeIdx, publica no slot
	// compartilhado e o consumidor troca o seu readIdx por ele.
	presentMu   util.SpinLock
	writeIdx    int
	sharedIdx   int
	readIdx     int
	sharedFresh bool

	// Estado corrente do executor; só a goroutine dele toca.
	pso        *PipelineState
	stencilRef uint8
	pass       *PassConstants
}

// NewDevice cria o dispositivo e inicia o executor.
func NewDevice(width, height int) *Device {
	d := &Device{
		width:     width,
		height:    height,
		depth:     make([]float32, width*height),
		stencil:   make([]uint8, width*height),
		timeline:  make(chan timelineItem, 64),
		done:      make(chan struct{}),
		writeIdx:  0,
		sharedIdx: 1,
		readIdx:   2,
	}
	d.fenceCond = sync.NewCond(&d.fenceMu)
	for i := range d.frames {
		d.frames[i] = make([]uint8, width*height*4)
	}
	for i := range d.depth {
		d.depth[i] = 1
	}

	go d.run()

	log.Printf("[GPU] Dispositivo de software criado: %dx%d, buffer triplo", width, height)
	return d
}

// Width devolve a largura do backbuffer.
func (d *Device) Width() int { return d.width }

// Height devolve a altura do backbuffer.
func (d *Device) Height() int { return d.height }

// CreateMesh registra uma malha. Deve ser chamada antes do primeiro Submit.
func (d *Device) CreateMesh(vertices []Vertex, indices []uint16) MeshID {
	d.meshes = append(d.meshes, meshData{vertices: vertices, indices: indices})
	return MeshID(len(d.meshes) - 1)
}

// CreateTexture registra uma textura RGBA8. Deve ser chamada antes do
// primeiro Submit.
func (d *Device) CreateTexture(width, height int, pixels []uint8) TextureID {
	d.textures = append(d.textures, textureData{width: width, height: height, pixels: pixels})
	return TextureID(len(d.textures) - 1)
}

// Submit envia uma lista gravada para a linha do tempo. Os comandos são
// copiados; as constantes apontadas por eles não são.
func (d *Device) Submit(cl *CommandList) {
	cmds := make([]command, len(cl.cmds))
	copy(cmds, cl.cmds)
	d.timeline <- timelineItem{kind: timelineSubmit, cmds: cmds}
}

// Signal enfileira a marcação do fence na linha do tempo: o valor fica
// visível em CompletedFence quando todo o trabalho anterior terminou.
func (d *Device) Signal(value uint64) {
	d.timeline <- timelineItem{kind: timelineSignal, fence: value}
}

// Present enfileira a troca do backbuffer na linha do tempo.
func (d *Device) Present() {
	d.timeline <- timelineItem{kind: timelinePresent}
}

// CompletedFence devolve o último valor de fence concluído pelo executor.
func (d *Device) CompletedFence() uint64 {
	d.fenceMu.Lock()
	defer d.fenceMu.Unlock()
	return d.completed
}

// WaitFence bloqueia até o executor concluir o fence dado.
func (d *Device) WaitFence(value uint64) {
	d.fenceMu.Lock()
	for d.completed < value {
		d.fenceCond.Wait()
	}
	d.fenceMu.Unlock()
}

// AcquireFrame devolve o último frame apresentado (RGBA8). Se nenhum
// presente novo ocorreu desde a última chamada, devolve o mesmo buffer.
func (d *Device) AcquireFrame() []uint8 {
	d.presentMu.Lock()
	if d.sharedFresh {
		d.readIdx, d.sharedIdx = d.sharedIdx, d.readIdx
		d.sharedFresh = false
	}
	d.presentMu.Unlock()
	return d.frames[d.readIdx]
}

// ReadPixel lê um pixel do backbuffer em desenho. Só é confiável depois de
// um WaitFence cobrindo todo o trabalho submetido.
func (d *Device) ReadPixel(x, y int) [4]uint8 {
	d.presentMu.Lock()
	idx := d.writeIdx
	d.presentMu.Unlock()
	o := (y*d.width + x) * 4
	fb := d.frames[idx]
	return [4]uint8{fb[o], fb[o+1], fb[o+2], fb[o+3]}
}

// ReadDepth lê a profundidade de um pixel. Mesma ressalva de ReadPixel.
func (d *Device) ReadDepth(x, y int) float32 {
	return d.depth[y*d.width+x]
}

// ReadStencil lê o valor de stencil de um pixel. Mesma ressalva de ReadPixel.
func (d *Device) ReadStencil(x, y int) uint8 {
	return d.stencil[y*d.width+x]
}

// Destroy encerra o executor. Nenhuma submissão pode ocorrer depois.
func (d *Device) Destroy() {
	close(d.timeline)
	<-d.done
	log.Printf("[GPU] Dispositivo de software encerrado")
}

// run é a goroutine do executor: consome a linha do tempo em ordem de
// chegada, garantindo que sinais de fence só concluem depois de todo o
// desenho submetido antes deles.
func (d *Device) run() {
	for item := range d.timeline {
		switch item.kind {
		case timelineSubmit:
			for i := range item.cmds {
				d.execute(&item.cmds[i])
			}
		case timelineSignal:
			d.fenceMu.Lock()
			if item.fence > d.completed {
				d.completed = item.fence
			}
			d.fenceCond.Broadcast()
			d.fenceMu.Unlock()
		case timelinePresent:
			d.presentMu.Lock()
			d.writeIdx, d.sharedIdx = d.sharedIdx, d.writeIdx
			d.sharedFresh = true
			d.presentMu.Unlock()
		}
	}
	close(d.done)
}

func (d *Device) execute(c *command) {
	switch c.op {
	case opClearColor:
		d.clearColor(c.color)
	case opClearDepthStencil:
		d.clearDepthStencil(c.depthValue, c.stencilValue)
	case opSetPipeline:
		d.pso = c.pipeline
	case opSetStencilRef:
		d.stencilRef = c.ref
	case opSetPass:
		d.pass = c.pass
	case opDraw:
		d.drawIndexed(c)
	}
}

func (d *Device) clearColor(c [4]float32) {
	fb := d.frames[d.writeIdx]
	var px [4]uint8
	for i := 0; i < 4; i++ {
		px[i] = floatToByte(c[i])
	}
	for o := 0; o < len(fb); o += 4 {
		fb[o] = px[0]
		fb[o+1] = px[1]
		fb[o+2] = px[2]
		fb[o+3] = px[3]
	}
}

func (d *Device) clearDepthStencil(depth float32, stencil uint8) {
	for i := range d.depth {
		d.depth[i] = depth
	}
	for i := range d.stencil {
		d.stencil[i] = stencil
	}
}

func floatToByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
