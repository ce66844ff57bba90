package gpu

type commandOp uint8

const (
	opClearColor commandOp = iota
	opClearDepthStencil
	opSetPipeline
	opSetStencilRef
	opSetPass
	opDraw
)

// command é um comando gravado. Os ponteiros de constantes apontam para os
// slots do recurso de frame corrente e só são lidos na execução.
type command struct {
	op commandOp

	color        [4]float32
	depthValue   float32
	stencilValue uint8

	pipeline *PipelineState
	ref      uint8
	pass     *PassConstants

	mesh       MeshID
	texture    TextureID
	indexCount int
	startIndex int
	baseVertex int
	object     *ObjectConstants
	material   *MaterialConstants
}

// CommandList grava comandos para submissão ao dispositivo. Reutilizável:
// o chamador grava, submete e reseta a cada frame.
type CommandList struct {
	cmds []command
}

// NewCommandList cria uma lista vazia.
func NewCommandList() *CommandList {
	return &CommandList{cmds: make([]command, 0, 64)}
}

// Reset descarta os comandos gravados mantendo a capacidade.
func (cl *CommandList) Reset() {
	cl.cmds = cl.cmds[:0]
}

// ClearColor limpa o backbuffer corrente com a cor dada.
func (cl *CommandList) ClearColor(color [4]float32) {
	cl.cmds = append(cl.cmds, command{op: opClearColor, color: color})
}

// ClearDepthStencil limpa os buffers de profundidade e stencil.
func (cl *CommandList) ClearDepthStencil(depth float32, stencil uint8) {
	cl.cmds = append(cl.cmds, command{op: opClearDepthStencil, depthValue: depth, stencilValue: stencil})
}

// SetPipeline troca o estado de rasterização dos próximos desenhos.
func (cl *CommandList) SetPipeline(ps *PipelineState) {
	cl.cmds = append(cl.cmds, command{op: opSetPipeline, pipeline: ps})
}

// SetStencilRef define o valor de referência dos testes de stencil.
func (cl *CommandList) SetStencilRef(ref uint8) {
	cl.cmds = append(cl.cmds, command{op: opSetStencilRef, ref: ref})
}

// SetPassConstants define as constantes de passe dos próximos desenhos.
func (cl *CommandList) SetPassConstants(pass *PassConstants) {
	cl.cmds = append(cl.cmds, command{op: opSetPass, pass: pass})
}

// DrawIndexed desenha um intervalo indexado de uma malha com as constantes
// de objeto e material dadas.
func (cl *CommandList) DrawIndexed(mesh MeshID, texture TextureID, indexCount, startIndex, baseVertex int, obj *ObjectConstants, mat *MaterialConstants) {
	cl.cmds = append(cl.cmds, command{
		op:         opDraw,
		mesh:       mesh,
		texture:    texture,
		indexCount: indexCount,
		startIndex: startIndex,
		baseVertex: baseVertex,
		object:     obj,
		material:   mat,
	})
}
