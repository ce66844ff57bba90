package render

import "MirrorVision/cliente/internal/gpu"

// NumFrameResources é a profundidade do anel de frames: a CPU grava até
// três quadros à frente da GPU antes de bloquear numa cerca.
const NumFrameResources = 3

// FrameResource guarda as constantes de um quadro em voo. O executor do
// dispositivo lê estes slices por ponteiro na hora de desenhar, então um
// frame só pode ser regravado depois que Fence for alcançada.
type FrameResource struct {
	// Fence é o valor de cerca sinalizado quando a GPU terminou este quadro.
	// Zero significa que o frame ainda não foi submetido.
	Fence uint64

	ObjectCB   []gpu.ObjectConstants
	MaterialCB []gpu.MaterialConstants

	// PassCB[0] é o passe principal; PassCB[1] é o passe refletido, com as
	// direções de luz espelhadas no plano do espelho.
	PassCB [2]gpu.PassConstants
}

func NewFrameResource(objectCount, materialCount int) *FrameResource {
	return &FrameResource{
		ObjectCB:   make([]gpu.ObjectConstants, objectCount),
		MaterialCB: make([]gpu.MaterialConstants, materialCount),
	}
}
