package gpu

// CompareFunc é a função de comparação de profundidade e stencil.
type CompareFunc uint8

const (
	CompareNever CompareFunc = iota
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

// StencilOp é a operação aplicada ao buffer de stencil em cada estágio do
// teste. Incr e Decr dão a volta em 8 bits; as variantes Sat saturam.
type StencilOp uint8

const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncr
	StencilDecr
	StencilIncrSat
	StencilDecrSat
	StencilInvert
)

// BlendFactor é o fator de mistura aplicado à cor de origem ou destino.
type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendInvSrcAlpha
)

// CullMode decide qual lado do triângulo é descartado.
type CullMode uint8

const (
	CullNone CullMode = iota
	CullBack
	CullFront
)

// RasterizerState configura recorte de faces. Com FrontCounterClockwise
// falso, a frente é o enrolamento horário na tela.
type RasterizerState struct {
	Cull                  CullMode
	FrontCounterClockwise bool
}

// DepthState configura o teste de profundidade.
type DepthState struct {
	Enable      bool
	WriteEnable bool
	Func        CompareFunc
}

// StencilState configura o teste de stencil. FailOp roda quando o teste de
// stencil falha, DepthFailOp quando o stencil passa mas a profundidade
// falha, e PassOp quando ambos passam.
type StencilState struct {
	Enable      bool
	ReadMask    uint8
	WriteMask   uint8
	Func        CompareFunc
	FailOp      StencilOp
	DepthFailOp StencilOp
	PassOp      StencilOp
}

// Bits da máscara de escrita de cor.
const (
	ColorWriteRed   uint8 = 1 << 0
	ColorWriteGreen uint8 = 1 << 1
	ColorWriteBlue  uint8 = 1 << 2
	ColorWriteAlpha uint8 = 1 << 3
	ColorWriteAll         = ColorWriteRed | ColorWriteGreen | ColorWriteBlue | ColorWriteAlpha
)

// BlendState configura a mistura de cor. Com Enable falso a cor de origem
// substitui o destino. O canal alfa do destino sempre recebe o alfa de
// origem. ColorWriteMask zero desliga toda escrita de cor.
type BlendState struct {
	Enable         bool
	SrcFactor      BlendFactor
	DstFactor      BlendFactor
	ColorWriteMask uint8
}

// PipelineState é o estado completo de rasterização de um passe. Os passes
// montam as variações uma vez no boot e alternam entre elas por comando.
type PipelineState struct {
	Name    string
	Raster  RasterizerState
	Depth   DepthState
	Stencil StencilState
	Blend   BlendState
}

// DefaultPipelineState devolve o estado padrão: cull de costas com frente
// horária, profundidade LESS com escrita, stencil desligado e cor opaca.
func DefaultPipelineState(name string) PipelineState {
	return PipelineState{
		Name: name,
		Raster: RasterizerState{
			Cull:                  CullBack,
			FrontCounterClockwise: false,
		},
		Depth: DepthState{
			Enable:      true,
			WriteEnable: true,
			Func:        CompareLess,
		},
		Stencil: StencilState{
			Enable:      false,
			ReadMask:    0xff,
			WriteMask:   0xff,
			Func:        CompareAlways,
			FailOp:      StencilKeep,
			DepthFailOp: StencilKeep,
			PassOp:      StencilKeep,
		},
		Blend: BlendState{
			Enable:         false,
			SrcFactor:      BlendOne,
			DstFactor:      BlendZero,
			ColorWriteMask: ColorWriteAll,
		},
	}
}
