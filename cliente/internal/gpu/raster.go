package gpu

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// minClipW rejeita triângulos que encostam no plano near. Não há clipping
// homogêneo; a cena nunca chega tão perto da câmera.
const minClipW = 0.05

// shadedVertex é um vértice pós-transformação pronto para rasterizar, com
// os atributos perspectivos pré-divididos por w.
type shadedVertex struct {
	sx, sy float32
	depth  float32
	invW   float32
	uOverW float32
	vOverW float32
	rOverW float32
	gOverW float32
	bOverW float32
}

func (d *Device) drawIndexed(c *command) {
	if d.pso == nil || d.pass == nil || c.object == nil || c.material == nil {
		return
	}
	if int(c.mesh) < 0 || int(c.mesh) >= len(d.meshes) {
		return
	}
	if int(c.texture) < 0 || int(c.texture) >= len(d.textures) {
		return
	}
	mesh := &d.meshes[c.mesh]
	tex := &d.textures[c.texture]

	// As constantes chegam transpostas; destranspõe uma vez por desenho.
	world := c.object.World.Transpose()
	viewProj := d.pass.ViewProj.Transpose()
	mvp := viewProj.Mul4(world)
	texXform := c.object.TexTransform.Transpose()
	matXform := c.material.MatTransform.Transpose()
	alpha := c.material.DiffuseAlbedo.W()

	end := c.startIndex + c.indexCount
	if end > len(mesh.indices) {
		end = len(mesh.indices)
	}

	for base := c.startIndex; base+2 < end; base += 3 {
		var sv [3]shadedVertex
		rejected := false
		for k := 0; k < 3; k++ {
			vi := int(mesh.indices[base+k]) + c.baseVertex
			if vi < 0 || vi >= len(mesh.vertices) {
				rejected = true
				break
			}
			v := &mesh.vertices[vi]

			clip := mvp.Mul4x1(v.Pos.Vec4(1))
			if clip.W() < minClipW {
				rejected = true
				break
			}
			invW := 1 / clip.W()

			worldPos := world.Mul4x1(v.Pos.Vec4(1)).Vec3()
			worldNormal := world.Mul4x1(v.Normal.Vec4(0)).Vec3()
			lit := d.shadeVertex(c.material, worldPos, worldNormal)

			uv := matXform.Mul4x1(texXform.Mul4x1(mgl32.Vec4{v.UV.X(), v.UV.Y(), 0, 1}))

			ndcX := clip.X() * invW
			ndcY := clip.Y() * invW

			sv[k] = shadedVertex{
				sx:     (ndcX + 1) * 0.5 * float32(d.width),
				sy:     (1 - ndcY) * 0.5 * float32(d.height),
				depth:  clip.Z() * invW,
				invW:   invW,
				uOverW: uv.X() * invW,
				vOverW: uv.Y() * invW,
				rOverW: lit.X() * invW,
				gOverW: lit.Y() * invW,
				bOverW: lit.Z() * invW,
			}
		}
		if rejected {
			continue
		}
		d.rasterize(&sv, tex, alpha)
	}
}

// shadeVertex avalia ambiente, luzes direcionais (Blinn-Phong com fresnel
// de Schlick) e névoa linear no vértice. A textura modula por pixel.
func (d *Device) shadeVertex(mat *MaterialConstants, pos, normal mgl32.Vec3) mgl32.Vec3 {
	pass := d.pass

	n := normal
	if l := n.Len(); l > 0 {
		n = n.Mul(1 / l)
	}

	toEye := pass.EyePosW.Sub(pos)
	distToEye := toEye.Len()
	if distToEye > 0 {
		toEye = toEye.Mul(1 / distToEye)
	}

	diffuse := mgl32.Vec3{mat.DiffuseAlbedo.X(), mat.DiffuseAlbedo.Y(), mat.DiffuseAlbedo.Z()}
	lit := mgl32.Vec3{
		pass.AmbientLight.X() * diffuse.X(),
		pass.AmbientLight.Y() * diffuse.Y(),
		pass.AmbientLight.Z() * diffuse.Z(),
	}

	shininess := (1 - mat.Roughness) * 256
	for i := range pass.Lights {
		l := &pass.Lights[i]
		if l.Strength.X() == 0 && l.Strength.Y() == 0 && l.Strength.Z() == 0 {
			continue
		}
		lightVec := l.Direction.Mul(-1)
		ndotl := n.Dot(lightVec)
		if ndotl <= 0 {
			continue
		}
		strength := l.Strength.Mul(ndotl)

		half := toEye.Add(lightVec)
		if hl := half.Len(); hl > 0 {
			half = half.Mul(1 / hl)
		}
		hdotn := half.Dot(n)
		if hdotn < 0 {
			hdotn = 0
		}
		roughnessFactor := (shininess + 8) / 8 * powf(hdotn, shininess)

		f0 := 1 - clamp01(half.Dot(lightVec))
		f5 := f0 * f0 * f0 * f0 * f0
		for ch := 0; ch < 3; ch++ {
			r0 := mat.FresnelR0[ch]
			spec := (r0 + (1-r0)*f5) * roughnessFactor
			spec = spec / (spec + 1)
			lit[ch] += (diffuse[ch] + spec) * strength[ch]
		}
	}

	if pass.FogRange > 0 {
		amount := clamp01((distToEye - pass.FogStart) / pass.FogRange)
		for ch := 0; ch < 3; ch++ {
			lit[ch] += (pass.FogColor[ch] - lit[ch]) * amount
		}
	}
	return lit
}

// edgeFn é a função de aresta w(p) = dx·(py-ay) - dy·(px-ax), com o sinal
// normalizado para área positiva. topLeft marca arestas de topo e esquerda
// para a regra de preenchimento: pixels exatamente sobre a aresta pertencem
// a um único triângulo.
type edgeFn struct {
	dx, dy  float32
	ax, ay  float32
	topLeft bool
}

func makeEdge(a, b *shadedVertex, flip float32) edgeFn {
	dx := (b.sx - a.sx) * flip
	dy := (b.sy - a.sy) * flip
	return edgeFn{
		dx: dx, dy: dy,
		ax: a.sx, ay: a.sy,
		topLeft: dy < 0 || (dy == 0 && dx > 0),
	}
}

func (e *edgeFn) eval(px, py float32) float32 {
	return e.dx*(py-e.ay) - e.dy*(px-e.ax)
}

func (e *edgeFn) inside(w float32) bool {
	return w > 0 || (w == 0 && e.topLeft)
}

func (d *Device) rasterize(sv *[3]shadedVertex, tex *textureData, alpha float32) {
	ps := d.pso

	// Enrolamento em espaço de tela com y para baixo: horário dá área
	// positiva e é a frente quando FrontCounterClockwise está desligado.
	area2 := (sv[1].sx-sv[0].sx)*(sv[2].sy-sv[0].sy) - (sv[2].sx-sv[0].sx)*(sv[1].sy-sv[0].sy)
	if area2 > -1e-6 && area2 < 1e-6 {
		return
	}
	front := area2 > 0
	if ps.Raster.FrontCounterClockwise {
		front = !front
	}
	switch ps.Raster.Cull {
	case CullBack:
		if !front {
			return
		}
	case CullFront:
		if front {
			return
		}
	}

	flip := float32(1)
	if area2 < 0 {
		flip = -1
	}
	invArea := 1 / (area2 * flip)
	e0 := makeEdge(&sv[1], &sv[2], flip)
	e1 := makeEdge(&sv[2], &sv[0], flip)
	e2 := makeEdge(&sv[0], &sv[1], flip)

	minX := int(floorf(min3(sv[0].sx, sv[1].sx, sv[2].sx)))
	maxX := int(ceilf(max3(sv[0].sx, sv[1].sx, sv[2].sx)))
	minY := int(floorf(min3(sv[0].sy, sv[1].sy, sv[2].sy)))
	maxY := int(ceilf(max3(sv[0].sy, sv[1].sy, sv[2].sy)))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > d.width-1 {
		maxX = d.width - 1
	}
	if maxY > d.height-1 {
		maxY = d.height - 1
	}

	for py := minY; py <= maxY; py++ {
		pcy := float32(py) + 0.5
		for px := minX; px <= maxX; px++ {
			pcx := float32(px) + 0.5

			w0 := e0.eval(pcx, pcy)
			w1 := e1.eval(pcx, pcy)
			w2 := e2.eval(pcx, pcy)
			if !e0.inside(w0) || !e1.inside(w1) || !e2.inside(w2) {
				continue
			}
			d.shadePixel(tex, sv, px, py, w0*invArea, w1*invArea, w2*invArea, alpha)
		}
	}
}

// shadePixel roda o pipeline por pixel: teste de stencil, teste de
// profundidade, operação de stencil, escrita de profundidade e mistura,
// nessa ordem.
func (d *Device) shadePixel(tex *textureData, sv *[3]shadedVertex, px, py int, l0, l1, l2, alpha float32) {
	ps := d.pso
	idx := py*d.width + px

	if ps.Stencil.Enable {
		ref := d.stencilRef & ps.Stencil.ReadMask
		cur := d.stencil[idx] & ps.Stencil.ReadMask
		if !compareU8(ps.Stencil.Func, ref, cur) {
			d.applyStencilOp(idx, ps.Stencil.FailOp, ps.Stencil.WriteMask)
			return
		}
	}

	depth := l0*sv[0].depth + l1*sv[1].depth + l2*sv[2].depth
	if ps.Depth.Enable && !compareF32(ps.Depth.Func, depth, d.depth[idx]) {
		if ps.Stencil.Enable {
			d.applyStencilOp(idx, ps.Stencil.DepthFailOp, ps.Stencil.WriteMask)
		}
		return
	}

	if ps.Stencil.Enable {
		d.applyStencilOp(idx, ps.Stencil.PassOp, ps.Stencil.WriteMask)
	}
	if ps.Depth.Enable && ps.Depth.WriteEnable {
		d.depth[idx] = depth
	}
	if ps.Blend.ColorWriteMask == 0 {
		return
	}

	invW := l0*sv[0].invW + l1*sv[1].invW + l2*sv[2].invW
	if invW <= 0 {
		return
	}
	w := 1 / invW
	u := (l0*sv[0].uOverW + l1*sv[1].uOverW + l2*sv[2].uOverW) * w
	v := (l0*sv[0].vOverW + l1*sv[1].vOverW + l2*sv[2].vOverW) * w
	tr, tg, tb := sampleTexture(tex, u, v)

	src := [4]float32{
		(l0*sv[0].rOverW + l1*sv[1].rOverW + l2*sv[2].rOverW) * w * tr,
		(l0*sv[0].gOverW + l1*sv[1].gOverW + l2*sv[2].gOverW) * w * tg,
		(l0*sv[0].bOverW + l1*sv[1].bOverW + l2*sv[2].bOverW) * w * tb,
		alpha,
	}

	fb := d.frames[d.writeIdx]
	o := idx * 4
	var out [4]float32
	if ps.Blend.Enable {
		dst := [3]float32{
			float32(fb[o]) / 255,
			float32(fb[o+1]) / 255,
			float32(fb[o+2]) / 255,
		}
		sf := blendFactor(ps.Blend.SrcFactor, alpha)
		df := blendFactor(ps.Blend.DstFactor, alpha)
		for ch := 0; ch < 3; ch++ {
			out[ch] = src[ch]*sf + dst[ch]*df
		}
		out[3] = alpha
	} else {
		out = src
	}

	mask := ps.Blend.ColorWriteMask
	if mask&ColorWriteRed != 0 {
		fb[o] = floatToByte(out[0])
	}
	if mask&ColorWriteGreen != 0 {
		fb[o+1] = floatToByte(out[1])
	}
	if mask&ColorWriteBlue != 0 {
		fb[o+2] = floatToByte(out[2])
	}
	if mask&ColorWriteAlpha != 0 {
		fb[o+3] = floatToByte(out[3])
	}
}

func (d *Device) applyStencilOp(idx int, op StencilOp, mask uint8) {
	old := d.stencil[idx]
	var out uint8
	switch op {
	case StencilKeep:
		return
	case StencilZero:
		out = 0
	case StencilReplace:
		out = d.stencilRef
	case StencilIncr:
		out = old + 1 // uint8 dá a volta em 0xff
	case StencilDecr:
		out = old - 1
	case StencilIncrSat:
		if old == 0xff {
			out = old
		} else {
			out = old + 1
		}
	case StencilDecrSat:
		if old == 0 {
			out = 0
		} else {
			out = old - 1
		}
	case StencilInvert:
		out = ^old
	default:
		return
	}
	d.stencil[idx] = (old &^ mask) | (out & mask)
}

func sampleTexture(t *textureData, u, v float32) (r, g, b float32) {
	u -= floorf(u)
	v -= floorf(v)
	x := int(u * float32(t.width))
	y := int(v * float32(t.height))
	if x >= t.width {
		x = t.width - 1
	}
	if y >= t.height {
		y = t.height - 1
	}
	o := (y*t.width + x) * 4
	return float32(t.pixels[o]) / 255, float32(t.pixels[o+1]) / 255, float32(t.pixels[o+2]) / 255
}

func compareU8(fn CompareFunc, ref, val uint8) bool {
	switch fn {
	case CompareNever:
		return false
	case CompareLess:
		return ref < val
	case CompareEqual:
		return ref == val
	case CompareLessEqual:
		return ref <= val
	case CompareGreater:
		return ref > val
	case CompareNotEqual:
		return ref != val
	case CompareGreaterEqual:
		return ref >= val
	case CompareAlways:
		return true
	}
	return false
}

func compareF32(fn CompareFunc, src, dst float32) bool {
	switch fn {
	case CompareNever:
		return false
	case CompareLess:
		return src < dst
	case CompareEqual:
		return src == dst
	case CompareLessEqual:
		return src <= dst
	case CompareGreater:
		return src > dst
	case CompareNotEqual:
		return src != dst
	case CompareGreaterEqual:
		return src >= dst
	case CompareAlways:
		return true
	}
	return false
}

func blendFactor(f BlendFactor, srcAlpha float32) float32 {
	switch f {
	case BlendZero:
		return 0
	case BlendOne:
		return 1
	case BlendSrcAlpha:
		return srcAlpha
	case BlendInvSrcAlpha:
		return 1 - srcAlpha
	}
	return 1
}

func powf(base, exp float32) float32 {
	return float32(math.Pow(float64(base), float64(exp)))
}

func floorf(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

func ceilf(v float32) float32 {
	return float32(math.Ceil(float64(v)))
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
