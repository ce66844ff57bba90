package assets

import "math"

// Texturas procedurais no lugar dos .dds originais. Todas determinísticas,
// RGBA 8 bits por canal, prontas para o CreateTexture do dispositivo.

// White1x1 é a textura neutra usada pelos materiais sem mapa difuso.
func White1x1() (w, h int, pixels []uint8) {
	return 1, 1, []uint8{255, 255, 255, 255}
}

// Checkerboard gera o tabuleiro claro/escuro do chão. size é o lado em
// pixels e cells o número de casas por lado.
func Checkerboard(size, cells int) (w, h int, pixels []uint8) {
	if cells < 1 {
		cells = 1
	}
	cell := size / cells
	if cell < 1 {
		cell = 1
	}
	pixels = make([]uint8, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := uint8(25)
			if ((x/cell)+(y/cell))%2 == 0 {
				v = 230
			}
			i := (y*size + x) * 4
			pixels[i+0] = v
			pixels[i+1] = v
			pixels[i+2] = v
			pixels[i+3] = 255
		}
	}
	return size, size, pixels
}

// Ice gera a placa azulada do espelho de gelo, com estrias horizontais
// suaves para o cubo não parecer um sólido chapado.
func Ice(size int) (w, h int, pixels []uint8) {
	pixels = make([]uint8, size*size*4)
	for y := 0; y < size; y++ {
		streak := 12 * math.Sin(float64(y)*0.7)
		for x := 0; x < size; x++ {
			ripple := 6 * math.Sin(float64(x)*0.35+float64(y)*0.15)
			i := (y*size + x) * 4
			pixels[i+0] = clampChannel(176 + streak + ripple)
			pixels[i+1] = clampChannel(200 + streak)
			pixels[i+2] = clampChannel(232 + ripple)
			pixels[i+3] = 255
		}
	}
	return size, size, pixels
}

// Bricks gera a parede de tijolos com juntas de argamassa. Cada fiada é
// deslocada meia largura de tijolo em relação à anterior.
func Bricks(size int) (w, h int, pixels []uint8) {
	const (
		brickW = 16
		brickH = 8
		mortar = 2
	)
	pixels = make([]uint8, size*size*4)
	for y := 0; y < size; y++ {
		row := y / brickH
		shift := 0
		if row%2 == 1 {
			shift = brickW / 2
		}
		for x := 0; x < size; x++ {
			bx := (x + shift) % brickW
			by := y % brickH
			i := (y*size + x) * 4
			if bx < mortar || by < mortar {
				pixels[i+0] = 168
				pixels[i+1] = 160
				pixels[i+2] = 152
			} else {
				pixels[i+0] = 158
				pixels[i+1] = 63
				pixels[i+2] = 49
			}
			pixels[i+3] = 255
		}
	}
	return size, size, pixels
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
