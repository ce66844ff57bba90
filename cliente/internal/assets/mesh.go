package assets

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"MirrorVision/cliente/internal/gpu"
)

// MeshData guarda a geometria de um modelo carregado do disco, já no
// layout de vértice do dispositivo.
type MeshData struct {
	Vertices []gpu.Vertex
	Indices  []uint16
}

// LoadSkullMesh carrega um modelo no formato texto dos arquivos Models/*.txt:
// um cabeçalho com as contagens, a lista de vértices (posição e normal) entre
// chaves e a lista de triângulos entre chaves. Os modelos não trazem UV, então
// as coordenadas de textura ficam zeradas.
//
//	VertexCount: 6
//	TriangleCount: 8
//	VertexList (pos, normal)
//	{
//		0.0 2.0 0.0 0.0 1.0 0.0
//		...
//	}
//	TriangleList
//	{
//		0 1 2
//		...
//	}
func LoadSkullMesh(path string) (*MeshData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir modelo %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	sc.Split(bufio.ScanWords)

	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return sc.Text(), nil
	}

	readCount := func(label string) (int, error) {
		tok, err := next()
		if err != nil {
			return 0, err
		}
		if !strings.HasPrefix(tok, label) {
			return 0, fmt.Errorf("esperava %q, encontrou %q", label, tok)
		}
		tok, err = next()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("contagem inválida para %s: %q", label, tok)
		}
		return n, nil
	}

	skipToBrace := func() error {
		for {
			tok, err := next()
			if err != nil {
				return err
			}
			if tok == "{" {
				return nil
			}
		}
	}

	readFloat := func() (float32, error) {
		tok, err := next()
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return 0, fmt.Errorf("número inválido no modelo: %q", tok)
		}
		return float32(v), nil
	}

	vcount, err := readCount("VertexCount:")
	if err != nil {
		return nil, fmt.Errorf("cabeçalho do modelo %s: %w", path, err)
	}
	tcount, err := readCount("TriangleCount:")
	if err != nil {
		return nil, fmt.Errorf("cabeçalho do modelo %s: %w", path, err)
	}

	if err := skipToBrace(); err != nil {
		return nil, fmt.Errorf("lista de vértices de %s: %w", path, err)
	}

	mesh := &MeshData{
		Vertices: make([]gpu.Vertex, vcount),
		Indices:  make([]uint16, 0, 3*tcount),
	}
	for i := 0; i < vcount; i++ {
		var vals [6]float32
		for j := range vals {
			vals[j], err = readFloat()
			if err != nil {
				return nil, fmt.Errorf("vértice %d de %s: %w", i, path, err)
			}
		}
		mesh.Vertices[i].Pos = mgl32.Vec3{vals[0], vals[1], vals[2]}
		mesh.Vertices[i].Normal = mgl32.Vec3{vals[3], vals[4], vals[5]}
	}

	if err := skipToBrace(); err != nil {
		return nil, fmt.Errorf("lista de triângulos de %s: %w", path, err)
	}

	for i := 0; i < 3*tcount; i++ {
		tok, err := next()
		if err != nil {
			return nil, fmt.Errorf("índice %d de %s: %w", i, path, err)
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("índice inválido em %s: %q", path, tok)
		}
		if n >= vcount || n > 0xffff {
			return nil, fmt.Errorf("índice %d fora do alcance em %s", n, path)
		}
		mesh.Indices = append(mesh.Indices, uint16(n))
	}

	return mesh, nil
}
