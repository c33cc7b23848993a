package graphics

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

var backgroundShader = []byte(`//kage:unit pixels

package main

var Time float
var Resolution vec2

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	p := dstPos.xy / Resolution
	wave := 0.5 + 0.5*sin(Time*6.2831853+p.x*6.0+p.y*4.0)
	return vec4(0.05, 0.05+0.08*wave, 0.1+0.15*wave, 1.0)
}
`)

var (
	clearColor = color.RGBA{13, 13, 26, 255}
	solidColor = color.RGBA{255, 255, 128, 255}
)

// Ebiten draws onto the screen image handed to Begin. Vertices are flipped
// from the bottom-left origin used by the scenes to ebiten's top-left one.
type Ebiten struct {
	width, height float32
	debug         bool

	screen     *ebiten.Image
	white      *ebiten.Image
	background *ebiten.Shader

	drawables map[Handle][]Vertex
	next      Handle

	program  Program
	uniforms map[Program]map[string]any

	vertices []ebiten.Vertex
	indices  []uint16
}

func NewEbiten(width, height int, debug bool) (*Ebiten, error) {
	shader, err := ebiten.NewShader(backgroundShader)
	if err != nil {
		return nil, fmt.Errorf("compile background shader: %w", err)
	}

	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)

	return &Ebiten{
		width:      float32(width),
		height:     float32(height),
		debug:      debug,
		white:      img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		background: shader,
		drawables:  make(map[Handle][]Vertex),
		program:    ProgramSolid,
		uniforms: map[Program]map[string]any{
			ProgramSolid:      {},
			ProgramBackground: {},
		},
	}, nil
}

// Begin sets the target for the frame. Draw calls without a target are dropped.
func (e *Ebiten) Begin(screen *ebiten.Image) {
	e.screen = screen
}

func (e *Ebiten) AllocateDrawable(vertices []Vertex) Handle {
	e.next++
	e.drawables[e.next] = append([]Vertex(nil), vertices...)
	return e.next
}

func (e *Ebiten) Release(h Handle) {
	delete(e.drawables, h)
}

func (e *Ebiten) UseProgram(p Program) {
	if _, ok := e.uniforms[p]; !ok {
		return
	}
	e.program = p
}

func (e *Ebiten) SetUniform(name string, value any) {
	e.uniforms[e.program][name] = value
}

func (e *Ebiten) ClearFrame() {
	if e.screen == nil {
		return
	}
	e.screen.Fill(clearColor)
}

func (e *Ebiten) Draw(h Handle) {
	vs, ok := e.drawables[h]
	if !ok || e.screen == nil || len(vs) > 1<<16 {
		return
	}

	uniforms := e.uniforms[e.program]
	offset, _ := uniforms[UniformOffset].(Vec2)
	c, ok := uniforms[UniformColor].(color.Color)
	if !ok {
		c = solidColor
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)

	e.vertices = e.vertices[:0]
	e.indices = e.indices[:0]
	for i, v := range vs {
		e.vertices = append(e.vertices, ebiten.Vertex{
			DstX:   v.X + offset.X,
			DstY:   e.height - (v.Y + offset.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(n.R) / 0xff,
			ColorG: float32(n.G) / 0xff,
			ColorB: float32(n.B) / 0xff,
			ColorA: float32(n.A) / 0xff,
		})
		e.indices = append(e.indices, uint16(i))
	}

	switch e.program {
	case ProgramBackground:
		t, _ := uniforms[UniformTime].(float32)
		e.screen.DrawTrianglesShader(e.vertices, e.indices, e.background, &ebiten.DrawTrianglesShaderOptions{
			Uniforms: map[string]any{
				"Time":       t,
				"Resolution": []float32{e.width, e.height},
			},
		})
	default:
		e.screen.DrawTriangles(e.vertices, e.indices, e.white, &ebiten.DrawTrianglesOptions{
			AntiAlias: true,
		})
	}
}

// PresentFrame ends the frame. ebiten swaps buffers itself once Draw
// returns, so this only draws the debug overlay and drops the target.
func (e *Ebiten) PresentFrame() {
	if e.screen == nil {
		return
	}
	if e.debug {
		ebitenutil.DebugPrintAt(e.screen, fmt.Sprintf("TPS: %0.1f FPS: %0.1f", ebiten.ActualTPS(), ebiten.ActualFPS()), 4, 4)
	}
	e.screen = nil
}
