package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/logging"
	"go.uber.org/zap"
)

var (
	Background = color.RGBA{R: 0x1d, G: 0x20, B: 0x2b, A: 0xff}
	LaneColor  = color.RGBA{R: 0x9a, G: 0xa3, B: 0xc4, A: 0xff}
)

// fullbright is used when the scene has no light.
var fullbright = component.Light{Intensity: 1, Ambient: 1}

// Renderer draws every mesh as a flat-shaded box seen through the scene camera.
type Renderer struct {
	logger       *zap.Logger
	cameraLogged bool

	// reused between frames
	faces    []shadedFace
	vertices []ebiten.Vertex
	indices  []uint16
}

func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{logger: logging.OrNop(logger).Named("render")}
}

func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(Background)

	_, cam, err := ecs.Single(w, component.CameraComponent.Kind())
	if err != nil {
		if !r.cameraLogged {
			r.logger.Warn("no camera, skipping draw", zap.Error(err))
			r.cameraLogged = true
		}
		return
	}
	r.cameraLogged = false

	bounds := screen.Bounds()
	view := NewView(*cam, float64(bounds.Dx()), float64(bounds.Dy()))

	light := fullbright
	if e, ok := ecs.First(w, component.LightComponent.Kind()); ok {
		if l, ok := ecs.Get(w, e, component.LightComponent.Kind()); ok {
			light = *l
		}
	}

	// the floor is drawn first so lane markings sit on it and under everything else
	r.faces = r.collectFaces(w, cam.Eye, light, true, r.faces[:0])
	r.drawFaces(screen, view)
	r.drawLanes(w, screen, view)
	r.faces = r.collectFaces(w, cam.Eye, light, false, r.faces[:0])
	r.drawFaces(screen, view)
}

func (r *Renderer) drawFaces(screen *ebiten.Image, view View) {
	sortBackToFront(r.faces)
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for _, f := range r.faces {
		r.appendQuad(view, f)
	}
	if len(r.vertices) > 0 {
		screen.DrawTriangles(r.vertices, r.indices, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}
}

// drawLanes marks the dividers between the player's lanes along the floor top.
func (r *Renderer) drawLanes(w *ecs.World, screen *ebiten.Image, view View) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	slide, ok := ecs.Get(w, player, component.LaneSlideComponent.Kind())
	if !ok {
		return
	}
	floor, ok := ecs.First(w, component.FloorTagComponent.Kind())
	if !ok {
		return
	}
	transform, ok := ecs.Get(w, floor, component.TransformComponent.Kind())
	if !ok {
		return
	}
	mesh, ok := ecs.Get(w, floor, component.MeshComponent.Kind())
	if !ok {
		return
	}

	for _, seg := range LaneDividers(slide.Controller.Config().Lanes(), transform.Position, mesh.Size) {
		x0, y0, ok0 := view.Project(seg[0])
		x1, y1, ok1 := view.Project(seg[1])
		if !ok0 || !ok1 {
			continue
		}
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 2, LaneColor, true)
	}
}

// LaneDividers returns world-space segments halfway between adjacent lanes,
// running the length of a floor box.
func LaneDividers(lanes [3]float64, floorCenter, floorSize mgl64.Vec3) [][2]mgl64.Vec3 {
	y := floorCenter.Y() + floorSize.Y()/2 + 0.001
	near := floorCenter.Z() + floorSize.Z()/2
	far := floorCenter.Z() - floorSize.Z()/2

	segs := make([][2]mgl64.Vec3, 0, len(lanes)-1)
	for i := 0; i+1 < len(lanes); i++ {
		x := (lanes[i] + lanes[i+1]) / 2
		segs = append(segs, [2]mgl64.Vec3{{x, y, near}, {x, y, far}})
	}
	return segs
}

func (r *Renderer) collectFaces(w *ecs.World, eye mgl64.Vec3, light component.Light, floor bool, out []shadedFace) []shadedFace {
	ecs.ForEach2(w, component.MeshComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, mesh *component.Mesh, transform *component.Transform) {
			if ecs.Has(w, e, component.FloorTagComponent.Kind()) != floor {
				return
			}
			for _, f := range BoxFaces(transform.Position, mesh.Size, transform.Roll) {
				if !FacingCamera(f, eye) {
					continue
				}
				out = append(out, shadedFace{
					Face:  f,
					color: Shade(mesh.Color, f, light),
					depth: f.Center().Sub(eye).Len(),
				})
			}
		})
	return out
}

func (r *Renderer) appendQuad(view View, f shadedFace) {
	var pts [4][2]float32
	for i, p := range f.Corners {
		x, y, ok := view.Project(p)
		if !ok {
			return
		}
		pts[i] = [2]float32{float32(x), float32(y)}
	}
	// 16-bit indices; a frame with more quads than that is cut short
	if len(r.vertices)+4 > 0xffff {
		return
	}

	cr := float32(f.color.R) / 0xff
	cg := float32(f.color.G) / 0xff
	cb := float32(f.color.B) / 0xff
	ca := float32(f.color.A) / 0xff
	base := uint16(len(r.vertices))
	for _, pt := range pts {
		r.vertices = append(r.vertices, ebiten.Vertex{
			DstX: pt[0], DstY: pt[1],
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	r.indices = append(r.indices, base, base+1, base+2, base, base+2, base+3)
}
