package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lanerunner/ecs/component"
)

// View maps world points to screen pixels for one camera and screen size.
type View struct {
	eye           mgl64.Vec3
	viewProj      mgl64.Mat4
	width, height float64
}

func NewView(cam component.Camera, width, height float64) View {
	aspect := 1.0
	if height > 0 {
		aspect = width / height
	}
	proj := mgl64.Perspective(cam.FovY, aspect, cam.Near, cam.Far)
	view := mgl64.LookAtV(cam.Eye, cam.LookAt, cam.Up)
	return View{
		eye:      cam.Eye,
		viewProj: proj.Mul4(view),
		width:    width,
		height:   height,
	}
}

// Project returns the screen position of p. ok is false for points on or
// behind the camera plane.
func (v View) Project(p mgl64.Vec3) (x, y float64, ok bool) {
	clip := v.viewProj.Mul4x1(p.Vec4(1))
	if clip.W() <= 1e-9 {
		return 0, 0, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	x = (ndcX + 1) / 2 * v.width
	y = (1 - ndcY) / 2 * v.height
	return x, y, true
}

// Face is one quad of a box, wound counter-clockwise seen from outside.
type Face struct {
	Corners [4]mgl64.Vec3
	Normal  mgl64.Vec3
}

func (f Face) Center() mgl64.Vec3 {
	var c mgl64.Vec3
	for _, p := range f.Corners {
		c = c.Add(p)
	}
	return c.Mul(0.25)
}

// unit cube faces as corner indices into boxCorners, plus outward normals.
var boxFaces = [6]struct {
	idx    [4]int
	normal mgl64.Vec3
}{
	{[4]int{4, 5, 6, 7}, mgl64.Vec3{0, 0, 1}},  // front (+Z)
	{[4]int{1, 0, 3, 2}, mgl64.Vec3{0, 0, -1}}, // back
	{[4]int{0, 4, 7, 3}, mgl64.Vec3{-1, 0, 0}}, // left
	{[4]int{5, 1, 2, 6}, mgl64.Vec3{1, 0, 0}},  // right
	{[4]int{7, 6, 2, 3}, mgl64.Vec3{0, 1, 0}},  // top
	{[4]int{0, 1, 5, 4}, mgl64.Vec3{0, -1, 0}}, // bottom
}

// BoxFaces returns the six faces of a box of the given size centered on
// center and spun by roll radians about the X axis.
func BoxFaces(center, size mgl64.Vec3, roll float64) []Face {
	h := size.Mul(0.5)
	corners := [8]mgl64.Vec3{
		{-h[0], -h[1], -h[2]},
		{h[0], -h[1], -h[2]},
		{h[0], h[1], -h[2]},
		{-h[0], h[1], -h[2]},
		{-h[0], -h[1], h[2]},
		{h[0], -h[1], h[2]},
		{h[0], h[1], h[2]},
		{-h[0], h[1], h[2]},
	}
	rot := mgl64.Rotate3DX(roll)
	for i := range corners {
		corners[i] = rot.Mul3x1(corners[i]).Add(center)
	}

	faces := make([]Face, 0, len(boxFaces))
	for _, bf := range boxFaces {
		f := Face{Normal: rot.Mul3x1(bf.normal)}
		for i, ci := range bf.idx {
			f.Corners[i] = corners[ci]
		}
		faces = append(faces, f)
	}
	return faces
}

// FacingCamera reports whether the outside of f is visible from eye.
func FacingCamera(f Face, eye mgl64.Vec3) bool {
	return f.Normal.Dot(eye.Sub(f.Center())) > 0
}

// Shade applies Lambert lighting from a point light to base. The result never
// drops below the light's ambient level.
func Shade(base color.RGBA, f Face, light component.Light) color.RGBA {
	toLight := light.Position.Sub(f.Center())
	diffuse := 0.0
	if toLight.Len() > 0 {
		diffuse = math.Max(0, f.Normal.Normalize().Dot(toLight.Normalize()))
	}
	k := light.Ambient + (1-light.Ambient)*diffuse*light.Intensity
	k = math.Min(math.Max(k, 0), 1)
	return color.RGBA{
		R: uint8(math.Round(float64(base.R) * k)),
		G: uint8(math.Round(float64(base.G) * k)),
		B: uint8(math.Round(float64(base.B) * k)),
		A: base.A,
	}
}

type shadedFace struct {
	Face
	color color.RGBA
	depth float64
}

// sortBackToFront orders faces farthest from eye first.
func sortBackToFront(faces []shadedFace) {
	sort.SliceStable(faces, func(i, j int) bool {
		return faces[i].depth > faces[j].depth
	})
}
