package software

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/BrackenLo/roots"
)

func identityCamera(position mgl32.Vec3) roots.CameraUniform {
	return roots.CameraUniform{ViewProjection: mgl32.Ident4(), Position: position}
}

func vec3Near(a, b mgl32.Vec3, eps float32) bool {
	return math32.Abs(a[0]-b[0]) < eps &&
		math32.Abs(a[1]-b[1]) < eps &&
		math32.Abs(a[2]-b[2]) < eps
}

func vec4Near(a, b mgl32.Vec4, eps float32) bool {
	return math32.Abs(a[0]-b[0]) < eps &&
		math32.Abs(a[1]-b[1]) < eps &&
		math32.Abs(a[2]-b[2]) < eps &&
		math32.Abs(a[3]-b[3]) < eps
}

func TestQuadFragmentIsSampleTimesTint(t *testing.T) {
	sample := FlatSampler(mgl32.Vec4{0.5, 0.25, 1, 0.8})
	cam := identityCamera(mgl32.Vec3{})

	// Other instances must not influence the result; shade the same
	// fragment against different instance sets and compare.
	inst := roots.QuadInstance{
		Color: mgl32.Vec4{1, 0.5, 0.5, 1},
		Size:  mgl32.Vec2{10, 10},
		Pos:   mgl32.Vec3{3, 4, 0},
	}
	out := QuadVertexStage(cam, roots.QuadVertices[0], inst)
	got := QuadFragmentStage(sample, out)

	want := mgl32.Vec4{0.5 * 1, 0.25 * 0.5, 1 * 0.5, 0.8 * 1}
	if !vec4Near(got, want, 1e-6) {
		t.Errorf("fragment = %v, want %v", got, want)
	}

	// A second, unrelated instance shades independently.
	other := roots.QuadInstance{Color: mgl32.Vec4{0, 0, 0, 0}, Size: mgl32.Vec2{99, 99}}
	_ = QuadVertexStage(cam, roots.QuadVertices[0], other)
	if again := QuadFragmentStage(sample, out); again != got {
		t.Error("fragment result changed with unrelated instance present")
	}
}

func TestQuadExtentScalesLinearlyWithSize(t *testing.T) {
	cam := identityCamera(mgl32.Vec3{})
	pos := mgl32.Vec3{5, -2, 0}

	small := roots.QuadInstance{Color: mgl32.Vec4{1, 1, 1, 1}, Size: mgl32.Vec2{10, 20}, Pos: pos}
	big := roots.QuadInstance{Color: mgl32.Vec4{1, 1, 1, 1}, Size: mgl32.Vec2{20, 40}, Pos: pos}

	for _, v := range roots.QuadVertices {
		smallOut := QuadVertexStage(cam, v, small).ClipPosition.Vec3().Sub(pos)
		bigOut := QuadVertexStage(cam, v, big).ClipPosition.Vec3().Sub(pos)
		if !vec3Near(bigOut, smallOut.Mul(2), 1e-5) {
			t.Errorf("vertex %v: doubled size gives offset %v, want %v", v.Pos, bigOut, smallOut.Mul(2))
		}
	}
}

func TestLineAnchorClassification(t *testing.T) {
	a := mgl32.Vec3{1, 1, 1}
	b := mgl32.Vec3{9, 9, 9}

	for idx := uint32(0); idx < 2*roots.LineVerticesPerInstance; idx++ {
		want := a
		if idx%roots.LineVerticesPerInstance >= roots.LineVerticesPerInstance/2 {
			want = b
		}
		if got := LineAnchor(idx, a, b); got != want {
			t.Errorf("index %d anchors to %v, want %v", idx, got, want)
		}
	}
}

func TestLineVertexStageProjectsAndOffsets(t *testing.T) {
	proj := mgl32.Scale3D(0.5, 0.5, 0.5)
	cam := roots.CameraUniform{ViewProjection: proj}

	inst := roots.LineInstance{
		Color:     mgl32.Vec4{1, 0, 0, 1},
		Pos1:      mgl32.Vec3{10, 0, 0},
		Pos2:      mgl32.Vec3{0, 10, 0},
		Thickness: 4,
	}

	// Vertex 0 anchors to pos1, vertex 4 (same local position) to pos2.
	local := roots.LineVertices[0]
	out1 := LineVertexStage(cam, 0, local, inst)
	out2 := LineVertexStage(cam, 4, local, inst)

	want1 := proj.Mul4x1(local.Mul(4).Add(inst.Pos1).Vec4(1))
	want2 := proj.Mul4x1(local.Mul(4).Add(inst.Pos2).Vec4(1))
	if !vec4Near(out1.ClipPosition, want1, 1e-6) {
		t.Errorf("endpoint-a vertex = %v, want %v", out1.ClipPosition, want1)
	}
	if !vec4Near(out2.ClipPosition, want2, 1e-6) {
		t.Errorf("endpoint-b vertex = %v, want %v", out2.ClipPosition, want2)
	}
	if LineFragmentStage(out1) != inst.Color {
		t.Error("line fragment must pass the instance color through")
	}
}

func TestModelZeroLightsIsPureAmbient(t *testing.T) {
	cam := identityCamera(mgl32.Vec3{0, 0, 10})
	globals := roots.GlobalLightData{AmbientColor: mgl32.Vec3{0.2, 0.4, 0.6}, AmbientStrength: 0.5}
	sample := FlatSampler(mgl32.Vec4{1, 0.5, 1, 1})
	tint := mgl32.Vec4{1, 1, 0.5, 0.75}

	frag := ModelVertexOut{
		WorldPosition: mgl32.Vec3{1, 2, 3},
		Normal:        mgl32.Vec3{0, 1, 0},
		Color:         tint,
	}
	got := ModelFragmentStage(cam, globals, nil, sample, frag)

	// ambient * tex, alpha solely from the tint.
	want := mgl32.Vec4{0.1 * 1 * 1, 0.2 * 0.5 * 1, 0.3 * 1 * 0.5, 0.75}
	if !vec4Near(got, want, 1e-6) {
		t.Errorf("fragment = %v, want %v", got, want)
	}
}

func TestModelLightingPermutationInvariant(t *testing.T) {
	cam := identityCamera(mgl32.Vec3{0, 3, 8})
	globals := roots.DefaultGlobalLightData()
	sample := FlatSampler(mgl32.Vec4{1, 1, 1, 1})

	rng := rand.New(rand.NewSource(42))
	lights := make([]roots.Light, 6)
	for i := range lights {
		lights[i] = roots.Light{
			Position: mgl32.Vec4{rng.Float32()*10 - 5, rng.Float32() * 10, rng.Float32()*10 - 5, 1},
			Diffuse:  mgl32.Vec4{rng.Float32(), rng.Float32(), rng.Float32(), 1},
			Specular: mgl32.Vec4{rng.Float32(), rng.Float32(), rng.Float32(), 1},
		}
	}

	frag := ModelVertexOut{
		WorldPosition: mgl32.Vec3{0.5, 0, 0.5},
		Normal:        mgl32.Vec3{0, 1, 0},
		Color:         mgl32.Vec4{1, 1, 1, 1},
	}

	base := ModelFragmentStage(cam, globals, lights, sample, frag)

	shuffled := make([]roots.Light, len(lights))
	copy(shuffled, lights)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	got := ModelFragmentStage(cam, globals, shuffled, sample, frag)
	if !vec4Near(got, base, 1e-5) {
		t.Errorf("permuted list = %v, original = %v", got, base)
	}
}

func TestModelLightAtCameraHeadOn(t *testing.T) {
	// Light and camera coincide on the normal axis: light_dir == normal
	// == half_dir, so both strengths hit their maximum contribution.
	cam := identityCamera(mgl32.Vec3{0, 5, 0})
	globals := roots.GlobalLightData{AmbientStrength: 0}
	sample := FlatSampler(mgl32.Vec4{1, 1, 1, 1})

	lights := []roots.Light{{
		Position: mgl32.Vec4{0, 5, 0, 1},
		Diffuse:  mgl32.Vec4{0.25, 0.5, 0.75, 1},
		Specular: mgl32.Vec4{0.1, 0.2, 0.3, 1},
	}}

	frag := ModelVertexOut{
		WorldPosition: mgl32.Vec3{},
		Normal:        mgl32.Vec3{0, 1, 0},
		Color:         mgl32.Vec4{1, 1, 1, 1},
	}
	got := ModelFragmentStage(cam, globals, lights, sample, frag)

	// dot = 1 for both terms: full diffuse plus full specular.
	want := mgl32.Vec4{0.25 + 0.1, 0.5 + 0.2, 0.75 + 0.3, 1}
	if !vec4Near(got, want, 1e-5) {
		t.Errorf("fragment = %v, want %v", got, want)
	}
}

func TestModelNormalUsesOnlyNormalMatrix(t *testing.T) {
	// A wildly nonuniform transform with an identity normal matrix must
	// leave the shaded normal untouched: the core trusts the supplied
	// rows and never derives an inverse-transpose.
	var inst roots.ModelInstance
	inst.Transform = mgl32.Scale3D(100, 1, 0.01)
	inst.Color = mgl32.Vec4{1, 1, 1, 1}
	inst.SetNormalMatrix(mgl32.Ident3())

	cam := identityCamera(mgl32.Vec3{})
	v := roots.ModelVertex{Pos: mgl32.Vec3{1, 1, 1}, Normal: mgl32.Vec3{0, 1, 0}}
	out := ModelVertexStage(cam, v, inst)

	if out.Normal != v.Normal {
		t.Errorf("normal = %v, want untouched %v", out.Normal, v.Normal)
	}
	if !vec3Near(out.WorldPosition, mgl32.Vec3{100, 1, 0.01}, 1e-5) {
		t.Errorf("world position = %v, want scaled by the full transform", out.WorldPosition)
	}
}

func TestModelScenarioOverheadLight(t *testing.T) {
	// Identity transform, single light at (0,5,0,1) with white diffuse,
	// zero ambient, +Y normal, fragment at the origin: the diffuse dot
	// is exactly 1 and the accumulated diffuse is (1,1,1).
	var inst roots.ModelInstance
	inst.Transform = mgl32.Ident4()
	inst.Color = mgl32.Vec4{1, 1, 1, 1}
	inst.SetNormalMatrix(mgl32.Ident3())

	cam := identityCamera(mgl32.Vec3{0, 5, 0})
	v := roots.ModelVertex{Pos: mgl32.Vec3{}, Normal: mgl32.Vec3{0, 1, 0}}
	out := ModelVertexStage(cam, v, inst)

	if out.WorldPosition != (mgl32.Vec3{}) {
		t.Fatalf("world position = %v, want origin", out.WorldPosition)
	}

	globals := roots.GlobalLightData{AmbientStrength: 0}
	lights := []roots.Light{{
		Position: mgl32.Vec4{0, 5, 0, 1},
		Diffuse:  mgl32.Vec4{1, 1, 1, 1},
	}}
	sample := FlatSampler(mgl32.Vec4{1, 1, 1, 1})

	got := ModelFragmentStage(cam, globals, lights, sample, out)

	// Diffuse (1,1,1) plus the specular term, which is also maximal here
	// but has a zero specular color; result is exactly (1,1,1).
	want := mgl32.Vec4{1, 1, 1, 1}
	if !vec4Near(got, want, 1e-5) {
		t.Errorf("fragment = %v, want %v", got, want)
	}
}

func TestPointLightAtFragmentPropagatesNaN(t *testing.T) {
	// A light coincident with the shaded point normalizes a zero-length
	// vector. The contract is to propagate the NaN, not mask it.
	cam := identityCamera(mgl32.Vec3{0, 0, 5})
	globals := roots.DefaultGlobalLightData()
	sample := FlatSampler(mgl32.Vec4{1, 1, 1, 1})

	pos := mgl32.Vec3{1, 2, 3}
	lights := []roots.Light{{
		Position: mgl32.Vec4{1, 2, 3, 1},
		Diffuse:  mgl32.Vec4{1, 1, 1, 1},
		Specular: mgl32.Vec4{1, 1, 1, 1},
	}}

	frag := ModelVertexOut{
		WorldPosition: pos,
		Normal:        mgl32.Vec3{0, 1, 0},
		Color:         mgl32.Vec4{1, 1, 1, 1},
	}
	got := ModelFragmentStage(cam, globals, lights, sample, frag)

	if !math32.IsNaN(got[0]) || !math32.IsNaN(got[1]) || !math32.IsNaN(got[2]) {
		t.Errorf("fragment = %v, want NaN rgb", got)
	}
	// Alpha comes solely from the tint and stays finite.
	if math32.IsNaN(got[3]) {
		t.Error("alpha must not be polluted by the lighting NaN")
	}
}

func TestMatrixReconstruction(t *testing.T) {
	m := Mat4FromColumns(
		mgl32.Vec4{1, 2, 3, 4},
		mgl32.Vec4{5, 6, 7, 8},
		mgl32.Vec4{9, 10, 11, 12},
		mgl32.Vec4{13, 14, 15, 16},
	)
	if m.Col(2) != (mgl32.Vec4{9, 10, 11, 12}) {
		t.Errorf("column 2 = %v", m.Col(2))
	}

	n := Mat3FromRows(
		mgl32.Vec3{1, 2, 3},
		mgl32.Vec3{4, 5, 6},
		mgl32.Vec3{7, 8, 9},
	)
	if n.Row(1) != (mgl32.Vec3{4, 5, 6}) {
		t.Errorf("row 1 = %v", n.Row(1))
	}
	// Row-major application: row dot vector.
	if got := n.Mul3x1(mgl32.Vec3{1, 0, 0}); got != (mgl32.Vec3{1, 4, 7}) {
		t.Errorf("n * e0 = %v, want first column (1,4,7)", got)
	}
}
