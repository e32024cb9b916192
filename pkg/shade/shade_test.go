package shade

import (
	"testing"

	"github.com/chazu/cadvec/pkg/color"
	"github.com/chazu/cadvec/pkg/mesh"
	"github.com/chazu/cadvec/pkg/scene"
)

func singleTriangleSolid(t *testing.T, base color.RGBA, mat_ scene.Material) scene.Solid {
	t.Helper()
	geometry, err := mesh.NewGeometry([][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	if err != nil {
		t.Fatalf("NewGeometry() error = %v", err)
	}
	topo, err := mesh.NewTopology([][]int{{0, 1, 2}})
	if err != nil {
		t.Fatalf("NewTopology() error = %v", err)
	}
	m, err := mesh.New(geometry, topo)
	if err != nil {
		t.Fatalf("mesh.New() error = %v", err)
	}
	return scene.Solid{Mesh: m, Color: base, Material: mat_}
}

func TestColorsZeroLightsReturnsBaseColor(t *testing.T) {
	base := color.New(10, 20, 30)
	solid := singleTriangleSolid(t, base, scene.DefaultMaterial)

	colors := Colors(solid, nil, [3]float64{0, 0, -1})
	if len(colors) != 1 {
		t.Fatalf("Colors() returned %d entries, want 1", len(colors))
	}
	if colors[0] != base {
		t.Errorf("Colors() = %+v, want base color %+v", colors[0], base)
	}
}

func TestColorsPreservesAlpha(t *testing.T) {
	base := color.NewWithAlpha(10, 20, 30, 128)
	solid := singleTriangleSolid(t, base, scene.DefaultMaterial)
	light := scene.NewLight([3]float64{0, 0, 10})

	colors := Colors(solid, []scene.Light{light}, [3]float64{0, 0, -1})
	if colors[0].A != 128 {
		t.Errorf("alpha = %d, want 128 (never modulated by lighting)", colors[0].A)
	}
}

func TestColorsFrontLitFaceIsBrighterThanUnlit(t *testing.T) {
	base := color.New(50, 50, 50)
	solid := singleTriangleSolid(t, base, scene.DefaultMaterial)
	light := scene.NewLight([3]float64{0, 0, 10})

	litColors := Colors(solid, []scene.Light{light}, [3]float64{0, 0, -1})
	unlitColors := Colors(solid, nil, [3]float64{0, 0, -1})

	if litColors[0].R <= unlitColors[0].R {
		t.Errorf("front-lit R = %d, want brighter than unlit base color %d", litColors[0].R, unlitColors[0].R)
	}
}

func TestColorsBackLitFaceGetsNoDiffuse(t *testing.T) {
	base := color.New(50, 50, 50)
	solid := singleTriangleSolid(t, base, scene.DefaultMaterial)
	light := scene.NewLight([3]float64{0, 0, -10})

	colors := Colors(solid, []scene.Light{light}, [3]float64{0, 0, -1})
	// The light is behind the facet, so cos_d clamps to 0 and the diffuse
	// term is 0. The specular gate (cos_d*kd >= 0) still passes, and the
	// mirrored light direction points at the viewer (cos_s ~ 0.99889):
	// 0.7*50 + 0.3*sqrt(0.99889)*255 = 35 + 76.46, rounded to 111.
	want := uint8(111)
	if colors[0].R != want {
		t.Errorf("back-lit R = %d, want %d (ambient plus specular, no diffuse)", colors[0].R, want)
	}
}

func TestColorsClampsToByteRange(t *testing.T) {
	base := color.New(255, 255, 255)
	mat_ := scene.Material{Ka: 5, Kd: 5, Ks: 5, Alpha: 1}
	solid := singleTriangleSolid(t, base, mat_)
	light := scene.NewLight([3]float64{0, 0, 10})

	colors := Colors(solid, []scene.Light{light}, [3]float64{0, 0, -1})
	if colors[0].R != 255 || colors[0].G != 255 || colors[0].B != 255 {
		t.Errorf("Colors() = %+v, want clamped to 255", colors[0])
	}
}

func TestColorsAmbientDoesNotScaleWithLightCount(t *testing.T) {
	base := color.New(100, 100, 100)
	mat_ := scene.Material{Ka: 0.5, Kd: 0, Ks: 0, Alpha: 1}
	solid := singleTriangleSolid(t, base, mat_)

	oneLight := Colors(solid, []scene.Light{scene.NewLight([3]float64{0, 0, -10})}, [3]float64{0, 0, -1})
	twoLights := Colors(solid, []scene.Light{
		scene.NewLight([3]float64{0, 0, -10}),
		scene.NewLight([3]float64{0, 0, -10}),
	}, [3]float64{0, 0, -1})

	if oneLight[0].R != twoLights[0].R {
		t.Errorf("ambient contribution scaled with light count: one=%d two=%d", oneLight[0].R, twoLights[0].R)
	}
}
