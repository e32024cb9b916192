// Package shade computes per-facet Phong shading under an arbitrary
// number of point lights (spec §4.6).
package shade

import (
	"math"

	"github.com/chazu/cadvec/pkg/color"
	"github.com/chazu/cadvec/pkg/scene"
)

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func normalize(v [3]float64) [3]float64 {
	n := math.Sqrt(dot(v, v))
	if n == 0 {
		return [3]float64{0, 0, 0}
	}
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}

func clampRound(v float64) uint8 {
	if v > 255 {
		v = 255
	}
	if v < 0 {
		v = 0
	}
	return uint8(math.Round(v))
}

// Colors computes the Phong-shaded RGBA color of every facet of solid
// under lights, viewed along view (the camera's unit view direction).
// With zero lights the result is exactly solid.Color for every facet —
// no lighting computation runs (spec §4.6, scenario 6). Alpha is never
// modulated by lighting.
func Colors(solid scene.Solid, lights []scene.Light, view [3]float64) []color.RGBA {
	n := solid.Mesh.FaceCount()
	out := make([]color.RGBA, n)

	if len(lights) == 0 {
		for i := range out {
			out[i] = solid.Color
		}
		return out
	}

	base := solid.Color
	ambient := [3]float64{float64(base.R), float64(base.G), float64(base.B)}
	ka, kd, ks, alpha := solid.Material.Ka, solid.Material.Kd, solid.Material.Ks, solid.Material.Alpha
	viewI := [3]float64{-view[0], -view[1], -view[2]}
	nLights := float64(len(lights))

	for i := 0; i < n; i++ {
		normalSlice := solid.Mesh.Normal(i)
		centerSlice := solid.Mesh.Center(i)
		normal := [3]float64{normalSlice[0], normalSlice[1], normalSlice[2]}
		center := [3]float64{centerSlice[0], centerSlice[1], centerSlice[2]}

		var accum [3]float64
		for _, light := range lights {
			lightPos := light.Position
			lightColor := [3]float64{float64(light.Color.R), float64(light.Color.G), float64(light.Color.B)}

			lDir := normalize(sub(lightPos, center))
			cosD := math.Max(0, dot(lDir, normal))
			reflect := [3]float64{
				2*cosD*normal[0] - lDir[0],
				2*cosD*normal[1] - lDir[1],
				2*cosD*normal[2] - lDir[2],
			}
			cosS := math.Max(0, dot(reflect, viewI))
			specFactor := math.Pow(cosS, alpha)

			for ch := 0; ch < 3; ch++ {
				accum[ch] += (1.0 / nLights) * ka * ambient[ch]
				diffuseTerm := kd * cosD * lightColor[ch]
				accum[ch] += diffuseTerm
				specTerm := ks * specFactor * lightColor[ch]
				if diffuseTerm >= 0 {
					accum[ch] += specTerm
				}
			}
		}

		out[i] = color.NewWithAlpha(clampRound(accum[0]), clampRound(accum[1]), clampRound(accum[2]), base.A)
	}

	return out
}
