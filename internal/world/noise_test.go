package world

import (
	"math"
	"testing"
)

func TestNoiseDeterministic(t *testing.T) {
	n1 := NewNoise(1337)
	n2 := NewNoise(1337)
	for i := 0; i < 100; i++ {
		x := float64(i*13 - 500)
		z := float64(i*7 - 300)
		if n1.Sample(x, z, 0.08) != n2.Sample(x, z, 0.08) {
			t.Fatalf("noise not deterministic at (%f, %f)", x, z)
		}
	}
}

func TestNoiseSeedChangesOutput(t *testing.T) {
	a := NewNoise(1)
	b := NewNoise(2)
	same := 0
	for i := 0; i < 50; i++ {
		x := float64(i * 11)
		if a.Sample(x, 0, 0.08) == b.Sample(x, 0, 0.08) {
			same++
		}
	}
	if same == 50 {
		t.Errorf("different seeds produced identical noise")
	}
}

func TestNoiseRange(t *testing.T) {
	n := NewNoise(42)
	for i := -200; i <= 200; i += 7 {
		v := n.Sample(float64(i), float64(-i), 0.02)
		if v < -4 || v > 4 {
			t.Errorf("Sample(%d) = %f, outside [-4, 4]", i, v)
		}
	}
}

func TestHeightRawMatchesFormula(t *testing.T) {
	n := NewNoise(7)
	for _, c := range [][2]int{{0, 0}, {13, -5}, {-100, 250}, {9999, -9999}} {
		x, z := c[0], c[1]
		want := int(math.Floor(n.Sample(float64(x), float64(z), 0.08) + 3*n.Sample(float64(x), float64(z), 0.02)))
		if got := n.HeightRaw(x, z); got != want {
			t.Errorf("HeightRaw(%d,%d) = %d, want %d", x, z, got, want)
		}
	}
}

func TestSurfaceHeightBiomeAdjustments(t *testing.T) {
	n := NewNoise(99)

	foundDesert, foundSwamp := false, false
	for x := -3000; x <= 3000; x += 17 {
		for z := -3000; z <= 3000; z += 17 {
			raw := n.HeightRaw(x, z)
			got := n.SurfaceHeight(x, z)
			switch n.BiomeAt(x, z) {
			case BiomeDesert:
				foundDesert = true
				if want := int(math.Floor(float64(raw)*0.5 + 2)); got != want {
					t.Fatalf("desert height at (%d,%d) = %d, want %d", x, z, got, want)
				}
			case BiomeSwamp:
				foundSwamp = true
				if want := int(math.Floor(float64(raw)*0.3 - 2)); got != want {
					t.Fatalf("swamp height at (%d,%d) = %d, want %d", x, z, got, want)
				}
			default:
				if got != raw {
					t.Fatalf("unadjusted biome height at (%d,%d) = %d, want %d", x, z, got, raw)
				}
			}
		}
	}
	if !foundDesert || !foundSwamp {
		t.Logf("biome coverage: desert=%v swamp=%v", foundDesert, foundSwamp)
	}
}

func TestBiomeClassifierThresholds(t *testing.T) {
	n := NewNoise(5)

	for x := -1000; x <= 1000; x += 31 {
		for z := -1000; z <= 1000; z += 31 {
			temp := n.Sample(float64(x), float64(z), 0.01)
			hum := n.Sample(float64(x)+1000, float64(z)+1000, 0.015)
			got := n.BiomeAt(x, z)

			var want *Biome
			switch {
			case temp > 1.2:
				want = BiomeForest
			case temp > 0.6 && hum > 0:
				want = BiomeAzalea
			case temp < -1.5:
				want = BiomeDesert
			case temp >= -1.5 && temp < -0.8 && hum > 0.5:
				want = BiomeSwamp
			default:
				want = BiomePlains
			}
			if got != want {
				t.Fatalf("BiomeAt(%d,%d) = %s, want %s (temp=%f hum=%f)", x, z, got.Name, want.Name, temp, hum)
			}
		}
	}
}

func TestChunkRandDeterministic(t *testing.T) {
	a := chunkRand(3, -2, 123)
	b := chunkRand(3, -2, 123)
	for j := 0; j < 50; j++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("chunkRand stream diverged at draw %d", j)
		}
	}
}

func TestChunkRandVariesByCoord(t *testing.T) {
	a := chunkRand(0, 0, 1).Int63()
	b := chunkRand(0, 1, 1).Int63()
	c := chunkRand(1, 0, 1).Int63()
	if a == b && a == c {
		t.Errorf("chunk RNG streams identical across coordinates")
	}
}

func BenchmarkHeightRaw(b *testing.B) {
	n := NewNoise(1337)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = n.HeightRaw(i%1024, (i*31)%1024)
	}
}
