package registry

import "testing"

func TestNameRoundTrip(t *testing.T) {
	for _, name := range []string{
		"air", "stone", "grass", "end_stone", "tnt", "chest",
		"glass_block", "leaves", "water", "swamp_water", "cloud",
		"collider", "sky_grass", "swamp_grass", "lilypad",
	} {
		id, ok := ByName(name)
		if !ok {
			t.Fatalf("ByName(%q) missing", name)
		}
		if NameOf(id) != name {
			t.Errorf("NameOf(ByName(%q)) = %q", name, NameOf(id))
		}
	}
}

func TestOccludingIsSolidAndOpaque(t *testing.T) {
	cases := []struct {
		id                         BlockID
		solid, transparent, occluding bool
	}{
		{BlockStone, true, false, true},
		{BlockEndStone, true, false, true},
		{BlockGlass, true, true, false},
		{BlockLeaves, true, true, false},
		{BlockWater, false, true, false},
		{BlockFlower, false, true, false},
		{BlockCloud, false, true, false},
		{BlockCollider, true, true, false},
		{BlockAir, false, true, false},
	}
	for _, c := range cases {
		if IsSolid(c.id) != c.solid {
			t.Errorf("%s: IsSolid = %v", NameOf(c.id), IsSolid(c.id))
		}
		if IsTransparent(c.id) != c.transparent {
			t.Errorf("%s: IsTransparent = %v", NameOf(c.id), IsTransparent(c.id))
		}
		if IsOccluding(c.id) != c.occluding {
			t.Errorf("%s: IsOccluding = %v", NameOf(c.id), IsOccluding(c.id))
		}
	}
}

func TestAOOnlyOnOpaqueCubes(t *testing.T) {
	for id := BlockID(0); id < blockCount; id++ {
		if AOEnabled(id) && !IsOccluding(id) {
			t.Errorf("%s: AO enabled on a non-occluding block", NameOf(id))
		}
	}
}

func TestUnknownLookups(t *testing.T) {
	if _, ok := ByName("no_such_block"); ok {
		t.Errorf("unknown name resolved")
	}
	if Get(BlockID(250)).Name != "air" {
		t.Errorf("out-of-range id did not fall back to air")
	}
}
