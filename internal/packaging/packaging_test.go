package packaging

import "testing"

func TestInfer_KnownCategories(t *testing.T) {
	tests := []struct {
		categories []string
		material   string
	}{
		{[]string{"beverages", "sodas"}, "PET/Aluminum"},
		{[]string{"snacks", "chips"}, "Multi-layer plastic"},
		{[]string{"dairy", "yogurts"}, "Plastic (PP)"},
		{[]string{"fruit-juices", "fruit"}, "Organic or Paper"},
		{[]string{"milks"}, "Tetra Pak"},
		{[]string{"fresh-vegetables"}, "Loose/Compostable Bag"},
	}

	for _, test := range tests {
		info := Infer(test.categories)
		if info.Material != test.material {
			t.Errorf("Categories %v: expected %s, got %s", test.categories, test.material, info.Material)
		}
		if !info.Inferred {
			t.Errorf("Categories %v: expected an inferred profile", test.categories)
		}
	}
}

func TestInfer_FirstTagWins(t *testing.T) {
	info := Infer([]string{"sodas", "chips"})
	if info.Material != "PET/Aluminum" {
		t.Errorf("Expected the first tag's profile, got %s", info.Material)
	}
}

func TestInfer_CaseInsensitive(t *testing.T) {
	info := Infer([]string{"SODAS"})
	if info.Material != "PET/Aluminum" {
		t.Errorf("Expected case-insensitive matching, got %s", info.Material)
	}
}

func TestInfer_Unknown(t *testing.T) {
	info := Infer([]string{"mystery-category"})
	if info.Material != "Unknown" {
		t.Errorf("Expected Unknown material, got %s", info.Material)
	}
	if info.Inferred || info.Recyclable || info.Biodegradable {
		t.Errorf("Unknown profile should carry no claims: %+v", info)
	}
}

func TestInfer_Empty(t *testing.T) {
	if info := Infer(nil); info.Material != "Unknown" {
		t.Errorf("Expected Unknown for empty categories, got %s", info.Material)
	}
}
