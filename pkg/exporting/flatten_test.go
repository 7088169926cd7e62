package exporting

import "testing"

func TestFlattenRecordNested(t *testing.T) {
	r := Record{
		"cpu": map[string]interface{}{
			"processorName": "AMD Ryzen 7 9700X 8-Core Processor",
			"codenameIndex": float64(23),
		},
		"metrics": map[string]interface{}{
			"vcore":      1.25,
			"coreTempsC": []interface{}{45.0, 46.5},
		},
		"timestamp": int64(1700000000),
	}

	flat := FlattenRecord(r)

	cases := []struct {
		key  string
		want interface{}
	}{
		{"cpuProcessorName", "AMD Ryzen 7 9700X 8-Core Processor"},
		{"cpuCodenameIndex", float64(23)},
		{"metricsVcore", 1.25},
		{"metricsCoreTempsC0", 45.0},
		{"metricsCoreTempsC1", 46.5},
		{"timestamp", int64(1700000000)},
	}
	for _, c := range cases {
		if got, ok := flat[c.key]; !ok || got != c.want {
			t.Errorf("flat[%q] = %v, %v; want %v", c.key, got, ok, c.want)
		}
	}
	if _, ok := flat["cpu"]; ok {
		t.Error("nested object survived flattening")
	}
}

func TestFlattenRecordArrayOfObjects(t *testing.T) {
	r := Record{
		"modules": []interface{}{
			map[string]interface{}{"slotLabel": "A1"},
			map[string]interface{}{"slotLabel": "B1"},
		},
	}

	flat := FlattenRecord(r)
	if got := flat["modules0SlotLabel"]; got != "A1" {
		t.Errorf("flat[modules0SlotLabel] = %v; want A1", got)
	}
	if got := flat["modules1SlotLabel"]; got != "B1" {
		t.Errorf("flat[modules1SlotLabel] = %v; want B1", got)
	}
}

func TestFlattenRecordDropsNil(t *testing.T) {
	flat := FlattenRecord(Record{
		"tdieC": nil,
		"vcore": 1.2,
		"board": map[string]interface{}{"agesaVersion": nil},
	})

	if _, ok := flat["tdieC"]; ok {
		t.Error("nil scalar survived flattening")
	}
	if _, ok := flat["boardAgesaVersion"]; ok {
		t.Error("nil nested value survived flattening")
	}
	if len(flat) != 1 {
		t.Errorf("len(flat) = %d; want 1", len(flat))
	}
}

func TestFlattenRecordNilInput(t *testing.T) {
	if got := FlattenRecord(nil); got != nil {
		t.Errorf("FlattenRecord(nil) = %v; want nil", got)
	}
}

func TestFlattenRecordFlatPassthrough(t *testing.T) {
	r := Record{"a": 1, "b": "two"}
	flat := FlattenRecord(r)
	if len(flat) != 2 || flat["a"] != 1 || flat["b"] != "two" {
		t.Errorf("FlattenRecord(flat) = %v; want unchanged fields", flat)
	}
}
