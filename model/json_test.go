package model

import "testing"

func TestLoadJSONIntoScalarAndIndexed(t *testing.T) {
	m := New()
	data := []byte(`{"capacity": 42, "value": {"1": 10, "2": 20}, "label": "ignored"}`)
	if err := m.LoadJSONInto(data); err != nil {
		t.Fatalf("LoadJSONInto returned error: %v", err)
	}
	if m.Params["capacity"]["_"] != 42 {
		t.Fatalf("capacity = %v, want 42", m.Params["capacity"]["_"])
	}
	if m.Params["value"]["1"] != 10 || m.Params["value"]["2"] != 20 {
		t.Fatalf("value = %+v, want {1:10, 2:20}", m.Params["value"])
	}
	if _, ok := m.Params["label"]; ok {
		t.Fatalf("non-numeric top-level field must be skipped silently")
	}
}

func TestLoadJSONIntoMergesExistingParam(t *testing.T) {
	m := New()
	m.Params["value"] = map[string]float64{"1": 99}
	data := []byte(`{"value": {"2": 20}}`)
	if err := m.LoadJSONInto(data); err != nil {
		t.Fatalf("LoadJSONInto returned error: %v", err)
	}
	if m.Params["value"]["1"] != 99 {
		t.Fatalf("existing entry 1 must survive merge, got %v", m.Params["value"]["1"])
	}
	if m.Params["value"]["2"] != 20 {
		t.Fatalf("new entry 2 = %v, want 20", m.Params["value"]["2"])
	}
}
