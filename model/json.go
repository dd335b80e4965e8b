package model

import "encoding/json"

// LoadJSONInto merges a sidecar JSON document into m.Params (spec §2's
// "sidecar data file" feature): a top-level scalar number becomes
// param["_"], a top-level object becomes one params[name][key] entry per
// numeric field, and anything else is skipped silently rather than
// rejected, matching load_json_into's permissive contract.
func (m *Model) LoadJSONInto(data []byte) error {
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	for name, val := range doc {
		switch v := val.(type) {
		case float64:
			m.paramEntry(name)["_"] = v
		case map[string]interface{}:
			entry := m.paramEntry(name)
			for k, v2 := range v {
				if fv, ok := v2.(float64); ok {
					entry[k] = fv
				}
			}
		}
	}
	return nil
}

func (m *Model) paramEntry(name string) map[string]float64 {
	entry, ok := m.Params[name]
	if !ok {
		entry = map[string]float64{}
		m.Params[name] = entry
	}
	return entry
}
