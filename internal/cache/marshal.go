package cache

import "encoding/json"

func marshalCached(value interface{}) ([]byte, error) {
	return json.Marshal(value)
}

func unmarshalCached(data []byte, dest interface{}) error {
	return json.Unmarshal(data, dest)
}
