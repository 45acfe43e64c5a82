package utilities

import (
	"encoding/json"
	"fmt"
	"os"
)

// JsonConfigObj is the JSON-shaped side of a config pair: a raw struct with
// json tags that knows how to produce its domain counterpart.
type JsonConfigObj[T any] interface {
	ConvertToDomain() T
}

// ReadConfig loads a JSON config file and converts it to the domain type in
// one step, so raw JSON structs never leak past startup.
func ReadConfig[T JsonConfigObj[U], U any](file string) (U, error) {
	var empty U

	content, err := os.ReadFile(file)
	if err != nil {
		return empty, fmt.Errorf("read config %s: %w", file, err)
	}

	var config T
	if err := json.Unmarshal(content, &config); err != nil {
		return empty, fmt.Errorf("parse config %s: %w", file, err)
	}

	return config.ConvertToDomain(), nil
}

func ConvertJsonArrayToDomain[T JsonConfigObj[U], U any](jsonArray []T) []U {
	domainArray := make([]U, 0, len(jsonArray))
	for _, item := range jsonArray {
		domainArray = append(domainArray, item.ConvertToDomain())
	}
	return domainArray
}
