package cli

import (
	"strconv"

	"sqlite-crud/internal/errors"
)

func parseInt(field, raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewInvalidInputError(field, raw, "must be an integer")
	}
	return v, nil
}

// parseInts parses raw into ints, naming each by the matching entry in fields.
func parseInts(fields []string, raw []string) ([]int64, error) {
	out := make([]int64, len(raw))
	for i := range raw {
		v, err := parseInt(fields[i], raw[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
