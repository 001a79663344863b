package icinga

import (
	dcerrors "github.com/alexisbeaulieu97/directorctl/pkg/errors"
)

// scrubValue normalizes a remote attribute value into a comparable form.
// The Director wraps references to other objects in JSON objects carrying an
// object_name field; those collapse to the referenced name. Primitives,
// lists and plain maps pass through unchanged.
//
// A wrapper whose object_name is itself not a string cannot be compared
// meaningfully and is reported rather than coerced.
func scrubValue(key string, value any) (any, error) {
	wrapper, ok := value.(map[string]any)
	if !ok {
		return value, nil
	}

	name, ok := wrapper["object_name"]
	if !ok {
		return wrapper, nil
	}

	text, ok := name.(string)
	if !ok {
		return nil, dcerrors.NewScrubError(key, value)
	}

	return text, nil
}
