package solve

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrNoObjects is returned when a result holds no geometry that can be displayed.
var ErrNoObjects = errors.New("no objects to load")

// Response is the data tree returned by a solve: one entry per output parameter.
type Response struct {
	Values []Output `json:"values"`
}

// Output is a single output parameter, holding its data tree.
type Output struct {
	ParamName string            `json:"ParamName"`
	InnerTree map[string][]Item `json:"InnerTree"`
}

// Item is a leaf of a data tree. Data is itself JSON encoded.
type Item struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// ParseResponse decodes a solve result.
func ParseResponse(bs []byte) (*Response, error) {
	var res Response
	if err := json.Unmarshal(bs, &res); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &res, nil
}

// Items returns all the leaves of all outputs: outputs in order, branches sorted by path.
func (r *Response) Items() []Item {
	var res []Item
	for _, out := range r.Values {
		paths := make([]string, 0, len(out.InnerTree))
		for path := range out.InnerTree {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			res = append(res, out.InnerTree[path]...)
		}
	}
	return res
}
