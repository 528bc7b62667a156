package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

func FmtJSONString(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "marshal data fail"
	}
	return string(data)
}

const FloatMin = 0.000001

func IsFloatEqual(f1, f2 float64) bool {
	return math.Abs(f1-f2) < FloatMin
}

// TruncateToFloat32 narrows a float64 to the float32 STL precision. Values
// that overflow to infinity during narrowing (tiny denormals blown up by the
// affine math) come back as 0 rather than poisoning the mesh.
func TruncateToFloat32(x float64) float32 {
	f := float32(x)
	if math.IsInf(float64(f), 0) {
		return 0
	}
	return f
}

// EpsgCodeFromCRS extracts the numeric code from a CRS identifier such as
// "EPSG:3395". A bare number is accepted too.
func EpsgCodeFromCRS(crs string) (int, error) {
	s := strings.TrimSpace(crs)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		if !strings.EqualFold(s[:i], "epsg") {
			return 0, fmt.Errorf("unsupported CRS authority in %q, only EPSG codes are accepted", crs)
		}
		s = s[i+1:]
	}
	code, err := strconv.Atoi(s)
	if err != nil || code <= 0 {
		return 0, fmt.Errorf("cannot parse EPSG code from %q", crs)
	}
	return code, nil
}
