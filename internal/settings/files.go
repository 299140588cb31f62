package settings

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/toejough/qcli/internal/options"
)

// Exported variables.
var (
	ErrInvalidKey        = errors.New("key is not a valid identifier for this format")
	ErrUnsupportedFormat = errors.New("unsupported settings file format")
	ErrUnsupportedValue  = errors.New("unsupported settings value")
)

// Format identifies a settings file codec.
type Format string

// Supported formats.
const (
	FormatHCL  Format = "hcl"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor returns the format implied by path's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Decode parses data in the given format into a key/value map.
// name is used in error messages.
func Decode(format Format, name string, data []byte) (map[string]any, error) {
	switch format {
	case FormatTOML:
		var out map[string]any
		if _, err := toml.Decode(string(data), &out); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}

		return out, nil
	case FormatYAML:
		var out map[string]any
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}

		return out, nil
	case FormatHCL:
		return decodeHCL(name, data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Encode renders values in the given format.
func Encode(format Format, values map[string]any) ([]byte, error) {
	switch format {
	case FormatTOML:
		var sb strings.Builder
		if err := toml.NewEncoder(&sb).Encode(values); err != nil {
			return nil, err
		}

		return []byte(sb.String()), nil
	case FormatYAML:
		return yaml.Marshal(values)
	case FormatHCL:
		return encodeHCL(values)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Load replaces the local values with values. Keys lose a leading "--" or "-",
// nested tables are flattened one level, and every value goes through SetValue.
func (s *Store) Load(values map[string]any) {
	s.values = map[string]any{}

	for key, value := range values {
		if table, ok := value.(map[string]any); ok {
			for inner, v := range table {
				s.SetValue(stripPrefix(inner), v)
			}

			continue
		}

		s.SetValue(stripPrefix(key), value)
	}
}

// LoadFile reads path with the codec implied by its extension and loads it.
func (s *Store) LoadFile(path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	values, err := Decode(format, path, data)
	if err != nil {
		return err
	}

	s.Load(values)

	return nil
}

// SaveFile writes the local values (bare arguments excluded) to path with the
// codec implied by its extension.
func (s *Store) SaveFile(path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	data, err := Encode(format, s.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Snapshot returns a copy of the local values, excluding bare arguments.
func (s *Store) Snapshot() map[string]any {
	out := make(map[string]any, len(s.values))

	for k, v := range s.values {
		if k != ArgumentsKey {
			out[k] = v
		}
	}

	return out
}

func ctyToGo(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}

	typ := val.Type()

	switch {
	case typ == cty.String:
		return val.AsString(), nil
	case typ == cty.Bool:
		return val.True(), nil
	case typ == cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			if n, acc := bf.Int64(); acc == big.Exact {
				return n, nil
			}
		}

		f, _ := bf.Float64()

		return f, nil
	case typ.IsObjectType() || typ.IsMapType():
		out := map[string]any{}

		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()

			goVal, err := ctyToGo(v)
			if err != nil {
				return nil, err
			}

			out[k.AsString()] = goVal
		}

		return out, nil
	case typ.IsTupleType() || typ.IsListType() || typ.IsSetType():
		out := []any{}

		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()

			goVal, err := ctyToGo(v)
			if err != nil {
				return nil, err
			}

			out = append(out, goVal)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedValue, typ.FriendlyName())
	}
}

func decodeHCL(name string, data []byte) (map[string]any, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, name)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", name, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read attributes of %s: %w", name, diags)
	}

	out := make(map[string]any, len(attrs))

	for key, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate %s in %s: %w", key, name, diags)
		}

		goVal, err := ctyToGo(val)
		if err != nil {
			return nil, fmt.Errorf("%s in %s: %w", key, name, err)
		}

		out[key] = goVal
	}

	return out, nil
}

func encodeHCL(values map[string]any) ([]byte, error) {
	file := hclwrite.NewEmptyFile()
	body := file.Body()

	for _, key := range sortedKeys(values) {
		if !hclsyntax.ValidIdentifier(key) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}

		val, err := goToCty(values[key])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}

		body.SetAttributeValue(key, val)
	}

	return file.Bytes(), nil
}

func goToCty(v any) (cty.Value, error) {
	switch val := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(val), nil
	case bool:
		return cty.BoolVal(val), nil
	case int:
		return cty.NumberIntVal(int64(val)), nil
	case int64:
		return cty.NumberIntVal(val), nil
	case float64:
		return cty.NumberFloatVal(val), nil
	case []any:
		if len(val) == 0 {
			return cty.EmptyTupleVal, nil
		}

		elems := make([]cty.Value, 0, len(val))

		for _, e := range val {
			ce, err := goToCty(e)
			if err != nil {
				return cty.NilVal, err
			}

			elems = append(elems, ce)
		}

		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(val) == 0 {
			return cty.EmptyObjectVal, nil
		}

		attrs := make(map[string]cty.Value, len(val))

		for k, e := range val {
			ce, err := goToCty(e)
			if err != nil {
				return cty.NilVal, err
			}

			attrs[k] = ce
		}

		return cty.ObjectVal(attrs), nil
	default:
		return cty.NilVal, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

func stripPrefix(key string) string {
	if after, ok := strings.CutPrefix(key, options.LongPrefix); ok {
		return after
	}

	if after, ok := strings.CutPrefix(key, options.ShortPrefix); ok {
		return after
	}

	return key
}
