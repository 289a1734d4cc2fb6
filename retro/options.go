package retro

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/user-none/goretro/abi"
)

// MaxOptionValues is the number of values an option may declare.
const MaxOptionValues = abi.NumCoreOptionValuesMax - 1

// OptionValue is one selectable value. An empty Label shows Value.
type OptionValue struct {
	Value string
	Label string
}

// OptionCategory groups options in hosts that support categories.
type OptionCategory struct {
	Key  string
	Desc string
	Info string
}

// CoreOption declares one option. Default falls back to the first value
// when empty or not among Values.
type CoreOption struct {
	Key             string
	Desc            string
	DescCategorized string
	Info            string
	InfoCategorized string
	CategoryKey     string
	Values          []OptionValue
	Default         string
}

// CoreOptions is the full option declaration of a core.
type CoreOptions struct {
	Categories  []OptionCategory
	Definitions []CoreOption
}

// DefaultValue returns the value the host starts with.
func (o *CoreOption) DefaultValue() string {
	if len(o.Values) == 0 {
		return ""
	}
	for _, v := range o.Values {
		if v.Value == o.Default {
			return o.Default
		}
	}
	return o.Values[0].Value
}

// Validate checks keys, value counts, strings and category references.
func (o CoreOptions) Validate() error {
	cats := make(map[string]bool, len(o.Categories))
	for _, c := range o.Categories {
		if c.Key == "" {
			return &OptionError{Reason: "category with empty key"}
		}
		if hasNul(c.Key, c.Desc, c.Info) {
			return &OptionError{Key: c.Key, Reason: "category contains a null byte"}
		}
		cats[c.Key] = true
	}

	seen := make(map[string]bool, len(o.Definitions))
	for i := range o.Definitions {
		d := &o.Definitions[i]
		switch {
		case d.Key == "":
			return &OptionError{Reason: fmt.Sprintf("definition %d has an empty key", i)}
		case seen[d.Key]:
			return &OptionError{Key: d.Key, Reason: "duplicate key"}
		case len(d.Values) == 0:
			return &OptionError{Key: d.Key, Reason: "no values"}
		case len(d.Values) > MaxOptionValues:
			return &OptionError{Key: d.Key, Reason: fmt.Sprintf("%d values, at most %d allowed", len(d.Values), MaxOptionValues)}
		case d.CategoryKey != "" && !cats[d.CategoryKey]:
			return &OptionError{Key: d.Key, Reason: fmt.Sprintf("unknown category %q", d.CategoryKey)}
		case hasNul(d.Key, d.Desc, d.DescCategorized, d.Info, d.InfoCategorized, d.CategoryKey, d.Default):
			return &OptionError{Key: d.Key, Reason: "contains a null byte"}
		}
		for _, v := range d.Values {
			if v.Value == "" {
				return &OptionError{Key: d.Key, Reason: "empty value"}
			}
			if hasNul(v.Value, v.Label) {
				return &OptionError{Key: d.Key, Reason: "value contains a null byte"}
			}
		}
		seen[d.Key] = true
	}
	return nil
}

func hasNul(ss ...string) bool {
	for _, s := range ss {
		if strings.IndexByte(s, 0) >= 0 {
			return true
		}
	}
	return false
}

// reorderDefault moves the default value to the front of a values slice.
func reorderDefault(values []OptionValue, def string) []string {
	result := make([]string, 0, len(values))
	result = append(result, def)
	for _, v := range values {
		if v.Value != def {
			result = append(result, v.Value)
		}
	}
	return result
}

// LegacyVariables encodes options as "Desc; default|other|..." variables.
func (o CoreOptions) LegacyVariables() []Variable {
	vars := make([]Variable, len(o.Definitions))
	for i := range o.Definitions {
		d := &o.Definitions[i]
		vars[i] = Variable{
			Key:   d.Key,
			Value: d.Desc + "; " + strings.Join(reorderDefault(d.Values, d.DefaultValue()), "|"),
		}
	}
	return vars
}

func encodeValues(m *hostMemory, d *CoreOption) ([abi.NumCoreOptionValuesMax]abi.CoreOptionValue, *byte, error) {
	var out [abi.NumCoreOptionValuesMax]abi.CoreOptionValue
	var def *byte
	want := d.DefaultValue()
	for i, v := range d.Values {
		val, err := m.str(v.Value)
		if err != nil {
			return out, nil, err
		}
		label, err := m.optStr(v.Label)
		if err != nil {
			return out, nil, err
		}
		out[i] = abi.CoreOptionValue{Value: val, Label: label}
		if def == nil && v.Value == want {
			def = val
		}
	}
	return out, def, nil
}

func encodeV1(m *hostMemory, defs []CoreOption) ([]abi.CoreOptionDefinition, error) {
	out := make([]abi.CoreOptionDefinition, len(defs)+1)
	for i := range defs {
		d := &defs[i]
		key, err := m.str(d.Key)
		if err != nil {
			return nil, err
		}
		desc, err := m.str(d.Desc)
		if err != nil {
			return nil, err
		}
		info, err := m.optStr(d.Info)
		if err != nil {
			return nil, err
		}
		values, def, err := encodeValues(m, d)
		if err != nil {
			return nil, err
		}
		out[i] = abi.CoreOptionDefinition{Key: key, Desc: desc, Info: info, Values: values, DefaultValue: def}
	}
	m.add(&out[0])
	return out, nil
}

func encodeV2(m *hostMemory, o CoreOptions) (*abi.CoreOptionsV2, error) {
	cats := make([]abi.CoreOptionV2Category, len(o.Categories)+1)
	for i, c := range o.Categories {
		key, err := m.str(c.Key)
		if err != nil {
			return nil, err
		}
		desc, err := m.str(c.Desc)
		if err != nil {
			return nil, err
		}
		info, err := m.optStr(c.Info)
		if err != nil {
			return nil, err
		}
		cats[i] = abi.CoreOptionV2Category{Key: key, Desc: desc, Info: info}
	}
	m.add(&cats[0])

	defs := make([]abi.CoreOptionV2Definition, len(o.Definitions)+1)
	for i := range o.Definitions {
		d := &o.Definitions[i]
		var strs [6]*byte
		for j, s := range []string{d.Key, d.Desc} {
			p, err := m.str(s)
			if err != nil {
				return nil, err
			}
			strs[j] = p
		}
		for j, s := range []string{d.DescCategorized, d.Info, d.InfoCategorized, d.CategoryKey} {
			p, err := m.optStr(s)
			if err != nil {
				return nil, err
			}
			strs[2+j] = p
		}
		values, def, err := encodeValues(m, d)
		if err != nil {
			return nil, err
		}
		defs[i] = abi.CoreOptionV2Definition{
			Key:             strs[0],
			Desc:            strs[1],
			DescCategorized: strs[2],
			Info:            strs[3],
			InfoCategorized: strs[4],
			CategoryKey:     strs[5],
			Values:          values,
			DefaultValue:    def,
		}
	}
	m.add(&defs[0])

	v2 := &abi.CoreOptionsV2{Categories: &cats[0], Definitions: &defs[0]}
	m.add(v2)
	return v2, nil
}

func requireOptionsVersion(env Environment, want uint32) error {
	if v := coreOptionsVersion(env); v < want {
		return &UnsupportedError{Reason: fmt.Sprintf("core options version %d < %d", v, want)}
	}
	return nil
}

// SetCoreOptions declares options with the version 1 interface.
func (c *SetEnvironmentContext) SetCoreOptions(opts CoreOptions) error {
	if err := requireOptionsVersion(c.env, 1); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	var mem hostMemory
	defs, err := encodeV1(&mem, opts.Definitions)
	if err != nil {
		return err
	}
	mem.keep(c.ifaces())
	return SetPtr(c.env, abi.EnvSetCoreOptions, unsafe.Pointer(&defs[0]))
}

// SetCoreOptionsIntl declares US English options together with a
// translation into the host language.
func (c *SetEnvironmentContext) SetCoreOptionsIntl(us, local CoreOptions) error {
	if err := requireOptionsVersion(c.env, 1); err != nil {
		return err
	}
	if err := us.Validate(); err != nil {
		return err
	}
	var mem hostMemory
	usDefs, err := encodeV1(&mem, us.Definitions)
	if err != nil {
		return err
	}
	intl := &abi.CoreOptionsIntl{US: &usDefs[0]}
	if len(local.Definitions) > 0 {
		localDefs, err := encodeV1(&mem, local.Definitions)
		if err != nil {
			return err
		}
		intl.Local = &localDefs[0]
	}
	mem.add(intl)
	mem.keep(c.ifaces())
	return SetPtr(c.env, abi.EnvSetCoreOptionsIntl, unsafe.Pointer(intl))
}

// SetCoreOptionsV2 declares options with categories. It reports whether
// the host displays categories; a refusing host yields false without an
// error.
func (c *SetEnvironmentContext) SetCoreOptionsV2(opts CoreOptions) (bool, error) {
	if err := requireOptionsVersion(c.env, 2); err != nil {
		return false, err
	}
	if err := opts.Validate(); err != nil {
		return false, err
	}
	var mem hostMemory
	v2, err := encodeV2(&mem, opts)
	if err != nil {
		return false, err
	}
	mem.keep(c.ifaces())
	return SetPtr(c.env, abi.EnvSetCoreOptionsV2, unsafe.Pointer(v2)) == nil, nil
}

// SetCoreOptionsV2Intl is SetCoreOptionsV2 with a translation.
func (c *SetEnvironmentContext) SetCoreOptionsV2Intl(us, local CoreOptions) (bool, error) {
	if err := requireOptionsVersion(c.env, 2); err != nil {
		return false, err
	}
	if err := us.Validate(); err != nil {
		return false, err
	}
	var mem hostMemory
	usV2, err := encodeV2(&mem, us)
	if err != nil {
		return false, err
	}
	intl := &abi.CoreOptionsV2Intl{US: usV2}
	if len(local.Definitions) > 0 || len(local.Categories) > 0 {
		if intl.Local, err = encodeV2(&mem, local); err != nil {
			return false, err
		}
	}
	mem.add(intl)
	mem.keep(c.ifaces())
	return SetPtr(c.env, abi.EnvSetCoreOptionsV2Intl, unsafe.Pointer(intl)) == nil, nil
}

// SupportsCoreOptions reports whether the host understands at least the
// version 1 options interface.
func (c *SetEnvironmentContext) SupportsCoreOptions() bool {
	return coreOptionsVersion(c.env) >= 1
}

// DeclareCoreOptions picks the newest interface the host supports: v2,
// then v1, then legacy variables.
func (c *SetEnvironmentContext) DeclareCoreOptions(opts CoreOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	switch v := c.Generic().CoreOptionsVersion(); {
	case v >= 2:
		categories, err := c.SetCoreOptionsV2(opts)
		if err != nil {
			return err
		}
		c.log().Debug("declared core options", "version", 2, "categories", categories)
		return nil
	case v >= 1:
		return c.SetCoreOptions(opts)
	}
	return c.SetVariables(opts.LegacyVariables())
}
