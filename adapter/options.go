package adapter

import (
	"strconv"

	emucore "github.com/user-none/goretro/api"
	"github.com/user-none/goretro/retro"
)

const (
	regionAuto = "Auto"
	regionKey  = "region"
)

var categories = []retro.OptionCategory{
	{Key: "audio", Desc: "Audio", Info: "Sound output settings."},
	{Key: "video", Desc: "Video", Info: "Picture settings."},
	{Key: "input", Desc: "Input", Info: "Controller settings."},
	{Key: "system", Desc: "System", Info: "Console settings."},
}

func categoryKey(cat emucore.CoreOptionCategory) string {
	switch cat {
	case emucore.CoreOptionCategoryAudio:
		return "audio"
	case emucore.CoreOptionCategoryVideo:
		return "video"
	case emucore.CoreOptionCategoryInput:
		return "input"
	default:
		return "system"
	}
}

// CoreOptions implements retro.OptionsProvider: the region option followed
// by the emulator's own options, each key prefixed with the core name.
func (c *Core) CoreOptions() retro.CoreOptions {
	regions := []retro.OptionValue{{Value: regionAuto}}
	for _, r := range emucore.Regions {
		regions = append(regions, retro.OptionValue{Value: r.String()})
	}
	defs := []retro.CoreOption{{
		Key:             c.prefix + regionKey,
		Desc:            "Region",
		DescCategorized: "Region",
		Info:            "Console video region. Auto uses the region detected from the content.",
		CategoryKey:     "system",
		Values:          regions,
		Default:         regionAuto,
	}}

	used := map[string]bool{"system": true}
	for _, opt := range c.sys.CoreOptions {
		cat := categoryKey(opt.Category)
		used[cat] = true
		defs = append(defs, retro.CoreOption{
			Key:             c.prefix + opt.Key,
			Desc:            opt.Label,
			DescCategorized: opt.Label,
			Info:            opt.Description,
			CategoryKey:     cat,
			Values:          optionValues(opt),
			Default:         opt.Default,
		})
	}

	var cats []retro.OptionCategory
	for _, cat := range categories {
		if used[cat.Key] {
			cats = append(cats, cat)
		}
	}
	return retro.CoreOptions{Categories: cats, Definitions: defs}
}

// optionValues lists the values of an emucore option. Bool options use
// true/false ordering and ranges are expanded by step.
func optionValues(opt emucore.CoreOption) []retro.OptionValue {
	var vals []string
	switch opt.Type {
	case emucore.CoreOptionBool:
		vals = []string{"true", "false"}
	case emucore.CoreOptionRange:
		step := opt.Step
		if step <= 0 {
			step = 1
		}
		for v := opt.Min; v <= opt.Max && len(vals) < retro.MaxOptionValues; v += step {
			vals = append(vals, strconv.Itoa(v))
		}
	default:
		vals = opt.Values
	}

	out := make([]retro.OptionValue, len(vals))
	for i, v := range vals {
		out[i] = retro.OptionValue{Value: v}
	}
	return out
}

// OptionsChanged implements retro.OptionsChangedHandler. It runs before
// content is loaded, so values are kept and applied to each new emulator.
func (c *Core) OptionsChanged(ctx *retro.OptionsChangedContext) {
	if v, ok, err := ctx.Variable(c.prefix + regionKey); err == nil && ok && v != c.optionRegion {
		c.optionRegion = v
		c.applyRegionOption()
	}

	for _, opt := range c.sys.CoreOptions {
		v, ok, err := ctx.Variable(c.prefix + opt.Key)
		if err != nil || !ok || c.options[opt.Key] == v {
			continue
		}
		c.options[opt.Key] = v
		if c.emulator != nil {
			c.emulator.SetOption(opt.Key, v)
		}
	}
}

// applyOptions hands every known option value to a new emulator.
func (c *Core) applyOptions() {
	for _, opt := range c.sys.CoreOptions {
		if v, ok := c.options[opt.Key]; ok {
			c.emulator.SetOption(opt.Key, v)
		}
	}
}

// applyRegionOption applies the current region option setting.
func (c *Core) applyRegionOption() {
	newRegion, ok := emucore.ParseRegion(c.optionRegion)
	if !ok {
		newRegion = c.detectedRegion
	}
	if newRegion != c.region {
		c.region = newRegion
		if c.emulator != nil {
			c.emulator.SetRegion(c.region)
		}
	}
}
